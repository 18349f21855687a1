package service

import (
	"context"
	"fmt"
	"strings"

	"investigacion/internal/apierror"
	"investigacion/internal/dto"
	"investigacion/internal/model"
	"investigacion/internal/repository"

	"github.com/rs/zerolog/log"
)

type TrabajoService interface {
	Crear(ctx context.Context, actor *model.Usuario, req dto.CrearTrabajoRequest, ip string) (*dto.TrabajoResponse, error)
	// Actualizar applies only the fields present in req. A new document is
	// written before the old one is removed.
	Actualizar(ctx context.Context, actor *model.Usuario, req dto.ActualizarTrabajoRequest, ip string) (*dto.ActualizarTrabajoResponse, error)
	Listar(ctx context.Context, q dto.ListarTrabajosQuery) (*dto.ListaTrabajosResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.TrabajoResponse, error)
}

type trabajoService struct {
	repo       repository.TrabajoRepository
	lineas     repository.LineaRepository
	periodos   repository.PeriodoRepository
	documentos DocumentoService
	bitacora   BitacoraService
}

func NewTrabajoService(
	repo repository.TrabajoRepository,
	lineas repository.LineaRepository,
	periodos repository.PeriodoRepository,
	documentos DocumentoService,
	bitacora BitacoraService,
) TrabajoService {
	return &trabajoService{repo: repo, lineas: lineas, periodos: periodos, documentos: documentos, bitacora: bitacora}
}

const (
	msgTrabajoDuplicado  = "Ya existe un trabajo con ese título en la misma línea y periodo académico"
	msgTrabajoNoExiste   = "Trabajo no encontrado"
	msgLineaNoExiste     = "Línea de investigación no encontrada"
	msgPeriodoNoExiste   = "Periodo académico no encontrado"
	msgSinCambiosTrabajo = "No se proporcionaron cambios para actualizar"
)

func (s *trabajoService) Crear(ctx context.Context, actor *model.Usuario, req dto.CrearTrabajoRequest, ip string) (*dto.TrabajoResponse, error) {
	titulo := strings.TrimSpace(req.Titulo)
	autor := strings.TrimSpace(req.Autor)
	if titulo == "" || autor == "" {
		return nil, apierror.Validacion("El título y el autor son requeridos")
	}
	if err := s.verificarReferencias(ctx, req.LineaDeInvestigacionID, req.PeriodoAcademicoID); err != nil {
		return nil, err
	}
	dup, err := s.repo.ExistsDuplicado(ctx, titulo, req.LineaDeInvestigacionID, req.PeriodoAcademicoID, 0)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, apierror.Conflicto(msgTrabajoDuplicado)
	}

	doc, err := s.documentos.Guardar(ctx, req.PDFBase64, req.NombreArchivo)
	if err != nil {
		return nil, err
	}

	estado := req.Estado
	if estado == "" {
		estado = model.EstadoPendiente
	}
	t := &model.Trabajo{
		Titulo:                 titulo,
		Autor:                  autor,
		Resumen:                req.Resumen,
		Doc:                    doc.Nombre,
		Estado:                 estado,
		LineaDeInvestigacionID: req.LineaDeInvestigacionID,
		PeriodoAcademicoID:     req.PeriodoAcademicoID,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		s.descartarDocumento(ctx, doc.Nombre)
		return nil, traducir(err, "", msgTrabajoDuplicado)
	}

	s.bitacora.Registrar(ctx, actor.ID, model.AccionCrearTrabajo,
		fmt.Sprintf("El usuario %s creó el trabajo %q con documento %s", actor.Email, titulo, doc.Nombre), ip)
	return s.ObtenerPorID(ctx, t.ID)
}

func (s *trabajoService) Actualizar(ctx context.Context, actor *model.Usuario, req dto.ActualizarTrabajoRequest, ip string) (*dto.ActualizarTrabajoResponse, error) {
	existente, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, traducir(err, msgTrabajoNoExiste, "")
	}

	var patch repository.TrabajoPatch
	var cambios []string

	if req.Titulo != nil {
		if v := strings.TrimSpace(*req.Titulo); v != "" && v != existente.Titulo {
			patch.Titulo = &v
			cambios = append(cambios, fmt.Sprintf("título de %q a %q", existente.Titulo, v))
		}
	}
	if req.Autor != nil {
		if v := strings.TrimSpace(*req.Autor); v != "" && v != existente.Autor {
			patch.Autor = &v
			cambios = append(cambios, fmt.Sprintf("autor de %q a %q", existente.Autor, v))
		}
	}
	if req.Resumen != nil && (existente.Resumen == nil || *req.Resumen != *existente.Resumen) {
		patch.Resumen = req.Resumen
		cambios = append(cambios, "resumen")
	}
	if req.Estado != nil && *req.Estado != existente.Estado {
		patch.Estado = req.Estado
		cambios = append(cambios, fmt.Sprintf("estado de %q a %q", existente.Estado, *req.Estado))
	}
	if req.LineaDeInvestigacionID != nil && *req.LineaDeInvestigacionID != existente.LineaDeInvestigacionID {
		patch.LineaDeInvestigacionID = req.LineaDeInvestigacionID
		cambios = append(cambios, "línea de investigación")
	}
	if req.PeriodoAcademicoID != nil && *req.PeriodoAcademicoID != existente.PeriodoAcademicoID {
		patch.PeriodoAcademicoID = req.PeriodoAcademicoID
		cambios = append(cambios, "periodo académico")
	}

	// effective key after the patch
	titulo, lineaID, periodoID := existente.Titulo, existente.LineaDeInvestigacionID, existente.PeriodoAcademicoID
	if patch.Titulo != nil {
		titulo = *patch.Titulo
	}
	if patch.LineaDeInvestigacionID != nil {
		lineaID = *patch.LineaDeInvestigacionID
	}
	if patch.PeriodoAcademicoID != nil {
		periodoID = *patch.PeriodoAcademicoID
	}
	if patch.LineaDeInvestigacionID != nil || patch.PeriodoAcademicoID != nil {
		if err := s.verificarReferencias(ctx, lineaID, periodoID); err != nil {
			return nil, err
		}
	}
	if patch.Titulo != nil || patch.LineaDeInvestigacionID != nil || patch.PeriodoAcademicoID != nil {
		dup, err := s.repo.ExistsDuplicado(ctx, titulo, lineaID, periodoID, existente.ID)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, apierror.Conflicto("Ya existe otro trabajo con ese título en la misma línea y periodo académico")
		}
	}

	var nuevoDoc string
	if req.PDFBase64 != nil && strings.TrimSpace(*req.PDFBase64) != "" {
		doc, err := s.documentos.Guardar(ctx, *req.PDFBase64, req.NombreArchivo)
		if err != nil {
			return nil, err
		}
		nuevoDoc = doc.Nombre
		patch.Doc = &nuevoDoc
		cambios = append(cambios, "documento PDF")
	}

	if len(cambios) == 0 {
		return nil, apierror.Validacion(msgSinCambiosTrabajo)
	}

	if err := s.repo.Update(ctx, existente.ID, patch); err != nil {
		s.descartarDocumento(ctx, nuevoDoc)
		return nil, traducir(err, msgTrabajoNoExiste, msgTrabajoDuplicado)
	}
	if nuevoDoc != "" {
		s.descartarDocumento(ctx, existente.Doc)
	}

	resp, err := s.ObtenerPorID(ctx, existente.ID)
	if err != nil {
		return nil, err
	}
	s.bitacora.Registrar(ctx, actor.ID, model.AccionActualizarTrabajo,
		fmt.Sprintf("El usuario %s actualizó el trabajo %q. Cambios: %s", actor.Email, resp.Titulo, strings.Join(cambios, ", ")), ip)
	return &dto.ActualizarTrabajoResponse{Trabajo: *resp, Cambios: cambios}, nil
}

func (s *trabajoService) Listar(ctx context.Context, q dto.ListarTrabajosQuery) (*dto.ListaTrabajosResponse, error) {
	sortBy, sortOrder := normalizarOrden(q.SortBy, q.SortOrder)
	filtro := repository.TrabajoFiltro{
		Estado:     q.Estado,
		LineaID:    q.LineaDeInvestigacionID,
		PeriodoID:  q.PeriodoAcademicoID,
		Termino:    strings.TrimSpace(q.Search),
		OrdenarPor: sortBy,
		Orden:      sortOrder,
		Page:       q.Page,
		Limit:      q.Limit,
	}
	trabajos, total, err := s.repo.Buscar(ctx, filtro)
	if err != nil {
		return nil, err
	}
	return &dto.ListaTrabajosResponse{
		Trabajos:   s.mapTrabajos(trabajos),
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

func (s *trabajoService) ObtenerPorID(ctx context.Context, id uint) (*dto.TrabajoResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir(err, msgTrabajoNoExiste, "")
	}
	resp := mapTrabajo(t, s.documentos.URL(t.Doc))
	return &resp, nil
}

func (s *trabajoService) verificarReferencias(ctx context.Context, lineaID, periodoID uint) error {
	if _, err := s.lineas.FindByID(ctx, lineaID); err != nil {
		return traducir(err, msgLineaNoExiste, "")
	}
	if _, err := s.periodos.FindByID(ctx, periodoID); err != nil {
		return traducir(err, msgPeriodoNoExiste, "")
	}
	return nil
}

func (s *trabajoService) descartarDocumento(ctx context.Context, nombre string) {
	if nombre == "" {
		return
	}
	if err := s.documentos.Eliminar(ctx, nombre); err != nil {
		log.Warn().Err(err).Str("doc", nombre).Msg("trabajos: no se pudo eliminar el documento")
	}
}

func (s *trabajoService) mapTrabajos(list []model.Trabajo) []dto.TrabajoResponse {
	resp := make([]dto.TrabajoResponse, len(list))
	for i := range list {
		resp[i] = mapTrabajo(&list[i], s.documentos.URL(list[i].Doc))
	}
	return resp
}

// normalizarOrden applies the sort allow-list: createdAt and desc by default.
func normalizarOrden(sortBy, sortOrder string) (string, string) {
	if !repository.OrdenValido(sortBy) {
		sortBy = "createdAt"
	}
	if strings.ToLower(sortOrder) == "asc" {
		return sortBy, "asc"
	}
	return sortBy, "desc"
}
