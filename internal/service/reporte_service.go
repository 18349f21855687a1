package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"investigacion/internal/dto"
	"investigacion/internal/infra"
	"investigacion/internal/model"
	"investigacion/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	sinNombre  = "Sin nombre"
	sinPeriodo = "Sin periodo"

	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReporteResultado is the report data plus a warning when the requested
// format could not be honored.
type ReporteResultado struct {
	Data        *dto.ReporteData
	Advertencia string
}

type ReporteService interface {
	Generar(ctx context.Context, actor *model.Usuario, req dto.ReporteRequest, ip string) (*ReporteResultado, error)
}

type reporteService struct {
	trabajos     repository.TrabajoRepository
	lineas       repository.LineaRepository
	periodos     repository.PeriodoRepository
	estadisticas EstadisticaService
	bitacora     BitacoraService
	now          func() time.Time
}

func NewReporteService(
	trabajos repository.TrabajoRepository,
	lineas repository.LineaRepository,
	periodos repository.PeriodoRepository,
	estadisticas EstadisticaService,
	bitacora BitacoraService,
) ReporteService {
	return &reporteService{
		trabajos:     trabajos,
		lineas:       lineas,
		periodos:     periodos,
		estadisticas: estadisticas,
		bitacora:     bitacora,
		now:          time.Now,
	}
}

func (s *reporteService) Generar(ctx context.Context, actor *model.Usuario, req dto.ReporteRequest, ip string) (*ReporteResultado, error) {
	lineaIDs := unicos(req.LineasInvestigacion)
	periodoIDs := unicos(req.PeriodosAcademicos)

	porLinea, err := s.trabajos.ContarPorLinea(ctx, lineaIDs)
	if err != nil {
		return nil, err
	}
	porPeriodo, err := s.trabajos.ContarPorPeriodo(ctx, periodoIDs)
	if err != nil {
		return nil, err
	}
	cruce, err := s.trabajos.ContarPorLineaYPeriodo(ctx, lineaIDs, periodoIDs)
	if err != nil {
		return nil, err
	}

	nombres, err := s.nombresLineas(ctx, lineaIDs)
	if err != nil {
		return nil, err
	}
	etiquetas, err := s.etiquetasPeriodos(ctx, periodoIDs)
	if err != nil {
		return nil, err
	}

	cfg := req.Configuracion
	cfg.Formato = strings.ToLower(strings.TrimSpace(cfg.Formato))
	if cfg.Formato == "" {
		cfg.Formato = dto.FormatoPDF
	}

	data := &dto.ReporteData{
		TrabajosPorLinea:         make([]dto.TrabajosPorLinea, len(porLinea)),
		TrabajosPorPeriodo:       make([]dto.TrabajosPorPeriodo, len(porPeriodo)),
		TrabajosPorLineaYPeriodo: make([]dto.TrabajosPorLineaYPeriodo, len(cruce)),
		FiltrosAplicados:         dto.ReporteFiltros{LineasInvestigacion: lineaIDs, PeriodosAcademicos: periodoIDs},
		Configuracion:            cfg,
	}
	for i, c := range porLinea {
		data.TrabajosPorLinea[i] = dto.TrabajosPorLinea{
			LineaDeInvestigacionID: c.LineaDeInvestigacionID,
			CantidadTrabajos:       c.Cantidad,
			NombreLinea:            nombreLinea(nombres, c.LineaDeInvestigacionID),
		}
	}
	for i, c := range porPeriodo {
		data.TrabajosPorPeriodo[i] = dto.TrabajosPorPeriodo{
			PeriodoAcademicoID: c.PeriodoAcademicoID,
			CantidadTrabajos:   c.Cantidad,
			Periodo:            etiquetaPeriodo(etiquetas, c.PeriodoAcademicoID),
		}
	}
	var total int64
	for i, c := range cruce {
		data.TrabajosPorLineaYPeriodo[i] = dto.TrabajosPorLineaYPeriodo{
			LineaDeInvestigacionID: c.LineaDeInvestigacionID,
			PeriodoAcademicoID:     c.PeriodoAcademicoID,
			CantidadTrabajos:       c.Cantidad,
			NombreLinea:            nombreLinea(nombres, c.LineaDeInvestigacionID),
			Periodo:                etiquetaPeriodo(etiquetas, c.PeriodoAcademicoID),
		}
		total += c.Cantidad
	}
	data.Resumen = dto.ReporteResumen{
		TotalTrabajos:       total,
		LineasConsultadas:   len(lineaIDs),
		PeriodosConsultados: len(periodoIDs),
		FechaGeneracion:     s.now(),
	}

	if cfg.IncluirEstadisticas {
		est, err := s.estadisticas.Listar(ctx)
		if err != nil {
			return nil, err
		}
		data.Estadisticas = est
	}

	res := &ReporteResultado{Data: data}
	stamp := data.Resumen.FechaGeneracion.Format("20060102-150405")
	switch cfg.Formato {
	case dto.FormatoPDF:
		raw, err := infra.RenderReportePDF(data)
		if err != nil {
			return nil, fmt.Errorf("renderizar pdf: %w", err)
		}
		data.Archivo = archivo("reporte-trabajos-"+stamp+".pdf", mimePDF, raw)
	case dto.FormatoXLSX:
		raw, err := infra.RenderReporteXLSX(data)
		if err != nil {
			return nil, fmt.Errorf("renderizar xlsx: %w", err)
		}
		data.Archivo = archivo("reporte-trabajos-"+stamp+".xlsx", mimeXLSX, raw)
	case dto.FormatoJSON:
	default:
		res.Advertencia = fmt.Sprintf("Formato %q no soportado, se devuelven los datos sin procesar", cfg.Formato)
	}

	s.bitacora.Registrar(ctx, actor.ID, model.AccionGenerarReporte,
		fmt.Sprintf("El usuario %s generó un reporte (%s) de %d líneas y %d periodos", actor.Email, cfg.Formato, len(lineaIDs), len(periodoIDs)), ip)
	return res, nil
}

func (s *reporteService) nombresLineas(ctx context.Context, ids []uint) (map[uint]string, error) {
	list, err := s.lineas.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	m := make(map[uint]string, len(list))
	for _, l := range list {
		m[l.ID] = l.Nombre
	}
	return m, nil
}

func (s *reporteService) etiquetasPeriodos(ctx context.Context, ids []uint) (map[uint]string, error) {
	list, err := s.periodos.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	m := make(map[uint]string, len(list))
	for _, p := range list {
		m[p.ID] = p.Periodo
	}
	return m, nil
}

// nombreLinea degrades to a placeholder when the line vanished between
// selection and lookup.
func nombreLinea(m map[uint]string, id uint) string {
	if n, ok := m[id]; ok {
		return n
	}
	log.Warn().Uint("linea_id", id).Msg("reportes: línea de investigación inexistente")
	return sinNombre
}

func etiquetaPeriodo(m map[uint]string, id uint) string {
	if p, ok := m[id]; ok {
		return p
	}
	log.Warn().Uint("periodo_id", id).Msg("reportes: periodo académico inexistente")
	return sinPeriodo
}

func archivo(nombre, mime string, raw []byte) *dto.ReporteArchivo {
	return &dto.ReporteArchivo{Nombre: nombre, Mime: mime, Base64: base64.StdEncoding.EncodeToString(raw)}
}

// unicos drops duplicate ids, keeping first-seen order.
func unicos(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
