package service

import (
	"context"
	"strings"

	"investigacion/internal/apierror"
	"investigacion/internal/dto"
	"investigacion/internal/repository"
)

// BusquedaService runs the filtered work search behind /search/main and
// /filters/search.
type BusquedaService interface {
	Buscar(ctx context.Context, q dto.BusquedaQuery) (*dto.BusquedaResponse, error)
}

type busquedaService struct {
	repo       repository.TrabajoRepository
	documentos DocumentoService
}

func NewBusquedaService(repo repository.TrabajoRepository, documentos DocumentoService) BusquedaService {
	return &busquedaService{repo: repo, documentos: documentos}
}

func (s *busquedaService) Buscar(ctx context.Context, q dto.BusquedaQuery) (*dto.BusquedaResponse, error) {
	termino := strings.TrimSpace(q.Termino())
	filtros := dto.BusquedaFiltros{
		Titulo:             strings.TrimSpace(q.Titulo),
		Autor:              strings.TrimSpace(q.Autor),
		Periodo:            strings.TrimSpace(q.Periodo),
		LineaInvestigacion: strings.TrimSpace(q.LineaInvestigacion),
		Estado:             q.Estado,
	}
	if termino == "" && filtros == (dto.BusquedaFiltros{}) {
		return nil, apierror.Validacion("Se requiere al menos un parámetro de búsqueda")
	}

	sortBy, sortOrder := normalizarOrden(q.SortBy, q.SortOrder)
	trabajos, total, err := s.repo.Buscar(ctx, repository.TrabajoFiltro{
		Estado:        filtros.Estado,
		Titulo:        filtros.Titulo,
		Autor:         filtros.Autor,
		Periodo:       filtros.Periodo,
		Linea:         filtros.LineaInvestigacion,
		Termino:       termino,
		TerminoAmplio: true,
		OrdenarPor:    sortBy,
		Orden:         sortOrder,
		Page:          q.Page,
		Limit:         q.Limit,
	})
	if err != nil {
		return nil, err
	}

	resp := make([]dto.TrabajoResponse, len(trabajos))
	for i := range trabajos {
		resp[i] = mapTrabajo(&trabajos[i], s.documentos.URL(trabajos[i].Doc))
	}
	return &dto.BusquedaResponse{
		Trabajos:   resp,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
		Search: dto.BusquedaInfo{
			SearchTerm:   termino,
			Filters:      filtros,
			ResultsFound: total,
			SortBy:       sortBy,
			SortOrder:    sortOrder,
		},
	}, nil
}
