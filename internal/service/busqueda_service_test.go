package service

import (
	"context"
	"testing"

	"investigacion/internal/apierror"
	"investigacion/internal/dto"
	"investigacion/internal/infra"
	"investigacion/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBusqueda(t *testing.T) (*stubTrabajoRepo, BusquedaService) {
	t.Helper()
	repo := newStubTrabajoRepo(nil, nil)
	return repo, NewBusquedaService(repo, NewDocumentoService(infra.NewLocalBlob(t.TempDir()), "/uploads/"))
}

func TestBuscar_ZeroCriteriaIsBadRequest(t *testing.T) {
	_, svc := newBusqueda(t)
	_, err := svc.Buscar(context.Background(), dto.BusquedaQuery{Page: 1, Limit: 10, Titulo: "   "})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidacion, apierror.As(err).Kind)
}

func TestBuscar_BuildsWideFilter(t *testing.T) {
	repo, svc := newBusqueda(t)
	repo.buscarResult = []model.Trabajo{{ID: 1, Titulo: "Redes neuronales", Doc: "a.pdf"}}
	repo.buscarTotal = 1

	resp, err := svc.Buscar(context.Background(), dto.BusquedaQuery{
		Query: "neuronal", Estado: model.EstadoValidado, LineaInvestigacion: "IA",
		Page: 1, Limit: 10, SortBy: "titulo", SortOrder: "asc",
	})
	require.NoError(t, err)

	f := repo.ultimoFiltro
	assert.Equal(t, "neuronal", f.Termino)
	assert.True(t, f.TerminoAmplio)
	assert.Equal(t, model.EstadoValidado, f.Estado)
	assert.Equal(t, "IA", f.Linea)
	assert.Equal(t, "titulo", f.OrdenarPor)

	assert.Equal(t, int64(1), resp.Search.ResultsFound)
	assert.Equal(t, "neuronal", resp.Search.SearchTerm)
	assert.Equal(t, "IA", resp.Search.Filters.LineaInvestigacion)
	assert.Equal(t, "/uploads/a.pdf", resp.Trabajos[0].DocURL)
	assert.False(t, resp.Pagination.HasNextPage)
}

func TestBuscar_QTakesPrecedenceOverQuery(t *testing.T) {
	repo, svc := newBusqueda(t)
	_, err := svc.Buscar(context.Background(), dto.BusquedaQuery{Q: "uno", Query: "dos", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "uno", repo.ultimoFiltro.Termino)
	assert.Equal(t, "desc", repo.ultimoFiltro.Orden)
}

func TestPagination_HasNextMatchesTotalPages(t *testing.T) {
	for total := int64(0); total <= 35; total++ {
		for page := 1; page <= 5; page++ {
			p := dto.NewPagination(page, 10, total)
			assert.Equal(t, page < p.TotalPages, p.HasNextPage, "total=%d page=%d", total, page)
		}
	}
}
