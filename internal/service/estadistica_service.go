package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"investigacion/internal/dto"
	"investigacion/internal/infra"
	"investigacion/internal/model"
	"investigacion/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const cacheKeyEstadisticas = "estadisticas:snapshot"

type EstadisticaService interface {
	// Generar recomputes and audits the run.
	Generar(ctx context.Context, actor *model.Usuario, ip string) (*dto.EstadisticasResponse, error)
	// Recalcular recomputes without an audit entry; used by the cron.
	Recalcular(ctx context.Context) (*dto.EstadisticasResponse, error)
	// Listar serves the stored rows, through the cache.
	Listar(ctx context.Context) (*dto.EstadisticasResponse, error)
}

type estadisticaService struct {
	repo     repository.EstadisticaRepository
	cache    infra.Cache
	ttl      time.Duration
	bitacora BitacoraService
}

func NewEstadisticaService(repo repository.EstadisticaRepository, cache infra.Cache, ttl time.Duration, bitacora BitacoraService) EstadisticaService {
	if cache == nil {
		cache = infra.NopCache{}
	}
	return &estadisticaService{repo: repo, cache: cache, ttl: ttl, bitacora: bitacora}
}

func (s *estadisticaService) Generar(ctx context.Context, actor *model.Usuario, ip string) (*dto.EstadisticasResponse, error) {
	resp, err := s.Recalcular(ctx)
	if err != nil {
		return nil, err
	}
	s.bitacora.Registrar(ctx, actor.ID, model.AccionGenerarEstadisticas,
		fmt.Sprintf("El usuario %s generó estadísticas de %d líneas de investigación", actor.Email, resp.CantidadLineas), ip)
	return resp, nil
}

func (s *estadisticaService) Recalcular(ctx context.Context) (*dto.EstadisticasResponse, error) {
	conteos, err := s.repo.ConteoLineasActivas(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Reemplazar(ctx, calcularEstadisticas(conteos)); err != nil {
		return nil, err
	}
	if err := s.cache.Delete(ctx, cacheKeyEstadisticas); err != nil {
		log.Warn().Err(err).Msg("estadisticas: no se pudo invalidar la cache")
	}
	return s.cargar(ctx)
}

func (s *estadisticaService) Listar(ctx context.Context) (*dto.EstadisticasResponse, error) {
	var cached dto.EstadisticasResponse
	err := s.cache.Get(ctx, cacheKeyEstadisticas, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, infra.ErrCacheMiss) {
		log.Warn().Err(err).Msg("estadisticas: lectura de cache fallida")
	}

	resp, err := s.cargar(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKeyEstadisticas, resp, s.ttl); err != nil {
		log.Warn().Err(err).Msg("estadisticas: no se pudo escribir la cache")
	}
	return resp, nil
}

func (s *estadisticaService) cargar(ctx context.Context) (*dto.EstadisticasResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.EstadisticasResponse{
		Estadisticas:   make([]dto.EstadisticaResponse, len(rows)),
		CantidadLineas: len(rows),
	}
	for i, r := range rows {
		e := dto.EstadisticaResponse{
			ID:                     r.ID,
			LineaDeInvestigacionID: r.LineaDeInvestigacionID,
			CantidadTrabajos:       r.CantidadTrabajos,
			Porcentaje:             r.Porcentaje,
			CreatedAt:              r.CreatedAt,
		}
		if r.LineaDeInvestigacion != nil {
			e.LineaDeInvestigacion = &dto.LineaResumen{ID: r.LineaDeInvestigacion.ID, Nombre: r.LineaDeInvestigacion.Nombre}
		}
		resp.Estadisticas[i] = e
		resp.TotalTrabajos += r.CantidadTrabajos
	}
	return resp, nil
}

// calcularEstadisticas turns per-line counts into rows whose percentages
// have two decimals and, when the total is positive, add up to exactly
// 100.00. Hundredths lost to truncation go to the largest remainders, ties
// broken by input order. A row can therefore sit 0.01 away from its own
// plain rounding (1/1/1 gives 33.34/33.33/33.33); that is accepted in
// exchange for the exact sum.
func calcularEstadisticas(conteos []repository.ConteoLinea) []model.Estadistica {
	rows := make([]model.Estadistica, len(conteos))
	var total int64
	for _, c := range conteos {
		total += c.Cantidad
	}

	centesimas := make([]int64, len(conteos))
	restos := make([]int64, len(conteos))
	var asignadas int64
	if total > 0 {
		for i, c := range conteos {
			centesimas[i] = c.Cantidad * 10000 / total
			restos[i] = c.Cantidad * 10000 % total
			asignadas += centesimas[i]
		}
		orden := make([]int, len(conteos))
		for i := range orden {
			orden[i] = i
		}
		sort.SliceStable(orden, func(a, b int) bool { return restos[orden[a]] > restos[orden[b]] })
		for k := int64(0); k < 10000-asignadas; k++ {
			centesimas[orden[k]]++
		}
	}

	for i, c := range conteos {
		rows[i] = model.Estadistica{
			LineaDeInvestigacionID: c.LineaDeInvestigacionID,
			CantidadTrabajos:       int(c.Cantidad),
			Porcentaje:             decimal.New(centesimas[i], -2),
		}
	}
	return rows
}
