package worker

import (
	"context"
	"time"

	"investigacion/internal/dto"

	"github.com/rs/zerolog/log"
)

// Recalculador rebuilds the statistics snapshot.
type Recalculador interface {
	Recalcular(ctx context.Context) (*dto.EstadisticasResponse, error)
}

// StartEstadisticasCron recomputes statistics every interval until ctx is
// cancelled. A non-positive interval disables it.
func StartEstadisticasCron(ctx context.Context, svc Recalculador, interval time.Duration) {
	if interval <= 0 {
		log.Info().Msg("estadisticas_cron: deshabilitado")
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		log.Info().Dur("interval", interval).Msg("estadisticas_cron: started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("estadisticas_cron: shutting down")
				return
			case <-ticker.C:
				recalcular(ctx, svc)
			}
		}
	}()
}

func recalcular(ctx context.Context, svc Recalculador) {
	res, err := svc.Recalcular(ctx)
	if err != nil {
		log.Error().Err(err).Msg("estadisticas_cron: recálculo fallido")
		return
	}
	log.Info().Int("lineas", res.CantidadLineas).Int("trabajos", res.TotalTrabajos).Msg("estadisticas_cron: snapshot actualizado")
}
