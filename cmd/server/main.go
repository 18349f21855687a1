package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"investigacion/internal/config"
	"investigacion/internal/infra"
	"investigacion/internal/repository"
	"investigacion/internal/router"
	"investigacion/internal/service"
	"investigacion/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// @title Investigación API
// @version 1.0
// @description Gestión de líneas de investigación, periodos académicos y trabajos.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	// porcentaje travels as a JSON number
	decimal.MarshalJSONWithoutQuotes = true

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	blob, err := infra.NewBlob(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init document storage")
	}
	metrics := infra.NewMetrics()

	// Background work: mail queue consumers and the statistics ticker.
	mailer := infra.NewMailer(cfg)
	if !mailer.Configured() {
		log.Warn().Msg("SMTP_HOST vacío: los correos de recuperación terminarán en la DLQ")
	}
	smtpCB := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{Name: "smtp", FailureThreshold: 5, OpenTimeout: time.Minute})
	pool := worker.NewPool(rdb, cfg.WorkerPoolSize, metrics)
	pool.Handle(worker.JobRecuperacion, worker.NewEmailWorker(mailer, smtpCB).ProcessRecuperacion)
	pool.Start(ctx)

	estadisticaSvc := service.NewEstadisticaService(
		repository.NewEstadisticaRepository(db),
		infra.NewRedisCache(rdb),
		time.Duration(cfg.EstadisticasCacheTTLSeconds)*time.Second,
		service.NewBitacoraService(repository.NewBitacoraRepository(db)),
	)
	worker.StartEstadisticasCron(ctx, estadisticaSvc, time.Duration(cfg.EstadisticasCronMinutes)*time.Minute)

	r := router.New(cfg, db, rdb, blob, metrics)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("investigacion backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}

// setupLogger: dev pretty console, prod JSON.
func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.IsProduction() {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
