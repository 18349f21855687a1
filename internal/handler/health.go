package handler

import (
	"context"
	"net/http"
	"time"

	"investigacion/internal/apierror"
	"investigacion/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// Checks DB and Redis connectivity; never exposes credentials or internals.
//
// @Summary Estado del servicio
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 503 {object} map[string]any
// @Router /health [get]
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb == nil || rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		// a Redis outage only degrades the cache and the mail queue
		status := http.StatusOK
		if dbStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":    status == http.StatusOK,
			"db":    dbStatus,
			"redis": redisStatus,
		})
	}
}

// HealthMetrics parses the prometheus registry into JSON.
//
// @Summary Métricas del proceso en JSON
// @Tags health
// @Produce json
// @Success 200 {object} apierror.Response
// @Router /health/metrics [get]
func HealthMetrics(m *infra.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := m.Summary()
		if err != nil {
			respondError(c, apierror.Interno("Error al recolectar métricas", err))
			return
		}
		c.JSON(http.StatusOK, apierror.Success("Métricas del servidor", summary))
	}
}
