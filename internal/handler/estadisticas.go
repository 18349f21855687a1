package handler

import (
	"net/http"

	"investigacion/internal/apierror"
	"investigacion/internal/middleware"
	"investigacion/internal/service"

	"github.com/gin-gonic/gin"
)

type EstadisticasHandler struct{ svc service.EstadisticaService }

func NewEstadisticasHandler(svc service.EstadisticaService) *EstadisticasHandler {
	return &EstadisticasHandler{svc: svc}
}

// Generar godoc
// @Summary Recalcular estadísticas por línea
// @Tags estadisticas
// @Produce json
// @Success 200 {object} apierror.Response{data=dto.EstadisticasResponse}
// @Router /estadisticas/generar [post]
func (h *EstadisticasHandler) Generar(c *gin.Context) {
	resp, err := h.svc.Generar(c.Request.Context(), middleware.UsuarioActual(c), c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.Success("Estadísticas generadas exitosamente", resp))
}

// Listar godoc
// @Summary Obtener estadísticas
// @Tags estadisticas
// @Produce json
// @Success 200 {object} apierror.Response{data=dto.EstadisticasResponse}
// @Router /estadisticas/get-all [get]
func (h *EstadisticasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.Success("Estadísticas obtenidas exitosamente", resp))
}
