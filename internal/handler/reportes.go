package handler

import (
	"net/http"

	"investigacion/internal/apierror"
	"investigacion/internal/dto"
	"investigacion/internal/middleware"
	"investigacion/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Generar godoc
// @Summary Generar reporte de trabajos
// @Description Agrupa trabajos por línea, por periodo y por ambos. El archivo (pdf/xlsx) viaja en base64.
// @Tags reportes
// @Accept json
// @Produce json
// @Param body body dto.ReporteRequest true "Líneas, periodos y configuración"
// @Success 200 {object} apierror.Response{data=dto.ReporteData}
// @Router /reportes/generar [post]
func (h *ReportesHandler) Generar(c *gin.Context) {
	var req dto.ReporteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	res, err := h.svc.Generar(c.Request.Context(), middleware.UsuarioActual(c), req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	if res.Advertencia != "" {
		c.JSON(http.StatusOK, apierror.Warning(res.Advertencia, res.Data))
		return
	}
	c.JSON(http.StatusOK, apierror.Success("Reporte generado exitosamente", res.Data))
}
