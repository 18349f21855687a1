package handler

import (
	"net/http"

	"investigacion/internal/apierror"
	"investigacion/internal/dto"
	"investigacion/internal/middleware"
	"investigacion/internal/service"

	"github.com/gin-gonic/gin"
)

type PeriodosHandler struct{ svc service.PeriodoService }

func NewPeriodosHandler(svc service.PeriodoService) *PeriodosHandler {
	return &PeriodosHandler{svc: svc}
}

// Crear godoc
// @Summary Crear periodo académico
// @Tags periodos
// @Accept json
// @Produce json
// @Param body body dto.CrearPeriodoRequest true "Periodo"
// @Success 201 {object} apierror.Response{data=dto.PeriodoEnvelope}
// @Failure 409 {object} apierror.Response
// @Router /periodo/create [post]
func (h *PeriodosHandler) Crear(c *gin.Context) {
	var req dto.CrearPeriodoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), middleware.UsuarioActual(c), req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, apierror.Success("Periodo académico creado exitosamente", resp))
}

// Actualizar godoc
// @Summary Actualizar periodo académico
// @Tags periodos
// @Accept json
// @Produce json
// @Param body body dto.ActualizarPeriodoRequest true "Periodo"
// @Success 200 {object} apierror.Response{data=dto.PeriodoEnvelope}
// @Failure 404 {object} apierror.Response
// @Router /periodo/update [put]
func (h *PeriodosHandler) Actualizar(c *gin.Context) {
	var req dto.ActualizarPeriodoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), middleware.UsuarioActual(c), req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.Success("Periodo académico actualizado exitosamente", resp))
}

// Listar godoc
// @Summary Listar periodos académicos
// @Tags periodos
// @Produce json
// @Success 200 {object} apierror.Response{data=dto.ListaPeriodosResponse}
// @Router /periodo/get-all [get]
func (h *PeriodosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.Success("Periodos académicos obtenidos exitosamente", resp))
}
