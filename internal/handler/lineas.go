package handler

import (
	"net/http"

	"investigacion/internal/apierror"
	"investigacion/internal/dto"
	"investigacion/internal/middleware"
	"investigacion/internal/service"

	"github.com/gin-gonic/gin"
)

type LineasHandler struct{ svc service.LineaService }

func NewLineasHandler(svc service.LineaService) *LineasHandler { return &LineasHandler{svc: svc} }

// Crear godoc
// @Summary Crear línea de investigación
// @Tags lineas
// @Accept json
// @Produce json
// @Param body body dto.CrearLineaRequest true "Línea"
// @Success 201 {object} apierror.Response{data=dto.LineaResponse}
// @Failure 409 {object} apierror.Response
// @Router /lineas-de-investigacion/create [post]
func (h *LineasHandler) Crear(c *gin.Context) {
	var req dto.CrearLineaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), middleware.UsuarioActual(c), req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, apierror.Success("Línea de investigación creada exitosamente", resp))
}

// Actualizar godoc
// @Summary Actualizar línea de investigación
// @Tags lineas
// @Accept json
// @Produce json
// @Param body body dto.ActualizarLineaRequest true "Cambios"
// @Success 200 {object} apierror.Response{data=dto.LineaResponse}
// @Failure 404 {object} apierror.Response
// @Failure 409 {object} apierror.Response
// @Router /lineas-de-investigacion/update [post]
func (h *LineasHandler) Actualizar(c *gin.Context) {
	var req dto.ActualizarLineaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), middleware.UsuarioActual(c), req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.Success("Línea de investigación actualizada exitosamente", resp))
}

// Listar godoc
// @Summary Listar líneas de investigación
// @Tags lineas
// @Produce json
// @Success 200 {object} apierror.Response{data=[]dto.LineaResponse}
// @Router /lineas-de-investigacion/get-all [get]
func (h *LineasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.Success("Líneas de investigación obtenidas exitosamente", resp))
}
