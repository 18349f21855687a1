package handler

import (
	"fmt"
	"net/http"

	"investigacion/internal/apierror"
	"investigacion/internal/dto"
	"investigacion/internal/middleware"
	"investigacion/internal/service"

	"github.com/gin-gonic/gin"
)

type TrabajosHandler struct {
	svc      service.TrabajoService
	busqueda service.BusquedaService
}

func NewTrabajosHandler(svc service.TrabajoService, busqueda service.BusquedaService) *TrabajosHandler {
	return &TrabajosHandler{svc: svc, busqueda: busqueda}
}

// Crear godoc
// @Summary Crear trabajo de investigación
// @Tags trabajos
// @Accept json
// @Produce json
// @Param body body dto.CrearTrabajoRequest true "Trabajo con documento en base64"
// @Success 201 {object} apierror.Response{data=dto.TrabajoResponse}
// @Failure 404 {object} apierror.Response
// @Failure 409 {object} apierror.Response
// @Router /trabajos/create [post]
func (h *TrabajosHandler) Crear(c *gin.Context) {
	var req dto.CrearTrabajoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), middleware.UsuarioActual(c), req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, apierror.Success("Trabajo creado exitosamente", resp))
}

// Actualizar godoc
// @Summary Actualizar trabajo de investigación
// @Tags trabajos
// @Accept json
// @Produce json
// @Param body body dto.ActualizarTrabajoRequest true "Campos a modificar"
// @Success 200 {object} apierror.Response{data=dto.ActualizarTrabajoResponse}
// @Failure 400 {object} apierror.Response
// @Failure 409 {object} apierror.Response
// @Router /trabajos/update [post]
func (h *TrabajosHandler) Actualizar(c *gin.Context) {
	var req dto.ActualizarTrabajoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), middleware.UsuarioActual(c), req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.Success("Trabajo actualizado exitosamente", resp))
}

// Listar godoc
// @Summary Listar trabajos
// @Tags trabajos
// @Produce json
// @Param estado query string false "PENDIENTE | VALIDADO | RECHAZADO"
// @Param lineaDeInvestigacionId query int false "Línea"
// @Param periodoAcademicoId query int false "Periodo"
// @Param search query string false "Título o autor"
// @Param page query int false "Página" default(1)
// @Param limit query int false "Tamaño de página" default(10)
// @Param sortBy query string false "id | titulo | autor | createdAt | updatedAt"
// @Param sortOrder query string false "asc | desc"
// @Success 200 {object} apierror.Response{data=dto.ListaTrabajosResponse}
// @Router /trabajos/get-all [get]
func (h *TrabajosHandler) Listar(c *gin.Context) {
	var q dto.ListarTrabajosQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.Success("Trabajos obtenidos exitosamente", resp))
}

// ObtenerPorID godoc
// @Summary Obtener trabajo por id
// @Tags trabajos
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} apierror.Response{data=dto.TrabajoResponse}
// @Failure 400 {object} apierror.Response
// @Failure 404 {object} apierror.Response
// @Router /trabajos/get-by-id/{id} [get]
func (h *TrabajosHandler) ObtenerPorID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.Success("Trabajo obtenido exitosamente", resp))
}

// Buscar serves both /search/main and /filters/search.
// @Summary Búsqueda de trabajos
// @Tags busqueda
// @Produce json
// @Param q query string false "Término libre (alias query)"
// @Param titulo query string false "Título"
// @Param autor query string false "Autor"
// @Param periodo query string false "Periodo"
// @Param lineaInvestigacion query string false "Línea de investigación"
// @Param estado query string false "Estado"
// @Param page query int false "Página" default(1)
// @Param limit query int false "Tamaño de página" default(10)
// @Success 200 {object} apierror.Response{data=dto.BusquedaResponse}
// @Failure 400 {object} apierror.Response
// @Router /search/main [get]
func (h *TrabajosHandler) Buscar(c *gin.Context) {
	var q dto.BusquedaQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.busqueda.Buscar(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	msg := fmt.Sprintf("Se encontraron %d trabajo(s) que coinciden con la búsqueda", resp.Pagination.TotalCount)
	c.JSON(http.StatusOK, apierror.Success(msg, resp))
}
