package handler

import (
	"net/http"

	"investigacion/internal/apierror"
	"investigacion/internal/dto"
	"investigacion/internal/middleware"
	"investigacion/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Inicio de sesión
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} apierror.Response{data=dto.SesionResponse}
// @Failure 401 {object} apierror.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.Success("Inicio de sesión exitoso", resp))
}

// Register godoc
// @Summary Registro de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Datos del usuario"
// @Success 201 {object} apierror.Response{data=dto.SesionResponse}
// @Failure 409 {object} apierror.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, apierror.Success("Usuario registrado exitosamente", resp))
}

// ValidarSesion returns the user the token resolved to.
// @Summary Validar sesión
// @Tags auth
// @Produce json
// @Success 200 {object} apierror.Response{data=dto.UsuarioEnvelope}
// @Failure 401 {object} apierror.Response
// @Router /auth/validar-sesion [post]
func (h *AuthHandler) ValidarSesion(c *gin.Context) {
	usuario := middleware.UsuarioActual(c)
	c.JSON(http.StatusOK, apierror.Success("Sesión válida", dto.UsuarioEnvelope{Usuario: service.MapUsuario(usuario)}))
}

// ActualizarUsuario godoc
// @Summary Actualizar usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ActualizarUsuarioRequest true "Campos a modificar"
// @Success 200 {object} apierror.Response{data=dto.UsuarioEnvelope}
// @Failure 403 {object} apierror.Response
// @Failure 409 {object} apierror.Response
// @Router /auth/update-user [post]
func (h *AuthHandler) ActualizarUsuario(c *gin.Context) {
	var req dto.ActualizarUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarUsuario(c.Request.Context(), middleware.UsuarioActual(c), req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.Success("Usuario actualizado exitosamente", dto.UsuarioEnvelope{Usuario: *resp}))
}

// CambiarPassword sets another user's password. SUPER only.
// @Summary Cambiar contraseña (administrador)
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.CambiarPasswordRequest true "Usuario y nueva contraseña"
// @Success 200 {object} apierror.Response{data=dto.UsuarioEnvelope}
// @Router /auth/change-password [post]
func (h *AuthHandler) CambiarPassword(c *gin.Context) {
	var req dto.CambiarPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarPassword(c.Request.Context(), middleware.UsuarioActual(c), req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.Success("Contraseña actualizada exitosamente", dto.UsuarioEnvelope{Usuario: *resp}))
}

// ListarUsuarios godoc
// @Summary Listar usuarios
// @Tags auth
// @Produce json
// @Success 200 {object} apierror.Response{data=[]dto.UsuarioResponse}
// @Router /auth/usuarios [get]
func (h *AuthHandler) ListarUsuarios(c *gin.Context) {
	resp, err := h.svc.ListarUsuarios(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.Success("Usuarios obtenidos exitosamente", resp))
}

// SolicitarRecuperacion godoc
// @Summary Enviar correo de recuperación
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RecuperacionRequest true "Correo"
// @Success 200 {object} apierror.Response
// @Failure 404 {object} apierror.Response
// @Router /auth/send-email-recovery [post]
func (h *AuthHandler) SolicitarRecuperacion(c *gin.Context) {
	var req dto.RecuperacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SolicitarRecuperacion(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.Success("Correo de restablecimiento enviado", nil))
}

// ResetPassword godoc
// @Summary Restablecer contraseña con token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ResetPasswordRequest true "Token y nueva contraseña"
// @Success 200 {object} apierror.Response{data=dto.UsuarioEnvelope}
// @Failure 401 {object} apierror.Response
// @Router /auth/reset-password-with-token [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ResetPassword(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.Success("Contraseña restablecida exitosamente", resp))
}
