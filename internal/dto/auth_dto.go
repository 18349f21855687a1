package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	LastName string `json:"lastName" validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Cedula   string `json:"cedula"   validate:"required,min=5,max=20"`
}

type ValidarSesionRequest struct {
	Token string `json:"token" validate:"required"`
}

// ActualizarUsuarioRequest is a patch: nil fields are left untouched.
type ActualizarUsuarioRequest struct {
	ID       uint    `json:"id"       validate:"required,gt=0"`
	Name     *string `json:"name"     validate:"omitempty,min=2,max=100"`
	LastName *string `json:"lastName" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email"    validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
	Cedula   *string `json:"cedula"   validate:"omitempty,min=5,max=20"`
	Estado   *bool   `json:"estado"`
	Role     *string `json:"role"     validate:"omitempty,oneof=SUPER EDITOR"`
}

type CambiarPasswordRequest struct {
	ID              uint   `json:"id"              validate:"required,gt=0"`
	NuevaContrasena string `json:"nuevaContrasena" validate:"required,min=8,max=72"`
}

type RecuperacionRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token"           validate:"required"`
	NuevaContrasena string `json:"nuevaContrasena" validate:"required,min=8,max=72"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// UsuarioResponse never carries the password hash.
type UsuarioResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Cedula    string    `json:"cedula"`
	Role      string    `json:"role"`
	Estado    bool      `json:"estado"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SesionResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}

type UsuarioEnvelope struct {
	Usuario UsuarioResponse `json:"usuario"`
	Token   string          `json:"token,omitempty"`
}
