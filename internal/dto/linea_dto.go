package dto

import "time"

type CrearLineaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=3,max=255"`
}

type ActualizarLineaRequest struct {
	ID     uint    `json:"id"     validate:"required,gt=0"`
	Nombre *string `json:"nombre" validate:"omitempty,min=3,max=255"`
	Estado *bool   `json:"estado"`
}

type LineaResponse struct {
	ID        uint       `json:"id"`
	Nombre    string     `json:"nombre"`
	Estado    bool       `json:"estado"`
	UsuarioID uint       `json:"usuarioId,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// LineaResumen is the compact form embedded in works and statistics.
type LineaResumen struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}
