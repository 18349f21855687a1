package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearTrabajoRequest struct {
	Titulo                 string  `json:"titulo"                 validate:"required,min=3,max=500"`
	Autor                  string  `json:"autor"                  validate:"required,min=2,max=255"`
	Resumen                *string `json:"resumen"                validate:"omitempty,max=10000"`
	Estado                 string  `json:"estado"                 validate:"omitempty,oneof=PENDIENTE VALIDADO RECHAZADO"`
	LineaDeInvestigacionID uint    `json:"lineaDeInvestigacionId" validate:"required,gt=0"`
	PeriodoAcademicoID     uint    `json:"periodoAcademicoId"     validate:"required,gt=0"`
	PDFBase64              string  `json:"pdfBase64"              validate:"required"`
	NombreArchivo          string  `json:"nombreArchivo"          validate:"omitempty,max=255"`
}

// ActualizarTrabajoRequest is a patch: nil fields are left untouched.
// A non-nil PDFBase64 replaces the stored document.
type ActualizarTrabajoRequest struct {
	ID                     uint    `json:"id"                     validate:"required,gt=0"`
	Titulo                 *string `json:"titulo"                 validate:"omitempty,min=3,max=500"`
	Autor                  *string `json:"autor"                  validate:"omitempty,min=2,max=255"`
	Resumen                *string `json:"resumen"                validate:"omitempty,max=10000"`
	Estado                 *string `json:"estado"                 validate:"omitempty,oneof=PENDIENTE VALIDADO RECHAZADO"`
	LineaDeInvestigacionID *uint   `json:"lineaDeInvestigacionId" validate:"omitempty,gt=0"`
	PeriodoAcademicoID     *uint   `json:"periodoAcademicoId"     validate:"omitempty,gt=0"`
	PDFBase64              *string `json:"pdfBase64"`
	NombreArchivo          string  `json:"nombreArchivo"          validate:"omitempty,max=255"`
}

// ListarTrabajosQuery backs GET /trabajos/get-all.
type ListarTrabajosQuery struct {
	Estado                 string `form:"estado"                 validate:"omitempty,oneof=PENDIENTE VALIDADO RECHAZADO"`
	LineaDeInvestigacionID uint   `form:"lineaDeInvestigacionId"`
	PeriodoAcademicoID     uint   `form:"periodoAcademicoId"`
	Search                 string `form:"search"                 validate:"max=200"`
	Page                   int    `form:"page,default=1"         validate:"min=1"`
	Limit                  int    `form:"limit,default=10"       validate:"min=1,max=100"`
	SortBy                 string `form:"sortBy"`
	SortOrder              string `form:"sortOrder"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TrabajoResponse struct {
	ID                     uint            `json:"id"`
	Titulo                 string          `json:"titulo"`
	Autor                  string          `json:"autor"`
	Resumen                *string         `json:"resumen"`
	Doc                    string          `json:"doc"`
	DocURL                 string          `json:"docUrl,omitempty"`
	Estado                 string          `json:"estado"`
	LineaDeInvestigacionID uint            `json:"lineaDeInvestigacionId"`
	PeriodoAcademicoID     uint            `json:"periodoAcademicoId"`
	CreatedAt              time.Time       `json:"createdAt"`
	UpdatedAt              time.Time       `json:"updatedAt"`
	LineaDeInvestigacion   *LineaResumen   `json:"lineaDeInvestigacion,omitempty"`
	PeriodoAcademico       *PeriodoResumen `json:"periodoAcademico,omitempty"`
}

type ActualizarTrabajoResponse struct {
	Trabajo TrabajoResponse `json:"trabajo"`
	Cambios []string        `json:"cambios"`
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	Limit       int   `json:"limit"`
}

// NewPagination derives page metadata; HasNextPage == (page < totalPages).
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
		Limit:       limit,
	}
}

type ListaTrabajosResponse struct {
	Trabajos   []TrabajoResponse `json:"trabajos"`
	Pagination Pagination        `json:"pagination"`
}
