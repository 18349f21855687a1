package dto

import "time"

type CrearPeriodoRequest struct {
	Periodo string `json:"periodo" validate:"required,min=1,max=50"`
}

type ActualizarPeriodoRequest struct {
	ID      uint   `json:"id"      validate:"required,gt=0"`
	Periodo string `json:"periodo" validate:"required,min=1,max=50"`
}

type PeriodoResponse struct {
	ID        uint      `json:"id"`
	Periodo   string    `json:"periodo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// Count is only filled by the listing endpoint
	Count *PeriodoCount `json:"_count,omitempty"`
}

type PeriodoCount struct {
	Trabajos int64 `json:"Trabajos"`
}

type PeriodoEnvelope struct {
	PeriodoAcademico PeriodoResponse `json:"periodoAcademico"`
}

type ListaPeriodosResponse struct {
	Periodos []PeriodoResponse `json:"periodos"`
	Total    int               `json:"total"`
}

type PeriodoResumen struct {
	ID      uint   `json:"id"`
	Periodo string `json:"periodo"`
}
