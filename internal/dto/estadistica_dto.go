package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type EstadisticaResponse struct {
	ID                     uint            `json:"id"`
	LineaDeInvestigacionID uint            `json:"lineaDeInvestigacionId"`
	CantidadTrabajos       int             `json:"cantidadTrabajos"`
	Porcentaje             decimal.Decimal `json:"porcentaje"`
	CreatedAt              time.Time       `json:"createdAt"`
	LineaDeInvestigacion   *LineaResumen   `json:"lineaDeInvestigacion,omitempty"`
}

type EstadisticasResponse struct {
	Estadisticas   []EstadisticaResponse `json:"estadisticas"`
	TotalTrabajos  int                   `json:"totalTrabajos"`
	CantidadLineas int                   `json:"cantidadLineas"`
}
