package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estadistica is a derived row: one per active line, rebuilt on every
// recompute. Porcentaje is the line's share of all counted works.
type Estadistica struct {
	ID                     uint            `gorm:"primaryKey"`
	LineaDeInvestigacionID uint            `gorm:"uniqueIndex;not null"`
	CantidadTrabajos       int             `gorm:"not null"`
	Porcentaje             decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	CreatedAt              time.Time

	LineaDeInvestigacion *LineaDeInvestigacion `gorm:"foreignKey:LineaDeInvestigacionID"`
}

func (Estadistica) TableName() string { return "estadisticas" }
