package model

import "time"

// PeriodoAcademico is a labeled term, e.g. "2024-1".
type PeriodoAcademico struct {
	ID        uint   `gorm:"primaryKey"`
	Periodo   string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PeriodoAcademico) TableName() string { return "periodos_academicos" }
