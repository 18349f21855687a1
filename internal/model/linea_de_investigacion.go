package model

import "time"

// LineaDeInvestigacion is a named research topic that works are filed under.
// Only active lines (Estado=true) take part in statistics.
type LineaDeInvestigacion struct {
	ID        uint   `gorm:"primaryKey"`
	Nombre    string `gorm:"uniqueIndex;not null"`
	Estado    bool   `gorm:"not null"`
	UsuarioID uint   `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

func (LineaDeInvestigacion) TableName() string { return "lineas_de_investigacion" }
