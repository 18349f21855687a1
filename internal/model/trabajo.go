package model

import "time"

const (
	EstadoPendiente = "PENDIENTE"
	EstadoValidado  = "VALIDADO"
	EstadoRechazado = "RECHAZADO"
)

// EstadosTrabajo lists the accepted values of Trabajo.Estado.
var EstadosTrabajo = []string{EstadoPendiente, EstadoValidado, EstadoRechazado}

// Trabajo is a submitted research item (thesis/paper).
// (Titulo, LineaDeInvestigacionID, PeriodoAcademicoID) is unique.
type Trabajo struct {
	ID                     uint   `gorm:"primaryKey"`
	Titulo                 string `gorm:"not null;uniqueIndex:idx_trabajos_titulo_linea_periodo"`
	Autor                  string `gorm:"not null"`
	Resumen                *string
	Doc                    string `gorm:"not null"` // stored file name
	Estado                 string `gorm:"type:varchar(20);not null"`
	LineaDeInvestigacionID uint   `gorm:"not null;uniqueIndex:idx_trabajos_titulo_linea_periodo"`
	PeriodoAcademicoID     uint   `gorm:"not null;uniqueIndex:idx_trabajos_titulo_linea_periodo"`
	CreatedAt              time.Time
	UpdatedAt              time.Time

	LineaDeInvestigacion *LineaDeInvestigacion `gorm:"foreignKey:LineaDeInvestigacionID"`
	PeriodoAcademico     *PeriodoAcademico     `gorm:"foreignKey:PeriodoAcademicoID"`
}

func (Trabajo) TableName() string { return "trabajos" }
