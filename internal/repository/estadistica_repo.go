package repository

import (
	"context"

	"investigacion/internal/model"

	"gorm.io/gorm"
)

type EstadisticaRepository interface {
	// ConteoLineasActivas returns every active line with its work count,
	// zero-count lines included.
	ConteoLineasActivas(ctx context.Context) ([]ConteoLinea, error)
	// Reemplazar deletes all rows and inserts rows in one transaction.
	Reemplazar(ctx context.Context, rows []model.Estadistica) error
	// List preloads the line and orders by percentage, highest first.
	List(ctx context.Context) ([]model.Estadistica, error)
}

type estadisticaRepo struct{ db *gorm.DB }

func NewEstadisticaRepository(db *gorm.DB) EstadisticaRepository {
	return &estadisticaRepo{db: db}
}

func (r *estadisticaRepo) ConteoLineasActivas(ctx context.Context) ([]ConteoLinea, error) {
	var rows []ConteoLinea
	err := r.db.WithContext(ctx).
		Table("lineas_de_investigacion AS l").
		Select("l.id AS linea_de_investigacion_id, COUNT(t.id) AS cantidad").
		Joins("LEFT JOIN trabajos t ON t.linea_de_investigacion_id = l.id").
		Where("l.estado = ?", true).
		Group("l.id").
		Order("l.id").
		Scan(&rows).Error
	return rows, err
}

func (r *estadisticaRepo) Reemplazar(ctx context.Context, rows []model.Estadistica) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Estadistica{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func (r *estadisticaRepo) List(ctx context.Context) ([]model.Estadistica, error) {
	var list []model.Estadistica
	err := r.db.WithContext(ctx).
		Preload("LineaDeInvestigacion").
		Order("porcentaje DESC, id ASC").
		Find(&list).Error
	return list, err
}
