package repository

import (
	"context"

	"investigacion/internal/model"

	"gorm.io/gorm"
)

// LineaPatch carries a partial research-line update.
type LineaPatch struct {
	Nombre *string
	Estado *bool
}

func (p LineaPatch) columnas() map[string]any {
	cols := map[string]any{}
	if p.Nombre != nil {
		cols["nombre"] = *p.Nombre
	}
	if p.Estado != nil {
		cols["estado"] = *p.Estado
	}
	return cols
}

type LineaRepository interface {
	Create(ctx context.Context, l *model.LineaDeInvestigacion) error
	FindByID(ctx context.Context, id uint) (*model.LineaDeInvestigacion, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.LineaDeInvestigacion, error)
	ExistsNombre(ctx context.Context, nombre string, exceptID uint) (bool, error)
	List(ctx context.Context) ([]model.LineaDeInvestigacion, error)
	Update(ctx context.Context, id uint, p LineaPatch) error
}

type lineaRepo struct{ db *gorm.DB }

func NewLineaRepository(db *gorm.DB) LineaRepository { return &lineaRepo{db: db} }

func (r *lineaRepo) Create(ctx context.Context, l *model.LineaDeInvestigacion) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *lineaRepo) FindByID(ctx context.Context, id uint) (*model.LineaDeInvestigacion, error) {
	var l model.LineaDeInvestigacion
	err := r.db.WithContext(ctx).First(&l, id).Error
	return &l, err
}

func (r *lineaRepo) FindByIDs(ctx context.Context, ids []uint) ([]model.LineaDeInvestigacion, error) {
	var list []model.LineaDeInvestigacion
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *lineaRepo) ExistsNombre(ctx context.Context, nombre string, exceptID uint) (bool, error) {
	return existe(r.db.WithContext(ctx).Model(&model.LineaDeInvestigacion{}).
		Where("lower(nombre) = lower(?) AND id <> ?", nombre, exceptID))
}

func (r *lineaRepo) List(ctx context.Context) ([]model.LineaDeInvestigacion, error) {
	var list []model.LineaDeInvestigacion
	err := r.db.WithContext(ctx).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *lineaRepo) Update(ctx context.Context, id uint, p LineaPatch) error {
	return actualizar(r.db.WithContext(ctx).Model(&model.LineaDeInvestigacion{}), id, p.columnas())
}
