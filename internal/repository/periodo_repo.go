package repository

import (
	"context"
	"time"

	"investigacion/internal/model"

	"gorm.io/gorm"
)

// PeriodoConConteo is a period row plus the number of works filed under it.
type PeriodoConConteo struct {
	ID        uint
	Periodo   string
	CreatedAt time.Time
	UpdatedAt time.Time
	Trabajos  int64
}

type PeriodoRepository interface {
	Create(ctx context.Context, p *model.PeriodoAcademico) error
	FindByID(ctx context.Context, id uint) (*model.PeriodoAcademico, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.PeriodoAcademico, error)
	ExistsPeriodo(ctx context.Context, periodo string, exceptID uint) (bool, error)
	Update(ctx context.Context, id uint, periodo string) error
	// ListConConteo orders by label, newest first.
	ListConConteo(ctx context.Context) ([]PeriodoConConteo, error)
}

type periodoRepo struct{ db *gorm.DB }

func NewPeriodoRepository(db *gorm.DB) PeriodoRepository { return &periodoRepo{db: db} }

func (r *periodoRepo) Create(ctx context.Context, p *model.PeriodoAcademico) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *periodoRepo) FindByID(ctx context.Context, id uint) (*model.PeriodoAcademico, error) {
	var p model.PeriodoAcademico
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *periodoRepo) FindByIDs(ctx context.Context, ids []uint) ([]model.PeriodoAcademico, error) {
	var list []model.PeriodoAcademico
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *periodoRepo) ExistsPeriodo(ctx context.Context, periodo string, exceptID uint) (bool, error) {
	return existe(r.db.WithContext(ctx).Model(&model.PeriodoAcademico{}).
		Where("periodo = ? AND id <> ?", periodo, exceptID))
}

func (r *periodoRepo) Update(ctx context.Context, id uint, periodo string) error {
	return actualizar(r.db.WithContext(ctx).Model(&model.PeriodoAcademico{}), id,
		map[string]any{"periodo": periodo})
}

func (r *periodoRepo) ListConConteo(ctx context.Context) ([]PeriodoConConteo, error) {
	var rows []PeriodoConConteo
	err := r.db.WithContext(ctx).
		Table("periodos_academicos AS p").
		Select("p.id, p.periodo, p.created_at, p.updated_at, COUNT(t.id) AS trabajos").
		Joins("LEFT JOIN trabajos t ON t.periodo_academico_id = p.id").
		Group("p.id").
		Order("p.periodo DESC").
		Scan(&rows).Error
	return rows, err
}
