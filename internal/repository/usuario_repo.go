package repository

import (
	"context"

	"investigacion/internal/model"

	"gorm.io/gorm"
)

// UsuarioPatch carries the columns of a partial user update. Nil means untouched.
type UsuarioPatch struct {
	Name     *string
	LastName *string
	Email    *string
	Password *string // already hashed
	Cedula   *string
	Role     *string
	Estado   *bool
}

// Vacio reports whether the patch changes nothing.
func (p UsuarioPatch) Vacio() bool { return len(p.columnas()) == 0 }

func (p UsuarioPatch) columnas() map[string]any {
	cols := map[string]any{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.LastName != nil {
		cols["last_name"] = *p.LastName
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.Password != nil {
		cols["password"] = *p.Password
	}
	if p.Cedula != nil {
		cols["cedula"] = *p.Cedula
	}
	if p.Role != nil {
		cols["role"] = *p.Role
	}
	if p.Estado != nil {
		cols["estado"] = *p.Estado
	}
	return cols
}

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByID(ctx context.Context, id uint) (*model.Usuario, error)
	// FindByEmail matches case-insensitively; emails are stored lowercased.
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)
	ExistsEmail(ctx context.Context, email string, exceptID uint) (bool, error)
	ExistsCedula(ctx context.Context, cedula string, exceptID uint) (bool, error)
	List(ctx context.Context) ([]model.Usuario, error)
	Update(ctx context.Context, id uint, p UsuarioPatch) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uint) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *usuarioRepo) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&u).Error
	return &u, err
}

func (r *usuarioRepo) ExistsEmail(ctx context.Context, email string, exceptID uint) (bool, error) {
	return existe(r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("LOWER(email) = LOWER(?) AND id <> ?", email, exceptID))
}

func (r *usuarioRepo) ExistsCedula(ctx context.Context, cedula string, exceptID uint) (bool, error) {
	return existe(r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("cedula = ? AND id <> ?", cedula, exceptID))
}

func (r *usuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	var users []model.Usuario
	err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

func (r *usuarioRepo) Update(ctx context.Context, id uint, p UsuarioPatch) error {
	return actualizar(r.db.WithContext(ctx).Model(&model.Usuario{}), id, p.columnas())
}

// ── shared helpers ────────────────────────────────────────────────────────────

// existe runs a COUNT over q and reports whether any row matched.
func existe(q *gorm.DB) (bool, error) {
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// actualizar applies cols to the row with the given id. A missing row is
// reported as gorm.ErrRecordNotFound.
func actualizar(q *gorm.DB, id uint, cols map[string]any) error {
	if len(cols) == 0 {
		return nil
	}
	res := q.Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
