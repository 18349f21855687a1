package repository

import (
	"context"
	"strings"

	"investigacion/internal/model"

	"gorm.io/gorm"
)

// TrabajoPatch carries a partial work update. Nil means untouched.
type TrabajoPatch struct {
	Titulo                 *string
	Autor                  *string
	Resumen                *string
	Doc                    *string
	Estado                 *string
	LineaDeInvestigacionID *uint
	PeriodoAcademicoID     *uint
}

func (p TrabajoPatch) columnas() map[string]any {
	cols := map[string]any{}
	if p.Titulo != nil {
		cols["titulo"] = *p.Titulo
	}
	if p.Autor != nil {
		cols["autor"] = *p.Autor
	}
	if p.Resumen != nil {
		cols["resumen"] = *p.Resumen
	}
	if p.Doc != nil {
		cols["doc"] = *p.Doc
	}
	if p.Estado != nil {
		cols["estado"] = *p.Estado
	}
	if p.LineaDeInvestigacionID != nil {
		cols["linea_de_investigacion_id"] = *p.LineaDeInvestigacionID
	}
	if p.PeriodoAcademicoID != nil {
		cols["periodo_academico_id"] = *p.PeriodoAcademicoID
	}
	return cols
}

// TrabajoFiltro is the predicate and page of a works query. Every non-zero
// field adds one AND condition; text fields match by case-insensitive substring.
type TrabajoFiltro struct {
	Estado    string
	LineaID   uint
	PeriodoID uint

	Titulo  string
	Autor   string
	Periodo string // period label
	Linea   string // research-line name

	// Termino must appear in titulo or autor, and also in the line name or
	// period label when TerminoAmplio is set.
	Termino       string
	TerminoAmplio bool

	OrdenarPor string // key of columnasOrden
	Orden      string // asc | desc
	Page       int
	Limit      int
}

// columnasOrden is the sort allow-list; unknown keys fall back to createdAt.
var columnasOrden = map[string]string{
	"id":        "trabajos.id",
	"titulo":    "trabajos.titulo",
	"autor":     "trabajos.autor",
	"createdAt": "trabajos.created_at",
	"updatedAt": "trabajos.updated_at",
}

// OrdenValido reports whether campo is an accepted sort key.
func OrdenValido(campo string) bool {
	_, ok := columnasOrden[campo]
	return ok
}

// ConteoLinea is the number of works in one research line.
type ConteoLinea struct {
	LineaDeInvestigacionID uint
	Cantidad               int64
}

// ConteoPeriodo is the number of works in one academic period.
type ConteoPeriodo struct {
	PeriodoAcademicoID uint
	Cantidad           int64
}

// ConteoGrupo is the number of works in one (line, period) pair.
type ConteoGrupo struct {
	LineaDeInvestigacionID uint
	PeriodoAcademicoID     uint
	Cantidad               int64
}

type TrabajoRepository interface {
	Create(ctx context.Context, t *model.Trabajo) error
	// FindByID preloads the line and period.
	FindByID(ctx context.Context, id uint) (*model.Trabajo, error)
	ExistsDuplicado(ctx context.Context, titulo string, lineaID, periodoID, exceptID uint) (bool, error)
	Update(ctx context.Context, id uint, p TrabajoPatch) error
	Buscar(ctx context.Context, f TrabajoFiltro) ([]model.Trabajo, int64, error)

	// Report groupings
	ContarPorLinea(ctx context.Context, lineaIDs []uint) ([]ConteoLinea, error)
	ContarPorPeriodo(ctx context.Context, periodoIDs []uint) ([]ConteoPeriodo, error)
	ContarPorLineaYPeriodo(ctx context.Context, lineaIDs, periodoIDs []uint) ([]ConteoGrupo, error)
}

type trabajoRepo struct{ db *gorm.DB }

func NewTrabajoRepository(db *gorm.DB) TrabajoRepository { return &trabajoRepo{db: db} }

func (r *trabajoRepo) Create(ctx context.Context, t *model.Trabajo) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *trabajoRepo) FindByID(ctx context.Context, id uint) (*model.Trabajo, error) {
	var t model.Trabajo
	err := r.db.WithContext(ctx).
		Preload("LineaDeInvestigacion").
		Preload("PeriodoAcademico").
		First(&t, id).Error
	return &t, err
}

func (r *trabajoRepo) ExistsDuplicado(ctx context.Context, titulo string, lineaID, periodoID, exceptID uint) (bool, error) {
	return existe(r.db.WithContext(ctx).Model(&model.Trabajo{}).
		Where("titulo = ? AND linea_de_investigacion_id = ? AND periodo_academico_id = ? AND id <> ?",
			titulo, lineaID, periodoID, exceptID))
}

func (r *trabajoRepo) Update(ctx context.Context, id uint, p TrabajoPatch) error {
	return actualizar(r.db.WithContext(ctx).Model(&model.Trabajo{}), id, p.columnas())
}

func (r *trabajoRepo) Buscar(ctx context.Context, f TrabajoFiltro) ([]model.Trabajo, int64, error) {
	var trabajos []model.Trabajo
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Trabajo{}).
		Joins("JOIN lineas_de_investigacion l ON l.id = trabajos.linea_de_investigacion_id").
		Joins("JOIN periodos_academicos p ON p.id = trabajos.periodo_academico_id")
	if where, args := construirCondiciones(f); where != "" {
		q = q.Where(where, args...)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.Limit
	err := q.Select("trabajos.*").
		Preload("LineaDeInvestigacion").
		Preload("PeriodoAcademico").
		Order(clausulaOrden(f.OrdenarPor, f.Orden)).
		Limit(f.Limit).Offset(offset).
		Find(&trabajos).Error
	return trabajos, total, err
}

func (r *trabajoRepo) ContarPorLinea(ctx context.Context, lineaIDs []uint) ([]ConteoLinea, error) {
	var rows []ConteoLinea
	err := r.db.WithContext(ctx).Model(&model.Trabajo{}).
		Select("linea_de_investigacion_id, COUNT(*) AS cantidad").
		Where("linea_de_investigacion_id IN ?", lineaIDs).
		Group("linea_de_investigacion_id").
		Order("linea_de_investigacion_id").
		Scan(&rows).Error
	return rows, err
}

func (r *trabajoRepo) ContarPorPeriodo(ctx context.Context, periodoIDs []uint) ([]ConteoPeriodo, error) {
	var rows []ConteoPeriodo
	err := r.db.WithContext(ctx).Model(&model.Trabajo{}).
		Select("periodo_academico_id, COUNT(*) AS cantidad").
		Where("periodo_academico_id IN ?", periodoIDs).
		Group("periodo_academico_id").
		Order("periodo_academico_id").
		Scan(&rows).Error
	return rows, err
}

func (r *trabajoRepo) ContarPorLineaYPeriodo(ctx context.Context, lineaIDs, periodoIDs []uint) ([]ConteoGrupo, error) {
	var rows []ConteoGrupo
	err := r.db.WithContext(ctx).Model(&model.Trabajo{}).
		Select("linea_de_investigacion_id, periodo_academico_id, COUNT(*) AS cantidad").
		Where("linea_de_investigacion_id IN ? AND periodo_academico_id IN ?", lineaIDs, periodoIDs).
		Group("linea_de_investigacion_id, periodo_academico_id").
		Order("linea_de_investigacion_id, periodo_academico_id").
		Scan(&rows).Error
	return rows, err
}

// ── predicate construction ────────────────────────────────────────────────────

// construirCondiciones renders f as one SQL condition over trabajos joined
// with l (lineas_de_investigacion) and p (periodos_academicos).
func construirCondiciones(f TrabajoFiltro) (string, []any) {
	var conds []string
	var args []any

	if f.Estado != "" {
		conds = append(conds, "trabajos.estado = ?")
		args = append(args, f.Estado)
	}
	if f.LineaID != 0 {
		conds = append(conds, "trabajos.linea_de_investigacion_id = ?")
		args = append(args, f.LineaID)
	}
	if f.PeriodoID != 0 {
		conds = append(conds, "trabajos.periodo_academico_id = ?")
		args = append(args, f.PeriodoID)
	}

	contiene := func(col, val string) {
		if val == "" {
			return
		}
		conds = append(conds, col+" ILIKE ?")
		args = append(args, patronLike(val))
	}
	contiene("trabajos.titulo", f.Titulo)
	contiene("trabajos.autor", f.Autor)
	contiene("p.periodo", f.Periodo)
	contiene("l.nombre", f.Linea)

	if f.Termino != "" {
		cols := []string{"trabajos.titulo", "trabajos.autor"}
		if f.TerminoAmplio {
			cols = append(cols, "l.nombre", "p.periodo")
		}
		alt := make([]string, len(cols))
		pat := patronLike(f.Termino)
		for i, c := range cols {
			alt[i] = c + " ILIKE ?"
			args = append(args, pat)
		}
		conds = append(conds, "("+strings.Join(alt, " OR ")+")")
	}

	return strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// patronLike wraps s as a substring pattern with LIKE wildcards escaped.
func patronLike(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func clausulaOrden(campo, orden string) string {
	col, ok := columnasOrden[campo]
	if !ok {
		col = columnasOrden["createdAt"]
	}
	if strings.EqualFold(orden, "asc") {
		return col + " ASC"
	}
	return col + " DESC"
}
