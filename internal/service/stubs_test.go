package service

import (
	"context"
	"strings"
	"sync"

	"investigacion/internal/model"
	"investigacion/internal/repository"

	"gorm.io/gorm"
)

// ── In-memory repository stubs ────────────────────────────────────────────────

type stubUsuarioRepo struct {
	users  map[uint]*model.Usuario
	nextID uint
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{users: map[uint]*model.Usuario{}, nextID: 1}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	u.ID = r.nextID
	r.nextID++
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uint) (*model.Usuario, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) ExistsEmail(_ context.Context, email string, exceptID uint) (bool, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) && u.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUsuarioRepo) ExistsCedula(_ context.Context, cedula string, exceptID uint) (bool, error) {
	for _, u := range r.users {
		if u.Cedula == cedula && u.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(r.users))
	for id := uint(1); id < r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, id uint, p repository.UsuarioPatch) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Cedula != nil {
		u.Cedula = *p.Cedula
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Estado != nil {
		u.Estado = *p.Estado
	}
	return nil
}

type stubLineaRepo struct {
	lineas map[uint]*model.LineaDeInvestigacion
	nextID uint
}

func newStubLineaRepo(nombres ...string) *stubLineaRepo {
	r := &stubLineaRepo{lineas: map[uint]*model.LineaDeInvestigacion{}, nextID: 1}
	for _, n := range nombres {
		_ = r.Create(context.Background(), &model.LineaDeInvestigacion{Nombre: n, Estado: true})
	}
	return r
}

func (r *stubLineaRepo) Create(_ context.Context, l *model.LineaDeInvestigacion) error {
	l.ID = r.nextID
	r.nextID++
	cp := *l
	r.lineas[l.ID] = &cp
	return nil
}

func (r *stubLineaRepo) FindByID(_ context.Context, id uint) (*model.LineaDeInvestigacion, error) {
	l, ok := r.lineas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *stubLineaRepo) FindByIDs(_ context.Context, ids []uint) ([]model.LineaDeInvestigacion, error) {
	var out []model.LineaDeInvestigacion
	for _, id := range ids {
		if l, ok := r.lineas[id]; ok {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *stubLineaRepo) ExistsNombre(_ context.Context, nombre string, exceptID uint) (bool, error) {
	for _, l := range r.lineas {
		if strings.EqualFold(l.Nombre, nombre) && l.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubLineaRepo) List(_ context.Context) ([]model.LineaDeInvestigacion, error) {
	var out []model.LineaDeInvestigacion
	for id := uint(1); id < r.nextID; id++ {
		if l, ok := r.lineas[id]; ok {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *stubLineaRepo) Update(_ context.Context, id uint, p repository.LineaPatch) error {
	l, ok := r.lineas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if p.Nombre != nil {
		l.Nombre = *p.Nombre
	}
	if p.Estado != nil {
		l.Estado = *p.Estado
	}
	return nil
}

type stubPeriodoRepo struct {
	periodos map[uint]*model.PeriodoAcademico
	nextID   uint
}

func newStubPeriodoRepo(labels ...string) *stubPeriodoRepo {
	r := &stubPeriodoRepo{periodos: map[uint]*model.PeriodoAcademico{}, nextID: 1}
	for _, p := range labels {
		_ = r.Create(context.Background(), &model.PeriodoAcademico{Periodo: p})
	}
	return r
}

func (r *stubPeriodoRepo) Create(_ context.Context, p *model.PeriodoAcademico) error {
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.periodos[p.ID] = &cp
	return nil
}

func (r *stubPeriodoRepo) FindByID(_ context.Context, id uint) (*model.PeriodoAcademico, error) {
	p, ok := r.periodos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPeriodoRepo) FindByIDs(_ context.Context, ids []uint) ([]model.PeriodoAcademico, error) {
	var out []model.PeriodoAcademico
	for _, id := range ids {
		if p, ok := r.periodos[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPeriodoRepo) ExistsPeriodo(_ context.Context, periodo string, exceptID uint) (bool, error) {
	for _, p := range r.periodos {
		if p.Periodo == periodo && p.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubPeriodoRepo) Update(_ context.Context, id uint, periodo string) error {
	p, ok := r.periodos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Periodo = periodo
	return nil
}

func (r *stubPeriodoRepo) ListConConteo(_ context.Context) ([]repository.PeriodoConConteo, error) {
	var out []repository.PeriodoConConteo
	for id := r.nextID - 1; id >= 1; id-- {
		if p, ok := r.periodos[id]; ok {
			out = append(out, repository.PeriodoConConteo{ID: p.ID, Periodo: p.Periodo})
		}
	}
	return out, nil
}

// stubTrabajoRepo keeps rows in memory. Buscar records the last filter and
// returns buscarResult; the Contar* methods return their preset rows.
type stubTrabajoRepo struct {
	trabajos map[uint]*model.Trabajo
	nextID   uint
	lineas   *stubLineaRepo
	periodos *stubPeriodoRepo

	ultimoFiltro repository.TrabajoFiltro
	buscarResult []model.Trabajo
	buscarTotal  int64

	porLinea   []repository.ConteoLinea
	porPeriodo []repository.ConteoPeriodo
	cruce      []repository.ConteoGrupo
}

func newStubTrabajoRepo(lineas *stubLineaRepo, periodos *stubPeriodoRepo) *stubTrabajoRepo {
	return &stubTrabajoRepo{trabajos: map[uint]*model.Trabajo{}, nextID: 1, lineas: lineas, periodos: periodos}
}

func (r *stubTrabajoRepo) Create(_ context.Context, t *model.Trabajo) error {
	t.ID = r.nextID
	r.nextID++
	cp := *t
	r.trabajos[t.ID] = &cp
	return nil
}

func (r *stubTrabajoRepo) FindByID(ctx context.Context, id uint) (*model.Trabajo, error) {
	t, ok := r.trabajos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	if r.lineas != nil {
		cp.LineaDeInvestigacion, _ = r.lineas.FindByID(ctx, t.LineaDeInvestigacionID)
	}
	if r.periodos != nil {
		cp.PeriodoAcademico, _ = r.periodos.FindByID(ctx, t.PeriodoAcademicoID)
	}
	return &cp, nil
}

func (r *stubTrabajoRepo) ExistsDuplicado(_ context.Context, titulo string, lineaID, periodoID, exceptID uint) (bool, error) {
	for _, t := range r.trabajos {
		if t.Titulo == titulo && t.LineaDeInvestigacionID == lineaID && t.PeriodoAcademicoID == periodoID && t.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubTrabajoRepo) Update(_ context.Context, id uint, p repository.TrabajoPatch) error {
	t, ok := r.trabajos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if p.Titulo != nil {
		t.Titulo = *p.Titulo
	}
	if p.Autor != nil {
		t.Autor = *p.Autor
	}
	if p.Resumen != nil {
		t.Resumen = p.Resumen
	}
	if p.Doc != nil {
		t.Doc = *p.Doc
	}
	if p.Estado != nil {
		t.Estado = *p.Estado
	}
	if p.LineaDeInvestigacionID != nil {
		t.LineaDeInvestigacionID = *p.LineaDeInvestigacionID
	}
	if p.PeriodoAcademicoID != nil {
		t.PeriodoAcademicoID = *p.PeriodoAcademicoID
	}
	return nil
}

func (r *stubTrabajoRepo) Buscar(_ context.Context, f repository.TrabajoFiltro) ([]model.Trabajo, int64, error) {
	r.ultimoFiltro = f
	return r.buscarResult, r.buscarTotal, nil
}

func (r *stubTrabajoRepo) ContarPorLinea(context.Context, []uint) ([]repository.ConteoLinea, error) {
	return r.porLinea, nil
}

func (r *stubTrabajoRepo) ContarPorPeriodo(context.Context, []uint) ([]repository.ConteoPeriodo, error) {
	return r.porPeriodo, nil
}

func (r *stubTrabajoRepo) ContarPorLineaYPeriodo(context.Context, []uint, []uint) ([]repository.ConteoGrupo, error) {
	return r.cruce, nil
}

type stubEstadisticaRepo struct {
	conteos []repository.ConteoLinea
	rows    []model.Estadistica
	lists   int
}

func (r *stubEstadisticaRepo) ConteoLineasActivas(context.Context) ([]repository.ConteoLinea, error) {
	return r.conteos, nil
}

func (r *stubEstadisticaRepo) Reemplazar(_ context.Context, rows []model.Estadistica) error {
	r.rows = rows
	return nil
}

func (r *stubEstadisticaRepo) List(context.Context) ([]model.Estadistica, error) {
	r.lists++
	return r.rows, nil
}

// spyBitacora records every audit call.
type spyBitacora struct {
	mu       sync.Mutex
	acciones []string
}

func (s *spyBitacora) Registrar(_ context.Context, _ uint, accion, _, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acciones = append(s.acciones, accion)
}

type spySender struct {
	email, link string
	err         error
}

func (s *spySender) EnqueueRecuperacion(_ context.Context, email, link string) error {
	s.email, s.link = email, link
	return s.err
}
