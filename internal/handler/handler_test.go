package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"investigacion/internal/apierror"
	"investigacion/internal/dto"
	"investigacion/internal/middleware"
	"investigacion/internal/model"
	"investigacion/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

// ── Stub services ─────────────────────────────────────────────────────────────

type stubAuth struct {
	service.AuthService
	login func(dto.LoginRequest) (*dto.SesionResponse, error)
}

func (s *stubAuth) Login(_ context.Context, req dto.LoginRequest, _ string) (*dto.SesionResponse, error) {
	return s.login(req)
}

type stubTrabajos struct {
	service.TrabajoService
	creado *dto.CrearTrabajoRequest
	actor  *model.Usuario
	err    error
}

func (s *stubTrabajos) Crear(_ context.Context, actor *model.Usuario, req dto.CrearTrabajoRequest, _ string) (*dto.TrabajoResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.creado, s.actor = &req, actor
	return &dto.TrabajoResponse{ID: 7, Titulo: req.Titulo, Doc: "abc.pdf"}, nil
}

func (s *stubTrabajos) ObtenerPorID(_ context.Context, id uint) (*dto.TrabajoResponse, error) {
	if id != 7 {
		return nil, apierror.NoEncontrado("Trabajo no encontrado")
	}
	return &dto.TrabajoResponse{ID: 7}, nil
}

type stubBusqueda struct{ ultima dto.BusquedaQuery }

func (s *stubBusqueda) Buscar(_ context.Context, q dto.BusquedaQuery) (*dto.BusquedaResponse, error) {
	s.ultima = q
	if q.Termino() == "" && q.Titulo == "" {
		return nil, apierror.Validacion("Se requiere al menos un parámetro de búsqueda")
	}
	return &dto.BusquedaResponse{Pagination: dto.NewPagination(q.Page, q.Limit, 3)}, nil
}

type stubReportes struct{ res *service.ReporteResultado }

func (s *stubReportes) Generar(context.Context, *model.Usuario, dto.ReporteRequest, string) (*service.ReporteResultado, error) {
	return s.res, nil
}

func withUsuario(u *model.Usuario) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UsuarioKey, u)
		c.Next()
	}
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// ── Auth ──────────────────────────────────────────────────────────────────────

func TestLogin_ValidationAndErrors(t *testing.T) {
	svc := &stubAuth{login: func(dto.LoginRequest) (*dto.SesionResponse, error) {
		return nil, apierror.Auth("Credenciales inválidas")
	}}
	r := gin.New()
	r.POST("/auth/login", NewAuthHandler(svc).Login)

	w := doJSON(r, http.MethodPost, "/auth/login", map[string]string{"email": "no-es-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["fields"], "Email")

	w = doJSON(r, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "a@b.co", Password: "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, "error", body["type"])
	assert.Equal(t, "Credenciales inválidas", body["message"])
}

func TestLogin_Success(t *testing.T) {
	svc := &stubAuth{login: func(req dto.LoginRequest) (*dto.SesionResponse, error) {
		return &dto.SesionResponse{Token: "tok", Usuario: dto.UsuarioResponse{Email: req.Email}}, nil
	}}
	r := gin.New()
	r.POST("/auth/login", NewAuthHandler(svc).Login)

	w := doJSON(r, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "a@b.co", Password: "x"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "success", body["type"])
	assert.Equal(t, "tok", body["data"].(map[string]any)["token"])
}

// ── Trabajos ──────────────────────────────────────────────────────────────────

func TestCrearTrabajo_PassesActorAndReturns201(t *testing.T) {
	svc := &stubTrabajos{}
	actor := &model.Usuario{ID: 1, Role: model.RolEditor}
	r := gin.New()
	r.POST("/trabajos/create", withUsuario(actor), NewTrabajosHandler(svc, nil).Crear)

	w := doJSON(r, http.MethodPost, "/trabajos/create", dto.CrearTrabajoRequest{
		Titulo: "Redes neuronales", Autor: "Ana", LineaDeInvestigacionID: 1, PeriodoAcademicoID: 2, PDFBase64: "JVBERi0=",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Same(t, actor, svc.actor)
	assert.Equal(t, "abc.pdf", decode(t, w)["data"].(map[string]any)["doc"])
}

func TestCrearTrabajo_ConflictMapsTo409(t *testing.T) {
	svc := &stubTrabajos{err: apierror.Conflicto("Ya existe un trabajo con ese título en la línea y periodo seleccionados")}
	r := gin.New()
	r.POST("/trabajos/create", NewTrabajosHandler(svc, nil).Crear)

	w := doJSON(r, http.MethodPost, "/trabajos/create", dto.CrearTrabajoRequest{
		Titulo: "Redes neuronales", Autor: "Ana", LineaDeInvestigacionID: 1, PeriodoAcademicoID: 2, PDFBase64: "JVBERi0=",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestObtenerPorID(t *testing.T) {
	r := gin.New()
	r.GET("/trabajos/get-by-id/:id", NewTrabajosHandler(&stubTrabajos{}, nil).ObtenerPorID)

	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/trabajos/get-by-id/7", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodGet, "/trabajos/get-by-id/8", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodGet, "/trabajos/get-by-id/abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodGet, "/trabajos/get-by-id/0", nil).Code)
}

func TestInternalErrorIsNotLeaked(t *testing.T) {
	svc := &stubTrabajos{err: apierror.Interno("Error interno del servidor", assert.AnError)}
	r := gin.New()
	r.POST("/trabajos/create", NewTrabajosHandler(svc, nil).Crear)

	w := doJSON(r, http.MethodPost, "/trabajos/create", dto.CrearTrabajoRequest{
		Titulo: "Redes neuronales", Autor: "Ana", LineaDeInvestigacionID: 1, PeriodoAcademicoID: 2, PDFBase64: "JVBERi0=",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

// ── Búsqueda ──────────────────────────────────────────────────────────────────

func TestBuscar_MessageAndDefaults(t *testing.T) {
	b := &stubBusqueda{}
	r := gin.New()
	r.GET("/search/main", NewTrabajosHandler(nil, b).Buscar)

	w := doJSON(r, http.MethodGet, "/search/main?query=redes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Se encontraron 3 trabajo(s) que coinciden con la búsqueda", decode(t, w)["message"])
	assert.Equal(t, 1, b.ultima.Page)
	assert.Equal(t, 10, b.ultima.Limit)
}

func TestBuscar_Rejections(t *testing.T) {
	r := gin.New()
	r.GET("/search/main", NewTrabajosHandler(nil, &stubBusqueda{}).Buscar)

	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodGet, "/search/main", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodGet, "/search/main?q=x&limit=500", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodGet, "/search/main?q=x&estado=OTRO", nil).Code)
}

// ── Reportes ──────────────────────────────────────────────────────────────────

func TestReporte_WarningForUnknownFormat(t *testing.T) {
	svc := &stubReportes{res: &service.ReporteResultado{
		Data:        &dto.ReporteData{},
		Advertencia: "Formato no soportado, se devuelven los datos sin procesar",
	}}
	r := gin.New()
	r.POST("/reportes/generar", NewReportesHandler(svc).Generar)

	w := doJSON(r, http.MethodPost, "/reportes/generar", dto.ReporteRequest{
		LineasInvestigacion: []uint{1}, PeriodosAcademicos: []uint{2},
		Configuracion: dto.ReporteConfiguracion{Formato: "docx"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "warning", decode(t, w)["type"])
}

func TestReporte_RequiresSelections(t *testing.T) {
	r := gin.New()
	r.POST("/reportes/generar", NewReportesHandler(&stubReportes{}).Generar)

	w := doJSON(r, http.MethodPost, "/reportes/generar", dto.ReporteRequest{PeriodosAcademicos: []uint{2}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
