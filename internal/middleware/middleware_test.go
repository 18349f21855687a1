package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"investigacion/internal/apierror"
	"investigacion/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

type fakeVerifier map[string]*model.Usuario

func (f fakeVerifier) Verificar(_ context.Context, token string) (*model.Usuario, error) {
	u, ok := f[token]
	if !ok {
		return nil, apierror.Auth("Token inválido o expirado")
	}
	return u, nil
}

func authEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		c.String(http.StatusOK, UsuarioActual(c).Email+"|"+readBody(c))
	})
	r.POST("/p", handlers...)
	return r
}

func readBody(c *gin.Context) string {
	var b strings.Builder
	buf := make([]byte, 512)
	for {
		n, err := c.Request.Body.Read(buf)
		b.Write(buf[:n])
		if err != nil {
			return b.String()
		}
	}
}

var verifier = fakeVerifier{
	"t-super":  {ID: 1, Email: "super@uni.edu", Role: model.RolSuper},
	"t-editor": {ID: 2, Email: "editor@uni.edu", Role: model.RolEditor},
}

// ── TokenAuth ─────────────────────────────────────────────────────────────────

func TestTokenAuth_Sources(t *testing.T) {
	r := authEngine(TokenAuth(verifier))

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/p", nil)
		req.Header.Set("Authorization", "Bearer t-super")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.HasPrefix(w.Body.String(), "super@uni.edu"))
	})

	t.Run("query param", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/p?token=t-editor", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("json body is restored", func(t *testing.T) {
		body := `{"token":"t-editor","nombre":"IA"}`
		req := httptest.NewRequest(http.MethodPost, "/p", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "editor@uni.edu|"+body, w.Body.String())
	})
}

func TestTokenAuth_Rejects(t *testing.T) {
	r := authEngine(TokenAuth(verifier))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/p", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token no proporcionado")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/p?token=nope", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token inválido o expirado")
}

func TestRequireRole(t *testing.T) {
	r := authEngine(TokenAuth(verifier), RequireRole(model.RolSuper))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/p?token=t-editor", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/p?token=t-super", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

// ── Rate limiting ─────────────────────────────────────────────────────────────

func TestIPLimiter_BurstThenRefill(t *testing.T) {
	l := NewIPLimiter(3)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("1.1.1.1"))
	}
	assert.False(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("2.2.2.2"), "buckets are per IP")

	now = now.Add(20 * time.Second)
	assert.True(t, l.Allow("1.1.1.1"))
}

func TestIPLimiter_PurgesIdleEntries(t *testing.T) {
	l := NewIPLimiter(10)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("1.1.1.1")
	now = now.Add(2 * purgeInterval)
	l.Allow("2.2.2.2")
	assert.Len(t, l.entries, 1)
}

func TestRateLimiterMiddleware_Returns429(t *testing.T) {
	r := gin.New()
	r.GET("/x", RateLimiter(1), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

// ── Misc ──────────────────────────────────────────────────────────────────────

func TestRequestID_PropagatesOrGenerates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
}

func TestRecovery_HidesPanic(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/x", func(*gin.Context) { panic("secret detail") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret detail")
}

func TestErrorHandler_MapsKinds(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/x", func(c *gin.Context) { _ = c.Error(apierror.NoEncontrado("Trabajo no encontrado")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Trabajo no encontrado")
}

func TestBodyLimit_RejectsLargeBodies(t *testing.T) {
	r := gin.New()
	r.POST("/x", BodyLimit(1), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(strings.Repeat("a", 2<<20)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS("http://front"))
	r.OPTIONS("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/x", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://front", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestDescargaDocumento_ServesAttachmentPDF(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.pdf"), []byte("<html><script>alert(1)</script></html>"), 0o644))

	r := gin.New()
	r.Group("/uploads", DescargaDocumento()).Static("/", dir)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/doc.pdf", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}
