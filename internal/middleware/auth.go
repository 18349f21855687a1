package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"investigacion/internal/apierror"
	"investigacion/internal/model"

	"github.com/gin-gonic/gin"
)

const UsuarioKey = "usuario"

// TokenVerifier resolves a session token to its user.
type TokenVerifier interface {
	Verificar(ctx context.Context, token string) (*model.Usuario, error)
}

// TokenAuth accepts the token as a Bearer header, a `token` query parameter or
// a `token` field of the JSON body, in that order.
func TokenAuth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extraerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token no proporcionado"))
			return
		}

		usuario, err := tokens.Verificar(c.Request.Context(), raw)
		if err != nil {
			e := apierror.As(err)
			c.AbortWithStatusJSON(e.Kind.Status(), apierror.New(e.Message))
			return
		}

		c.Set(UsuarioKey, usuario)
		c.Next()
	}
}

func extraerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if t := c.Query("token"); t != "" {
		return t
	}
	if c.Request.Body == nil || !strings.HasPrefix(c.ContentType(), "application/json") {
		return ""
	}

	// The body is restored so handlers can bind it again.
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	var envelope struct {
		Token string `json:"token"`
	}
	if json.Unmarshal(body, &envelope) != nil {
		return ""
	}
	return envelope.Token
}

// RequireRole rejects requests whose user role is not in the allowed list.
// Must run after TokenAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		usuario := UsuarioActual(c)
		if usuario == nil || !allowed[usuario.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("No tienes permisos para realizar esta acción"))
			return
		}
		c.Next()
	}
}

// UsuarioActual returns the authenticated user, or nil on public routes.
func UsuarioActual(c *gin.Context) *model.Usuario {
	v, ok := c.Get(UsuarioKey)
	if !ok {
		return nil
	}
	usuario, _ := v.(*model.Usuario)
	return usuario
}
