package middleware

import (
	"net/http"

	"investigacion/internal/apierror"

	"github.com/gin-gonic/gin"
)

// SecurityHeaders sets the usual hardening headers on every response.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Cross-Origin-Resource-Policy", "cross-origin")
		c.Next()
	}
}

// BodyLimit caps request bodies at mb megabytes. Documents travel base64
// encoded inside JSON, so the limit is generous.
func BodyLimit(mb int) gin.HandlerFunc {
	limit := int64(mb) << 20
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, apierror.New("El cuerpo de la solicitud excede el tamaño permitido"))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// DescargaDocumento forces stored uploads to be served as PDF attachments,
// whatever bytes the file holds. Must run before the static file handler.
func DescargaDocumento() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", "attachment")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Next()
	}
}
