package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/adboard-backend/internal/handlers/dto"
)

// BodyLimit limita o tamanho do corpo; leituras além do limite falham com *http.MaxBytesError
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// BaseURL registra a base das URIs de tipo de problema RFC 7807
func BaseURL(baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dto.BaseURLContextKey, baseURL)
		c.Next()
	}
}
