package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CORS("http://localhost:3000, https://adboard.example"))
	router.GET("/ads", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("origem permitida recebe headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ads", nil)
		req.Header.Set("Origin", "https://adboard.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://adboard.example", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight responde sem chegar ao handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/ads", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	})

	t.Run("origem desconhecida é recusada", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ads", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitOrigins(" a , ,b"))
	assert.Nil(t, SplitOrigins(""))
}
