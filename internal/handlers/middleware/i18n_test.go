package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafabene/adboard-backend/internal/handlers/dto"
	"github.com/rafabene/adboard-backend/internal/infrastructure/i18n"
)

func newI18nMiddleware(t *testing.T) *I18nMiddleware {
	t.Helper()
	service, err := i18n.NewEmbeddedService("en")
	require.NoError(t, err)
	return NewI18nMiddleware(service)
}

func detectedLanguage(m *I18nMiddleware, target, acceptLanguage string) string {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	if acceptLanguage != "" {
		c.Request.Header.Set("Accept-Language", acceptLanguage)
	}
	m.DetectLanguage()(c)
	return c.GetString(LanguageContextKey)
}

func TestI18nMiddleware_DetectLanguage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newI18nMiddleware(t)

	tests := []struct {
		name           string
		target         string
		acceptLanguage string
		expected       string
	}{
		{"query lang explícito", "/ads?lang=pt-BR", "", "pt-BR"},
		{"query lang vence o header", "/ads?lang=ru", "pt-BR", "ru"},
		{"query lang só com a língua base", "/ads?lang=pt", "", "pt-BR"},
		{"query lang desconhecido cai no header", "/ads?lang=fr", "ru", "ru"},
		{"header do navegador", "/ads", "ru-RU,ru;q=0.9,en;q=0.8", "ru"},
		{"sem preferência usa o padrão", "/ads", "", "en"},
		{"nada suportado usa o padrão", "/ads", "fr,de;q=0.9", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detectedLanguage(m, tt.target, tt.acceptLanguage))
		})
	}
}

func TestI18nMiddleware_parseAcceptLanguage(t *testing.T) {
	m := newI18nMiddleware(t)

	tests := map[string]struct {
		header   string
		expected string
	}{
		"vazio":                         {"", ""},
		"primeiro suportado":            {"fr,pt-BR;q=0.9,en;q=0.8", "pt-BR"},
		"região desconhecida":           {"en-GB", "en"},
		"maiúsculas":                    {"PT-br", "pt-BR"},
		"maior peso vence a ordem":      {"en;q=0.5,ru;q=0.9", "ru"},
		"empate mantém a ordem":         {"ru;q=0.8,pt-BR;q=0.8", "ru"},
		"q=0 é descartado":              {"ru;q=0,fr", ""},
		"curinga é ignorado":            {"*", ""},
		"peso inválido é ignorado":      {"ru;q=abc,pt-BR;q=0.1", "pt-BR"},
		"espaços em volta das entradas": {" fr , pt ; q=0.7 ", "pt-BR"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.parseAcceptLanguage(tt.header))
		})
	}
}

func TestI18nMiddleware_ProblemDetailsFollowLanguage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newI18nMiddleware(t)

	router := gin.New()
	router.Use(m.DetectLanguage())
	router.GET("/ads/:id", func(c *gin.Context) {
		dto.Problem(c, dto.BadRequestErrorResponseI18n(c, "error.invalid_id", map[string]any{"Value": c.Param("id")}))
	})
	router.GET("/ads/:id/image", func(c *gin.Context) {
		dto.Problem(c, dto.NotFoundErrorResponseI18n(c, "error.advert_not_found"))
	})

	tests := []struct {
		name           string
		target         string
		acceptLanguage string
		status         int
		title          string
		detail         string
	}{
		{"id inválido em português", "/ads/abc?lang=pt-BR", "", http.StatusBadRequest, "Requisição Inválida", "O identificador abc não é um número válido"},
		{"id inválido em russo", "/ads/abc", "ru", http.StatusBadRequest, "Некорректный запрос", "Идентификатор abc не является числом"},
		{"anúncio ausente no padrão", "/ads/7/image", "fr", http.StatusNotFound, "Resource Not Found", "Advert not found"},
		{"anúncio ausente em português", "/ads/7/image", "pt", http.StatusNotFound, "Recurso Não Encontrado", "Anúncio não encontrado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tt.acceptLanguage)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tt.status, w.Code)
			assert.Equal(t, problems.ProblemMediaType, w.Header().Get("Content-Type"))

			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, tt.title, body.Title)
			assert.Equal(t, tt.detail, body.Detail)
		})
	}
}
