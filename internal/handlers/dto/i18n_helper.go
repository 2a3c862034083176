package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/adboard-backend/internal/infrastructure/i18n"
)

// T traduz a chave no idioma da requisição.
// Sem o middleware de i18n na cadeia a própria chave é devolvida.
func T(c *gin.Context, key string, params ...map[string]any) string {
	service := i18nService(c)
	if service == nil {
		return key
	}
	return service.T(GetLanguage(c), key, params...)
}

// GetLanguage devolve o idioma escolhido pelo middleware, ou o padrão do serviço
func GetLanguage(c *gin.Context) string {
	if lang := c.GetString(i18n.LanguageContextKey); lang != "" {
		return lang
	}
	if service := i18nService(c); service != nil {
		return service.GetDefaultLanguage()
	}
	return "en"
}

func i18nService(c *gin.Context) *i18n.Service {
	value, _ := c.Get(i18n.ServiceContextKey)
	service, _ := value.(*i18n.Service)
	return service
}
