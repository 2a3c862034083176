package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS configura CORS para a aplicação
func CORS(allowedOrigins string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Accept-Language", RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	origins := SplitOrigins(allowedOrigins)
	if len(origins) == 0 {
		config.AllowOriginFunc = func(string) bool { return false }
		return cors.New(config)
	}
	for _, origin := range origins {
		if origin == "*" {
			// credenciais não podem ser combinadas com "*"; ecoa a origem recebida
			config.AllowOriginFunc = func(string) bool { return true }
			return cors.New(config)
		}
	}
	config.AllowOrigins = origins

	return cors.New(config)
}

// SplitOrigins converte a lista separada por vírgulas em origens limpas
func SplitOrigins(allowedOrigins string) []string {
	var origins []string
	for _, origin := range strings.Split(allowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
