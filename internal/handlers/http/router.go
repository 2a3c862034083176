package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rafabene/adboard-backend/docs"
	"github.com/rafabene/adboard-backend/internal/domain/ports"
	"github.com/rafabene/adboard-backend/internal/handlers/middleware"
	"github.com/rafabene/adboard-backend/internal/infrastructure/i18n"
)

// RouterConfig reúne os parâmetros de borda do servidor HTTP
type RouterConfig struct {
	Env            string
	BaseURL        string
	AllowedOrigins string
	MaxUploadBytes int64
}

// Handlers agrupa os handlers registrados no router
type Handlers struct {
	Auth     *AuthHandler
	Users    *UserHandler
	Adverts  *AdvertHandler
	Comments *CommentHandler
	// Stream atende o websocket de eventos de anúncios; nil desativa a rota
	Stream gin.HandlerFunc
}

// NewRouter monta o engine gin com middlewares e rotas
func NewRouter(
	cfg RouterConfig,
	h Handlers,
	auth *middleware.AuthMiddleware,
	i18nService *i18n.Service,
	logger ports.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(logger),
		middleware.BaseURL(cfg.BaseURL),
		middleware.NewI18nMiddleware(i18nService).DetectLanguage(),
		middleware.CORS(cfg.AllowedOrigins),
		// margem para os campos e cabeçalhos do multipart
		middleware.BodyLimit(cfg.MaxUploadBytes+(1<<20)),
		auth.Identify(),
	)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.POST("/register", h.Auth.Register)
	router.POST("/login", h.Auth.Login)

	requireAuth := auth.RequireAuth()

	ads := router.Group("/ads")
	{
		ads.GET("", h.Adverts.List)
		ads.GET("/:id", h.Adverts.Get)
		ads.GET("/:id/image", h.Adverts.Image)
		ads.GET("/:id/comments", h.Comments.List)
		if h.Stream != nil {
			ads.GET("/stream", h.Stream)
		}

		authed := ads.Group("", requireAuth)
		authed.GET("/me", h.Adverts.ListMine)
		authed.POST("", h.Adverts.Create)
		authed.PATCH("/:id", h.Adverts.Update)
		authed.PATCH("/:id/image", h.Adverts.UpdateImage)
		authed.DELETE("/:id", h.Adverts.Delete)
		authed.POST("/:id/comments", h.Comments.Create)
		authed.PATCH("/:id/comments/:commentId", h.Comments.Update)
		authed.DELETE("/:id/comments/:commentId", h.Comments.Delete)
	}

	users := router.Group("/users")
	{
		users.GET("/:id/image", h.Users.ImageByID)

		authed := users.Group("", requireAuth)
		authed.GET("/me", h.Users.Me)
		authed.PATCH("/me", h.Users.UpdateMe)
		authed.GET("/me/image", h.Users.Image)
		authed.PATCH("/me/image", h.Users.UpdateImage)
		authed.POST("/set_password", h.Users.SetPassword)
	}

	return router
}
