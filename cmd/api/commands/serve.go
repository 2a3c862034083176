package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/rafabene/adboard-backend/internal/domain/ports"
	httphandlers "github.com/rafabene/adboard-backend/internal/handlers/http"
	"github.com/rafabene/adboard-backend/internal/handlers/middleware"
	"github.com/rafabene/adboard-backend/internal/infrastructure/cache"
	"github.com/rafabene/adboard-backend/internal/infrastructure/i18n"
	"github.com/rafabene/adboard-backend/internal/infrastructure/persistence/database"
	"github.com/rafabene/adboard-backend/internal/infrastructure/realtime"
	"github.com/rafabene/adboard-backend/internal/services"
)

// serveCmd inicia o servidor HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Inicia o servidor HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	return withApp(ctx, func(ctx context.Context, a *app) error {
		cfg, logger := a.cfg, a.logger
		logger.Info("starting adboard backend",
			"env", cfg.Env,
			"version", version,
		)

		if err := a.migrate(); err != nil {
			return err
		}

		// Inicializar i18n
		i18nService, err := i18n.NewEmbeddedService("en")
		if err != nil {
			logger.Error("failed to initialize i18n", "error", err)
			return err
		}
		logger.Info("i18n initialized",
			"default_language", i18nService.GetDefaultLanguage(),
			"supported_languages", i18nService.GetSupportedLanguages(),
		)

		// Cache da listagem: Redis quando configurado
		var listCache ports.Cache = cache.NoopCache{}
		if cfg.Redis.URL != "" {
			redisCache, err := cache.NewRedisCache(ctx, cfg.Redis.URL)
			if err != nil {
				logger.Error("failed to connect to redis", "error", err)
				return err
			}
			defer redisCache.Close()
			listCache = redisCache
			logger.Info("redis cache enabled", "ttl", cfg.Redis.TTL.String())
		}

		hub := realtime.NewHub(logger, middleware.SplitOrigins(cfg.CORS.AllowedOrigins))
		defer hub.Close()

		// Inicializar repositories
		userRepo := database.NewUserRepository(a.db)
		advertRepo := database.NewAdvertRepository(a.db)
		commentRepo := database.NewCommentRepository(a.db)
		uow := database.NewUnitOfWork(a.db)

		// Inicializar services
		files := a.fileStore()
		userService := a.userService(files)
		advertService := services.NewAdvertService(
			advertRepo, commentRepo, userRepo, files, uow,
			listCache, cfg.Redis.TTL, hub, logger,
		)
		commentService := services.NewCommentService(commentRepo, advertRepo, userRepo, logger)

		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}

		maxUpload := cfg.Storage.MaxUploadBytes()
		router := httphandlers.NewRouter(
			httphandlers.RouterConfig{
				Env:            cfg.Env,
				BaseURL:        cfg.Server.BaseURL,
				AllowedOrigins: cfg.CORS.AllowedOrigins,
				MaxUploadBytes: maxUpload,
			},
			httphandlers.Handlers{
				Auth:     httphandlers.NewAuthHandler(userService, logger),
				Users:    httphandlers.NewUserHandler(userService, maxUpload, logger),
				Adverts:  httphandlers.NewAdvertHandler(advertService, maxUpload, logger),
				Comments: httphandlers.NewCommentHandler(commentService, logger),
				Stream:   hub.ServeWS,
			},
			middleware.NewAuthMiddleware(userService, logger),
			i18nService,
			logger,
		)

		// HTTP Server
		srv := &http.Server{
			Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErr := make(chan error, 1)
		go func() {
			logger.Info("server starting",
				"host", cfg.Server.Host,
				"port", cfg.Server.Port,
			)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()

		// Wait for interrupt signal
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err := <-serverErr:
			logger.Error("server failed", "error", err)
			return err
		case <-quit:
		case <-ctx.Done():
		}

		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}

		logger.Info("server exited")
		return nil
	})
}
