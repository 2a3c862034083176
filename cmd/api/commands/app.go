package commands

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rafabene/adboard-backend/internal/domain/ports"
	"github.com/rafabene/adboard-backend/internal/infrastructure/config"
	"github.com/rafabene/adboard-backend/internal/infrastructure/logging"
	"github.com/rafabene/adboard-backend/internal/infrastructure/persistence/database"
	"github.com/rafabene/adboard-backend/internal/infrastructure/security"
	"github.com/rafabene/adboard-backend/internal/infrastructure/storage"
	"github.com/rafabene/adboard-backend/internal/services"
)

// app reúne as dependências compartilhadas pelos subcomandos
type app struct {
	cfg    *config.Config
	logger ports.Logger
	db     *gorm.DB
}

func bootstrap() (*app, error) {
	// Carregar configurações
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Inicializar logger
	logger, err := logging.NewZapLogger(cfg.Logging.Level, cfg.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Conectar ao banco de dados
	db, err := database.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		_ = logger.Sync()
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, db: db}, nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.logger.Sync()
}

func (a *app) migrate() error {
	if err := database.Migrate(a.db); err != nil {
		return err
	}
	a.logger.Info("database migrated", "driver", a.cfg.Database.Driver)
	return nil
}

func (a *app) fileStore() *services.FileStore {
	return services.NewFileStore(
		database.NewStoredFileRepository(a.db),
		storage.NewDiskStorage(&a.cfg.Storage),
		a.logger,
	)
}

func (a *app) userService(files *services.FileStore) *services.UserService {
	return services.NewUserService(
		database.NewUserRepository(a.db),
		files,
		database.NewUnitOfWork(a.db),
		security.NewBcryptHasher(bcrypt.DefaultCost),
		security.NewJWTIssuer(a.cfg.JWT.Secret, a.cfg.JWT.AccessExpiry),
		a.logger,
	)
}

// withApp executa fn com o app inicializado e fecha os recursos ao final
func withApp(ctx context.Context, fn func(context.Context, *app) error) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	return fn(ctx, a)
}
