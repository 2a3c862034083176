package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config contém todas as configurações da aplicação
type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Logging  LoggingConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port    string
	Host    string
	BaseURL string // URL base da API para construir URIs RFC 7807
}

type DatabaseConfig struct {
	Driver      string // postgres, mysql ou sqlite
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	Path        string // arquivo do sqlite
	MaxConns    int
	MinConns    int
	MaxIdleTime int
	LogLevel    string
}

type RedisConfig struct {
	URL string
	TTL time.Duration
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

type StorageConfig struct {
	AdvertImagesDir string
	AvatarsDir      string
	MaxUploadMB     int64
}

type LoggingConfig struct {
	Level string
}

type CORSConfig struct {
	AllowedOrigins string
}

// IsProduction indica se a aplicação roda em produção
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "8080")
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_PATH", "adboard.db")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_TIME", 300)
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("REDIS_TTL", "5m")
	v.SetDefault("JWT_ACCESS_EXPIRY", "24h")
	v.SetDefault("STORAGE_ADVERT_IMAGES_DIR", "./data/images")
	v.SetDefault("STORAGE_AVATARS_DIR", "./data/avatars")
	v.SetDefault("STORAGE_MAX_UPLOAD_MB", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

// Load carrega as configurações do arquivo .env (se existir) e das variáveis de ambiente.
// Variáveis de ambiente têm prioridade sobre o .env.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		// godotenv.Load não sobrescreve variáveis já definidas
		if err := godotenv.Load(file); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("error reading config file %s: %w", file, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	redisTTL, err := time.ParseDuration(v.GetString("REDIS_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_TTL: %w", err)
	}

	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRY: %w", err)
	}

	config := &Config{
		Env: v.GetString("ENV"),
		Server: ServerConfig{
			Port:    v.GetString("PORT"),
			Host:    v.GetString("HOST"),
			BaseURL: v.GetString("API_BASE_URL"),
		},
		Database: DatabaseConfig{
			Driver:      strings.ToLower(v.GetString("DB_DRIVER")),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSL_MODE"),
			Path:        v.GetString("DB_PATH"),
			MaxConns:    v.GetInt("DB_MAX_CONNS"),
			MinConns:    v.GetInt("DB_MIN_CONNS"),
			MaxIdleTime: v.GetInt("DB_MAX_IDLE_TIME"),
			LogLevel:    v.GetString("DB_LOG_LEVEL"),
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
			TTL: redisTTL,
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		Storage: StorageConfig{
			AdvertImagesDir: v.GetString("STORAGE_ADVERT_IMAGES_DIR"),
			AvatarsDir:      v.GetString("STORAGE_AVATARS_DIR"),
			MaxUploadMB:     v.GetInt64("STORAGE_MAX_UPLOAD_MB"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate verifica combinações obrigatórias
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if c.JWT.Secret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET is required in production")
		}
		c.JWT.Secret = "dev-secret-key"
	}

	if c.Storage.AdvertImagesDir == "" || c.Storage.AvatarsDir == "" {
		return errors.New("storage directories are required")
	}

	if c.Storage.MaxUploadMB <= 0 {
		return errors.New("STORAGE_MAX_UPLOAD_MB must be positive")
	}

	return nil
}

// MaxUploadBytes retorna o limite de upload em bytes
func (s *StorageConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

// DSN retorna a connection string para o driver configurado
func (d *DatabaseConfig) DSN() string {
	switch d.Driver {
	case "mysql":
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			d.User, d.Password, d.Host, d.Port, d.DBName,
		)
	case "sqlite":
		return d.Path
	default:
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
		)
	}
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
