package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/adboard-backend/internal/domain/errors"
	"github.com/rafabene/adboard-backend/internal/domain/ports"
	"github.com/rafabene/adboard-backend/internal/handlers/dto"
)

// CallerContextKey guarda o *entities.Caller autenticado
const CallerContextKey = "caller"

// Authenticator resolve credenciais HTTP Basic e tokens Bearer
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*entities.Caller, error)
	ResolveToken(ctx context.Context, token string) (*entities.Caller, error)
}

// AuthMiddleware identifica o chamador de cada requisição
type AuthMiddleware struct {
	authenticator Authenticator
	logger        ports.Logger
}

// NewAuthMiddleware cria um novo middleware de autenticação
func NewAuthMiddleware(authenticator Authenticator, logger ports.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		logger:        logger,
	}
}

// Identify resolve o chamador a partir do header Authorization.
// Sem header a requisição segue anônima; credenciais inválidas resultam em 401.
func (m *AuthMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		caller, err := m.resolve(c, header)
		if err != nil {
			if errors.Is(err, domainerrors.ErrInvalidCredentials) || errors.Is(err, domainerrors.ErrUnauthorized) {
				unauthorized(c, err.Error())
				return
			}
			m.logger.Error("failed to authenticate request", "path", c.Request.URL.Path, "error", err)
			dto.Problem(c, dto.InternalErrorResponseI18n(c, "error.internal.detail"))
			return
		}

		c.Set(CallerContextKey, caller)
		c.Next()
	}
}

// RequireAuth rejeita requisições anônimas
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CallerFrom(c) == nil {
			unauthorized(c, "error.unauthorized.detail")
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) resolve(c *gin.Context, header string) (*entities.Caller, error) {
	scheme, value, _ := strings.Cut(header, " ")
	switch strings.ToLower(scheme) {
	case "basic":
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			return nil, domainerrors.ErrUnauthorized
		}
		return m.authenticator.Authenticate(c.Request.Context(), username, password)
	case "bearer":
		token := strings.TrimSpace(value)
		if token == "" {
			return nil, domainerrors.ErrUnauthorized
		}
		return m.authenticator.ResolveToken(c.Request.Context(), token)
	default:
		return nil, domainerrors.ErrUnauthorized
	}
}

// CallerFrom retorna o chamador autenticado ou nil para acesso anônimo
func CallerFrom(c *gin.Context) *entities.Caller {
	value, exists := c.Get(CallerContextKey)
	if !exists {
		return nil
	}
	caller, _ := value.(*entities.Caller)
	return caller
}

func unauthorized(c *gin.Context, detailKey string) {
	c.Header("WWW-Authenticate", `Basic realm="adboard", Bearer`)
	dto.Problem(c, dto.UnauthorizedErrorResponseI18n(c, detailKey))
}
