package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/rafabene/adboard-backend/internal/domain/errors"
	"github.com/rafabene/adboard-backend/internal/domain/ports"
	"github.com/rafabene/adboard-backend/internal/handlers/dto"
	"github.com/rafabene/adboard-backend/internal/services"
)

// AuthHandler lida com cadastro e login
type AuthHandler struct {
	userService *services.UserService
	logger      ports.Logger
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(userService *services.UserService, logger ports.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// Register godoc
// @Summary      Cadastra um usuário
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "Dados do usuário"
// @Success      201  {object}  dto.UserDto
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, h.logger, err)
		return
	}

	if req.Role != "" && req.Role != "USER" {
		h.logger.Warn("ignoring role on public registration", "username", req.Username, "role", req.Role)
	}

	user, err := h.userService.Register(c.Request.Context(), services.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrUsernameAlreadyExists) {
			dto.Problem(c, dto.ConflictErrorResponseI18n(
				c,
				domainerrors.ErrUsernameAlreadyExists.Error(),
				map[string]any{"Username": req.Username},
			))
			return
		}
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDto(user))
}

// Login godoc
// @Summary      Autentica e emite um token JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credenciais"
// @Success      200  {object}  dto.TokenResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, h.logger, err)
		return
	}

	token, err := h.userService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}
