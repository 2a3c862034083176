package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/adboard-backend/internal/domain/errors"
	"github.com/rafabene/adboard-backend/internal/domain/ports"
	"github.com/rafabene/adboard-backend/internal/handlers/dto"
	"github.com/rafabene/adboard-backend/internal/handlers/middleware"
	"github.com/rafabene/adboard-backend/internal/services"
)

// UserHandler lida com requisições HTTP relacionadas a usuários
type UserHandler struct {
	userService *services.UserService
	maxMemory   int64
	logger      ports.Logger
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService, maxMemory int64, logger ports.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		maxMemory:   maxMemory,
		logger:      logger,
	}
}

// Me godoc
// @Summary      Perfil do usuário autenticado
// @Tags         users
// @Produce      json
// @Security     BasicAuth
// @Security     BearerAuth
// @Success      200  {object}  dto.UserDto
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.GetProfile(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDto(user))
}

// UpdateMe godoc
// @Summary      Atualiza nome, sobrenome e telefone
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Security     BearerAuth
// @Param        body  body      dto.UpdateUserRequest  true  "Campos a alterar"
// @Success      200  {object}  dto.UserDto
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /users/me [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, h.logger, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.CallerFrom(c), services.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDto(user))
}

// SetPassword godoc
// @Summary      Troca a senha
// @Tags         users
// @Accept       json
// @Security     BasicAuth
// @Security     BearerAuth
// @Param        body  body  dto.NewPasswordRequest  true  "Senhas"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /users/set_password [post]
func (h *UserHandler) SetPassword(c *gin.Context) {
	var req dto.NewPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, h.logger, err)
		return
	}

	err := h.userService.SetPassword(c.Request.Context(), middleware.CallerFrom(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		// o chamador já está autenticado; senha atual errada é recusa, não falta de credencial
		if errors.Is(err, domainerrors.ErrInvalidCredentials) {
			dto.Problem(c, dto.ForbiddenErrorResponseI18n(c, domainerrors.ErrInvalidCredentials.Error()))
			return
		}
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}

// UpdateImage godoc
// @Summary      Envia ou substitui o avatar
// @Description  Responde com os próprios bytes enviados.
// @Tags         users
// @Accept       multipart/form-data
// @Produce      octet-stream
// @Security     BasicAuth
// @Security     BearerAuth
// @Param        image  formData  file  true  "Avatar"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /users/me/image [patch]
func (h *UserHandler) UpdateImage(c *gin.Context) {
	if err := parseMultipart(c, h.maxMemory); err != nil {
		respondBindingError(c, h.logger, err)
		return
	}

	upload, err := readUpload(c, "image")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	data, err := h.userService.UpdateAvatar(c.Request.Context(), middleware.CallerFrom(c), upload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Data(http.StatusOK, upload.ContentType, data)
}

// Image godoc
// @Summary      Baixa o avatar do usuário autenticado
// @Tags         users
// @Produce      octet-stream
// @Security     BasicAuth
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /users/me/image [get]
func (h *UserHandler) Image(c *gin.Context) {
	file, content, err := h.userService.Avatar(c.Request.Context(), middleware.CallerFrom(c))
	h.download(c, file, content, err)
}

// ImageByID godoc
// @Summary      Baixa o avatar de um usuário
// @Tags         users
// @Produce      octet-stream
// @Param        id   path      int  true  "User ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /users/{id}/image [get]
func (h *UserHandler) ImageByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	file, content, err := h.userService.AvatarByUserID(c.Request.Context(), id)
	h.download(c, file, content, err)
}

func (h *UserHandler) download(c *gin.Context, file *entities.StoredFile, content io.ReadCloser, err error) {
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer content.Close()

	c.DataFromReader(http.StatusOK, file.Size, file.ContentType, content, nil)
}
