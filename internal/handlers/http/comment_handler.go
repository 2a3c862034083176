package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/adboard-backend/internal/domain/ports"
	"github.com/rafabene/adboard-backend/internal/handlers/dto"
	"github.com/rafabene/adboard-backend/internal/handlers/middleware"
	"github.com/rafabene/adboard-backend/internal/services"
)

// CommentHandler lida com comentários de anúncios
type CommentHandler struct {
	commentService *services.CommentService
	logger         ports.Logger
}

// NewCommentHandler cria um novo CommentHandler
func NewCommentHandler(commentService *services.CommentService, logger ports.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger,
	}
}

// List godoc
// @Summary      Lista comentários de um anúncio
// @Tags         comments
// @Produce      json
// @Param        id   path      int  true  "Advert ID"
// @Success      200  {object}  dto.ResponseWrapper[dto.CommentDto]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /ads/{id}/comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	advertID, ok := parseID(c, "id")
	if !ok {
		return
	}

	comments, err := h.commentService.List(c.Request.Context(), advertID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.Wrap(dto.ToCommentDtos(comments)))
}

// Create godoc
// @Summary      Comenta um anúncio
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Security     BearerAuth
// @Param        id    path      int                        true  "Advert ID"
// @Param        body  body      dto.CreateOrUpdateComment  true  "Texto"
// @Success      201  {object}  dto.CommentDto
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /ads/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	advertID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateOrUpdateComment
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, h.logger, err)
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), middleware.CallerFrom(c), advertID, req.Text)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCommentDto(comment))
}

// Update godoc
// @Summary      Edita um comentário
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Security     BearerAuth
// @Param        id         path      int                        true  "Advert ID"
// @Param        commentId  path      int                        true  "Comment ID"
// @Param        body       body      dto.CreateOrUpdateComment  true  "Texto"
// @Success      200  {object}  dto.CommentDto
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /ads/{id}/comments/{commentId} [patch]
func (h *CommentHandler) Update(c *gin.Context) {
	advertID, ok := parseID(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseID(c, "commentId")
	if !ok {
		return
	}

	var req dto.CreateOrUpdateComment
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, h.logger, err)
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), middleware.CallerFrom(c), advertID, commentID, req.Text)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCommentDto(comment))
}

// Delete godoc
// @Summary      Remove um comentário
// @Tags         comments
// @Security     BasicAuth
// @Security     BearerAuth
// @Param        id         path  int  true  "Advert ID"
// @Param        commentId  path  int  true  "Comment ID"
// @Success      200
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /ads/{id}/comments/{commentId} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	advertID, ok := parseID(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseID(c, "commentId")
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), middleware.CallerFrom(c), advertID, commentID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}
