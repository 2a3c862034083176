package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/adboard-backend/internal/domain/errors"
	"github.com/rafabene/adboard-backend/internal/domain/policy"
	"github.com/rafabene/adboard-backend/internal/domain/ports"
	"github.com/rafabene/adboard-backend/internal/domain/repositories"
)

var errBlankComment = errors.New("comment text is required")

// CommentService contém a lógica de negócio para comentários
type CommentService struct {
	comments repositories.CommentRepository
	adverts  repositories.AdvertRepository
	users    repositories.UserRepository
	logger   ports.Logger
}

// NewCommentService cria um novo CommentService
func NewCommentService(
	comments repositories.CommentRepository,
	adverts repositories.AdvertRepository,
	users repositories.UserRepository,
	logger ports.Logger,
) *CommentService {
	return &CommentService{
		comments: comments,
		adverts:  adverts,
		users:    users,
		logger:   logger,
	}
}

// Create adiciona um comentário ao anúncio
func (s *CommentService) Create(ctx context.Context, caller *entities.Caller, advertID int64, text string) (*entities.Comment, error) {
	if err := s.requireAdvert(ctx, advertID); err != nil {
		return nil, err
	}

	author, err := resolveCaller(ctx, s.users, caller)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, domainerrors.NewValidationError(errBlankComment, domainerrors.ErrInvalidComment.Error())
	}

	comment := &entities.Comment{
		Text:     text,
		AdvertID: advertID,
		AuthorID: author.ID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	comment.Author = author

	s.logger.Info("comment created", "id", comment.ID, "advert", advertID, "author", author.Username)
	return comment, nil
}

// List retorna os comentários do anúncio em ordem de criação
func (s *CommentService) List(ctx context.Context, advertID int64) ([]*entities.Comment, error) {
	if err := s.requireAdvert(ctx, advertID); err != nil {
		return nil, err
	}
	return s.comments.FindByAdvertID(ctx, advertID)
}

// Update altera o texto do comentário
func (s *CommentService) Update(ctx context.Context, caller *entities.Caller, advertID, commentID int64, text string) (*entities.Comment, error) {
	comment, err := s.authorize(ctx, caller, advertID, commentID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, domainerrors.NewValidationError(errBlankComment, domainerrors.ErrInvalidComment.Error())
	}

	comment.Text = text
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment %d: %w", commentID, err)
	}

	s.logger.Info("comment updated", "id", commentID, "advert", advertID, "by", callerName(caller))
	return comment, nil
}

// Delete remove o comentário
func (s *CommentService) Delete(ctx context.Context, caller *entities.Caller, advertID, commentID int64) error {
	if _, err := s.authorize(ctx, caller, advertID, commentID); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment %d: %w", commentID, err)
	}

	s.logger.Info("comment deleted", "id", commentID, "advert", advertID, "by", callerName(caller))
	return nil
}

// authorize verifica existência e pertinência antes da autoria:
// comentário acessado pelo anúncio errado é "não encontrado", nunca "proibido".
func (s *CommentService) authorize(ctx context.Context, caller *entities.Caller, advertID, commentID int64) (*entities.Comment, error) {
	if err := s.requireAdvert(ctx, advertID); err != nil {
		return nil, err
	}

	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil || !comment.BelongsTo(advertID) {
		return nil, domainerrors.ErrCommentNotFound
	}

	if policy.IsForbidden(caller, comment.AuthorUsername()) {
		s.logger.Warn("forbidden comment mutation", "id", commentID, "caller", callerName(caller), "author", comment.AuthorUsername())
		return nil, domainerrors.ErrForbidden
	}
	return comment, nil
}

func (s *CommentService) requireAdvert(ctx context.Context, advertID int64) error {
	advert, err := s.adverts.FindByID(ctx, advertID)
	if err != nil {
		return err
	}
	if advert == nil {
		return domainerrors.ErrAdvertNotFound
	}
	return nil
}
