package repositories

import (
	"context"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
)

// CommentRepository define a interface para persistência de comentários
type CommentRepository interface {
	Create(ctx context.Context, comment *entities.Comment) error
	FindByID(ctx context.Context, id int64) (*entities.Comment, error)
	FindByAdvertID(ctx context.Context, advertID int64) ([]*entities.Comment, error)
	Update(ctx context.Context, comment *entities.Comment) error
	Delete(ctx context.Context, id int64) error
	// DeleteByAdvertID remove todos os comentários do anúncio e retorna quantos foram removidos
	DeleteByAdvertID(ctx context.Context, advertID int64) (int64, error)
}
