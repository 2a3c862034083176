package repositories

import (
	"context"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
)

// StoredFileRepository define a interface para os metadados de arquivos
type StoredFileRepository interface {
	Create(ctx context.Context, file *entities.StoredFile) error
	FindByID(ctx context.Context, id string) (*entities.StoredFile, error)
	Update(ctx context.Context, file *entities.StoredFile) error
	Delete(ctx context.Context, id string) error
}
