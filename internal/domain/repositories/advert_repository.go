package repositories

import (
	"context"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
)

// AdvertRepository define a interface para persistência de anúncios.
// Os anúncios retornados vêm com Author e Image carregados.
type AdvertRepository interface {
	Create(ctx context.Context, advert *entities.Advert) error
	FindByID(ctx context.Context, id int64) (*entities.Advert, error)
	// FindByIDForUpdate bloqueia a linha até o fim da transação do contexto
	FindByIDForUpdate(ctx context.Context, id int64) (*entities.Advert, error)
	FindAll(ctx context.Context) ([]*entities.Advert, error)
	FindByAuthorID(ctx context.Context, authorID int64) ([]*entities.Advert, error)
	// Update grava apenas título, descrição e preço
	Update(ctx context.Context, advert *entities.Advert) error
	UpdateImage(ctx context.Context, id int64, imageID string) error
	Delete(ctx context.Context, id int64) error
}
