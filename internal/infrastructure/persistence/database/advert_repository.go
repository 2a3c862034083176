package database

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
	"github.com/rafabene/adboard-backend/internal/domain/repositories"
)

// AdvertRepository implementa repositories.AdvertRepository
type AdvertRepository struct {
	db    *gorm.DB
	users *UserRepository
}

// NewAdvertRepository cria um novo AdvertRepository
func NewAdvertRepository(db *gorm.DB) repositories.AdvertRepository {
	return &AdvertRepository{db: db, users: &UserRepository{db: db}}
}

func (r *AdvertRepository) Create(ctx context.Context, advert *entities.Advert) error {
	model := r.toModel(advert)

	if err := conn(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return err
	}

	advert.ID = model.ID
	advert.CreatedAt = time.UnixMilli(model.CreatedAt)
	advert.UpdatedAt = time.UnixMilli(model.UpdatedAt)
	return nil
}

func (r *AdvertRepository) FindByID(ctx context.Context, id int64) (*entities.Advert, error) {
	return r.findOne(conn(ctx, r.db).Where("id = ?", id))
}

func (r *AdvertRepository) FindByIDForUpdate(ctx context.Context, id int64) (*entities.Advert, error) {
	var model AdvertModel
	// o lock vale só para a linha do anúncio; as associações são carregadas depois
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return r.FindByID(ctx, model.ID)
}

func (r *AdvertRepository) FindAll(ctx context.Context) ([]*entities.Advert, error) {
	return r.findMany(conn(ctx, r.db).Order("id ASC"))
}

func (r *AdvertRepository) FindByAuthorID(ctx context.Context, authorID int64) ([]*entities.Advert, error) {
	return r.findMany(conn(ctx, r.db).Where("author_id = ?", authorID).Order("id ASC"))
}

// Update grava só título, descrição e preço; autor e imagem não mudam aqui
func (r *AdvertRepository) Update(ctx context.Context, advert *entities.Advert) error {
	model := &AdvertModel{
		ID:          advert.ID,
		Title:       advert.Title,
		Description: advert.Description,
		Price:       advert.Price,
	}

	err := conn(ctx, r.db).
		Model(model).
		Select("title", "description", "price").
		Updates(model).Error
	if err != nil {
		return err
	}
	advert.UpdatedAt = time.UnixMilli(model.UpdatedAt)
	return nil
}

func (r *AdvertRepository) UpdateImage(ctx context.Context, id int64, imageID string) error {
	return conn(ctx, r.db).
		Model(&AdvertModel{}).
		Where("id = ?", id).
		Update("image_id", imageID).Error
}

func (r *AdvertRepository) Delete(ctx context.Context, id int64) error {
	return conn(ctx, r.db).Where("id = ?", id).Delete(&AdvertModel{}).Error
}

func (r *AdvertRepository) findOne(query *gorm.DB) (*entities.Advert, error) {
	var model AdvertModel
	if err := r.preload(query).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return r.toEntity(&model), nil
}

func (r *AdvertRepository) findMany(query *gorm.DB) ([]*entities.Advert, error) {
	var models []AdvertModel
	if err := r.preload(query).Find(&models).Error; err != nil {
		return nil, err
	}

	adverts := make([]*entities.Advert, len(models))
	for i := range models {
		adverts[i] = r.toEntity(&models[i])
	}
	return adverts, nil
}

func (r *AdvertRepository) preload(query *gorm.DB) *gorm.DB {
	return query.Preload("Author").Preload("Author.Avatar").Preload("Image")
}

// Conversores
func (r *AdvertRepository) toModel(advert *entities.Advert) *AdvertModel {
	return &AdvertModel{
		ID:          advert.ID,
		Title:       advert.Title,
		Description: advert.Description,
		Price:       advert.Price,
		AuthorID:    advert.AuthorID,
		ImageID:     advert.ImageID,
		CreatedAt:   unixMilli(advert.CreatedAt),
		UpdatedAt:   unixMilli(advert.UpdatedAt),
	}
}

func (r *AdvertRepository) toEntity(model *AdvertModel) *entities.Advert {
	advert := &entities.Advert{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Price:       model.Price,
		AuthorID:    model.AuthorID,
		ImageID:     model.ImageID,
		Image:       toStoredFileEntity(model.Image),
		CreatedAt:   time.UnixMilli(model.CreatedAt),
		UpdatedAt:   time.UnixMilli(model.UpdatedAt),
	}
	if model.Author != nil {
		advert.Author = r.users.toEntity(model.Author)
	}
	return advert
}
