package database

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
	"github.com/rafabene/adboard-backend/internal/domain/repositories"
)

// CommentRepository implementa repositories.CommentRepository
type CommentRepository struct {
	db    *gorm.DB
	users *UserRepository
}

// NewCommentRepository cria um novo CommentRepository
func NewCommentRepository(db *gorm.DB) repositories.CommentRepository {
	return &CommentRepository{db: db, users: &UserRepository{db: db}}
}

func (r *CommentRepository) Create(ctx context.Context, comment *entities.Comment) error {
	model := r.toModel(comment)

	if err := conn(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return err
	}

	comment.ID = model.ID
	comment.CreatedAt = time.UnixMilli(model.CreatedAt)
	return nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id int64) (*entities.Comment, error) {
	var model CommentModel
	err := conn(ctx, r.db).
		Preload("Author").Preload("Author.Avatar").
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return r.toEntity(&model), nil
}

func (r *CommentRepository) FindByAdvertID(ctx context.Context, advertID int64) ([]*entities.Comment, error) {
	var models []CommentModel
	err := conn(ctx, r.db).
		Preload("Author").Preload("Author.Avatar").
		Where("advert_id = ?", advertID).
		Order("created_at ASC").Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	comments := make([]*entities.Comment, len(models))
	for i := range models {
		comments[i] = r.toEntity(&models[i])
	}
	return comments, nil
}

// Update altera apenas o texto; autor, anúncio e data são imutáveis
func (r *CommentRepository) Update(ctx context.Context, comment *entities.Comment) error {
	return conn(ctx, r.db).
		Model(&CommentModel{}).
		Where("id = ?", comment.ID).
		Update("text", comment.Text).Error
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	return conn(ctx, r.db).Where("id = ?", id).Delete(&CommentModel{}).Error
}

func (r *CommentRepository) DeleteByAdvertID(ctx context.Context, advertID int64) (int64, error) {
	result := conn(ctx, r.db).Where("advert_id = ?", advertID).Delete(&CommentModel{})
	return result.RowsAffected, result.Error
}

// Conversores
func (r *CommentRepository) toModel(comment *entities.Comment) *CommentModel {
	return &CommentModel{
		ID:        comment.ID,
		Text:      comment.Text,
		AdvertID:  comment.AdvertID,
		AuthorID:  comment.AuthorID,
		CreatedAt: unixMilli(comment.CreatedAt),
	}
}

func (r *CommentRepository) toEntity(model *CommentModel) *entities.Comment {
	comment := &entities.Comment{
		ID:        model.ID,
		Text:      model.Text,
		AdvertID:  model.AdvertID,
		AuthorID:  model.AuthorID,
		CreatedAt: time.UnixMilli(model.CreatedAt),
	}
	if model.Author != nil {
		comment.Author = r.users.toEntity(model.Author)
	}
	return comment
}
