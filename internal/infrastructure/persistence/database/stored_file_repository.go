package database

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
	"github.com/rafabene/adboard-backend/internal/domain/repositories"
)

// StoredFileRepository implementa repositories.StoredFileRepository
type StoredFileRepository struct {
	db *gorm.DB
}

// NewStoredFileRepository cria um novo StoredFileRepository
func NewStoredFileRepository(db *gorm.DB) repositories.StoredFileRepository {
	return &StoredFileRepository{db: db}
}

func (r *StoredFileRepository) Create(ctx context.Context, file *entities.StoredFile) error {
	model := toStoredFileModel(file)
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	file.CreatedAt = time.UnixMilli(model.CreatedAt)
	file.UpdatedAt = time.UnixMilli(model.UpdatedAt)
	return nil
}

func (r *StoredFileRepository) FindByID(ctx context.Context, id string) (*entities.StoredFile, error) {
	var model StoredFileModel
	if err := conn(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toStoredFileEntity(&model), nil
}

func (r *StoredFileRepository) Update(ctx context.Context, file *entities.StoredFile) error {
	model := toStoredFileModel(file)
	if err := conn(ctx, r.db).Save(model).Error; err != nil {
		return err
	}
	file.UpdatedAt = time.UnixMilli(model.UpdatedAt)
	return nil
}

func (r *StoredFileRepository) Delete(ctx context.Context, id string) error {
	return conn(ctx, r.db).Where("id = ?", id).Delete(&StoredFileModel{}).Error
}

// Conversores
func toStoredFileModel(file *entities.StoredFile) *StoredFileModel {
	return &StoredFileModel{
		ID:          file.ID,
		Kind:        string(file.Kind),
		FileName:    file.FileName,
		ContentType: file.ContentType,
		Extension:   file.Extension,
		Size:        file.Size,
		CreatedAt:   unixMilli(file.CreatedAt),
		UpdatedAt:   unixMilli(file.UpdatedAt),
	}
}

func toStoredFileEntity(model *StoredFileModel) *entities.StoredFile {
	if model == nil {
		return nil
	}
	return &entities.StoredFile{
		ID:          model.ID,
		Kind:        entities.FileKind(model.Kind),
		FileName:    model.FileName,
		ContentType: model.ContentType,
		Extension:   model.Extension,
		Size:        model.Size,
		CreatedAt:   time.UnixMilli(model.CreatedAt),
		UpdatedAt:   time.UnixMilli(model.UpdatedAt),
	}
}

// unixMilli devolve 0 para o tempo zero, deixando o GORM preencher
func unixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
