package database

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/adboard-backend/internal/domain/errors"
	"github.com/rafabene/adboard-backend/internal/domain/repositories"
	"github.com/rafabene/adboard-backend/internal/domain/valueobjects"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	model := r.toModel(user)

	if err := conn(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrUsernameAlreadyExists
		}
		return err
	}

	user.ID = model.ID
	user.CreatedAt = time.UnixMilli(model.CreatedAt)
	user.UpdatedAt = time.UnixMilli(model.UpdatedAt)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	return r.findOne(conn(ctx, r.db).Where("id = ?", id))
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findOne(conn(ctx, r.db).Where("username = ?", username))
}

func (r *UserRepository) FindByUsernameForUpdate(ctx context.Context, username string) (*entities.User, error) {
	db := conn(ctx, r.db).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	return r.findOne(db.Where("username = ?", username))
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&UserModel{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateProfile grava só nome, sobrenome e telefone
func (r *UserRepository) UpdateProfile(ctx context.Context, user *entities.User) error {
	model := &UserModel{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone.String(),
	}

	err := conn(ctx, r.db).
		Model(model).
		Select("first_name", "last_name", "phone").
		Updates(model).Error
	if err != nil {
		return err
	}
	user.UpdatedAt = time.UnixMilli(model.UpdatedAt)
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.updateColumn(ctx, id, "password_hash", passwordHash)
}

func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role entities.Role) error {
	return r.updateColumn(ctx, id, "role", string(role))
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id int64, avatarID string) error {
	return r.updateColumn(ctx, id, "avatar_id", avatarID)
}

func (r *UserRepository) updateColumn(ctx context.Context, id int64, column string, value any) error {
	return conn(ctx, r.db).
		Model(&UserModel{}).
		Where("id = ?", id).
		Update(column, value).Error
}

func (r *UserRepository) findOne(query *gorm.DB) (*entities.User, error) {
	var model UserModel
	if err := query.Preload("Avatar").First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return r.toEntity(&model), nil
}

// Conversores
func (r *UserRepository) toModel(user *entities.User) *UserModel {
	return &UserModel{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Phone:        user.Phone.String(),
		AvatarID:     user.AvatarID,
		CreatedAt:    unixMilli(user.CreatedAt),
		UpdatedAt:    unixMilli(user.UpdatedAt),
	}
}

func (r *UserRepository) toEntity(model *UserModel) *entities.User {
	// telefones gravados passaram por validação; valor inválido vira vazio
	phone, _ := valueobjects.NewPhone(model.Phone)

	return &entities.User{
		ID:           model.ID,
		Username:     model.Username,
		PasswordHash: model.PasswordHash,
		Role:         entities.ParseRole(model.Role),
		FirstName:    model.FirstName,
		LastName:     model.LastName,
		Phone:        phone,
		AvatarID:     model.AvatarID,
		Avatar:       toStoredFileEntity(model.Avatar),
		CreatedAt:    time.UnixMilli(model.CreatedAt),
		UpdatedAt:    time.UnixMilli(model.UpdatedAt),
	}
}
