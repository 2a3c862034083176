package repositories

import (
	"context"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários.
// Métodos Find* retornam (nil, nil) quando o registro não existe.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id int64) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	// FindByUsernameForUpdate bloqueia a linha até o fim da transação do contexto
	FindByUsernameForUpdate(ctx context.Context, username string) (*entities.User, error)
	// Os Update* gravam apenas as colunas que nomeiam
	UpdateProfile(ctx context.Context, user *entities.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateRole(ctx context.Context, id int64, role entities.Role) error
	UpdateAvatar(ctx context.Context, id int64, avatarID string) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
