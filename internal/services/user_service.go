package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/adboard-backend/internal/domain/errors"
	"github.com/rafabene/adboard-backend/internal/domain/ports"
	"github.com/rafabene/adboard-backend/internal/domain/repositories"
	"github.com/rafabene/adboard-backend/internal/domain/valueobjects"
)

// UserService contém a lógica de negócio para usuários, autenticação e avatares
type UserService struct {
	userRepo repositories.UserRepository
	files    *FileStore
	uow      ports.UnitOfWork
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	logger   ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	files *FileStore,
	uow ports.UnitOfWork,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	logger ports.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		files:    files,
		uow:      uow,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

// RegisterInput representa os dados para criar um usuário
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      entities.Role
}

// ProfileInput representa os campos editáveis do perfil; nil mantém o valor atual
type ProfileInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
}

// Register cria um novo usuário com a senha em hash
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*entities.User, error) {
	username := strings.TrimSpace(input.Username)
	s.logger.Info("registering user", "username", username)

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.ErrUsernameAlreadyExists
	}

	phone, err := valueobjects.NewPhone(input.Phone)
	if err != nil {
		return nil, domainerrors.NewValidationError(err, domainerrors.ErrInvalidPhone.Error())
	}

	if input.Password == "" {
		return nil, domainerrors.NewValidationError(entities.ErrInvalidUserData, domainerrors.ErrInvalidUser.Error())
	}
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := input.Role
	if !role.IsValid() {
		role = entities.RoleUser
	}

	user := &entities.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        phone,
	}
	if err := user.Validate(); err != nil {
		return nil, domainerrors.NewValidationError(err, domainerrors.ErrInvalidUser.Error())
	}

	// a constraint unique cobre a corrida entre ExistsByUsername e Create
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "id", user.ID, "username", user.Username, "role", user.Role)
	return user, nil
}

// Authenticate confere usuário e senha (HTTP Basic)
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entities.Caller, error) {
	user, err := s.checkCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return user.Caller(), nil
}

// Login confere as credenciais e emite um token de acesso
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.checkCredentials(ctx, username, password)
	if err != nil {
		s.logger.Warn("login failed", "username", username)
		return "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("user logged in", "username", username)
	return token, nil
}

// ResolveToken valida um token Bearer e carrega o chamador
func (s *UserService) ResolveToken(ctx context.Context, token string) (*entities.Caller, error) {
	username, err := s.tokens.Parse(token)
	if err != nil {
		s.logger.Debug("invalid bearer token", "error", err)
		return nil, domainerrors.ErrUnauthorized
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.ErrUnauthorized
	}
	return user.Caller(), nil
}

// GetProfile retorna o usuário do chamador
func (s *UserService) GetProfile(ctx context.Context, caller *entities.Caller) (*entities.User, error) {
	return resolveCaller(ctx, s.userRepo, caller)
}

// GetUser busca um usuário por ID
func (s *UserService) GetUser(ctx context.Context, id int64) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile altera nome, sobrenome e telefone
func (s *UserService) UpdateProfile(ctx context.Context, caller *entities.Caller, input ProfileInput) (*entities.User, error) {
	user, err := resolveCaller(ctx, s.userRepo, caller)
	if err != nil {
		return nil, err
	}

	if input.Phone != nil {
		phone, err := valueobjects.NewPhone(*input.Phone)
		if err != nil {
			return nil, domainerrors.NewValidationError(err, domainerrors.ErrInvalidPhone.Error())
		}
		user.Phone = phone
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("update user %s: %w", user.Username, err)
	}

	s.logger.Info("profile updated", "username", user.Username)
	return user, nil
}

// SetPassword troca a senha após conferir a atual
func (s *UserService) SetPassword(ctx context.Context, caller *entities.Caller, currentPassword, newPassword string) error {
	user, err := resolveCaller(ctx, s.userRepo, caller)
	if err != nil {
		return err
	}

	if !s.hasher.Compare(user.PasswordHash, currentPassword) {
		s.logger.Warn("password change with wrong current password", "username", user.Username)
		return domainerrors.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password for %s: %w", user.Username, err)
	}

	s.logger.Info("password changed", "username", user.Username)
	return nil
}

// UpdateAvatar cria ou substitui o avatar do chamador com a linha bloqueada
// e devolve os bytes enviados.
func (s *UserService) UpdateAvatar(ctx context.Context, caller *entities.Caller, upload *entities.Upload) ([]byte, error) {
	if _, err := resolveCaller(ctx, s.userRepo, caller); err != nil {
		return nil, err
	}

	var created, previous, replaced *entities.StoredFile
	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err := s.userRepo.FindByUsernameForUpdate(txCtx, caller.Username)
		if err != nil {
			return err
		}
		if user == nil {
			return domainerrors.ErrUnauthorized
		}

		if user.HasAvatar() && user.Avatar != nil {
			previous = user.Avatar
			replaced, err = s.files.Replace(txCtx, user.Avatar, upload)
			return err
		}

		stored, err := s.files.Store(txCtx, entities.FileKindAvatar, upload)
		if err != nil {
			return err
		}
		created = stored
		return s.userRepo.UpdateAvatar(txCtx, user.ID, stored.ID)
	})
	s.files.FinishReplace(ctx, previous, replaced, err == nil)
	if err != nil {
		if created != nil {
			_ = s.files.Delete(ctx, created)
		}
		s.logger.Error("failed to update avatar", "username", caller.Username, "error", err)
		return nil, err
	}

	s.logger.Info("avatar updated", "username", caller.Username, "size", upload.Size())
	return upload.Data, nil
}

// Avatar abre o avatar do chamador
func (s *UserService) Avatar(ctx context.Context, caller *entities.Caller) (*entities.StoredFile, io.ReadCloser, error) {
	user, err := resolveCaller(ctx, s.userRepo, caller)
	if err != nil {
		return nil, nil, err
	}
	return s.openAvatar(ctx, user)
}

// AvatarByUserID abre o avatar de qualquer usuário (leitura pública)
func (s *UserService) AvatarByUserID(ctx context.Context, id int64) (*entities.StoredFile, io.ReadCloser, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return s.openAvatar(ctx, user)
}

// CreateAdmin cria ou promove um administrador (usado pela CLI)
func (s *UserService) CreateAdmin(ctx context.Context, username, password string) (*entities.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return s.Register(ctx, RegisterInput{Username: username, Password: password, Role: entities.RoleAdmin})
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.UpdatePassword(txCtx, existing.ID, hash); err != nil {
			return err
		}
		return s.userRepo.UpdateRole(txCtx, existing.ID, entities.RoleAdmin)
	})
	if err != nil {
		return nil, err
	}
	existing.Role = entities.RoleAdmin
	existing.PasswordHash = hash

	s.logger.Info("user promoted to admin", "username", username)
	return existing, nil
}

func (s *UserService) openAvatar(ctx context.Context, user *entities.User) (*entities.StoredFile, io.ReadCloser, error) {
	if !user.HasAvatar() || user.Avatar == nil {
		return nil, nil, domainerrors.ErrImageNotFound
	}
	rc, err := s.files.Open(ctx, user.Avatar)
	if err != nil {
		return nil, nil, err
	}
	return user.Avatar, rc, nil
}

func (s *UserService) checkCredentials(ctx context.Context, username, password string) (*entities.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Compare(user.PasswordHash, password) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	return user, nil
}
