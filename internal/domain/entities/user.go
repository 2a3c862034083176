package entities

import (
	"errors"
	"time"

	"github.com/rafabene/adboard-backend/internal/domain/valueobjects"
)

var (
	ErrInvalidUserData = errors.New("invalid user data")
)

// User representa um usuário do sistema
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	FirstName    string
	LastName     string
	Phone        valueobjects.Phone
	AvatarID     *string
	Avatar       *StoredFile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin verifica se o usuário é admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Caller retorna a identidade do usuário para checagens de autorização
func (u *User) Caller() *Caller {
	return &Caller{UserID: u.ID, Username: u.Username, Role: u.Role}
}

// HasAvatar indica se o usuário já enviou um avatar
func (u *User) HasAvatar() bool {
	return u.AvatarID != nil && *u.AvatarID != ""
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Username == "" {
		return errors.New("username is required")
	}

	if len(u.Username) < 4 {
		return errors.New("username must be at least 4 characters")
	}

	if u.PasswordHash == "" {
		return errors.New("password is required")
	}

	if !u.Role.IsValid() {
		return errors.New("invalid role")
	}

	return nil
}

// Caller é a identidade autenticada que executa uma operação.
// Um *Caller nil representa um acesso anônimo.
type Caller struct {
	UserID   int64
	Username string
	Role     Role
}

// IsAdmin verifica se o chamador tem papel de administrador
func (c *Caller) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}
