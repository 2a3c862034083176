package dto

import (
	"strconv"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
)

// RegisterRequest representa a requisição de cadastro
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=4,max=32"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	FirstName string `json:"firstName" binding:"required,min=2,max=16"`
	LastName  string `json:"lastName" binding:"required,min=2,max=16"`
	Phone     string `json:"phone" binding:"omitempty,max=32"`
	// Role é ignorado no cadastro público; administradores são criados pela CLI
	Role string `json:"role" binding:"omitempty,oneof=USER ADMIN"`
}

// LoginRequest representa a requisição de login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse é devolvido após um login bem-sucedido
type TokenResponse struct {
	Token string `json:"token"`
}

// UpdateUserRequest representa a atualização parcial do perfil
type UpdateUserRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,min=2,max=16"`
	LastName  *string `json:"lastName" binding:"omitempty,min=2,max=16"`
	Phone     *string `json:"phone" binding:"omitempty,max=32"`
}

// NewPasswordRequest representa a troca de senha
type NewPasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=72"`
}

// UserDto representa a resposta de um usuário
type UserDto struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Image     string `json:"image,omitempty"`
}

// ToUserDto converte uma entidade User para UserDto
func ToUserDto(user *entities.User) UserDto {
	response := UserDto{
		ID:        user.ID,
		Email:     user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone.String(),
		Role:      user.Role.String(),
	}
	if user.HasAvatar() {
		response.Image = "/users/me/image"
	}
	return response
}

// UserImageURL retorna a URL pública do avatar de um usuário
func UserImageURL(user *entities.User) string {
	if user == nil || !user.HasAvatar() {
		return ""
	}
	return "/users/" + strconv.FormatInt(user.ID, 10) + "/image"
}
