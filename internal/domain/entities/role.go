package entities

import "strings"

// Role representa o papel de um usuário no sistema
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// ParseRole converte uma string em Role.
// Valores desconhecidos ou vazios viram RoleUser.
func ParseRole(value string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

// IsValid verifica se o role é conhecido
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

func (r Role) String() string {
	return string(r)
}
