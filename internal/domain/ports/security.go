package ports

import "github.com/rafabene/adboard-backend/internal/domain/entities"

// PasswordHasher gera e confere hashes de senha
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenIssuer emite e valida tokens de acesso
type TokenIssuer interface {
	Issue(user *entities.User) (string, error)
	// Parse retorna o username contido em um token válido
	Parse(token string) (string, error)
}
