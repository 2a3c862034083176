// Package policy contém as regras de autorização baseadas em propriedade.
package policy

import "github.com/rafabene/adboard-backend/internal/domain/entities"

// IsForbidden decide se o chamador NÃO pode alterar um recurso do dono informado.
//
// Permite (retorna false) quando:
//   - não há chamador autenticado (caller nil);
//   - o chamador é ADMIN;
//   - o username do chamador é o do dono.
//
// O caso anônimo é permissivo: a exigência de autenticação fica com o
// middleware RequireAuth nas rotas que alteram dados.
func IsForbidden(caller *entities.Caller, ownerUsername string) bool {
	if caller == nil {
		return false
	}
	if caller.IsAdmin() {
		return false
	}
	return caller.Username != ownerUsername
}
