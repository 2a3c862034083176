package services

import (
	"context"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/adboard-backend/internal/domain/errors"
	"github.com/rafabene/adboard-backend/internal/domain/repositories"
)

// resolveCaller carrega o usuário do chamador; anônimo ou inexistente é ErrUnauthorized
func resolveCaller(ctx context.Context, users repositories.UserRepository, caller *entities.Caller) (*entities.User, error) {
	if caller == nil {
		return nil, domainerrors.ErrUnauthorized
	}
	user, err := users.FindByUsername(ctx, caller.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domainerrors.ErrUnauthorized
	}
	return user, nil
}

func callerName(caller *entities.Caller) string {
	if caller == nil {
		return "anonymous"
	}
	return caller.Username
}
