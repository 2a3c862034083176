package ports

import "context"

// UnitOfWork define a interface para gerenciamento de transações.
// Repositórios chamados com o contexto recebido em fn participam da transação.
type UnitOfWork interface {
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
