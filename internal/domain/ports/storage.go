package ports

import (
	"context"
	"io"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
)

// BlobStorage persiste bytes de arquivos.
// Caminhos são relativos ao diretório do FileKind.
type BlobStorage interface {
	// Write grava os bytes substituindo qualquer arquivo existente no caminho
	Write(ctx context.Context, kind entities.FileKind, name string, data []byte) error
	// Open abre o arquivo para leitura
	Open(ctx context.Context, kind entities.FileKind, name string) (io.ReadCloser, error)
	// Remove apaga o arquivo; arquivo inexistente não é erro
	Remove(ctx context.Context, kind entities.FileKind, name string) error
	// Path retorna o caminho físico (para logs e erros)
	Path(kind entities.FileKind, name string) string
}
