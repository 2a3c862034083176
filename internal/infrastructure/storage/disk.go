package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
	"github.com/rafabene/adboard-backend/internal/domain/ports"
	"github.com/rafabene/adboard-backend/internal/infrastructure/config"
)

// DiskStorage implementa ports.BlobStorage no sistema de arquivos local.
// Cada FileKind tem seu próprio diretório raiz.
type DiskStorage struct {
	roots map[entities.FileKind]string
}

// NewDiskStorage cria um DiskStorage a partir da configuração
func NewDiskStorage(cfg *config.StorageConfig) *DiskStorage {
	return &DiskStorage{
		roots: map[entities.FileKind]string{
			entities.FileKindAdvertImage: cfg.AdvertImagesDir,
			entities.FileKindAvatar:      cfg.AvatarsDir,
		},
	}
}

var _ ports.BlobStorage = (*DiskStorage)(nil)

// Path retorna {raiz do kind}/{name}
func (s *DiskStorage) Path(kind entities.FileKind, name string) string {
	return filepath.Join(s.roots[kind], filepath.Base(name))
}

// Write grava em um arquivo temporário no mesmo diretório e renomeia.
// O caminho final nunca expõe um arquivo parcialmente escrito.
func (s *DiskStorage) Write(ctx context.Context, kind entities.FileKind, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !kind.IsValid() {
		return fmt.Errorf("unknown file kind %q", kind)
	}

	target := s.Path(kind, name)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename to %s: %w", target, err)
	}
	return nil
}

// Open abre o arquivo para leitura
func (s *DiskStorage) Open(ctx context.Context, kind entities.FileKind, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(s.Path(kind, name))
}

// Remove apaga o arquivo; ausência é tratada como sucesso
func (s *DiskStorage) Remove(ctx context.Context, kind entities.FileKind, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(s.Path(kind, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
