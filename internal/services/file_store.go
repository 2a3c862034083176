package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/google/uuid"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/adboard-backend/internal/domain/errors"
	"github.com/rafabene/adboard-backend/internal/domain/ports"
	"github.com/rafabene/adboard-backend/internal/domain/repositories"
)

// FileStore mantém bytes em disco e metadados no banco em sincronia.
// Chamadas feitas com um contexto transacional participam da transação.
type FileStore struct {
	files  repositories.StoredFileRepository
	blobs  ports.BlobStorage
	logger ports.Logger
}

// NewFileStore cria um novo FileStore
func NewFileStore(files repositories.StoredFileRepository, blobs ports.BlobStorage, logger ports.Logger) *FileStore {
	return &FileStore{files: files, blobs: blobs, logger: logger}
}

// Store grava um novo arquivo com id gerado e persiste o registro.
// Se o registro não puder ser salvo, os bytes gravados são removidos.
func (s *FileStore) Store(ctx context.Context, kind entities.FileKind, upload *entities.Upload) (*entities.StoredFile, error) {
	if upload == nil || upload.Size() == 0 {
		return nil, domainerrors.ErrEmptyUpload
	}

	file := &entities.StoredFile{
		ID:          uuid.NewString(),
		Kind:        kind,
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
		Extension:   entities.ExtensionOf(upload.FileName),
		Size:        upload.Size(),
	}
	name := file.StorageName()

	if err := s.blobs.Write(ctx, kind, name, upload.Data); err != nil {
		s.logger.Error("failed to write file", "path", s.blobs.Path(kind, name), "error", err)
		return nil, &domainerrors.UploadError{Path: s.blobs.Path(kind, name), Err: err}
	}

	if err := s.files.Create(ctx, file); err != nil {
		s.discard(ctx, file)
		return nil, fmt.Errorf("save file record: %w", err)
	}

	s.logger.Debug("file stored", "id", file.ID, "kind", kind, "size", file.Size)
	return file, nil
}

// Replace sobrescreve os bytes de um arquivo existente mantendo o mesmo id.
// O registro é atualizado antes da escrita: se a escrita falhar, o rollback
// da transação do chamador devolve os metadados anteriores. Os bytes antigos
// só saem em FinishReplace, depois que a transação termina.
func (s *FileStore) Replace(ctx context.Context, existing *entities.StoredFile, upload *entities.Upload) (*entities.StoredFile, error) {
	if upload == nil || upload.Size() == 0 {
		return nil, domainerrors.ErrEmptyUpload
	}

	updated := *existing
	updated.FileName = upload.FileName
	updated.ContentType = upload.ContentType
	updated.Extension = entities.ExtensionOf(upload.FileName)
	updated.Size = upload.Size()
	newName := updated.StorageName()

	if err := s.files.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update file record: %w", err)
	}

	if err := s.blobs.Write(ctx, updated.Kind, newName, upload.Data); err != nil {
		s.logger.Error("failed to overwrite file", "path", s.blobs.Path(updated.Kind, newName), "error", err)
		if newName != existing.StorageName() {
			s.discard(ctx, &updated)
		}
		return nil, &domainerrors.UploadError{Path: s.blobs.Path(updated.Kind, newName), Err: err}
	}

	s.logger.Debug("file replaced", "id", updated.ID, "kind", updated.Kind, "size", updated.Size)
	return &updated, nil
}

// FinishReplace fecha uma substituição depois do fim da transação. Quando a
// extensão mudou, remove os bytes antigos se houve commit, ou os novos se
// houve rollback.
func (s *FileStore) FinishReplace(ctx context.Context, previous, replaced *entities.StoredFile, committed bool) {
	if previous == nil || replaced == nil || previous.StorageName() == replaced.StorageName() {
		return
	}
	if committed {
		s.discard(ctx, previous)
		return
	}
	s.discard(ctx, replaced)
}

// Delete remove os bytes do arquivo. Arquivo já ausente conta como sucesso.
func (s *FileStore) Delete(ctx context.Context, file *entities.StoredFile) error {
	name := file.StorageName()
	if err := s.blobs.Remove(ctx, file.Kind, name); err != nil {
		s.logger.Error("failed to delete file", "path", s.blobs.Path(file.Kind, name), "error", err)
		return &domainerrors.DeleteError{Path: s.blobs.Path(file.Kind, name), Err: err}
	}
	return nil
}

// DeleteRecord remove apenas os metadados
func (s *FileStore) DeleteRecord(ctx context.Context, file *entities.StoredFile) error {
	if err := s.files.Delete(ctx, file.ID); err != nil {
		return fmt.Errorf("delete file record: %w", err)
	}
	return nil
}

// Open abre os bytes para streaming; o chamador fecha o reader
func (s *FileStore) Open(ctx context.Context, file *entities.StoredFile) (io.ReadCloser, error) {
	rc, err := s.blobs.Open(ctx, file.Kind, file.StorageName())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("file record without bytes", "id", file.ID, "kind", file.Kind)
			return nil, domainerrors.ErrImageNotFound
		}
		return nil, err
	}
	return rc, nil
}

// discard remove bytes que não chegaram a ser referenciados
func (s *FileStore) discard(ctx context.Context, file *entities.StoredFile) {
	if err := s.blobs.Remove(ctx, file.Kind, file.StorageName()); err != nil {
		s.logger.Warn("failed to discard orphan file", "id", file.ID, "error", err)
	}
}
