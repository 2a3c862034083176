package entities

import (
	"path/filepath"
	"strings"
	"time"
)

// FileKind discrimina a que tipo de recurso um arquivo pertence
type FileKind string

const (
	FileKindAdvertImage FileKind = "advert_image"
	FileKindAvatar      FileKind = "avatar"
)

// IsValid verifica se o tipo de arquivo é conhecido
func (k FileKind) IsValid() bool {
	return k == FileKindAdvertImage || k == FileKindAvatar
}

// StoredFile são os metadados de um arquivo gravado em disco.
// Os bytes ficam em {diretório do Kind}/{ID}.{Extension}.
type StoredFile struct {
	ID          string
	Kind        FileKind
	FileName    string
	ContentType string
	Extension   string
	Size        int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StorageName retorna o nome do arquivo físico
func (f *StoredFile) StorageName() string {
	if f.Extension == "" {
		return f.ID
	}
	return f.ID + "." + f.Extension
}

// ExtensionOf extrai a extensão (sem ponto, minúscula) de um nome de arquivo
func ExtensionOf(filename string) string {
	ext := filepath.Ext(filepath.Base(filename))
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Upload é um arquivo recebido do cliente
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Size retorna o tamanho em bytes do upload
func (u *Upload) Size() int64 {
	return int64(len(u.Data))
}
