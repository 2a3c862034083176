package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/adboard-backend/internal/domain/errors"
)

// parseMultipart força o parse do formulário para que erros de limite
// (http.MaxBytesError) não sejam engolidos por c.PostForm
func parseMultipart(c *gin.Context, maxMemory int64) error {
	if c.Request.MultipartForm != nil {
		return nil
	}
	return c.Request.ParseMultipartForm(maxMemory)
}

// readUpload lê uma parte de arquivo do formulário multipart
func readUpload(c *gin.Context, field string) (*entities.Upload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, domainerrors.ErrEmptyUpload
		}
		return nil, err
	}

	data, err := readPart(header)
	if err != nil {
		return nil, err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return &entities.Upload{
		FileName:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// bindProperties lê a parte "properties" (campo de texto ou arquivo JSON) e valida
func bindProperties(c *gin.Context, field string, target any) error {
	raw, err := propertiesPart(c, field)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode %s: %w", field, err)
	}
	return binding.Validator.ValidateStruct(target)
}

func propertiesPart(c *gin.Context, field string) ([]byte, error) {
	form := c.Request.MultipartForm
	if form == nil {
		return nil, http.ErrNotMultipart
	}
	if values := form.Value[field]; len(values) > 0 {
		return []byte(values[0]), nil
	}
	if files := form.File[field]; len(files) > 0 {
		return readPart(files[0])
	}
	return nil, fmt.Errorf("missing multipart part %q", field)
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
