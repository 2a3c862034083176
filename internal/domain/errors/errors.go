package errors

import "errors"

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções ficam em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound          = errors.New("error.user_not_found")
	ErrAdvertNotFound        = errors.New("error.advert_not_found")
	ErrCommentNotFound       = errors.New("error.comment_not_found")
	ErrImageNotFound         = errors.New("error.image_not_found")
	ErrUsernameAlreadyExists = errors.New("error.username_already_exists")
	ErrInvalidCredentials    = errors.New("error.invalid_credentials")
	ErrUnauthorized          = errors.New("error.unauthorized")
	ErrForbidden             = errors.New("error.forbidden")
)

// Domain errors
var (
	ErrInvalidPhone   = errors.New("error.invalid_phone")
	ErrInvalidAdvert  = errors.New("error.invalid_advert")
	ErrInvalidComment = errors.New("error.invalid_comment")
	ErrInvalidUser    = errors.New("error.invalid_user")
	ErrEmptyUpload    = errors.New("error.empty_upload")
	ErrFileUpload     = errors.New("error.file_upload")
	ErrFileDelete     = errors.New("error.file_delete")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base vem de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeConflict     = "/problems/conflict"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeForbidden    = "/problems/forbidden"
	ProblemTypeInternal     = "/problems/internal-error"
	ProblemTypeBadRequest   = "/problems/bad-request"
)

// DomainError representa um erro de domínio com contexto adicional
type DomainError struct {
	Type    string
	Title   string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewValidationError cria um DomainError de validação
func NewValidationError(cause error, message string) *DomainError {
	return &DomainError{
		Type:    ProblemTypeValidation,
		Title:   "error.validation.title",
		Message: message,
		Err:     cause,
	}
}

// UploadError indica que os bytes de um arquivo não puderam ser gravados
type UploadError struct {
	Path string
	Err  error
}

func (e *UploadError) Error() string {
	return ErrFileUpload.Error() + " (" + e.Path + "): " + e.Err.Error()
}

func (e *UploadError) Unwrap() []error {
	return []error{ErrFileUpload, e.Err}
}

// DeleteError indica que os bytes de um arquivo não puderam ser removidos
type DeleteError struct {
	Path string
	Err  error
}

func (e *DeleteError) Error() string {
	return ErrFileDelete.Error() + " (" + e.Path + "): " + e.Err.Error()
}

func (e *DeleteError) Unwrap() []error {
	return []error{ErrFileDelete, e.Err}
}
