package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/rafabene/adboard-backend/internal/domain/errors"
	"github.com/rafabene/adboard-backend/internal/domain/ports"
	"github.com/rafabene/adboard-backend/internal/handlers/dto"
	"github.com/rafabene/adboard-backend/internal/handlers/middleware"
)

var notFoundErrors = []error{
	domainerrors.ErrUserNotFound,
	domainerrors.ErrAdvertNotFound,
	domainerrors.ErrCommentNotFound,
	domainerrors.ErrImageNotFound,
}

// respondError converte erros de serviço em respostas RFC 7807
func respondError(c *gin.Context, logger ports.Logger, err error) {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			dto.Problem(c, dto.NotFoundErrorResponseI18n(c, target.Error()))
			return
		}
	}

	var maxBytesErr *http.MaxBytesError
	var domainErr *domainerrors.DomainError

	switch {
	case errors.Is(err, domainerrors.ErrForbidden):
		dto.Problem(c, dto.ForbiddenErrorResponseI18n(c, "error.forbidden.detail"))

	case errors.Is(err, domainerrors.ErrUnauthorized), errors.Is(err, domainerrors.ErrInvalidCredentials):
		c.Header("WWW-Authenticate", `Basic realm="adboard", Bearer`)
		dto.Problem(c, dto.UnauthorizedErrorResponseI18n(c, err.Error()))

	case errors.As(err, &maxBytesErr):
		dto.Problem(c, dto.NewErrorResponseI18n(
			c,
			domainerrors.ProblemTypeBadRequest,
			"error.bad_request.title",
			"error.upload_too_large",
			http.StatusRequestEntityTooLarge,
			map[string]any{"Limit": maxBytesErr.Limit},
		))

	case errors.As(err, &domainErr):
		dto.Problem(c, dto.NewErrorResponseI18n(
			c,
			domainErr.Type,
			domainErr.Title,
			domainErr.Message,
			http.StatusBadRequest,
		))

	case errors.Is(err, domainerrors.ErrEmptyUpload):
		dto.Problem(c, dto.BadRequestErrorResponseI18n(c, domainerrors.ErrEmptyUpload.Error()))

	case errors.Is(err, domainerrors.ErrFileUpload), errors.Is(err, domainerrors.ErrFileDelete):
		logger.Error("file storage failure", "path", c.Request.URL.Path, "error", err)
		detailKey := domainerrors.ErrFileUpload.Error()
		if errors.Is(err, domainerrors.ErrFileDelete) {
			detailKey = domainerrors.ErrFileDelete.Error()
		}
		dto.Problem(c, dto.InternalErrorResponseI18n(c, detailKey))

	default:
		logger.Error("unexpected error",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(middleware.RequestIDContextKey),
			"error", err,
		)
		dto.Problem(c, dto.InternalErrorResponseI18n(c, "error.internal.detail"))
	}
}

// respondBindingError responde 400 para corpo inválido, com erros por campo quando houver
func respondBindingError(c *gin.Context, logger ports.Logger, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		respondError(c, logger, err)
		return
	}

	if fieldErrors := dto.ValidationErrorsFrom(c, err); fieldErrors != nil {
		dto.Problem(c, dto.ValidationErrorResponseI18n(c, fieldErrors))
		return
	}
	dto.Problem(c, dto.BadRequestErrorResponseI18n(c, "error.invalid_request"))
}

// parseID lê um parâmetro de rota numérico; responde 400 quando inválido
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		dto.Problem(c, dto.BadRequestErrorResponseI18n(c, "error.invalid_id", map[string]any{"Value": raw}))
		return 0, false
	}
	return id, true
}
