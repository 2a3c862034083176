package dto

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ValidationErrorsFrom converte erros do validator em erros de campo traduzidos.
// Retorna nil quando err não é um validator.ValidationErrors (ex.: JSON malformado).
func ValidationErrorsFrom(c *gin.Context, err error) []ValidationError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	result := make([]ValidationError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		field := jsonName(fe.Field())
		params := map[string]any{"Field": field, "Param": fe.Param()}

		key := "validation." + fe.Tag()
		message := T(c, key, params)
		if message == key {
			message = T(c, "validation.invalid", params)
		}

		result = append(result, ValidationError{
			Field:   field,
			Message: message,
			Tag:     fe.Tag(),
			Value:   fmt.Sprintf("%v", fe.Value()),
		})
	}
	return result
}

// jsonName converte o nome do campo Go para o nome camelCase do JSON
func jsonName(field string) string {
	r, size := utf8.DecodeRuneInString(field)
	if r == utf8.RuneError {
		return field
	}
	return string(unicode.ToLower(r)) + field[size:]
}
