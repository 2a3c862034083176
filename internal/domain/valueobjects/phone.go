package valueobjects

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidPhone = errors.New("invalid phone format")
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	phoneNoise   = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

// Phone é um value object que garante que telefones sejam sempre válidos.
// O valor zero representa "telefone não informado".
type Phone struct {
	value string
}

// NewPhone cria um novo Phone validado.
// Espaços, hífens e parênteses são removidos antes da validação.
func NewPhone(phone string) (Phone, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return Phone{}, nil
	}

	normalized := phoneNoise.Replace(phone)
	if !phonePattern.MatchString(normalized) {
		return Phone{}, ErrInvalidPhone
	}

	return Phone{value: normalized}, nil
}

// MustPhone é como NewPhone mas entra em pânico para valores inválidos
func MustPhone(phone string) Phone {
	p, err := NewPhone(phone)
	if err != nil {
		panic(err)
	}
	return p
}

// String retorna o valor do telefone
func (p Phone) String() string {
	return p.value
}

// IsZero indica que nenhum telefone foi informado
func (p Phone) IsZero() bool {
	return p.value == ""
}
