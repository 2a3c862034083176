package entities

import (
	"errors"
	"time"
)

// Advert representa um anúncio publicado por um usuário
type Advert struct {
	ID          int64
	Title       string
	Description string
	Price       int64
	AuthorID    int64
	Author      *User
	ImageID     *string
	Image       *StoredFile
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AdvertProperties são os campos mutáveis de um anúncio
type AdvertProperties struct {
	Title       string
	Description string
	Price       int64
}

// AuthorUsername retorna o username do autor ou "" se não carregado
func (a *Advert) AuthorUsername() string {
	if a.Author == nil {
		return ""
	}
	return a.Author.Username
}

// HasImage indica se o anúncio possui imagem
func (a *Advert) HasImage() bool {
	return a.ImageID != nil && *a.ImageID != ""
}

// Apply aplica apenas os campos permitidos; autor e id nunca mudam
func (a *Advert) Apply(props AdvertProperties) {
	a.Title = props.Title
	a.Description = props.Description
	a.Price = props.Price
}

// Validate valida regras de negócio da entidade Advert
func (a *Advert) Validate() error {
	if len(a.Title) < 4 || len(a.Title) > 32 {
		return errors.New("title must be between 4 and 32 characters")
	}

	if len(a.Description) < 8 || len(a.Description) > 64 {
		return errors.New("description must be between 8 and 64 characters")
	}

	if a.Price < 0 || a.Price > 10000000 {
		return errors.New("price must be between 0 and 10000000")
	}

	return nil
}
