package entities

import "time"

// Comment representa um comentário em um anúncio
type Comment struct {
	ID        int64
	Text      string
	AdvertID  int64
	AuthorID  int64
	Author    *User
	CreatedAt time.Time
}

// AuthorUsername retorna o username do autor ou "" se não carregado
func (c *Comment) AuthorUsername() string {
	if c.Author == nil {
		return ""
	}
	return c.Author.Username
}

// BelongsTo verifica se o comentário pertence ao anúncio informado
func (c *Comment) BelongsTo(advertID int64) bool {
	return c.AdvertID == advertID
}
