package dto

import "github.com/rafabene/adboard-backend/internal/domain/entities"

// CreateOrUpdateComment é o corpo de criação e edição de comentário
type CreateOrUpdateComment struct {
	Text string `json:"text" binding:"required,min=8,max=64"`
}

// CommentDto representa um comentário
type CommentDto struct {
	PK              int64  `json:"pk"`
	Author          int64  `json:"author"`
	AuthorFirstName string `json:"authorFirstName"`
	AuthorImage     string `json:"authorImage,omitempty"`
	CreatedAt       int64  `json:"createdAt"` // epoch em milissegundos
	Text            string `json:"text"`
}

// ToCommentDto converte uma entidade Comment para CommentDto
func ToCommentDto(comment *entities.Comment) CommentDto {
	response := CommentDto{
		PK:        comment.ID,
		Author:    comment.AuthorID,
		CreatedAt: comment.CreatedAt.UnixMilli(),
		Text:      comment.Text,
	}
	if comment.Author != nil {
		response.AuthorFirstName = comment.Author.FirstName
		response.AuthorImage = UserImageURL(comment.Author)
	}
	return response
}

// ToCommentDtos converte uma lista de comentários
func ToCommentDtos(comments []*entities.Comment) []CommentDto {
	responses := make([]CommentDto, len(comments))
	for i, comment := range comments {
		responses[i] = ToCommentDto(comment)
	}
	return responses
}
