package dto

import (
	"strconv"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
	"github.com/rafabene/adboard-backend/internal/services"
)

// CreateAdsRequest contém as propriedades de criação e atualização de anúncio
type CreateAdsRequest struct {
	Title       string `json:"title" binding:"required,min=4,max=32"`
	Description string `json:"description" binding:"required,min=8,max=64"`
	Price       *int64 `json:"price" binding:"required,gte=0,lte=10000000"`
}

// Properties converte a requisição nas propriedades de domínio
func (r CreateAdsRequest) Properties() entities.AdvertProperties {
	var price int64
	if r.Price != nil {
		price = *r.Price
	}
	return entities.AdvertProperties{
		Title:       r.Title,
		Description: r.Description,
		Price:       price,
	}
}

// AdsDto é a representação resumida de um anúncio
type AdsDto struct {
	PK     int64  `json:"pk"`
	Author int64  `json:"author"`
	Title  string `json:"title"`
	Price  int64  `json:"price"`
	Image  string `json:"image,omitempty"`
}

// FullAdsDto é a representação completa de um anúncio
type FullAdsDto struct {
	PK              int64  `json:"pk"`
	AuthorFirstName string `json:"authorFirstName"`
	AuthorLastName  string `json:"authorLastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Price           int64  `json:"price"`
	Image           string `json:"image,omitempty"`
}

// ResponseWrapper envolve listagens
type ResponseWrapper[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

// Wrap cria um ResponseWrapper garantindo results não-nulo
func Wrap[T any](items []T) ResponseWrapper[T] {
	if items == nil {
		items = []T{}
	}
	return ResponseWrapper[T]{Count: len(items), Results: items}
}

// AdvertImageURL retorna a URL de download da imagem de um anúncio
func AdvertImageURL(id int64) string {
	return "/ads/" + strconv.FormatInt(id, 10) + "/image"
}

// ToAdsDto converte um resumo de anúncio para AdsDto
func ToAdsDto(summary services.AdvertSummary) AdsDto {
	response := AdsDto{
		PK:     summary.ID,
		Author: summary.AuthorID,
		Title:  summary.Title,
		Price:  summary.Price,
	}
	if summary.HasImage {
		response.Image = AdvertImageURL(summary.ID)
	}
	return response
}

// ToAdsDtos converte uma lista de resumos
func ToAdsDtos(summaries []services.AdvertSummary) []AdsDto {
	responses := make([]AdsDto, len(summaries))
	for i, summary := range summaries {
		responses[i] = ToAdsDto(summary)
	}
	return responses
}

// ToFullAdsDto converte uma entidade Advert (com autor carregado) para FullAdsDto
func ToFullAdsDto(advert *entities.Advert) FullAdsDto {
	response := FullAdsDto{
		PK:          advert.ID,
		Title:       advert.Title,
		Description: advert.Description,
		Price:       advert.Price,
	}
	if author := advert.Author; author != nil {
		response.AuthorFirstName = author.FirstName
		response.AuthorLastName = author.LastName
		response.Email = author.Username
		response.Phone = author.Phone.String()
	}
	if advert.HasImage() {
		response.Image = AdvertImageURL(advert.ID)
	}
	return response
}
