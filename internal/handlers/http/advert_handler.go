package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/adboard-backend/internal/domain/ports"
	"github.com/rafabene/adboard-backend/internal/handlers/dto"
	"github.com/rafabene/adboard-backend/internal/handlers/middleware"
	"github.com/rafabene/adboard-backend/internal/services"
)

// AdvertHandler lida com requisições HTTP relacionadas a anúncios
type AdvertHandler struct {
	advertService *services.AdvertService
	maxMemory     int64
	logger        ports.Logger
}

// NewAdvertHandler cria um novo AdvertHandler
func NewAdvertHandler(advertService *services.AdvertService, maxMemory int64, logger ports.Logger) *AdvertHandler {
	return &AdvertHandler{
		advertService: advertService,
		maxMemory:     maxMemory,
		logger:        logger,
	}
}

// List godoc
// @Summary      Lista anúncios
// @Tags         ads
// @Produce      json
// @Success      200  {object}  dto.ResponseWrapper[dto.AdsDto]
// @Router       /ads [get]
func (h *AdvertHandler) List(c *gin.Context) {
	summaries, err := h.advertService.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.Wrap(dto.ToAdsDtos(summaries)))
}

// ListMine godoc
// @Summary      Lista anúncios do usuário autenticado
// @Tags         ads
// @Produce      json
// @Security     BasicAuth
// @Security     BearerAuth
// @Success      200  {object}  dto.ResponseWrapper[dto.AdsDto]
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /ads/me [get]
func (h *AdvertHandler) ListMine(c *gin.Context) {
	summaries, err := h.advertService.ListMine(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.Wrap(dto.ToAdsDtos(summaries)))
}

// Get godoc
// @Summary      Busca um anúncio
// @Tags         ads
// @Produce      json
// @Param        id   path      int  true  "Advert ID"
// @Success      200  {object}  dto.FullAdsDto
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /ads/{id} [get]
func (h *AdvertHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	advert, err := h.advertService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFullAdsDto(advert))
}

// Create godoc
// @Summary      Cria um anúncio
// @Tags         ads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BasicAuth
// @Security     BearerAuth
// @Param        properties  formData  string  true  "CreateAdsDto em JSON"
// @Param        image       formData  file    true  "Imagem do anúncio"
// @Success      201  {object}  dto.AdsDto
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Router       /ads [post]
func (h *AdvertHandler) Create(c *gin.Context) {
	if err := parseMultipart(c, h.maxMemory); err != nil {
		respondBindingError(c, h.logger, err)
		return
	}

	var req dto.CreateAdsRequest
	if err := bindProperties(c, "properties", &req); err != nil {
		respondBindingError(c, h.logger, err)
		return
	}

	upload, err := readUpload(c, "image")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	advert, err := h.advertService.Create(c.Request.Context(), middleware.CallerFrom(c), req.Properties(), upload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAdsDto(services.SummaryOf(advert)))
}

// Update godoc
// @Summary      Atualiza título, descrição e preço
// @Tags         ads
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Security     BearerAuth
// @Param        id    path      int                   true  "Advert ID"
// @Param        body  body      dto.CreateAdsRequest  true  "Novas propriedades"
// @Success      200  {object}  dto.AdsDto
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /ads/{id} [patch]
func (h *AdvertHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateAdsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, h.logger, err)
		return
	}

	advert, err := h.advertService.Update(c.Request.Context(), middleware.CallerFrom(c), id, req.Properties())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAdsDto(services.SummaryOf(advert)))
}

// UpdateImage godoc
// @Summary      Substitui a imagem do anúncio
// @Description  Responde com os próprios bytes enviados.
// @Tags         ads
// @Accept       multipart/form-data
// @Produce      octet-stream
// @Security     BasicAuth
// @Security     BearerAuth
// @Param        id     path      int   true  "Advert ID"
// @Param        image  formData  file  true  "Nova imagem"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /ads/{id}/image [patch]
func (h *AdvertHandler) UpdateImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := parseMultipart(c, h.maxMemory); err != nil {
		respondBindingError(c, h.logger, err)
		return
	}

	upload, err := readUpload(c, "image")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	data, err := h.advertService.UpdateImage(c.Request.Context(), middleware.CallerFrom(c), id, upload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Data(http.StatusOK, upload.ContentType, data)
}

// Image godoc
// @Summary      Baixa a imagem do anúncio
// @Tags         ads
// @Produce      octet-stream
// @Param        id   path      int  true  "Advert ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /ads/{id}/image [get]
func (h *AdvertHandler) Image(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	file, content, err := h.advertService.Image(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer content.Close()

	c.DataFromReader(http.StatusOK, file.Size, file.ContentType, content, nil)
}

// Delete godoc
// @Summary      Remove o anúncio, seus comentários e sua imagem
// @Tags         ads
// @Security     BasicAuth
// @Security     BearerAuth
// @Param        id   path  int  true  "Advert ID"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /ads/{id} [delete]
func (h *AdvertHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.advertService.Delete(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
