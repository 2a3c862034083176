package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/adboard-backend/internal/domain/errors"
	"github.com/rafabene/adboard-backend/internal/domain/policy"
	"github.com/rafabene/adboard-backend/internal/domain/ports"
	"github.com/rafabene/adboard-backend/internal/domain/repositories"
)

const advertListCacheKey = "ads:all"

// AdvertSummary é a visão resumida de um anúncio usada nas listagens
type AdvertSummary struct {
	ID       int64  `json:"id"`
	AuthorID int64  `json:"authorId"`
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	HasImage bool   `json:"hasImage"`
}

// SummaryOf resume um anúncio
func SummaryOf(advert *entities.Advert) AdvertSummary {
	return AdvertSummary{
		ID:       advert.ID,
		AuthorID: advert.AuthorID,
		Title:    advert.Title,
		Price:    advert.Price,
		HasImage: advert.HasImage(),
	}
}

// AdvertService contém a lógica de negócio para anúncios
type AdvertService struct {
	adverts  repositories.AdvertRepository
	comments repositories.CommentRepository
	users    repositories.UserRepository
	files    *FileStore
	uow      ports.UnitOfWork
	cache    ports.Cache
	cacheTTL time.Duration
	events   ports.EventPublisher
	logger   ports.Logger
}

// NewAdvertService cria um novo AdvertService
func NewAdvertService(
	adverts repositories.AdvertRepository,
	comments repositories.CommentRepository,
	users repositories.UserRepository,
	files *FileStore,
	uow ports.UnitOfWork,
	cache ports.Cache,
	cacheTTL time.Duration,
	events ports.EventPublisher,
	logger ports.Logger,
) *AdvertService {
	return &AdvertService{
		adverts:  adverts,
		comments: comments,
		users:    users,
		files:    files,
		uow:      uow,
		cache:    cache,
		cacheTTL: cacheTTL,
		events:   events,
		logger:   logger,
	}
}

// Create grava a imagem e o anúncio numa única transação com author = caller
func (s *AdvertService) Create(ctx context.Context, caller *entities.Caller, props entities.AdvertProperties, upload *entities.Upload) (*entities.Advert, error) {
	author, err := resolveCaller(ctx, s.users, caller)
	if err != nil {
		return nil, err
	}

	advert := &entities.Advert{AuthorID: author.ID}
	advert.Apply(props)
	if err := advert.Validate(); err != nil {
		return nil, domainerrors.NewValidationError(err, domainerrors.ErrInvalidAdvert.Error())
	}

	s.logger.Info("creating advert", "author", author.Username, "title", advert.Title)

	var image *entities.StoredFile
	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		stored, err := s.files.Store(txCtx, entities.FileKindAdvertImage, upload)
		if err != nil {
			return err
		}
		image = stored

		advert.ImageID = &stored.ID
		return s.adverts.Create(txCtx, advert)
	})
	if err != nil {
		// o registro do arquivo foi desfeito pelo rollback; os bytes não
		if image != nil {
			_ = s.files.Delete(ctx, image)
		}
		s.logger.Error("failed to create advert", "author", author.Username, "error", err)
		return nil, err
	}

	advert.Author = author
	advert.Image = image

	s.invalidateList(ctx)
	s.publish(ctx, ports.EventAdvertCreated, advert)
	s.logger.Info("advert created", "id", advert.ID, "author", author.Username)

	return advert, nil
}

// Get busca um anúncio; leitura não exige autenticação
func (s *AdvertService) Get(ctx context.Context, id int64) (*entities.Advert, error) {
	advert, err := s.adverts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if advert == nil {
		return nil, domainerrors.ErrAdvertNotFound
	}
	return advert, nil
}

// List retorna todos os anúncios, usando o cache quando disponível
func (s *AdvertService) List(ctx context.Context) ([]AdvertSummary, error) {
	var cached []AdvertSummary
	found, err := s.cache.Get(ctx, advertListCacheKey, &cached)
	if err != nil {
		s.logger.Warn("advert list cache read failed", "error", err)
	} else if found {
		return cached, nil
	}

	adverts, err := s.adverts.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	summaries := summarize(adverts)

	if err := s.cache.Set(ctx, advertListCacheKey, summaries, s.cacheTTL); err != nil {
		s.logger.Warn("advert list cache write failed", "error", err)
	}
	return summaries, nil
}

// ListMine retorna os anúncios do chamador
func (s *AdvertService) ListMine(ctx context.Context, caller *entities.Caller) ([]AdvertSummary, error) {
	user, err := resolveCaller(ctx, s.users, caller)
	if err != nil {
		return nil, err
	}

	adverts, err := s.adverts.FindByAuthorID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return summarize(adverts), nil
}

// Update altera título, descrição e preço
func (s *AdvertService) Update(ctx context.Context, caller *entities.Caller, id int64, props entities.AdvertProperties) (*entities.Advert, error) {
	advert, err := s.authorize(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	advert.Apply(props)
	if err := advert.Validate(); err != nil {
		return nil, domainerrors.NewValidationError(err, domainerrors.ErrInvalidAdvert.Error())
	}

	if err := s.adverts.Update(ctx, advert); err != nil {
		return nil, fmt.Errorf("update advert %d: %w", id, err)
	}

	s.invalidateList(ctx)
	s.publish(ctx, ports.EventAdvertUpdated, advert)
	s.logger.Info("advert updated", "id", id, "by", callerName(caller))

	return advert, nil
}

// UpdateImage substitui (ou cria) a imagem do anúncio com a linha bloqueada
// e devolve os bytes enviados.
func (s *AdvertService) UpdateImage(ctx context.Context, caller *entities.Caller, id int64, upload *entities.Upload) ([]byte, error) {
	if _, err := s.authorize(ctx, caller, id); err != nil {
		return nil, err
	}

	var advert *entities.Advert
	var created, previous, replaced *entities.StoredFile
	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		locked, err := s.adverts.FindByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if locked == nil {
			return domainerrors.ErrAdvertNotFound
		}
		advert = locked

		if locked.HasImage() && locked.Image != nil {
			previous = locked.Image
			file, err := s.files.Replace(txCtx, locked.Image, upload)
			if err != nil {
				return err
			}
			replaced = file
			locked.Image = file
			return nil
		}

		stored, err := s.files.Store(txCtx, entities.FileKindAdvertImage, upload)
		if err != nil {
			return err
		}
		created = stored
		locked.ImageID = &stored.ID
		locked.Image = stored
		return s.adverts.UpdateImage(txCtx, locked.ID, stored.ID)
	})
	s.files.FinishReplace(ctx, previous, replaced, err == nil)
	if err != nil {
		if created != nil {
			_ = s.files.Delete(ctx, created)
		}
		s.logger.Error("failed to update advert image", "id", id, "error", err)
		return nil, err
	}

	s.invalidateList(ctx)
	s.publish(ctx, ports.EventAdvertImageUpdated, advert)
	s.logger.Info("advert image updated", "id", id, "size", upload.Size())

	return upload.Data, nil
}

// Image abre a imagem do anúncio para download
func (s *AdvertService) Image(ctx context.Context, id int64) (*entities.StoredFile, io.ReadCloser, error) {
	advert, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !advert.HasImage() || advert.Image == nil {
		return nil, nil, domainerrors.ErrImageNotFound
	}

	rc, err := s.files.Open(ctx, advert.Image)
	if err != nil {
		return nil, nil, err
	}
	return advert.Image, rc, nil
}

// Delete remove comentários, anúncio e registro da imagem numa transação;
// os bytes da imagem são apagados após o commit.
func (s *AdvertService) Delete(ctx context.Context, caller *entities.Caller, id int64) error {
	advert, err := s.authorize(ctx, caller, id)
	if err != nil {
		return err
	}

	var removedComments int64
	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		n, err := s.comments.DeleteByAdvertID(txCtx, id)
		if err != nil {
			return err
		}
		removedComments = n

		if err := s.adverts.Delete(txCtx, id); err != nil {
			return err
		}

		if advert.Image != nil {
			return s.files.DeleteRecord(txCtx, advert.Image)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to delete advert", "id", id, "error", err)
		return fmt.Errorf("delete advert %d: %w", id, err)
	}

	s.invalidateList(ctx)
	s.publish(ctx, ports.EventAdvertDeleted, advert)
	s.logger.Info("advert deleted", "id", id, "comments", removedComments, "by", callerName(caller))

	if advert.Image != nil {
		return s.files.Delete(ctx, advert.Image)
	}
	return nil
}

// authorize carrega o anúncio e aplica a checagem de autoria
func (s *AdvertService) authorize(ctx context.Context, caller *entities.Caller, id int64) (*entities.Advert, error) {
	advert, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if policy.IsForbidden(caller, advert.AuthorUsername()) {
		s.logger.Warn("forbidden advert mutation", "id", id, "caller", callerName(caller), "author", advert.AuthorUsername())
		return nil, domainerrors.ErrForbidden
	}
	return advert, nil
}

func (s *AdvertService) invalidateList(ctx context.Context) {
	if err := s.cache.Delete(ctx, advertListCacheKey); err != nil {
		s.logger.Warn("advert list cache invalidation failed", "error", err)
	}
}

func (s *AdvertService) publish(ctx context.Context, eventType ports.EventType, advert *entities.Advert) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, ports.AdvertEvent{
		Type:     eventType,
		AdvertID: advert.ID,
		Author:   advert.AuthorUsername(),
		Title:    advert.Title,
	})
}

func summarize(adverts []*entities.Advert) []AdvertSummary {
	summaries := make([]AdvertSummary, len(adverts))
	for i, a := range adverts {
		summaries[i] = SummaryOf(a)
	}
	return summaries
}
