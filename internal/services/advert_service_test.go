package services_test

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/adboard-backend/internal/domain/errors"
	"github.com/rafabene/adboard-backend/internal/domain/ports"
)

var _ = Describe("AdvertService", func() {
	var (
		e     *env
		ctx   context.Context
		alice *entities.Caller
		bob   *entities.Caller
		admin *entities.Caller
		props entities.AdvertProperties
	)

	BeforeEach(func() {
		e = newEnv()
		ctx = context.Background()
		alice = e.register("alice", entities.RoleUser)
		bob = e.register("bob1", entities.RoleUser)
		admin = e.register("root", entities.RoleAdmin)
		props = entities.AdvertProperties{Title: "Bicicleta", Description: "aro 29, revisada", Price: 1500}
	})

	Describe("Create", func() {
		It("grava o anúncio com o chamador como autor e a imagem vinculada", func() {
			advert, err := e.adverts.Create(ctx, alice, props, jpeg(64))
			Expect(err).NotTo(HaveOccurred())
			Expect(advert.ID).NotTo(BeZero())
			Expect(advert.AuthorUsername()).To(Equal("alice"))
			Expect(advert.HasImage()).To(BeTrue())
			Expect(advert.Image.Extension).To(Equal("jpeg"))
			Expect(e.filesIn("images")).To(HaveLen(1))
			Expect(e.events.types()).To(ConsistOf(ports.EventAdvertCreated))
		})

		It("exige chamador autenticado", func() {
			_, err := e.adverts.Create(ctx, nil, props, jpeg(8))
			Expect(err).To(MatchError(domainerrors.ErrUnauthorized))
			Expect(e.filesIn("images")).To(BeEmpty())
		})

		It("rejeita propriedades inválidas sem gravar arquivo", func() {
			props.Title = "ab"
			_, err := e.adverts.Create(ctx, alice, props, jpeg(8))

			var domainErr *domainerrors.DomainError
			Expect(err).To(BeAssignableToTypeOf(domainErr))
			Expect(e.filesIn("images")).To(BeEmpty())
		})

		It("rejeita upload vazio", func() {
			_, err := e.adverts.Create(ctx, alice, props, &entities.Upload{FileName: "x.png"})
			Expect(err).To(MatchError(domainerrors.ErrEmptyUpload))
		})

		It("retorna UploadError quando o disco falha e não salva o anúncio", func() {
			e.blobs.failWrite = errDiskFull

			_, err := e.adverts.Create(ctx, alice, props, jpeg(8))
			Expect(err).To(MatchError(domainerrors.ErrFileUpload))
			Expect(err).To(MatchError(errDiskFull))

			list, err := e.adverts.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(BeEmpty())
		})
	})

	Describe("leitura", func() {
		It("permite leitura anônima por id", func() {
			created, err := e.adverts.Create(ctx, alice, props, jpeg(8))
			Expect(err).NotTo(HaveOccurred())

			advert, err := e.adverts.Get(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(advert.Title).To(Equal("Bicicleta"))
		})

		It("retorna NotFound para id inexistente", func() {
			_, err := e.adverts.Get(ctx, 404)
			Expect(err).To(MatchError(domainerrors.ErrAdvertNotFound))
		})

		It("lista apenas os anúncios do chamador em ListMine", func() {
			_, err := e.adverts.Create(ctx, alice, props, jpeg(8))
			Expect(err).NotTo(HaveOccurred())
			_, err = e.adverts.Create(ctx, bob, props, jpeg(8))
			Expect(err).NotTo(HaveOccurred())

			mine, err := e.adverts.ListMine(ctx, alice)
			Expect(err).NotTo(HaveOccurred())
			Expect(mine).To(HaveLen(1))

			_, err = e.adverts.ListMine(ctx, nil)
			Expect(err).To(MatchError(domainerrors.ErrUnauthorized))

			_, err = e.adverts.ListMine(ctx, &entities.Caller{Username: "ghost"})
			Expect(err).To(MatchError(domainerrors.ErrUnauthorized))
		})

		It("serve a listagem do cache e invalida após mudanças", func() {
			_, err := e.adverts.Create(ctx, alice, props, jpeg(8))
			Expect(err).NotTo(HaveOccurred())

			first, err := e.adverts.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(first).To(HaveLen(1))
			Expect(e.cache.size()).To(Equal(1))

			second, err := e.adverts.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
			Expect(e.cache.hits).To(Equal(1))

			_, err = e.adverts.Create(ctx, bob, props, jpeg(8))
			Expect(err).NotTo(HaveOccurred())
			Expect(e.cache.size()).To(BeZero())

			third, err := e.adverts.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(third).To(HaveLen(2))
		})
	})

	Describe("Update", func() {
		var advert *entities.Advert

		BeforeEach(func() {
			var err error
			advert, err = e.adverts.Create(ctx, alice, props, jpeg(8))
			Expect(err).NotTo(HaveOccurred())
		})

		It("altera apenas título, descrição e preço", func() {
			updated, err := e.adverts.Update(ctx, alice, advert.ID, entities.AdvertProperties{
				Title: "Bicicleta nova", Description: "nunca usada, na caixa", Price: 3000,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Price).To(Equal(int64(3000)))
			Expect(updated.AuthorUsername()).To(Equal("alice"))
			Expect(*updated.ImageID).To(Equal(*advert.ImageID))
		})

		It("proíbe outro usuário e permite admin", func() {
			_, err := e.adverts.Update(ctx, bob, advert.ID, props)
			Expect(err).To(MatchError(domainerrors.ErrForbidden))

			_, err = e.adverts.Update(ctx, admin, advert.ID, props)
			Expect(err).NotTo(HaveOccurred())
		})

		It("checa existência antes da autoria", func() {
			_, err := e.adverts.Update(ctx, bob, 999, props)
			Expect(err).To(MatchError(domainerrors.ErrAdvertNotFound))
		})
	})

	Describe("UpdateImage", func() {
		var advert *entities.Advert

		BeforeEach(func() {
			var err error
			advert, err = e.adverts.Create(ctx, alice, props, jpeg(8))
			Expect(err).NotTo(HaveOccurred())
		})

		It("sobrescreve no mesmo id e devolve os bytes enviados", func() {
			upload := jpeg(128)
			echoed, err := e.adverts.UpdateImage(ctx, alice, advert.ID, upload)
			Expect(err).NotTo(HaveOccurred())
			Expect(echoed).To(Equal(upload.Data))

			file, rc, err := e.adverts.Image(ctx, advert.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(file.ID).To(Equal(*advert.ImageID))
			Expect(file.Size).To(Equal(int64(128)))
			Expect(readAll(rc)).To(Equal(upload.Data))
			Expect(e.filesIn("images")).To(HaveLen(1))
		})

		It("remove o arquivo antigo quando a extensão muda", func() {
			png := &entities.Upload{FileName: "shot.PNG", ContentType: "image/png", Data: []byte("png-bytes")}
			_, err := e.adverts.UpdateImage(ctx, alice, advert.ID, png)
			Expect(err).NotTo(HaveOccurred())

			files := e.filesIn("images")
			Expect(files).To(HaveLen(1))
			Expect(files[0]).To(HaveSuffix(*advert.ImageID + ".png"))
		})

		It("proíbe quem não é o autor", func() {
			_, err := e.adverts.UpdateImage(ctx, bob, advert.ID, jpeg(8))
			Expect(err).To(MatchError(domainerrors.ErrForbidden))
		})

		It("mantém os metadados quando a escrita falha", func() {
			e.blobs.failWrite = errDiskFull
			_, err := e.adverts.UpdateImage(ctx, alice, advert.ID, jpeg(99))
			Expect(err).To(MatchError(domainerrors.ErrFileUpload))

			e.blobs.failWrite = nil
			file, rc, err := e.adverts.Image(ctx, advert.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(file.Size).To(Equal(int64(8)))
			Expect(readAll(rc)).To(HaveLen(8))
		})
	})

	Describe("Delete", func() {
		var advert *entities.Advert

		BeforeEach(func() {
			var err error
			advert, err = e.adverts.Create(ctx, alice, props, jpeg(8))
			Expect(err).NotTo(HaveOccurred())
		})

		DescribeTable("remove todos os comentários e o arquivo",
			func(n int) {
				for i := 0; i < n; i++ {
					_, err := e.comments.Create(ctx, bob, advert.ID, "ainda disponível?")
					Expect(err).NotTo(HaveOccurred())
				}

				Expect(e.adverts.Delete(ctx, alice, advert.ID)).To(Succeed())

				_, err := e.adverts.Get(ctx, advert.ID)
				Expect(err).To(MatchError(domainerrors.ErrAdvertNotFound))

				var remaining int64
				Expect(e.db.Table("comments").Where("advert_id = ?", advert.ID).Count(&remaining).Error).To(Succeed())
				Expect(remaining).To(BeZero())

				var files int64
				Expect(e.db.Table("stored_files").Count(&files).Error).To(Succeed())
				Expect(files).To(BeZero())
				Expect(e.filesIn("images")).To(BeEmpty())
			},
			Entry("sem comentários", 0),
			Entry("com um comentário", 1),
			Entry("com vários comentários", 5),
		)

		It("cenário alice/bob: bob é proibido, alice remove", func() {
			Expect(e.adverts.Delete(ctx, bob, advert.ID)).To(MatchError(domainerrors.ErrForbidden))
			Expect(e.filesIn("images")).To(HaveLen(1))

			Expect(e.adverts.Delete(ctx, alice, advert.ID)).To(Succeed())
			Expect(e.events.types()).To(ContainElement(ports.EventAdvertDeleted))
		})

		It("retorna DeleteError quando os bytes não podem ser removidos, com o registro já apagado", func() {
			e.blobs.failRemove = errDiskFull

			err := e.adverts.Delete(ctx, alice, advert.ID)
			Expect(err).To(MatchError(domainerrors.ErrFileDelete))

			_, err = e.adverts.Get(ctx, advert.ID)
			Expect(err).To(MatchError(domainerrors.ErrAdvertNotFound))
		})

		It("tolera arquivo já ausente", func() {
			for _, f := range e.filesIn("images") {
				Expect(e.blobs.BlobStorage.Remove(ctx, entities.FileKindAdvertImage, filepath.Base(f))).To(Succeed())
			}
			Expect(e.adverts.Delete(ctx, alice, advert.ID)).To(Succeed())
		})
	})
})
