package services_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/adboard-backend/internal/domain/errors"
)

var _ = Describe("CommentService", func() {
	var (
		e        *env
		ctx      context.Context
		alice    *entities.Caller
		bob      *entities.Caller
		admin    *entities.Caller
		advert1  *entities.Advert
		advert2  *entities.Advert
		comment5 *entities.Comment
	)

	BeforeEach(func() {
		e = newEnv()
		ctx = context.Background()
		alice = e.register("alice", entities.RoleUser)
		bob = e.register("bob1", entities.RoleUser)
		admin = e.register("root", entities.RoleAdmin)

		props := entities.AdvertProperties{Title: "Bicicleta", Description: "aro 29, revisada", Price: 1500}
		var err error
		advert1, err = e.adverts.Create(ctx, alice, props, jpeg(8))
		Expect(err).NotTo(HaveOccurred())
		advert2, err = e.adverts.Create(ctx, bob, props, jpeg(8))
		Expect(err).NotTo(HaveOccurred())

		comment5, err = e.comments.Create(ctx, alice, advert1.ID, "ainda disponível?")
		Expect(err).NotTo(HaveOccurred())
	})

	It("cria comentário com autor e data", func() {
		Expect(comment5.ID).NotTo(BeZero())
		Expect(comment5.AuthorUsername()).To(Equal("alice"))
		Expect(comment5.CreatedAt).NotTo(BeZero())
	})

	It("exige anúncio existente antes de exigir autenticação", func() {
		_, err := e.comments.Create(ctx, nil, 999, "oi, tudo bem?")
		Expect(err).To(MatchError(domainerrors.ErrAdvertNotFound))

		_, err = e.comments.Create(ctx, nil, advert1.ID, "oi, tudo bem?")
		Expect(err).To(MatchError(domainerrors.ErrUnauthorized))
	})

	It("rejeita texto em branco", func() {
		_, err := e.comments.Create(ctx, bob, advert1.ID, "   ")
		Expect(err).To(MatchError(ContainSubstring(domainerrors.ErrInvalidComment.Error())))
	})

	It("lista os comentários em ordem de criação", func() {
		_, err := e.comments.Create(ctx, bob, advert1.ID, "segunda mensagem")
		Expect(err).NotTo(HaveOccurred())

		list, err := e.comments.List(ctx, advert1.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(2))
		Expect(list[0].ID).To(Equal(comment5.ID))
		Expect(list[1].AuthorUsername()).To(Equal("bob1"))

		_, err = e.comments.List(ctx, 999)
		Expect(err).To(MatchError(domainerrors.ErrAdvertNotFound))
	})

	DescribeTable("comentário acessado pelo anúncio errado é NotFound, nunca Forbidden",
		func(caller func() *entities.Caller) {
			_, err := e.comments.Update(ctx, caller(), advert2.ID, comment5.ID, "texto novo")
			Expect(err).To(MatchError(domainerrors.ErrCommentNotFound))
			Expect(err).NotTo(MatchError(domainerrors.ErrForbidden))

			err = e.comments.Delete(ctx, caller(), advert2.ID, comment5.ID)
			Expect(err).To(MatchError(domainerrors.ErrCommentNotFound))
		},
		Entry("autor", func() *entities.Caller { return alice }),
		Entry("outro usuário", func() *entities.Caller { return bob }),
		Entry("admin", func() *entities.Caller { return admin }),
		Entry("anônimo", func() *entities.Caller { return nil }),
	)

	It("retorna NotFound para comentário inexistente", func() {
		_, err := e.comments.Update(ctx, alice, advert1.ID, 999, "texto novo")
		Expect(err).To(MatchError(domainerrors.ErrCommentNotFound))
	})

	It("permite ao autor e ao admin editar; proíbe os demais", func() {
		_, err := e.comments.Update(ctx, bob, advert1.ID, comment5.ID, "invasão")
		Expect(err).To(MatchError(domainerrors.ErrForbidden))

		updated, err := e.comments.Update(ctx, alice, advert1.ID, comment5.ID, "já vendeu?")
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.Text).To(Equal("já vendeu?"))
		Expect(updated.CreatedAt.UnixMilli()).To(Equal(comment5.CreatedAt.UnixMilli()))

		_, err = e.comments.Update(ctx, admin, advert1.ID, comment5.ID, "moderado")
		Expect(err).NotTo(HaveOccurred())
	})

	It("remove o comentário do autor", func() {
		Expect(e.comments.Delete(ctx, bob, advert1.ID, comment5.ID)).To(MatchError(domainerrors.ErrForbidden))
		Expect(e.comments.Delete(ctx, alice, advert1.ID, comment5.ID)).To(Succeed())

		list, err := e.comments.List(ctx, advert1.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(BeEmpty())
	})
})
