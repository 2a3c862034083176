package services_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/adboard-backend/internal/domain/errors"
	"github.com/rafabene/adboard-backend/internal/infrastructure/persistence/database"
	"github.com/rafabene/adboard-backend/internal/services"
)

var _ = Describe("UserService", func() {
	var (
		e     *env
		ctx   context.Context
		alice *entities.Caller
	)

	BeforeEach(func() {
		e = newEnv()
		ctx = context.Background()
		alice = e.register("alice", entities.RoleUser)
	})

	Describe("Register", func() {
		It("guarda apenas o hash da senha", func() {
			user, err := e.users.GetProfile(ctx, alice)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.PasswordHash).NotTo(Equal("password123"))
			Expect(user.Role).To(Equal(entities.RoleUser))
		})

		It("recusa username repetido", func() {
			_, err := e.users.Register(ctx, services.RegisterInput{Username: "alice", Password: "outra-senha"})
			Expect(err).To(MatchError(domainerrors.ErrUsernameAlreadyExists))
		})

		It("valida o telefone", func() {
			_, err := e.users.Register(ctx, services.RegisterInput{Username: "carol", Password: "password123", Phone: "12"})
			Expect(err).To(MatchError(ContainSubstring(domainerrors.ErrInvalidPhone.Error())))
		})

		It("valida o tamanho do username", func() {
			_, err := e.users.Register(ctx, services.RegisterInput{Username: "ab", Password: "password123"})
			Expect(err).To(MatchError(ContainSubstring(domainerrors.ErrInvalidUser.Error())))
		})
	})

	Describe("autenticação", func() {
		It("autentica com usuário e senha", func() {
			caller, err := e.users.Authenticate(ctx, "alice", "password123")
			Expect(err).NotTo(HaveOccurred())
			Expect(caller.Username).To(Equal("alice"))

			_, err = e.users.Authenticate(ctx, "alice", "errada")
			Expect(err).To(MatchError(domainerrors.ErrInvalidCredentials))

			_, err = e.users.Authenticate(ctx, "ghost", "password123")
			Expect(err).To(MatchError(domainerrors.ErrInvalidCredentials))
		})

		It("emite token que resolve para o mesmo chamador", func() {
			token, err := e.users.Login(ctx, "alice", "password123")
			Expect(err).NotTo(HaveOccurred())

			caller, err := e.users.ResolveToken(ctx, token)
			Expect(err).NotTo(HaveOccurred())
			Expect(caller.Username).To(Equal("alice"))

			_, err = e.users.ResolveToken(ctx, "lixo")
			Expect(err).To(MatchError(domainerrors.ErrUnauthorized))
		})
	})

	Describe("perfil", func() {
		It("atualiza nome e telefone", func() {
			user, err := e.users.UpdateProfile(ctx, alice, services.ProfileInput{
				LastName: ptr("Souza"), Phone: ptr("+55 (11) 99999-8888"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Phone.String()).To(Equal("+5511999998888"))

			reloaded, err := e.users.GetProfile(ctx, alice)
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.LastName).To(Equal("Souza"))
			Expect(reloaded.FirstName).To(Equal("alice"))
		})

		It("rejeita telefone inválido sem alterar o perfil", func() {
			_, err := e.users.UpdateProfile(ctx, alice, services.ProfileInput{Phone: ptr("abc")})
			Expect(err).To(MatchError(ContainSubstring(domainerrors.ErrInvalidPhone.Error())))
		})

		It("exige chamador resolvível", func() {
			_, err := e.users.GetProfile(ctx, nil)
			Expect(err).To(MatchError(domainerrors.ErrUnauthorized))

			_, err = e.users.GetProfile(ctx, &entities.Caller{Username: "ghost"})
			Expect(err).To(MatchError(domainerrors.ErrUnauthorized))
		})
	})

	Describe("SetPassword", func() {
		It("troca a senha quando a atual confere", func() {
			Expect(e.users.SetPassword(ctx, alice, "password123", "nova-senha-1")).To(Succeed())

			_, err := e.users.Authenticate(ctx, "alice", "nova-senha-1")
			Expect(err).NotTo(HaveOccurred())
		})

		It("recusa quando a senha atual está errada", func() {
			err := e.users.SetPassword(ctx, alice, "errada", "nova-senha-1")
			Expect(err).To(MatchError(domainerrors.ErrInvalidCredentials))
		})
	})

	Describe("avatar", func() {
		It("cria e depois substitui no mesmo id, devolvendo os bytes", func() {
			first := jpeg(16)
			echoed, err := e.users.UpdateAvatar(ctx, alice, first)
			Expect(err).NotTo(HaveOccurred())
			Expect(echoed).To(Equal(first.Data))

			file, rc, err := e.users.Avatar(ctx, alice)
			Expect(err).NotTo(HaveOccurred())
			Expect(readAll(rc)).To(Equal(first.Data))
			firstID := file.ID

			second := jpeg(48)
			_, err = e.users.UpdateAvatar(ctx, alice, second)
			Expect(err).NotTo(HaveOccurred())

			user, err := e.users.GetProfile(ctx, alice)
			Expect(err).NotTo(HaveOccurred())
			file, rc, err = e.users.AvatarByUserID(ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(file.ID).To(Equal(firstID))
			Expect(file.ContentType).To(Equal("image/jpeg"))
			Expect(readAll(rc)).To(Equal(second.Data))
			Expect(e.filesIn("avatars")).To(HaveLen(1))
		})

		It("retorna ImageNotFound sem avatar e UserNotFound para id inexistente", func() {
			_, _, err := e.users.Avatar(ctx, alice)
			Expect(err).To(MatchError(domainerrors.ErrImageNotFound))

			_, _, err = e.users.AvatarByUserID(ctx, 999)
			Expect(err).To(MatchError(domainerrors.ErrUserNotFound))
		})

		It("exige autenticação", func() {
			_, err := e.users.UpdateAvatar(ctx, nil, jpeg(8))
			Expect(err).To(MatchError(domainerrors.ErrUnauthorized))
		})
	})

	Describe("escritas intercaladas com o upload de avatar", func() {
		var uploaded *entities.Upload

		interleaved := func() *services.UserService {
			uploaded = jpeg(24)
			return e.userService(&interleavedUsers{
				UserRepository: database.NewUserRepository(e.db),
				hook: func() {
					_, err := e.users.UpdateAvatar(ctx, alice, uploaded)
					Expect(err).NotTo(HaveOccurred())
				},
			})
		}

		expectAvatar := func() {
			_, rc, err := e.users.Avatar(ctx, alice)
			Expect(err).NotTo(HaveOccurred())
			Expect(readAll(rc)).To(Equal(uploaded.Data))
			Expect(e.filesIn("avatars")).To(HaveLen(1))
		}

		It("atualizar o perfil não desfaz o avatar", func() {
			user, err := interleaved().UpdateProfile(ctx, alice, services.ProfileInput{FirstName: ptr("Alícia")})
			Expect(err).NotTo(HaveOccurred())
			Expect(user.FirstName).To(Equal("Alícia"))

			expectAvatar()
			profile, err := e.users.GetProfile(ctx, alice)
			Expect(err).NotTo(HaveOccurred())
			Expect(profile.FirstName).To(Equal("Alícia"))
		})

		It("trocar a senha não desfaz o avatar", func() {
			Expect(interleaved().SetPassword(ctx, alice, "password123", "nova-senha-1")).To(Succeed())

			expectAvatar()
			_, err := e.users.Authenticate(ctx, "alice", "nova-senha-1")
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("CreateAdmin", func() {
		It("promove um usuário existente", func() {
			user, err := e.users.CreateAdmin(ctx, "alice", "admin-pass")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.IsAdmin()).To(BeTrue())

			caller, err := e.users.Authenticate(ctx, "alice", "admin-pass")
			Expect(err).NotTo(HaveOccurred())
			Expect(caller.IsAdmin()).To(BeTrue())
		})

		It("cria um novo administrador", func() {
			user, err := e.users.CreateAdmin(ctx, "admin", "admin-pass")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Role).To(Equal(entities.RoleAdmin))
		})
	})
})
