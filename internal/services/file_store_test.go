package services_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/adboard-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/adboard-backend/internal/domain/errors"
	"github.com/rafabene/adboard-backend/internal/infrastructure/persistence/database"
)

var _ = Describe("FileStore", func() {
	var (
		e   *env
		ctx context.Context
	)

	BeforeEach(func() {
		e = newEnv()
		ctx = context.Background()
	})

	It("faz o round-trip de S bytes preservando o content type", func() {
		upload := jpeg(4096)

		file, err := e.files.Store(ctx, entities.FileKindAdvertImage, upload)
		Expect(err).NotTo(HaveOccurred())
		Expect(file.Extension).To(Equal("jpeg"))
		Expect(file.Size).To(Equal(int64(4096)))
		Expect(e.filesIn("images")[0]).To(HaveSuffix(file.ID + ".jpeg"))

		rc, err := e.files.Open(ctx, file)
		Expect(err).NotTo(HaveOccurred())
		Expect(readAll(rc)).To(Equal(upload.Data))
		Expect(file.ContentType).To(Equal("image/jpeg"))
	})

	It("separa diretórios por tipo", func() {
		_, err := e.files.Store(ctx, entities.FileKindAvatar, jpeg(4))
		Expect(err).NotTo(HaveOccurred())
		Expect(e.filesIn("avatars")).To(HaveLen(1))
		Expect(e.filesIn("images")).To(BeEmpty())
	})

	It("remove os bytes quando o registro não pode ser salvo", func() {
		// sem a tabela o insert falha depois da escrita
		Expect(e.db.Migrator().DropTable("stored_files")).To(Succeed())

		_, err := e.files.Store(ctx, entities.FileKindAdvertImage, jpeg(4))
		Expect(err).To(HaveOccurred())
		Expect(e.filesIn("images")).To(BeEmpty())
	})

	It("Delete é idempotente e reporta outras falhas como DeleteError", func() {
		file, err := e.files.Store(ctx, entities.FileKindAdvertImage, jpeg(4))
		Expect(err).NotTo(HaveOccurred())

		Expect(e.files.Delete(ctx, file)).To(Succeed())
		Expect(e.files.Delete(ctx, file)).To(Succeed())

		e.blobs.failRemove = errors.New("permission denied")
		err = e.files.Delete(ctx, file)
		var deleteErr *domainerrors.DeleteError
		Expect(errors.As(err, &deleteErr)).To(BeTrue())
		Expect(deleteErr.Path).To(HaveSuffix(file.StorageName()))
	})

	It("Open de registro sem bytes é ImageNotFound", func() {
		file, err := e.files.Store(ctx, entities.FileKindAdvertImage, jpeg(4))
		Expect(err).NotTo(HaveOccurred())
		Expect(e.files.Delete(ctx, file)).To(Succeed())

		_, err = e.files.Open(ctx, file)
		Expect(err).To(MatchError(domainerrors.ErrImageNotFound))
	})

	Describe("substituição com extensão diferente", func() {
		var (
			original *entities.StoredFile
			png      *entities.Upload
		)

		BeforeEach(func() {
			var err error
			original, err = e.files.Store(ctx, entities.FileKindAdvertImage, jpeg(8))
			Expect(err).NotTo(HaveOccurred())
			png = &entities.Upload{FileName: "shot.png", ContentType: "image/png", Data: []byte("png-bytes")}
		})

		replaceIn := func(fail error) (*entities.StoredFile, error) {
			var replaced *entities.StoredFile
			err := database.NewUnitOfWork(e.db).WithTransaction(ctx, func(txCtx context.Context) error {
				file, err := e.files.Replace(txCtx, original, png)
				if err != nil {
					return err
				}
				replaced = file
				return fail
			})
			e.files.FinishReplace(ctx, original, replaced, err == nil)
			return replaced, err
		}

		It("mantém os bytes antigos até o commit e depois os remove", func() {
			replaced, err := replaceIn(nil)
			Expect(err).NotTo(HaveOccurred())

			files := e.filesIn("images")
			Expect(files).To(HaveLen(1))
			Expect(files[0]).To(HaveSuffix(replaced.StorageName()))
		})

		It("preserva registro e bytes antigos quando a transação é desfeita", func() {
			_, err := replaceIn(errDiskFull)
			Expect(err).To(MatchError(errDiskFull))

			record, err := database.NewStoredFileRepository(e.db).FindByID(ctx, original.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(record.Extension).To(Equal("jpeg"))

			files := e.filesIn("images")
			Expect(files).To(HaveLen(1))
			Expect(files[0]).To(HaveSuffix(original.StorageName()))

			rc, err := e.files.Open(ctx, record)
			Expect(err).NotTo(HaveOccurred())
			Expect(readAll(rc)).To(Equal(jpeg(8).Data))
		})
	})
})
