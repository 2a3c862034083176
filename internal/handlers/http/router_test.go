package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rafabene/adboard-backend/internal/handlers/dto"
	"github.com/rafabene/adboard-backend/internal/handlers/middleware"
	"github.com/rafabene/adboard-backend/internal/infrastructure/cache"
	"github.com/rafabene/adboard-backend/internal/infrastructure/config"
	"github.com/rafabene/adboard-backend/internal/infrastructure/i18n"
	"github.com/rafabene/adboard-backend/internal/infrastructure/logging"
	"github.com/rafabene/adboard-backend/internal/infrastructure/persistence/database"
	"github.com/rafabene/adboard-backend/internal/infrastructure/security"
	"github.com/rafabene/adboard-backend/internal/infrastructure/storage"
	"github.com/rafabene/adboard-backend/internal/services"
)

const (
	testPassword   = "password123"
	testUploadSize = 1 << 20
)

// testServer monta o router completo sobre sqlite em memória e diretórios temporários
type testServer struct {
	t      *testing.T
	router *gin.Engine
	users  *services.UserService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:http_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", DSN: dsn}, database.NewGormConfig(logger.Silent))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	root := t.TempDir()
	disk := storage.NewDiskStorage(&config.StorageConfig{
		AdvertImagesDir: filepath.Join(root, "images"),
		AvatarsDir:      filepath.Join(root, "avatars"),
		MaxUploadMB:     1,
	})

	i18nService, err := i18n.NewEmbeddedService("en")
	require.NoError(t, err)

	log := logging.NewNopLogger()
	userRepo := database.NewUserRepository(db)
	advertRepo := database.NewAdvertRepository(db)
	commentRepo := database.NewCommentRepository(db)
	uow := database.NewUnitOfWork(db)
	files := services.NewFileStore(database.NewStoredFileRepository(db), disk, log)

	userService := services.NewUserService(
		userRepo, files, uow,
		security.NewBcryptHasher(bcrypt.MinCost),
		security.NewJWTIssuer("test-secret", time.Hour),
		log,
	)
	advertService := services.NewAdvertService(advertRepo, commentRepo, userRepo, files, uow, cache.NoopCache{}, time.Minute, nil, log)
	commentService := services.NewCommentService(commentRepo, advertRepo, userRepo, log)

	router := NewRouter(
		RouterConfig{Env: "test", BaseURL: "http://adboard.test", AllowedOrigins: "*", MaxUploadBytes: testUploadSize},
		Handlers{
			Auth:     NewAuthHandler(userService, log),
			Users:    NewUserHandler(userService, testUploadSize, log),
			Adverts:  NewAdvertHandler(advertService, testUploadSize, log),
			Comments: NewCommentHandler(commentService, log),
		},
		middleware.NewAuthMiddleware(userService, log),
		i18nService,
		log,
	)

	return &testServer{t: t, router: router, users: userService}
}

// request descreve uma chamada HTTP de teste
type request struct {
	method      string
	path        string
	user        string
	body        io.Reader
	contentType string
	headers     map[string]string
}

func (s *testServer) do(r request) *httptest.ResponseRecorder {
	s.t.Helper()

	req := httptest.NewRequest(r.method, r.path, r.body)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.user != "" {
		req.SetBasicAuth(r.user, testPassword)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) doJSON(method, path, user string, payload any) *httptest.ResponseRecorder {
	s.t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(s.t, err)
	return s.do(request{method: method, path: path, user: user, body: bytes.NewReader(data), contentType: "application/json"})
}

func (s *testServer) register(username string) dto.UserDto {
	s.t.Helper()

	name, _, _ := strings.Cut(username, "@")
	w := s.doJSON(http.MethodPost, "/register", "", dto.RegisterRequest{
		Username:  username,
		Password:  testPassword,
		FirstName: strings.ToUpper(name[:1]) + name[1:],
		LastName:  "Tester",
		Phone:     "+7 912 345-67-89",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	var user dto.UserDto
	decode(s.t, w, &user)
	return user
}

func (s *testServer) createAdvert(user, title string) dto.AdsDto {
	s.t.Helper()

	props := fmt.Sprintf(`{"title":%q,"description":"a fine thing for sale","price":1500}`, title)
	body, contentType := multipartBody(s.t, map[string]string{"properties": props}, &filePart{
		field: "image", name: "photo.jpeg", contentType: "image/jpeg", data: imageBytes(64),
	})

	w := s.do(request{method: http.MethodPost, path: "/ads", user: user, body: body, contentType: contentType})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	var advert dto.AdsDto
	decode(s.t, w, &advert)
	return advert
}

func (s *testServer) comment(user string, advertID int64, text string) dto.CommentDto {
	s.t.Helper()

	w := s.doJSON(http.MethodPost, fmt.Sprintf("/ads/%d/comments", advertID), user, dto.CreateOrUpdateComment{Text: text})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	var comment dto.CommentDto
	decode(s.t, w, &comment)
	return comment
}

type filePart struct {
	field       string
	name        string
	contentType string
	data        []byte
}

func multipartBody(t *testing.T, fields map[string]string, files ...*filePart) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.name))
		header.Set("Content-Type", f.contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func imageBytes(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	return data
}

func decode(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target), w.Body.String())
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	require.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")

	var problem dto.ErrorResponse
	decode(t, w, &problem)
	return problem
}
