package router

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/api"
	"github.com/facet-unt/departamentos-api/database"
	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/services/storage"
	"github.com/facet-unt/departamentos-api/utils/auth"
	"github.com/facet-unt/departamentos-api/utils/cache"
	"github.com/facet-unt/departamentos-api/utils/testutil"
)

type testServer struct {
	app   *fiber.App
	db    *gorm.DB
	fx    *testutil.Fixtures
	jwt   *auth.JWTManager
	media *storage.LocalStorage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	auth.Cost = bcrypt.MinCost

	db := testutil.NewDB(t)
	media, err := storage.NewLocalStorage(t.TempDir(), "/media/")
	require.NoError(t, err)

	jwt := auth.NewJWTManager(auth.JWTConfig{
		Secret:        "test-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "facet-test",
	})

	app := api.NewAPIServer(":0", zap.NewNop()).GetEngine()
	err = SetupRoutes(app, Options{
		Deps:      Deps{DB: db, Storage: media, PageSize: 10},
		Store:     database.NewGORMStore(db, zap.NewNop()),
		JWT:       jwt,
		Cache:     cache.NewMemoryCache(),
		Log:       zap.NewNop(),
		Metrics:   prometheus.NewRegistry(),
		MediaURL:  "/media/",
		MediaRoot: media.Root(),
	})
	require.NoError(t, err)

	return &testServer{app: app, db: db, fx: testutil.NewFixtures(t, db), jwt: jwt, media: media}
}

// token issues an access token for u.
func (s *testServer) token(t *testing.T, u *model.Usuario) string {
	t.Helper()
	issued, err := s.jwt.GenerateAccessToken(auth.Subject{
		UserID:       u.ID,
		Email:        u.Email,
		IsStaff:      u.IsStaff,
		TokenVersion: u.TokenVersion,
	})
	require.NoError(t, err)
	return issued.Token
}

func (s *testServer) staffToken(t *testing.T) string {
	return s.token(t, s.fx.Usuario("admin@facet.unt.edu.ar", "-", true))
}

func (s *testServer) userToken(t *testing.T) string {
	return s.token(t, s.fx.Usuario("docente@facet.unt.edu.ar", "-", false))
}

type result struct {
	status int
	header http.Header
	body   []byte
}

func (r result) decode(t *testing.T) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(r.body, &out), string(r.body))
	return out
}

func (s *testServer) send(t *testing.T, req *http.Request, token string) result {
	t.Helper()
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return result{status: resp.StatusCode, header: resp.Header, body: body}
}

// do sends body as JSON when it is not nil.
func (s *testServer) do(t *testing.T, method, path string, body any, token string) result {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return s.send(t, req, token)
}

type upload struct {
	name    string
	content []byte
}

func (s *testServer) form(t *testing.T, method, path string, fields map[string]string, file *upload, token string) result {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		part, err := w.CreateFormFile("adjunto", file.name)
		require.NoError(t, err)
		_, err = part.Write(file.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return s.send(t, req, token)
}

func results(t *testing.T, r result) []any {
	t.Helper()
	list, ok := r.decode(t)["results"].([]any)
	require.True(t, ok, string(r.body))
	return list
}

func idOf(t *testing.T, r result) uint {
	t.Helper()
	id, ok := r.decode(t)["id"].(float64)
	require.True(t, ok, string(r.body))
	return uint(id)
}
