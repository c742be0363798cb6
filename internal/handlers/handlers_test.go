package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/rajput-vishal01/videovault/internal/handlers"
	"github.com/rajput-vishal01/videovault/internal/imagekit"
	"github.com/rajput-vishal01/videovault/internal/middleware"
	"github.com/rajput-vishal01/videovault/internal/models"
	"github.com/rajput-vishal01/videovault/internal/repository"
	"github.com/rajput-vishal01/videovault/internal/routes"
	"github.com/rajput-vishal01/videovault/internal/services"
	"github.com/rajput-vishal01/videovault/internal/utils"
)

type memVideoRepo struct {
	videos []models.Video
}

func (m *memVideoRepo) Insert(_ context.Context, v *models.Video) error {
	v.ID = primitive.NewObjectID()
	v.CreatedAt = time.Now().UTC()
	v.UpdatedAt = v.CreatedAt
	m.videos = append(m.videos, *v)
	return nil
}

func (m *memVideoRepo) ListAll(_ context.Context) ([]models.Video, error) {
	out := make([]models.Video, len(m.videos))
	copy(out, m.videos)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memVideoRepo) GetByID(_ context.Context, id string) (*models.Video, error) {
	for i := range m.videos {
		if m.videos[i].ID.Hex() == id {
			return &m.videos[i], nil
		}
	}
	return nil, repository.ErrVideoNotFound
}

type memUserRepo struct {
	users []models.User
}

func (m *memUserRepo) Create(_ context.Context, u *models.User) error {
	u.ID = primitive.NewObjectID()
	m.users = append(m.users, *u)
	return nil
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for i := range m.users {
		if m.users[i].Email == email {
			return &m.users[i], nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	for i := range m.users {
		if m.users[i].ID.Hex() == id {
			return &m.users[i], nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUserRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		for i := range m.users {
			if m.users[i].ID == id {
				out = append(out, m.users[i])
			}
		}
	}
	return out, nil
}

type fixture struct {
	app    *fiber.App
	tokens *utils.TokenManager
	videos *memVideoRepo
	users  *memUserRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop().Sugar()
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	videos := &memVideoRepo{}
	users := &memUserRepo{}

	videoSvc := services.NewVideoService(videos, users, logger)
	authSvc := services.NewAuthService(users, tokens, logger)
	cdn := imagekit.NewClient("pub", "priv", "http://unused", 30*time.Minute)

	app := fiber.New()
	app.Use(middleware.AccessGate(tokens))
	routes.Register(app, routes.Deps{
		Auth:   handlers.NewAuthHandler(authSvc, cdn, time.Hour, logger),
		Videos: handlers.NewVideoHandler(videoSvc, logger),
	})
	return &fixture{app: app, tokens: tokens, videos: videos, users: users}
}

func (f *fixture) registerAndLogin(t *testing.T, email string) (string, models.User) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": "password1", "name": "Tester"})
	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body, _ = json.Marshal(map[string]string{"email": email, "password": "password1"})
	req = httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return out.Token, out.User
}

func TestUnauthenticatedListVideos(t *testing.T) {
	f := newFixture(t)
	resp, err := f.app.Test(httptest.NewRequest("GET", "/api/videos", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, string(raw))
}

func TestCreateAndListVideos(t *testing.T) {
	f := newFixture(t)
	token, user := f.registerAndLogin(t, "alice@example.com")

	create := func(title, url string) {
		body, _ := json.Marshal(map[string]any{
			"title": title, "description": "desc", "videoUrl": url,
		})
		req := httptest.NewRequest("POST", "/api/videos", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := f.app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}
	create("first", "https://ik.imagekit.io/demo/first.mp4")
	time.Sleep(2 * time.Millisecond) // distinct created_at for ordering
	create("second", "https://ik.imagekit.io/demo/second.mp4")

	req := httptest.NewRequest("GET", "/api/videos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var items []models.FeedItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 2)
	// newest first
	assert.Equal(t, "second", items[0].Title)
	assert.Equal(t, "first", items[1].Title)
	assert.Equal(t, "alice@example.com", items[0].Author.Email)
	assert.Equal(t, user.ID, items[0].Author.ID)
	assert.Contains(t, items[0].ThumbnailURL, "tr=so-5%2Cw-400%2Ch-225")
}

func TestCreateVideoMissingFields(t *testing.T) {
	f := newFixture(t)
	token, _ := f.registerAndLogin(t, "bob@example.com")

	body, _ := json.Marshal(map[string]any{"title": "only a title"})
	req := httptest.NewRequest("POST", "/api/videos", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, f.videos.videos)
}

func TestGetVideoByID(t *testing.T) {
	f := newFixture(t)
	token, _ := f.registerAndLogin(t, "carol@example.com")

	body, _ := json.Marshal(map[string]any{
		"title": "t", "description": "d", "videoUrl": "https://ik.imagekit.io/demo/v.mp4",
	})
	req := httptest.NewRequest("POST", "/api/videos", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	var created models.Video
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	req = httptest.NewRequest("GET", "/api/videos/"+created.ID.Hex(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/api/videos/"+primitive.NewObjectID().Hex(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLoginBadPassword(t *testing.T) {
	f := newFixture(t)
	f.registerAndLogin(t, "dave@example.com")

	body, _ := json.Marshal(map[string]string{"email": "dave@example.com", "password": "wrong"})
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestImageKitAuthIsPublic(t *testing.T) {
	f := newFixture(t)
	resp, err := f.app.Test(httptest.NewRequest("GET", "/api/auth/imagekit-auth", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		AuthenticationParameters imagekit.AuthParams `json:"authenticationParameters"`
		PublicKey                string              `json:"publicKey"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "pub", out.PublicKey)
	assert.NotEmpty(t, out.AuthenticationParameters.Token)
	assert.NotEmpty(t, out.AuthenticationParameters.Signature)
	assert.Greater(t, out.AuthenticationParameters.Expire, time.Now().Unix())
}
