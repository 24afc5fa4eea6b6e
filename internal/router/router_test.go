package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pressroom/internal/auth"
	"pressroom/internal/config"
	"pressroom/internal/handler"
	"pressroom/internal/model"
	"pressroom/internal/query"
	"pressroom/internal/response"
	"pressroom/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string, role model.Role) (*model.User, string, error) {
	args := m.Called(ctx, name, email, password, role)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Profile(ctx context.Context, userID uint) (*model.User, int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID uint, name, email *string) (*model.User, error) {
	args := m.Called(ctx, userID, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.Error(0)
}

// MockArticleService is a mock implementation of service.ArticleService.
type MockArticleService struct {
	mock.Mock
}

func (m *MockArticleService) Create(ctx context.Context, actorID uint, role model.Role, title, content string, status model.ArticleStatus) (*model.Article, error) {
	args := m.Called(ctx, actorID, role, title, content, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

func (m *MockArticleService) List(ctx context.Context, f query.ListFilters) (*service.ArticleList, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArticleList), args.Error(1)
}

func (m *MockArticleService) PublicList(ctx context.Context, f query.ListFilters) (*service.ArticleList, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArticleList), args.Error(1)
}

func (m *MockArticleService) ListByAuthor(ctx context.Context, authorID uint, f query.ListFilters) (*service.ArticleList, error) {
	args := m.Called(ctx, authorID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArticleList), args.Error(1)
}

func (m *MockArticleService) Get(ctx context.Context, id uint) (*model.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

func (m *MockArticleService) Update(ctx context.Context, id, actorID uint, role model.Role, title, content *string, status model.ArticleStatus) (*model.Article, error) {
	args := m.Called(ctx, id, actorID, role, title, content, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

func (m *MockArticleService) Delete(ctx context.Context, id, actorID uint, role model.Role) error {
	args := m.Called(ctx, id, actorID, role)
	return args.Error(0)
}

type harness struct {
	e          *echo.Echo
	jwt        *auth.JWTService
	authSvc    *MockAuthService
	articleSvc *MockArticleService
}

func newHarness() *harness {
	cfg := &config.Config{
		Env:          "development",
		AllowOrigins: []string{"http://localhost:3000"},
		RateLimit:    1000,
		RateBurst:    1000,
	}

	jwtService := auth.NewJWTService("test-secret", time.Hour)
	authSvc := new(MockAuthService)
	articleSvc := new(MockArticleService)

	e := echo.New()
	Register(e, cfg, jwtService, handler.NewAuthHandler(authSvc), handler.NewArticleHandler(articleSvc))

	return &harness{e: e, jwt: jwtService, authSvc: authSvc, articleSvc: articleSvc}
}

func (h *harness) do(method, path, token, body string) (*httptest.ResponseRecorder, response.Envelope) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)

	var env response.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestRouter_UnknownRoute(t *testing.T) {
	h := newHarness()
	rec, env := h.do(http.MethodGet, "/api/nope", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Route not found", env.Message)
}

func TestRouter_ArticlesRequireToken(t *testing.T) {
	h := newHarness()
	rec, env := h.do(http.MethodGet, "/api/articles", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
}

func TestRouter_ViewerCanListButNotCreate(t *testing.T) {
	h := newHarness()
	token, err := h.jwt.GenerateToken(5, model.RoleViewer)
	require.NoError(t, err)

	h.articleSvc.On("List", mock.Anything, mock.Anything).
		Return(&service.ArticleList{Articles: []model.Article{}}, nil)

	rec, env := h.do(http.MethodGet, "/api/articles", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	rec, env = h.do(http.MethodPost, "/api/articles", token,
		`{"title":"A valid title","content":"Long enough content here"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, env.Success)
	h.articleSvc.AssertNotCalled(t, "Create")
}

func TestRouter_PublicListingNeedsNoAuth(t *testing.T) {
	h := newHarness()
	h.articleSvc.On("PublicList", mock.Anything, mock.Anything).
		Return(&service.ArticleList{Articles: []model.Article{}}, nil)

	rec, env := h.do(http.MethodGet, "/api/articles/public?status=DRAFT", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	h.articleSvc.AssertExpectations(t)
}

func TestRouter_EditorMayCreate(t *testing.T) {
	h := newHarness()
	token, err := h.jwt.GenerateToken(2, model.RoleEditor)
	require.NoError(t, err)

	h.articleSvc.On("Create", mock.Anything, uint(2), model.RoleEditor, "A valid title", "Long enough content here", model.ArticleStatus("")).
		Return(&model.Article{ID: 1, Title: "A valid title", Status: model.StatusDraft, AuthorID: 2}, nil)

	rec, env := h.do(http.MethodPost, "/api/articles", token,
		`{"title":"A valid title","content":"Long enough content here"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	h.articleSvc.AssertExpectations(t)
}

func TestRouter_ExpiredTokenMessage(t *testing.T) {
	h := newHarness()
	expired := auth.NewJWTService("test-secret", -time.Minute)
	token, err := expired.GenerateToken(1, model.RoleAdmin)
	require.NoError(t, err)

	rec, env := h.do(http.MethodGet, "/api/articles", token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token expired", env.Message)
}

func TestRouter_Health(t *testing.T) {
	h := newHarness()
	rec, env := h.do(http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Server is running", env.Message)
}
