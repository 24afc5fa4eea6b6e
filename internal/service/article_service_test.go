package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "pressroom/internal/errors"
	"pressroom/internal/model"
	"pressroom/internal/query"
)

// MockArticleRepository is a mock implementation of ArticleRepository.
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) Create(ctx context.Context, article *model.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockArticleRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArticleRepository) FindByID(ctx context.Context, id uint) (*model.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Article), args.Error(1)
}

func (m *MockArticleRepository) List(ctx context.Context, f query.ListFilters) ([]model.Article, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Article), args.Get(1).(int64), args.Error(2)
}

func (m *MockArticleRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

func newArticleService(repo *MockArticleRepository) ArticleService {
	return NewArticleService(repo, nil, 0)
}

func TestArticleService_Create(t *testing.T) {
	t.Run("viewer is denied", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		svc := newArticleService(mockRepo)

		_, err := svc.Create(context.Background(), 1, model.RoleViewer, "A valid title", "Long enough content here", "")

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("omitted status defaults to draft", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Article) bool {
			return a.Status == model.StatusDraft && a.AuthorID == 1
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Article).ID = 10
		}).Return(nil)
		mockRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Article{
			ID:       10,
			Status:   model.StatusDraft,
			AuthorID: 1,
		}, nil)

		svc := newArticleService(mockRepo)
		article, err := svc.Create(context.Background(), 1, model.RoleEditor, "A valid title", "Long enough content here", "")

		require.NoError(t, err)
		assert.Equal(t, model.StatusDraft, article.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("explicit published status is kept", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Article) bool {
			return a.Status == model.StatusPublished
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Article).ID = 11
		}).Return(nil)
		mockRepo.On("FindByID", mock.Anything, uint(11)).Return(&model.Article{
			ID:     11,
			Status: model.StatusPublished,
		}, nil)

		svc := newArticleService(mockRepo)
		article, err := svc.Create(context.Background(), 2, model.RoleAdmin, "A valid title", "Long enough content here", model.StatusPublished)

		require.NoError(t, err)
		assert.Equal(t, model.StatusPublished, article.Status)
	})
}

func TestArticleService_Update_Ownership(t *testing.T) {
	// Article X authored by editor A (id 1); editor B (id 2) must be denied,
	// an admin allowed.
	stored := &model.Article{ID: 5, Title: "Original", AuthorID: 1}
	title := "An updated title"

	t.Run("other editor is denied", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(stored, nil)

		svc := newArticleService(mockRepo)
		_, err := svc.Update(context.Background(), 5, 2, model.RoleEditor, &title, nil, "")

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		mockRepo.AssertNotCalled(t, "UpdateFields")
	})

	t.Run("owning editor may edit", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(stored, nil)
		mockRepo.On("UpdateFields", mock.Anything, uint(5), map[string]interface{}{"title": title}).Return(nil)

		svc := newArticleService(mockRepo)
		_, err := svc.Update(context.Background(), 5, 1, model.RoleEditor, &title, nil, "")

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("admin may edit any article", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(stored, nil)
		mockRepo.On("UpdateFields", mock.Anything, uint(5), mock.Anything).Return(nil)

		svc := newArticleService(mockRepo)
		_, err := svc.Update(context.Background(), 5, 99, model.RoleAdmin, &title, nil, model.StatusPublished)

		require.NoError(t, err)
	})

	t.Run("missing article is not-found before the permission check", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		mockRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		svc := newArticleService(mockRepo)
		_, err := svc.Update(context.Background(), 404, 2, model.RoleViewer, &title, nil, "")

		assert.ErrorIs(t, err, apperrors.ErrArticleNotFound)
	})

	t.Run("no fields supplied", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(stored, nil)

		svc := newArticleService(mockRepo)
		_, err := svc.Update(context.Background(), 5, 1, model.RoleEditor, nil, nil, "")

		var ve *apperrors.ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}

func TestArticleService_Delete(t *testing.T) {
	stored := &model.Article{ID: 5, AuthorID: 1}

	t.Run("owning editor cannot delete", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(stored, nil)

		svc := newArticleService(mockRepo)
		err := svc.Delete(context.Background(), 5, 1, model.RoleEditor)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		mockRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("admin deletes", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		mockRepo.On("FindByID", mock.Anything, uint(5)).Return(stored, nil)
		mockRepo.On("Delete", mock.Anything, uint(5)).Return(nil)

		svc := newArticleService(mockRepo)
		err := svc.Delete(context.Background(), 5, 9, model.RoleAdmin)

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing article", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		mockRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		svc := newArticleService(mockRepo)
		err := svc.Delete(context.Background(), 404, 9, model.RoleAdmin)

		assert.ErrorIs(t, err, apperrors.ErrArticleNotFound)
	})
}

func TestArticleService_PublicList_ForcesPublished(t *testing.T) {
	mockRepo := new(MockArticleRepository)
	mockRepo.On("List", mock.Anything, mock.MatchedBy(func(f query.ListFilters) bool {
		return f.Status == model.StatusPublished && f.AuthorID == 0 && f.Search == "foo"
	})).Return([]model.Article{}, int64(0), nil)

	svc := newArticleService(mockRepo)

	// A caller-supplied DRAFT filter must be overridden on the public path.
	_, err := svc.PublicList(context.Background(), query.ListFilters{
		Status:   model.StatusDraft,
		AuthorID: 7,
		Search:   "foo",
	})

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestArticleService_ListByAuthor_ScopesToCaller(t *testing.T) {
	mockRepo := new(MockArticleRepository)
	mockRepo.On("List", mock.Anything, mock.MatchedBy(func(f query.ListFilters) bool {
		return f.AuthorID == 3 && f.Status == model.StatusDraft
	})).Return([]model.Article{{ID: 1, AuthorID: 3}}, int64(1), nil)

	svc := newArticleService(mockRepo)
	result, err := svc.ListByAuthor(context.Background(), 3, query.ListFilters{Status: model.StatusDraft})

	require.NoError(t, err)
	assert.Len(t, result.Articles, 1)
	assert.Equal(t, int64(1), result.Pagination.Total)
}

func TestArticleService_List_Pagination(t *testing.T) {
	mockRepo := new(MockArticleRepository)
	mockRepo.On("List", mock.Anything, mock.Anything).Return([]model.Article{{ID: 21}}, int64(25), nil)

	svc := newArticleService(mockRepo)
	result, err := svc.List(context.Background(), query.ListFilters{Page: 3, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	assert.False(t, result.Pagination.HasNextPage)
	assert.True(t, result.Pagination.HasPrevPage)
}
