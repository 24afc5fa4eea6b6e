package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pressroom/internal/authz"
	"pressroom/internal/cache"
	apperrors "pressroom/internal/errors"
	"pressroom/internal/model"
	"pressroom/internal/query"
	"pressroom/internal/repository"
)

const publicListCachePrefix = "articles:public"

// ArticleList is one page of articles plus pagination metadata.
type ArticleList struct {
	Articles   []model.Article      `json:"articles"`
	Pagination query.PaginationInfo `json:"pagination"`
}

// ArticleService orchestrates validation, authorization and storage for
// article operations. For edit and delete, a missing article surfaces as
// not-found before the permission check.
type ArticleService interface {
	Create(ctx context.Context, actorID uint, role model.Role, title, content string, status model.ArticleStatus) (*model.Article, error)
	List(ctx context.Context, f query.ListFilters) (*ArticleList, error)
	PublicList(ctx context.Context, f query.ListFilters) (*ArticleList, error)
	ListByAuthor(ctx context.Context, authorID uint, f query.ListFilters) (*ArticleList, error)
	Get(ctx context.Context, id uint) (*model.Article, error)
	Update(ctx context.Context, id, actorID uint, role model.Role, title, content *string, status model.ArticleStatus) (*model.Article, error)
	Delete(ctx context.Context, id, actorID uint, role model.Role) error
}

type articleService struct {
	articleRepo repository.ArticleRepository
	cache       *cache.Client
	cacheTTL    time.Duration
}

// NewArticleService creates a new article service.
func NewArticleService(articleRepo repository.ArticleRepository, cacheClient *cache.Client, cacheTTL time.Duration) ArticleService {
	return &articleService{
		articleRepo: articleRepo,
		cache:       cacheClient,
		cacheTTL:    cacheTTL,
	}
}

// Create stores a new article authored by the actor. An omitted status
// defaults to DRAFT.
func (s *articleService) Create(ctx context.Context, actorID uint, role model.Role, title, content string, status model.ArticleStatus) (*model.Article, error) {
	if !authz.Can(authz.ActionCreateArticle, role, actorID, 0) {
		return nil, apperrors.ErrForbidden
	}

	if status == "" {
		status = model.StatusDraft
	}

	article := &model.Article{
		Title:    title,
		Content:  content,
		Status:   status,
		AuthorID: actorID,
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	s.invalidatePublicList(ctx)

	// Re-read so the response carries the author relation.
	return s.articleRepo.FindByID(ctx, article.ID)
}

// List returns a filtered, paginated page of articles. Role access to this
// listing is enforced at the route.
func (s *articleService) List(ctx context.Context, f query.ListFilters) (*ArticleList, error) {
	return s.list(ctx, f)
}

// PublicList returns PUBLISHED articles only. A caller-supplied status or
// author filter is overridden on this path.
func (s *articleService) PublicList(ctx context.Context, f query.ListFilters) (*ArticleList, error) {
	f.Status = model.StatusPublished
	f.AuthorID = 0
	f = f.Normalize()

	key := f.Key(publicListCachePrefix)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached ArticleList
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	result, err := s.list(ctx, f)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		_ = s.cache.Set(ctx, key, data, s.cacheTTL)
	}
	return result, nil
}

// ListByAuthor returns the caller's own articles, optionally filtered by status.
func (s *articleService) ListByAuthor(ctx context.Context, authorID uint, f query.ListFilters) (*ArticleList, error) {
	f.AuthorID = authorID
	return s.list(ctx, f)
}

func (s *articleService) list(ctx context.Context, f query.ListFilters) (*ArticleList, error) {
	f = f.Normalize()
	articles, total, err := s.articleRepo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	if articles == nil {
		articles = []model.Article{}
	}
	return &ArticleList{
		Articles:   articles,
		Pagination: query.Paginate(f.Page, f.Limit, total),
	}, nil
}

// Get returns a single article with its author.
func (s *articleService) Get(ctx context.Context, id uint) (*model.Article, error) {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Translate(err, apperrors.ErrArticleNotFound)
	}
	return article, nil
}

// Update applies a partial update after the ownership check. ADMIN may edit
// any article; EDITOR only their own.
func (s *articleService) Update(ctx context.Context, id, actorID uint, role model.Role, title, content *string, status model.ArticleStatus) (*model.Article, error) {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Translate(err, apperrors.ErrArticleNotFound)
	}

	if !authz.Can(authz.ActionEditArticle, role, actorID, article.AuthorID) {
		return nil, apperrors.ErrForbidden
	}

	fields := map[string]interface{}{}
	if title != nil {
		fields["title"] = *title
	}
	if content != nil {
		fields["content"] = *content
	}
	if status != "" {
		fields["status"] = status
	}
	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("body", "At least one field must be provided for update")
	}

	if err := s.articleRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	s.invalidatePublicList(ctx)

	return s.articleRepo.FindByID(ctx, id)
}

// Delete removes an article permanently. ADMIN only.
func (s *articleService) Delete(ctx context.Context, id, actorID uint, role model.Role) error {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return apperrors.Translate(err, apperrors.ErrArticleNotFound)
	}

	if !authz.Can(authz.ActionDeleteArticle, role, actorID, article.AuthorID) {
		return apperrors.ErrForbidden
	}

	if err := s.articleRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	s.invalidatePublicList(ctx)
	return nil
}

func (s *articleService) invalidatePublicList(ctx context.Context) {
	_ = s.cache.DeleteByPrefix(ctx, publicListCachePrefix)
}
