package repository

import (
	"context"

	"gorm.io/gorm"

	"pressroom/internal/model"
	"pressroom/internal/query"
)

// ArticleRepository defines article persistence operations.
type ArticleRepository interface {
	Create(ctx context.Context, article *model.Article) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Article, error)
	List(ctx context.Context, f query.ListFilters) ([]model.Article, int64, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository builds a GORM-backed repository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

// UpdateFields applies a partial update to the given columns only, so an
// update never rewrites the immutable author_id.
func (r *articleRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *articleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Article{}, id).Error
}

func (r *articleRepository) FindByID(ctx context.Context, id uint) (*model.Article, error) {
	var article model.Article
	if err := r.db.WithContext(ctx).Preload("Author").First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// List returns one page of articles plus the total count for the same
// predicate. The two reads are not transactional: under concurrent writes the
// total may drift from the page by the number of concurrently committed
// changes, which is accepted.
func (r *articleRepository) List(ctx context.Context, f query.ListFilters) ([]model.Article, int64, error) {
	f = f.Normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Article{}).
		Scopes(query.Predicate(f)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []model.Article
	if err := r.db.WithContext(ctx).
		Scopes(query.Predicate(f), query.Page(f)).
		Preload("Author").
		Find(&articles).Error; err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

func (r *articleRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Article{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}
