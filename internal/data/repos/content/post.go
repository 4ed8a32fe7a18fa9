package content

import (
	"context"
	"time"

	types "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/domain"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
	"gorm.io/gorm"
)

// PostRepo only sees published posts; drafts never reach analytics.
type PostRepo interface {
	CountPublished(ctx context.Context, tx *gorm.DB) (int64, error)
	CountPublishedCreatedBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) (int64, error)
	ListRecentPublished(ctx context.Context, tx *gorm.DB, since time.Time, limit int) ([]*types.Post, error)
}

type postRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostRepo(db *gorm.DB, baseLog *logger.Logger) PostRepo {
	repoLog := baseLog.With("repo", "PostRepo")
	return &postRepo{db: db, log: repoLog}
}

func (r *postRepo) published(ctx context.Context, tx *gorm.DB) *gorm.DB {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Post{}).
		Where("status = ?", types.PostStatusPublished)
}

func (r *postRepo) CountPublished(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	if err := r.published(ctx, tx).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postRepo) CountPublishedCreatedBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) (int64, error) {
	var count int64
	if err := r.published(ctx, tx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListRecentPublished returns newest first with Author preloaded. A zero since
// means no lower bound.
func (r *postRepo) ListRecentPublished(ctx context.Context, tx *gorm.DB, since time.Time, limit int) ([]*types.Post, error) {
	q := r.published(ctx, tx).Preload("Author")
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var results []*types.Post
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
