package content

import (
	"context"
	"time"

	types "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/domain"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
	"gorm.io/gorm"
)

type SubscriberRepo interface {
	CountActive(ctx context.Context, tx *gorm.DB) (int64, error)
	CountActiveCreatedBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) (int64, error)
	ListRecentActive(ctx context.Context, tx *gorm.DB, since time.Time, limit int) ([]*types.Subscriber, error)
}

type subscriberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubscriberRepo(db *gorm.DB, baseLog *logger.Logger) SubscriberRepo {
	repoLog := baseLog.With("repo", "SubscriberRepo")
	return &subscriberRepo{db: db, log: repoLog}
}

func (r *subscriberRepo) active(ctx context.Context, tx *gorm.DB) *gorm.DB {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Subscriber{}).
		Where("status = ?", types.SubscriberStatusActive)
}

func (r *subscriberRepo) CountActive(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	if err := r.active(ctx, tx).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *subscriberRepo) CountActiveCreatedBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) (int64, error) {
	var count int64
	if err := r.active(ctx, tx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *subscriberRepo) ListRecentActive(ctx context.Context, tx *gorm.DB, since time.Time, limit int) ([]*types.Subscriber, error) {
	q := r.active(ctx, tx)
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var results []*types.Subscriber
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
