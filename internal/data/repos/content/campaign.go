package content

import (
	"context"

	types "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/domain"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
	"gorm.io/gorm"
)

type CampaignRepo interface {
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type campaignRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCampaignRepo(db *gorm.DB, baseLog *logger.Logger) CampaignRepo {
	return &campaignRepo{db: db, log: baseLog.With("repo", "CampaignRepo")}
}

func (r *campaignRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Campaign{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
