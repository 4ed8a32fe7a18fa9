package catalog

import (
	"context"

	types "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/domain"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
	"gorm.io/gorm"
)

type CategoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, categories []*types.Category) ([]*types.Category, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Category, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uint) ([]*types.Category, error)
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return &categoryRepo{db: db, log: baseLog.With("repo", "CategoryRepo")}
}

func (r *categoryRepo) Create(ctx context.Context, tx *gorm.DB, categories []*types.Category) ([]*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(categories) == 0 {
		return []*types.Category{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Category
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *categoryRepo) GetByIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uint) ([]*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Category
	if len(categoryIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", categoryIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
