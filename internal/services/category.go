package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/data/repos"
	types "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/domain"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/apierr"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
)

type CategoryService interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.Category, error)
	Get(ctx context.Context, tx *gorm.DB, categoryID uint) (*types.Category, error)
}

type categoryService struct {
	db           *gorm.DB
	log          *logger.Logger
	categoryRepo repos.CategoryRepo
}

func NewCategoryService(db *gorm.DB, baseLog *logger.Logger, categoryRepo repos.CategoryRepo) CategoryService {
	return &categoryService{
		db:           db,
		log:          baseLog.With("service", "CategoryService"),
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) List(ctx context.Context, tx *gorm.DB) ([]*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	rows, err := s.categoryRepo.List(ctx, transaction)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return rows, nil
}

func (s *categoryService) Get(ctx context.Context, tx *gorm.DB, categoryID uint) (*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}
	rows, err := s.categoryRepo.GetByIDs(ctx, transaction, []uint{categoryID})
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	if len(rows) == 0 {
		return nil, apierr.NotFound("category")
	}
	return rows[0], nil
}
