package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/data/repos"
	types "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/domain"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/apierr"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
)

// ImageStore persists uploaded course images. Store returns an object key.
type ImageStore interface {
	Store(ctx context.Context, name string, file io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// CourseListQuery holds the raw list query parameters.
type CourseListQuery struct {
	Status     string
	CategoryID string
	Featured   string
	Search     string
}

type CourseService interface {
	List(ctx context.Context, tx *gorm.DB, query CourseListQuery) ([]*types.Course, error)
	Get(ctx context.Context, tx *gorm.DB, courseID uint) (*types.Course, error)
	Create(ctx context.Context, tx *gorm.DB, in CourseInput) (*types.Course, error)
	Update(ctx context.Context, tx *gorm.DB, courseID uint, in CourseInput) (*types.Course, error)
	Delete(ctx context.Context, tx *gorm.DB, courseID uint) error
}

type courseService struct {
	db           *gorm.DB
	log          *logger.Logger
	courseRepo   repos.CourseRepo
	categoryRepo repos.CategoryRepo
	images       ImageStore
}

// NewCourseService accepts a nil image store; writes carrying an image are
// then rejected.
func NewCourseService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	categoryRepo repos.CategoryRepo,
	images ImageStore,
) CourseService {
	serviceLog := baseLog.With("service", "CourseService")
	return &courseService{
		db:           db,
		log:          serviceLog,
		courseRepo:   courseRepo,
		categoryRepo: categoryRepo,
		images:       images,
	}
}

func (cs *courseService) List(ctx context.Context, tx *gorm.DB, query CourseListQuery) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = cs.db
	}

	filter, err := parseCourseListQuery(query)
	if err != nil {
		return nil, err
	}
	courses, err := cs.courseRepo.List(ctx, transaction, filter)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func parseCourseListQuery(query CourseListQuery) (repos.CourseFilter, error) {
	filter := repos.CourseFilter{Search: strings.TrimSpace(query.Search)}

	if raw := strings.TrimSpace(query.Status); raw != "" {
		status := types.CourseStatus(strings.ToLower(raw))
		if !status.Valid() {
			return filter, apierr.Validation("status", "status must be one of draft, published, archived")
		}
		filter.Status = status
	}
	if raw := strings.TrimSpace(query.CategoryID); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			return filter, apierr.Validation("categoryId", "categoryId must be a positive integer")
		}
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}
	filter.Featured = coerceBool(query.Featured)
	return filter, nil
}

func (cs *courseService) Get(ctx context.Context, tx *gorm.DB, courseID uint) (*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = cs.db
	}

	rows, err := cs.courseRepo.GetByIDs(ctx, transaction, []uint{courseID})
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if len(rows) == 0 || rows[0] == nil {
		return nil, apierr.NotFound("course")
	}
	return rows[0], nil
}

func (cs *courseService) Create(ctx context.Context, tx *gorm.DB, in CourseInput) (*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = cs.db
	}

	changes, err := parseCourseInput(in, true)
	if err != nil {
		return nil, err
	}
	if err := cs.checkCategory(ctx, transaction, changes); err != nil {
		return nil, err
	}
	imageKey, err := cs.storeImage(ctx, in.Image, changes)
	if err != nil {
		return nil, err
	}

	course := changes.newCourse()
	if _, err := cs.courseRepo.Create(ctx, transaction, []*types.Course{course}); err != nil {
		cs.discardImage(imageKey)
		cs.log.Error("Create course failed", "error", err)
		return nil, fmt.Errorf("create course: %w", err)
	}
	cs.log.Info("Course created", "course_id", course.ID, "owned_by_platform", course.OwnedByPlatform)
	return cs.Get(ctx, transaction, course.ID)
}

func (cs *courseService) Update(ctx context.Context, tx *gorm.DB, courseID uint, in CourseInput) (*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = cs.db
	}

	if _, err := cs.Get(ctx, transaction, courseID); err != nil {
		return nil, err
	}
	changes, err := parseCourseInput(in, false)
	if err != nil {
		return nil, err
	}
	if err := cs.checkCategory(ctx, transaction, changes); err != nil {
		return nil, err
	}
	imageKey, err := cs.storeImage(ctx, in.Image, changes)
	if err != nil {
		return nil, err
	}

	if err := cs.courseRepo.UpdateFields(ctx, transaction, courseID, changes.columnUpdates()); err != nil {
		cs.discardImage(imageKey)
		cs.log.Error("Update course failed", "course_id", courseID, "error", err)
		return nil, fmt.Errorf("update course: %w", err)
	}
	return cs.Get(ctx, transaction, courseID)
}

func (cs *courseService) Delete(ctx context.Context, tx *gorm.DB, courseID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = cs.db
	}

	if _, err := cs.Get(ctx, transaction, courseID); err != nil {
		return err
	}
	if err := cs.courseRepo.FullDeleteByIDs(ctx, transaction, []uint{courseID}); err != nil {
		cs.log.Error("Delete course failed", "course_id", courseID, "error", err)
		return fmt.Errorf("delete course: %w", err)
	}
	cs.log.Info("Course deleted", "course_id", courseID)
	return nil
}

func (cs *courseService) checkCategory(ctx context.Context, tx *gorm.DB, changes *courseChanges) error {
	if changes.CategoryID == nil {
		return nil
	}
	rows, err := cs.categoryRepo.GetByIDs(ctx, tx, []uint{*changes.CategoryID})
	if err != nil {
		return fmt.Errorf("load category: %w", err)
	}
	if len(rows) == 0 {
		return apierr.Validation("categoryId", "category %d does not exist", *changes.CategoryID)
	}
	return nil
}

// storeImage uploads the image, if any, and points changes at it. The
// returned key is empty when nothing was uploaded.
func (cs *courseService) storeImage(ctx context.Context, image *ImageUpload, changes *courseChanges) (string, error) {
	if image == nil || image.Reader == nil {
		return "", nil
	}
	if cs.images == nil {
		return "", apierr.Validation("image", "image uploads are disabled")
	}
	key, err := cs.images.Store(ctx, image.Name, image.Reader)
	if err != nil {
		cs.log.Error("Store course image failed", "name", image.Name, "error", err)
		return "", fmt.Errorf("store course image: %w", err)
	}
	url := cs.images.PublicURL(key)
	changes.ImageURL = &url
	return key, nil
}

// discardImage removes an upload whose course row was never written. It runs
// detached from the request context, which is often already cancelled here.
func (cs *courseService) discardImage(key string) {
	if key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := cs.images.Delete(ctx, key); err != nil {
		cs.log.Warn("Orphaned course image left in storage", "key", key, "error", err)
	}
}
