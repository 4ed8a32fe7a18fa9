package catalog

import (
	"context"
	"strings"

	types "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/domain"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
	"gorm.io/gorm"
)

// CourseFilter narrows List. Zero values mean "no restriction"; Featured only
// restricts when true.
type CourseFilter struct {
	Status     types.CourseStatus
	CategoryID *uint
	Featured   bool
	Search     string
}

type CourseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error)
	List(ctx context.Context, tx *gorm.DB, filter CourseFilter) ([]*types.Course, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uint) ([]*types.Course, error)
	GetByStudentID(ctx context.Context, tx *gorm.DB, studentID uint) ([]*types.Course, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, courseID uint, updates map[string]interface{}) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uint) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	repoLog := baseLog.With("repo", "CourseRepo")
	return &courseRepo{db: db, log: repoLog}
}

const enrollmentCountSelect = "course.*, (SELECT COUNT(*) FROM course_enrollment ce WHERE ce.course_id = course.id) AS enrollment_count"

// withEnrollmentCount derives enrollment_count from the join table at read
// time; there is no stored counter to drift.
func withEnrollmentCount(q *gorm.DB) *gorm.DB {
	return q.Model(&types.Course{}).Select(enrollmentCountSelect)
}

func (r *courseRepo) Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(courses) == 0 {
		return []*types.Course{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) List(ctx context.Context, tx *gorm.DB, filter CourseFilter) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := withEnrollmentCount(transaction.WithContext(ctx))
	if filter.Status != "" {
		q = q.Where("course.status = ?", filter.Status)
	}
	if filter.CategoryID != nil {
		q = q.Where("course.category_id = ?", *filter.CategoryID)
	}
	if filter.Featured {
		q = q.Where("course.featured = ?", true)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + escapeLike(strings.ToLower(s)) + "%"
		q = q.Where(
			`LOWER(course.title) LIKE ? ESCAPE '\' OR LOWER(course.description) LIKE ? ESCAPE '\'`,
			pattern, pattern,
		)
	}

	var results []*types.Course
	if err := q.
		Order("course.featured DESC").
		Order("course.created_at DESC").
		Order("course.id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uint) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Course
	if len(courseIDs) == 0 {
		return results, nil
	}

	if err := withEnrollmentCount(transaction.WithContext(ctx)).
		Where("course.id IN ?", courseIDs).
		Order("course.id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByStudentID returns one course per enrollment of the student, oldest
// enrollment first.
func (r *courseRepo) GetByStudentID(ctx context.Context, tx *gorm.DB, studentID uint) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Course
	if err := withEnrollmentCount(transaction.WithContext(ctx)).
		Joins("JOIN course_enrollment ON course_enrollment.course_id = course.id").
		Where("course_enrollment.student_id = ?", studentID).
		Order("course_enrollment.created_at ASC").
		Order("course_enrollment.id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) UpdateFields(ctx context.Context, tx *gorm.DB, courseID uint, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(updates) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.Course{}).
		Where("id = ?", courseID).
		Updates(updates).Error
}

// FullDeleteByIDs removes the courses together with the enrollments they own.
func (r *courseRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uint) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(courseIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).Transaction(func(inner *gorm.DB) error {
		if err := inner.
			Where("course_id IN ?", courseIDs).
			Delete(&types.CourseEnrollment{}).Error; err != nil {
			return err
		}
		return inner.
			Where("id IN ?", courseIDs).
			Delete(&types.Course{}).Error
	})
}

func (r *courseRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Course{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
