package enrollment

import (
	"context"
	"errors"
	"time"

	types "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/domain"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CourseEnrollmentRepo interface {
	// InsertIfAbsent reports whether a new row was written. An existing
	// (course, student) pair is left untouched.
	InsertIfAbsent(ctx context.Context, tx *gorm.DB, enrollment *types.CourseEnrollment) (bool, error)
	GetByPair(ctx context.Context, tx *gorm.DB, courseID, studentID uint) (*types.CourseEnrollment, error)
	GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uint) ([]*types.CourseEnrollment, error)
	GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uint) ([]*types.CourseEnrollment, error)
	ListRecent(ctx context.Context, tx *gorm.DB, since time.Time, limit int) ([]*types.CourseEnrollment, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	CountCreatedBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) (int64, error)
}

type courseEnrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) CourseEnrollmentRepo {
	repoLog := baseLog.With("repo", "CourseEnrollmentRepo")
	return &courseEnrollmentRepo{db: db, log: repoLog}
}

func (r *courseEnrollmentRepo) InsertIfAbsent(ctx context.Context, tx *gorm.DB, enrollment *types.CourseEnrollment) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if enrollment == nil {
		return false, nil
	}

	res := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "course_id"}, {Name: "student_id"}},
			DoNothing: true,
		}).
		Create(enrollment)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// GetByPair returns nil when the pair is not enrolled.
func (r *courseEnrollmentRepo) GetByPair(ctx context.Context, tx *gorm.DB, courseID, studentID uint) (*types.CourseEnrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CourseEnrollment
	if err := transaction.WithContext(ctx).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *courseEnrollmentRepo) GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uint) ([]*types.CourseEnrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CourseEnrollment
	if len(courseIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Order("created_at ASC").
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseEnrollmentRepo) GetByStudentIDs(ctx context.Context, tx *gorm.DB, studentIDs []uint) ([]*types.CourseEnrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CourseEnrollment
	if len(studentIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("student_id IN ?", studentIDs).
		Order("created_at ASC").
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListRecent returns enrollments created at or after since, newest first,
// with Course and Student preloaded. A zero since means no lower bound.
func (r *courseEnrollmentRepo) ListRecent(ctx context.Context, tx *gorm.DB, since time.Time, limit int) ([]*types.CourseEnrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).
		Preload("Course").
		Preload("Student")
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var results []*types.CourseEnrollment
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseEnrollmentRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.CourseEnrollment{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountCreatedBetween counts rows with from <= created_at < to.
func (r *courseEnrollmentRepo) CountCreatedBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.CourseEnrollment{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
