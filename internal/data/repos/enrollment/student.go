package enrollment

import (
	"context"
	"errors"

	types "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/domain"
	pkgerrors "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/pkg/errors"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentRepo interface {
	UpsertByEmail(ctx context.Context, tx *gorm.DB, student *types.Student, overwrite []string) (*types.Student, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, studentIDs []uint) ([]*types.Student, error)
	GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*types.Student, error)
	GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uint) ([]*types.Student, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type studentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentRepo(db *gorm.DB, baseLog *logger.Logger) StudentRepo {
	repoLog := baseLog.With("repo", "StudentRepo")
	return &studentRepo{db: db, log: repoLog}
}

// UpsertByEmail inserts the student or, when the email already exists,
// overwrites only the listed columns. The stored row is returned. Concurrent
// callers with the same email converge on a single row.
func (r *studentRepo) UpsertByEmail(ctx context.Context, tx *gorm.DB, student *types.Student, overwrite []string) (*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if student == nil || student.Email == "" {
		return nil, pkgerrors.ErrInvalidArgument
	}

	onConflict := clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
	}
	if len(overwrite) == 0 {
		onConflict.DoNothing = true
	} else {
		onConflict.DoUpdates = clause.AssignmentColumns(append(append([]string{}, overwrite...), "updated_at"))
	}

	row := *student
	row.ID = 0
	err := transaction.WithContext(ctx).Clauses(onConflict).Create(&row).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	rows, err := r.GetByEmails(ctx, transaction, []string{student.Email})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, pkgerrors.ErrConflict
	}
	return rows[0], nil
}

func (r *studentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, studentIDs []uint) ([]*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Student
	if len(studentIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", studentIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *studentRepo) GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Student
	if len(emails) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("email IN ?", emails).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByCourseID lists the students enrolled in a course, oldest enrollment
// first.
func (r *studentRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uint) ([]*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Student
	if err := transaction.WithContext(ctx).
		Model(&types.Student{}).
		Select("student.*").
		Joins("JOIN course_enrollment ON course_enrollment.student_id = student.id").
		Where("course_enrollment.course_id = ?", courseID).
		Order("course_enrollment.created_at ASC").
		Order("course_enrollment.id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *studentRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Student{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
