package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/data/repos"
	types "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/domain"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/observability"
	pkgerrors "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/pkg/errors"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/apierr"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
)

// EnrollInput is a public enrollment request. Interest and Motivation are nil
// when the caller left them out; a blank value counts as left out.
type EnrollInput struct {
	CourseID   uint    `json:"courseId" validate:"required"`
	Name       string  `json:"name" validate:"required,max=200"`
	Email      string  `json:"email" validate:"required,email,max=320"`
	Interest   *string `json:"interest,omitempty" validate:"omitempty,max=2000"`
	Motivation *string `json:"motivation,omitempty" validate:"omitempty,max=2000"`
}

type EnrollResult struct {
	Success    bool                    `json:"success"`
	Enrollment *types.CourseEnrollment `json:"enrollment"`
	// Created is false when the student was already enrolled.
	Created bool `json:"created"`
}

type EnrollmentService interface {
	Enroll(ctx context.Context, tx *gorm.DB, in EnrollInput) (*EnrollResult, error)
	ListStudentsForCourse(ctx context.Context, tx *gorm.DB, courseID uint) ([]*types.Student, error)
	ListCoursesForStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*types.Course, error)
	FindStudentByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Student, error)
}

type enrollmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	metrics        *observability.Metrics
	courseRepo     repos.CourseRepo
	studentRepo    repos.StudentRepo
	enrollmentRepo repos.CourseEnrollmentRepo
}

func NewEnrollmentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	metrics *observability.Metrics,
	courseRepo repos.CourseRepo,
	studentRepo repos.StudentRepo,
	enrollmentRepo repos.CourseEnrollmentRepo,
) EnrollmentService {
	serviceLog := baseLog.With("service", "EnrollmentService")
	return &enrollmentService{
		db:             db,
		log:            serviceLog,
		metrics:        metrics,
		courseRepo:     courseRepo,
		studentRepo:    studentRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeEnrollInput(in EnrollInput) EnrollInput {
	in.Email = NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Interest = trimmedOrNil(in.Interest)
	in.Motivation = trimmedOrNil(in.Motivation)
	return in
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (es *enrollmentService) Enroll(ctx context.Context, tx *gorm.DB, in EnrollInput) (*EnrollResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = es.db
	}

	in = normalizeEnrollInput(in)
	if err := validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	courses, err := es.courseRepo.GetByIDs(ctx, transaction, []uint{in.CourseID})
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if len(courses) == 0 {
		return nil, apierr.NotFound("course")
	}

	student, err := es.upsertStudent(ctx, transaction, in)
	if errors.Is(err, pkgerrors.ErrConflict) {
		es.log.Warn("Student upsert lost a race; retrying", "email", in.Email)
		student, err = es.upsertStudent(ctx, transaction, in)
	}
	if err != nil {
		return nil, fmt.Errorf("upsert student: %w", err)
	}

	enrollment, created, err := es.ensureEnrollment(ctx, transaction, in.CourseID, student.ID)
	if errors.Is(err, pkgerrors.ErrConflict) {
		es.log.Warn("Enrollment insert lost a race; retrying", "course_id", in.CourseID, "student_id", student.ID)
		enrollment, created, err = es.ensureEnrollment(ctx, transaction, in.CourseID, student.ID)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		// The course was deleted after the existence check above.
		return nil, apierr.NotFound("course")
	}
	if err != nil {
		return nil, fmt.Errorf("enroll student: %w", err)
	}

	es.metrics.RecordEnrollment(created)
	es.log.Info("Enrollment recorded",
		"course_id", in.CourseID,
		"student_id", student.ID,
		"enrollment_id", enrollment.ID,
		"created", created,
	)
	return &EnrollResult{Success: true, Enrollment: enrollment, Created: created}, nil
}

// upsertStudent always refreshes the name; interest and motivation are only
// overwritten when supplied.
func (es *enrollmentService) upsertStudent(ctx context.Context, tx *gorm.DB, in EnrollInput) (*types.Student, error) {
	student := &types.Student{Email: in.Email, Name: in.Name}
	overwrite := []string{"name"}
	if in.Interest != nil {
		student.Interest = *in.Interest
		overwrite = append(overwrite, "interest")
	}
	if in.Motivation != nil {
		student.Motivation = *in.Motivation
		overwrite = append(overwrite, "motivation")
	}
	return es.studentRepo.UpsertByEmail(ctx, tx, student, overwrite)
}

func (es *enrollmentService) ensureEnrollment(ctx context.Context, tx *gorm.DB, courseID, studentID uint) (*types.CourseEnrollment, bool, error) {
	created, err := es.enrollmentRepo.InsertIfAbsent(ctx, tx, &types.CourseEnrollment{
		CourseID:  courseID,
		StudentID: studentID,
	})
	if err != nil {
		return nil, false, err
	}
	row, err := es.enrollmentRepo.GetByPair(ctx, tx, courseID, studentID)
	if err != nil {
		return nil, false, err
	}
	if row == nil {
		return nil, false, pkgerrors.ErrConflict
	}
	return row, created, nil
}

func (es *enrollmentService) ListStudentsForCourse(ctx context.Context, tx *gorm.DB, courseID uint) ([]*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = es.db
	}

	courses, err := es.courseRepo.GetByIDs(ctx, transaction, []uint{courseID})
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if len(courses) == 0 {
		return nil, apierr.NotFound("course")
	}
	students, err := es.studentRepo.GetByCourseID(ctx, transaction, courseID)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

func (es *enrollmentService) ListCoursesForStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*types.Course, error) {
	transaction := tx
	if transaction == nil {
		transaction = es.db
	}

	students, err := es.studentRepo.GetByIDs(ctx, transaction, []uint{studentID})
	if err != nil {
		return nil, fmt.Errorf("load student: %w", err)
	}
	if len(students) == 0 {
		return nil, apierr.NotFound("student")
	}
	courses, err := es.courseRepo.GetByStudentID(ctx, transaction, studentID)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (es *enrollmentService) FindStudentByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = es.db
	}

	email = NormalizeEmail(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, apierr.Validation("email", "email must be a valid email address")
	}
	rows, err := es.studentRepo.GetByEmails(ctx, transaction, []string{email})
	if err != nil {
		return nil, fmt.Errorf("find student: %w", err)
	}
	if len(rows) == 0 {
		return nil, apierr.NotFound("student")
	}
	return rows[0], nil
}
