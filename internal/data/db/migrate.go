package db

import (
	"fmt"

	types "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		// =========================
		// Catalog
		// =========================
		&types.Category{},
		&types.Course{},

		// =========================
		// Enrollment ledger
		// =========================
		&types.Student{},
		&types.CourseEnrollment{},

		// =========================
		// Collaborator tables (blog, newsletter, campaigns)
		// =========================
		&types.User{},
		&types.Post{},
		&types.Subscriber{},
		&types.Campaign{},
	); err != nil {
		return err
	}
	if err := EnsureLedgerForeignKeys(db); err != nil {
		return err
	}
	return EnsureLedgerIndexes(db)
}

// ledgerForeignKeys are created explicitly; FK migration stays disabled for
// the other tables because post authors may dangle.
var ledgerForeignKeys = []string{
	"fk_course_enrollment_course",
	"fk_course_enrollment_student",
}

// EnsureLedgerForeignKeys ties every enrollment to an existing course and
// student, cascading on delete. Orphans left by older builds are purged first
// so the constraint can be added. On SQLite adding a constraint rebuilds the
// table, which drops its indexes; EnsureLedgerIndexes must run afterwards.
func EnsureLedgerForeignKeys(db *gorm.DB) error {
	m := db.Migrator()
	for _, name := range ledgerForeignKeys {
		if m.HasConstraint(&types.CourseEnrollment{}, name) {
			continue
		}
		if err := db.Exec(`
			DELETE FROM course_enrollment
			WHERE course_id NOT IN (SELECT id FROM course)
			   OR student_id NOT IN (SELECT id FROM student);
		`).Error; err != nil {
			return fmt.Errorf("purge orphaned enrollments: %w", err)
		}
		if err := m.CreateConstraint(&types.CourseEnrollment{}, name); err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
	}
	return nil
}

// EnsureLedgerIndexes makes the uniqueness guarantees of the ledger explicit.
// AutoMigrate creates them from struct tags on fresh databases; tables that
// predate the tags only get them here.
func EnsureLedgerIndexes(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_student_email
		ON student (email);
	`).Error; err != nil {
		return fmt.Errorf("create idx_student_email: %w", err)
	}
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_course_enrollment_pair
		ON course_enrollment (course_id, student_id);
	`).Error; err != nil {
		return fmt.Errorf("create idx_course_enrollment_pair: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_course_enrollment_student_id
		ON course_enrollment (student_id);
	`).Error; err != nil {
		return fmt.Errorf("create idx_course_enrollment_student_id: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_course_enrollment_created_at
		ON course_enrollment (created_at);
	`).Error; err != nil {
		return fmt.Errorf("create idx_course_enrollment_created_at: %w", err)
	}
	return nil
}
