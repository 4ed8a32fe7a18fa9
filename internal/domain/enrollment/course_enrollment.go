package enrollment

import (
	"time"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/domain/catalog"
)

// CourseEnrollment joins a student to a course. Rows are never updated and
// are removed only when their course is deleted.
type CourseEnrollment struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	CourseID  uint            `gorm:"column:course_id;not null;uniqueIndex:idx_course_enrollment_pair,priority:1" json:"courseId"`
	StudentID uint            `gorm:"column:student_id;not null;uniqueIndex:idx_course_enrollment_pair,priority:2;index" json:"studentId"`
	Course    *catalog.Course `gorm:"foreignKey:CourseID;references:ID;constraint:fk_course_enrollment_course,OnDelete:CASCADE" json:"course,omitempty"`
	Student   *Student        `gorm:"foreignKey:StudentID;references:ID;constraint:fk_course_enrollment_student,OnDelete:CASCADE" json:"student,omitempty"`
	CreatedAt time.Time       `gorm:"not null;index" json:"createdAt"`
}

func (CourseEnrollment) TableName() string { return "course_enrollment" }
