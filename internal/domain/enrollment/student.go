package enrollment

import "time"

// Student is keyed naturally by Email; the unique index is what makes
// find-or-create safe under concurrent enrollment.
type Student struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Email      string    `gorm:"column:email;not null;uniqueIndex:idx_student_email" json:"email"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	Interest   string    `gorm:"column:interest;type:text" json:"interest"`
	Motivation string    `gorm:"column:motivation;type:text" json:"motivation"`
	CreatedAt  time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"not null" json:"updatedAt"`
}

func (Student) TableName() string { return "student" }
