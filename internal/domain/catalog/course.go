package catalog

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "draft"
	CourseStatusPublished CourseStatus = "published"
	CourseStatusArchived  CourseStatus = "archived"
)

func (s CourseStatus) Valid() bool {
	switch s {
	case CourseStatusDraft, CourseStatusPublished, CourseStatusArchived:
		return true
	default:
		return false
	}
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert:
		return true
	default:
		return false
	}
}

const DefaultCurrency = "USD"

// Course is a catalog entry. OwnedByPlatform is the only stored ownership
// flag; the legacy isExternal field is always computed from it.
type Course struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	Title           string       `gorm:"column:title;not null" json:"title"`
	Description     string       `gorm:"column:description;type:text" json:"description"`
	OwnedByPlatform bool         `gorm:"column:owned_by_platform;not null;default:false" json:"ownedByPlatform"`
	Status          CourseStatus `gorm:"column:status;not null;default:'draft';index" json:"status"`
	CategoryID      *uint        `gorm:"column:category_id;index" json:"categoryId"`
	Category        *Category    `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL" json:"category,omitempty"`

	// Price and Currency are only meaningful when OwnedByPlatform is set but
	// are always stored.
	Price    float64 `gorm:"column:price;type:numeric(10,2);not null;default:0" json:"price"`
	Currency string  `gorm:"column:currency;size:3;not null;default:'USD'" json:"currency"`

	Difficulty       Difficulty                  `gorm:"column:difficulty;not null;default:'beginner'" json:"difficulty"`
	Tags             datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	Prerequisites    datatypes.JSONSlice[string] `gorm:"column:prerequisites" json:"prerequisites"`
	LearningOutcomes datatypes.JSONSlice[string] `gorm:"column:learning_outcomes" json:"learningOutcomes"`
	Featured         bool                        `gorm:"column:featured;not null;default:false;index" json:"featured"`
	ImageURL         string                      `gorm:"column:image_url" json:"imageUrl,omitempty"`

	// EnrollmentCount is filled by catalog queries from the enrollment join.
	EnrollmentCount int64 `gorm:"column:enrollment_count;->;-:migration" json:"enrollmentCount"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Course) TableName() string { return "course" }

func (c Course) IsExternal() bool { return !c.OwnedByPlatform }

func (c *Course) AfterFind(tx *gorm.DB) error {
	c.normalizeSequences()
	return nil
}

func (c *Course) normalizeSequences() {
	if c.Tags == nil {
		c.Tags = datatypes.JSONSlice[string]{}
	}
	if c.Prerequisites == nil {
		c.Prerequisites = datatypes.JSONSlice[string]{}
	}
	if c.LearningOutcomes == nil {
		c.LearningOutcomes = datatypes.JSONSlice[string]{}
	}
}

func (c Course) MarshalJSON() ([]byte, error) {
	type plain Course
	c.normalizeSequences()
	return json.Marshal(struct {
		plain
		IsExternal bool `json:"isExternal"`
	}{plain: plain(c), IsExternal: c.IsExternal()})
}
