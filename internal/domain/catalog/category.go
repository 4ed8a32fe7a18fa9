package catalog

import (
	"time"

	"gorm.io/datatypes"
)

// Category is referenced by courses but owned by the taxonomy admin screens.
type Category struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	Name        string                      `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Description string                      `gorm:"column:description;type:text" json:"description,omitempty"`
	Tags        datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags,omitempty"`
	CreatedAt   time.Time                   `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time                   `gorm:"not null" json:"updatedAt"`
}

func (Category) TableName() string { return "category" }
