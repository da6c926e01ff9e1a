package models

import (
	"time"

	"gorm.io/gorm"
)

// Tag represents a named label attached to gifts, used for relevance
// scoring. Names are matched case-sensitively.
type Tag struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`

	// Relationships
	Gifts []Gift `gorm:"many2many:gift_tags;" json:"gifts,omitempty"`
}
