package models

import (
	"time"

	"gorm.io/gorm"
)

// Collection is a curated, named set of gifts (e.g. the "home" page
// selection). Membership order is the order gifts were added.
type Collection struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`
}

// CollectionGift joins gifts to collections. The join is explicit rather
// than a gorm many2many so that CreatedAt can serve as the insertion-order
// sort key when listing a collection.
type CollectionGift struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	CollectionID uint      `gorm:"not null;index" json:"collection_id"`
	GiftID       uint      `gorm:"not null;index" json:"gift_id"`

	// Relationships
	Collection Collection `gorm:"foreignKey:CollectionID" json:"-"`
	Gift       Gift       `gorm:"foreignKey:GiftID" json:"-"`
}
