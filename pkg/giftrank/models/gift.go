package models

import (
	"time"

	"gorm.io/gorm"
)

// Delivery classes, ordered by speed. BelowDay and BelowWeek form a
// cumulative ladder; Instant is a distinct fast path and OverWeek is the
// catch-all slowest tier.
const (
	DeliveryInstant   = "instant"
	DeliveryBelowDay  = "below-day"
	DeliveryBelowWeek = "below-week"
	DeliveryOverWeek  = "over-week"
)

// ValidDelivery reports whether s is one of the known delivery classes.
func ValidDelivery(s string) bool {
	switch s {
	case DeliveryInstant, DeliveryBelowDay, DeliveryBelowWeek, DeliveryOverWeek:
		return true
	}
	return false
}

// Gift represents a purchasable product recommendation in the catalog
type Gift struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `json:"description,omitempty"`
	Image         string         `json:"image"`
	Seller        string         `json:"seller"`
	Country       *string        `gorm:"index" json:"country,omitempty"`
	Delivery      string         `gorm:"index" json:"delivery"`
	PriceRange    string         `gorm:"index" json:"priceRange"`
	PriceEur      *float64       `json:"-"`
	PriceDlr      *float64       `json:"-"`
	AffiliateLink string         `json:"-"`
	OriginalLink  string         `json:"-"`
	Enabled       bool           `gorm:"default:true" json:"-"`

	// Relationships
	Tags []Tag `gorm:"many2many:gift_tags;" json:"tags,omitempty"`
}

// Link resolves the outbound link for a gift: the affiliate link when one
// is set, otherwise the original product link.
func (g Gift) Link() string {
	if g.AffiliateLink != "" {
		return g.AffiliateLink
	}
	return g.OriginalLink
}
