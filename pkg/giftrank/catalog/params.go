package catalog

import (
	"fmt"

	"github.com/perfectpick/giftrank/pkg/giftrank/models"
)

const (
	// DefaultLimit is the page size used when the caller sends none.
	DefaultLimit = 3
	// MaxLimit is the hard page-size ceiling; requests above it are
	// rejected, not clamped.
	MaxLimit = 10
)

// SearchParams carries the caller-supplied ranking criteria.
type SearchParams struct {
	Delivery   string   `json:"delivery"`
	PriceRange string   `json:"priceRange"`
	Tags       []string `json:"tags"`
	Offset     int      `json:"offset"`
	Limit      int      `json:"limit"`
}

// ValidationError represents a request validation error
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the parameters and fills in defaults. A zero limit means
// "absent" and takes DefaultLimit. Validation runs before any store access.
func (p *SearchParams) Validate() error {
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		return &ValidationError{fmt.Sprintf("Limit cannot be more than %d", MaxLimit)}
	}
	if p.Limit < 1 {
		return &ValidationError{"Limit must be at least 1"}
	}
	if p.Offset < 0 {
		return &ValidationError{"Offset cannot be negative"}
	}
	if p.Delivery != "" && !models.ValidDelivery(p.Delivery) {
		return &ValidationError{fmt.Sprintf("Unknown delivery class %q", p.Delivery)}
	}
	return nil
}

// tagSet collapses the requested tag names into a set; order and duplicates
// are irrelevant to scoring.
func (p *SearchParams) tagSet() map[string]struct{} {
	if len(p.Tags) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(p.Tags))
	for _, t := range p.Tags {
		set[t] = struct{}{}
	}
	return set
}

// deliveryClasses translates a requested delivery class into the set of
// classes it matches. The ladder is cumulative for the two middle tiers:
// below-week includes below-day. Instant matches only itself, and the
// slowest tier imposes no filter at all.
func deliveryClasses(delivery string) []string {
	switch delivery {
	case models.DeliveryInstant:
		return []string{models.DeliveryInstant}
	case models.DeliveryBelowDay:
		return []string{models.DeliveryBelowDay}
	case models.DeliveryBelowWeek:
		return []string{models.DeliveryBelowDay, models.DeliveryBelowWeek}
	default:
		return nil
	}
}
