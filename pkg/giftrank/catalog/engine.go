package catalog

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/perfectpick/giftrank/pkg/giftrank/models"
)

// ScoredGift is a gift plus its tag-match score. The score is transient,
// computed fresh per request, and stripped before presentation.
type ScoredGift struct {
	models.Gift
	Score int
}

// Engine implements the ranking, scoring, and pagination core over the
// catalog store.
type Engine struct {
	db           *gorm.DB
	windowFactor int
	windowMin    int
}

// EngineOption tunes an Engine.
type EngineOption func(*Engine)

// WithWindow overrides the candidate window sizing used for tag searches.
func WithWindow(factor, min int) EngineOption {
	return func(e *Engine) {
		if factor > 0 {
			e.windowFactor = factor
		}
		if min > 0 {
			e.windowMin = min
		}
	}
}

// NewEngine creates a ranking engine backed by db.
func NewEngine(db *gorm.DB, opts ...EngineOption) *Engine {
	e := &Engine{db: db, windowFactor: 3, windowMin: 50}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search returns the requested page of gifts for the given criteria and the
// caller's resolved country (empty when unknown). Params are validated
// before any store access; a *ValidationError signals a client error.
//
// Two regimes:
//   - no tags requested: ordering and pagination happen entirely at the
//     store level (country asc nulls last, id asc);
//   - tags requested: a superset window is fetched and re-ranked in memory
//     by score, geo-affinity, and id, then sliced to the page.
func (e *Engine) Search(ctx context.Context, params SearchParams, country string) ([]ScoredGift, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	query := e.db.WithContext(ctx).
		Model(&models.Gift{}).
		Preload("Tags").
		Where("enabled = ?", true)

	if classes := deliveryClasses(params.Delivery); classes != nil {
		query = query.Where("delivery IN ?", classes)
	}
	if params.PriceRange != "" {
		query = query.Where("price_range = ?", params.PriceRange)
	}

	tagSet := params.tagSet()

	if tagSet == nil {
		// Page directly at the store. Gifts from the caller's country sort
		// contiguously under country asc; untagged countries go last.
		var gifts []models.Gift
		err := query.
			Order("country ASC NULLS LAST").
			Order("id ASC").
			Offset(params.Offset).
			Limit(params.Limit).
			Find(&gifts).Error
		if err != nil {
			return nil, err
		}
		return asScored(gifts), nil
	}

	// Tag scores cannot be computed by a store-level sort, so pull a
	// superset window from position 0 and re-rank in memory. The window is
	// an approximation: matches beyond it can be missed.
	window := e.windowFactor * params.Limit
	if window < e.windowMin {
		window = e.windowMin
	}
	if window < params.Offset+params.Limit {
		window = params.Offset + params.Limit
	}

	var gifts []models.Gift
	err := query.
		Order("id ASC").
		Limit(window).
		Find(&gifts).Error
	if err != nil {
		return nil, err
	}

	scored := scoreAll(gifts, tagSet)
	rank(scored, country)
	return paginate(scored, params.Offset, params.Limit), nil
}

func asScored(gifts []models.Gift) []ScoredGift {
	scored := make([]ScoredGift, len(gifts))
	for i, g := range gifts {
		scored[i] = ScoredGift{Gift: g}
	}
	return scored
}

// scoreAll computes each gift's score: the count of its tags whose name is
// in the requested set. Zero-score gifts stay in; they only rank lower.
func scoreAll(gifts []models.Gift, tagSet map[string]struct{}) []ScoredGift {
	scored := make([]ScoredGift, len(gifts))
	for i, g := range gifts {
		score := 0
		for _, t := range g.Tags {
			if _, ok := tagSet[t.Name]; ok {
				score++
			}
		}
		scored[i] = ScoredGift{Gift: g, Score: score}
	}
	return scored
}

// rank sorts candidates by score descending, then caller-country affinity
// when the country is known, then id ascending. The id tiebreak makes the
// order total, so repeated identical requests page identically.
func rank(scored []ScoredGift, country string) {
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if country != "" {
			aMatch := a.Country != nil && *a.Country == country
			bMatch := b.Country != nil && *b.Country == country
			if aMatch != bMatch {
				return aMatch
			}
		}
		return a.ID < b.ID
	})
}

// paginate slices the ranked list to [offset, offset+limit). An offset past
// the end yields an empty page, not an error.
func paginate(scored []ScoredGift, offset, limit int) []ScoredGift {
	if offset >= len(scored) {
		return []ScoredGift{}
	}
	end := offset + limit
	if end > len(scored) {
		end = len(scored)
	}
	return scored[offset:end]
}
