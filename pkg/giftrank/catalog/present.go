package catalog

import "github.com/perfectpick/giftrank/pkg/giftrank/models"

// Currencies the storefront displays. The split is deliberately binary:
// US callers see dollars, everyone else (unknown included) sees euros.
const (
	CurrencyDollar = "dollar"
	CurrencyEuro   = "euro"
)

// CurrencyFor picks the display currency for a resolved country.
func CurrencyFor(country string) string {
	if country == "US" {
		return CurrencyDollar
	}
	return CurrencyEuro
}

// TagRef is the flattened tag shape exposed to clients.
type TagRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// PresentedGift is the outward gift shape: the score and both raw prices
// and raw links are gone, replaced by a single currency-resolved price and
// a single resolved link.
type PresentedGift struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image"`
	Seller      string   `json:"seller"`
	Country     *string  `json:"country,omitempty"`
	Delivery    string   `json:"delivery"`
	PriceRange  string   `json:"priceRange"`
	Price       *float64 `json:"price"`
	Link        string   `json:"link"`
	Tags        []TagRef `json:"tags"`
}

// Present flattens a scored gift for the response. When the selected
// currency's price field is absent the price stays null; that is not an
// error.
func Present(g ScoredGift, currency string) PresentedGift {
	price := g.PriceEur
	if currency == CurrencyDollar {
		price = g.PriceDlr
	}
	return PresentedGift{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Image:       g.Image,
		Seller:      g.Seller,
		Country:     g.Country,
		Delivery:    g.Delivery,
		PriceRange:  g.PriceRange,
		Price:       price,
		Link:        g.Link(),
		Tags:        TagRefs(g.Tags),
	}
}

// PresentAll presents a whole page in order.
func PresentAll(page []ScoredGift, currency string) []PresentedGift {
	out := make([]PresentedGift, len(page))
	for i, g := range page {
		out[i] = Present(g, currency)
	}
	return out
}

// TagRefs flattens a tag list to the outward id+name shape.
func TagRefs(tags []models.Tag) []TagRef {
	refs := make([]TagRef, len(tags))
	for i, t := range tags {
		refs[i] = TagRef{ID: t.ID, Name: t.Name}
	}
	return refs
}
