package gifts

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/perfectpick/giftrank/pkg/giftrank/catalog"
	"github.com/perfectpick/giftrank/pkg/giftrank/geo"
	"github.com/perfectpick/giftrank/pkg/giftrank/metrics"
)

// Handler handles gift search requests
type Handler struct {
	engine   *catalog.Engine
	resolver geo.Resolver
}

// NewHandler creates a new gifts handler
func NewHandler(db *gorm.DB, resolver geo.Resolver, opts ...catalog.EngineOption) *Handler {
	return &Handler{
		engine:   catalog.NewEngine(db, opts...),
		resolver: resolver,
	}
}

// SearchResponse represents the ranked gift page in API responses
type SearchResponse struct {
	Currency string                  `json:"currency"`
	Gifts    []catalog.PresentedGift `json:"gifts"`
}

// Search returns a ranked, paginated, currency-adjusted gift page
// @Summary Search gifts
// @Description Rank catalog gifts by tag match and geo-affinity, paginated
// @Tags gifts
// @Accept json
// @Produce json
// @Param request body catalog.SearchParams false "Filter criteria"
// @Success 200 {object} SearchResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 500 {object} map[string]string "Store error"
// @Router /gifts/search [post]
func (h *Handler) Search(c *gin.Context) {
	start := time.Now()

	// An absent or unparseable body means "all defaults", never an error.
	var params catalog.SearchParams
	if err := c.ShouldBindJSON(&params); err != nil {
		params = catalog.SearchParams{}
	}

	country := h.resolver.Country(c.Request.Context(), c.ClientIP())
	currency := catalog.CurrencyFor(country)

	page, err := h.engine.Search(c.Request.Context(), params, country)
	if err != nil {
		var valErr *catalog.ValidationError
		if errors.As(err, &valErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": valErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.SearchesTotal.WithLabelValues(currency).Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	c.JSON(http.StatusOK, SearchResponse{
		Currency: currency,
		Gifts:    catalog.PresentAll(page, currency),
	})
}

// RegisterRoutes registers gift routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/gifts/search", h.Search)
}
