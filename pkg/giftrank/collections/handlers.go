package collections

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/perfectpick/giftrank/pkg/giftrank/catalog"
	"github.com/perfectpick/giftrank/pkg/giftrank/models"
)

// Handler handles collection lookup requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new collections handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// GiftResponse represents a collection member. Both currency prices are
// kept so the client can pick at render time; no ranking applies here.
type GiftResponse struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Image       string           `json:"image"`
	Seller      string           `json:"seller"`
	Country     *string          `json:"country,omitempty"`
	Delivery    string           `json:"delivery"`
	PriceRange  string           `json:"priceRange"`
	PriceEur    *float64         `json:"priceEur"`
	PriceDlr    *float64         `json:"priceDlr"`
	Link        string           `json:"link"`
	Tags        []catalog.TagRef `json:"tags"`
}

// CollectionResponse represents a named collection and its members in
// insertion order.
type CollectionResponse struct {
	ListID   uint           `json:"listId"`
	ListName string         `json:"listName"`
	Gifts    []GiftResponse `json:"gifts"`
}

func giftToResponse(gift models.Gift) GiftResponse {
	return GiftResponse{
		ID:          gift.ID,
		Title:       gift.Title,
		Description: gift.Description,
		Image:       gift.Image,
		Seller:      gift.Seller,
		Country:     gift.Country,
		Delivery:    gift.Delivery,
		PriceRange:  gift.PriceRange,
		PriceEur:    gift.PriceEur,
		PriceDlr:    gift.PriceDlr,
		Link:        gift.Link(),
		Tags:        catalog.TagRefs(gift.Tags),
	}
}

// Get returns all gifts in a named collection
// @Summary Get a collection's gifts
// @Description Get all gifts in a named collection, in insertion order
// @Tags collections
// @Produce json
// @Param name path string true "Collection name"
// @Success 200 {object} CollectionResponse
// @Failure 404 {object} map[string]string "Collection not found"
// @Router /collections/{name}/gifts [get]
func (h *Handler) Get(c *gin.Context) {
	name := c.Param("name")

	var collection models.Collection
	if err := h.db.Where("name = ?", name).First(&collection).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
		return
	}

	var gifts []models.Gift
	err := h.db.WithContext(c.Request.Context()).
		Joins("JOIN collection_gifts ON collection_gifts.gift_id = gifts.id").
		Where("collection_gifts.collection_id = ?", collection.ID).
		Where("gifts.enabled = ?", true).
		Order("collection_gifts.created_at ASC, collection_gifts.id ASC").
		Preload("Tags").
		Find(&gifts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]GiftResponse, len(gifts))
	for i, gift := range gifts {
		responses[i] = giftToResponse(gift)
	}

	c.JSON(http.StatusOK, CollectionResponse{
		ListID:   collection.ID,
		ListName: collection.Name,
		Gifts:    responses,
	})
}

// RegisterRoutes registers collection routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/collections/:name/gifts", h.Get)
}
