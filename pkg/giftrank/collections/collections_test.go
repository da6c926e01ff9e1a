package collections

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/perfectpick/giftrank/pkg/giftrank/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)
	handler.RegisterRoutes(r.Group("/api"))
	return r
}

func floatPtr(f float64) *float64 { return &f }

func createTestGift(t *testing.T, db *gorm.DB, gift models.Gift) models.Gift {
	if gift.Title == "" {
		gift.Title = "Test Gift"
	}
	gift.Enabled = true
	if err := db.Create(&gift).Error; err != nil {
		t.Fatalf("Failed to create test gift: %v", err)
	}
	return gift
}

func addToCollection(t *testing.T, db *gorm.DB, collectionID, giftID uint, at time.Time) {
	member := models.CollectionGift{
		CollectionID: collectionID,
		GiftID:       giftID,
		CreatedAt:    at,
	}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("Failed to add gift to collection: %v", err)
	}
}

func TestGetCollectionInsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	collection := models.Collection{Name: "home"}
	db.Create(&collection)

	createTestGift(t, db, models.Gift{ID: 1})
	createTestGift(t, db, models.Gift{ID: 2})
	createTestGift(t, db, models.Gift{ID: 3})

	// Inserted out of id order; the response must follow insertion time.
	base := time.Now().Add(-time.Hour)
	addToCollection(t, db, collection.ID, 3, base)
	addToCollection(t, db, collection.ID, 1, base.Add(time.Minute))
	addToCollection(t, db, collection.ID, 2, base.Add(2*time.Minute))

	req, _ := http.NewRequest("GET", "/api/collections/home/gifts", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var got CollectionResponse
	json.Unmarshal(resp.Body.Bytes(), &got)

	if got.ListName != "home" {
		t.Errorf("Expected listName home, got %q", got.ListName)
	}
	want := []uint{3, 1, 2}
	if len(got.Gifts) != len(want) {
		t.Fatalf("Expected %d gifts, got %d", len(want), len(got.Gifts))
	}
	for i := range want {
		if got.Gifts[i].ID != want[i] {
			t.Errorf("Position %d: expected id %d, got %d", i, want[i], got.Gifts[i].ID)
		}
	}
}

func TestGetCollectionKeepsBothPrices(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	collection := models.Collection{Name: "home"}
	db.Create(&collection)
	createTestGift(t, db, models.Gift{ID: 1, PriceEur: floatPtr(20), PriceDlr: floatPtr(25)})
	addToCollection(t, db, collection.ID, 1, time.Now())

	req, _ := http.NewRequest("GET", "/api/collections/home/gifts", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var got CollectionResponse
	json.Unmarshal(resp.Body.Bytes(), &got)

	if len(got.Gifts) != 1 {
		t.Fatalf("Expected 1 gift, got %d", len(got.Gifts))
	}
	g := got.Gifts[0]
	if g.PriceEur == nil || *g.PriceEur != 20 || g.PriceDlr == nil || *g.PriceDlr != 25 {
		t.Errorf("Expected both prices kept, got eur=%v dlr=%v", g.PriceEur, g.PriceDlr)
	}
}

func TestGetCollectionNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("GET", "/api/collections/nope/gifts", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestGetCollectionSkipsDisabledGifts(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	collection := models.Collection{Name: "home"}
	db.Create(&collection)

	createTestGift(t, db, models.Gift{ID: 1})
	disabled := createTestGift(t, db, models.Gift{ID: 2})
	db.Model(&disabled).Update("enabled", false)

	addToCollection(t, db, collection.ID, 1, time.Now())
	addToCollection(t, db, collection.ID, 2, time.Now())

	req, _ := http.NewRequest("GET", "/api/collections/home/gifts", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var got CollectionResponse
	json.Unmarshal(resp.Body.Bytes(), &got)

	if len(got.Gifts) != 1 || got.Gifts[0].ID != 1 {
		t.Errorf("Expected only enabled gift, got %+v", got.Gifts)
	}
}
