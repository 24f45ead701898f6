package testhelpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/smartcanteen/backend/internal/models"
	"github.com/pageza/smartcanteen/backend/internal/recommend"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

// TestJWTSecret signs tokens produced by GenerateTestToken.
const TestJWTSecret = "test-jwt-secret-that-is-long-enough-32"

// SeedCatalog inserts the built-in catalog and returns the stored rows.
func SeedCatalog(t *testing.T, db *gorm.DB) []models.FoodItem {
	t.Helper()
	return SeedItems(t, db, recommend.DefaultCatalog()...)
}

// SeedItems inserts the given catalog items.
func SeedItems(t *testing.T, db *gorm.DB, items ...types.FoodItem) []models.FoodItem {
	t.Helper()
	rows := make([]models.FoodItem, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.FoodItemFromDomain(item))
	}
	if len(rows) == 0 {
		return rows
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("failed to seed catalog: %v", err)
	}
	return rows
}

// GenerateTestToken signs an HS256 token for userID with TestJWTSecret.
func GenerateTestToken(t *testing.T, userID uuid.UUID, issuer string) string {
	t.Helper()
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID:   userID,
		Username: "test-user",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(TestJWTSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}
