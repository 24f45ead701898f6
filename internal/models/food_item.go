package models

import (
	"time"

	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/pageza/smartcanteen/backend/internal/types"
)

// EmbeddingDims is the length of the nutrition vector stored per item.
const EmbeddingDims = 5

// FoodItem is a catalog row. Embedding holds the nutrition vector used for
// nearest-neighbour lookups and is maintained by BeforeSave.
type FoodItem struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Name          string          `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Image         string          `gorm:"size:32" json:"image"`
	Price         float64         `gorm:"type:float;not null" json:"price"`
	Calories      float64         `gorm:"type:float" json:"calories"`
	Sugar         float64         `gorm:"type:float" json:"sugar"`
	Protein       float64         `gorm:"type:float" json:"protein"`
	Sodium        float64         `gorm:"type:float" json:"sodium"`
	Carbs         float64         `gorm:"type:float" json:"carbs"`
	StockQuantity *int            `json:"stock_quantity"`
	IsAvailable   *bool           `gorm:"default:true" json:"is_available"`
	Embedding     pgvector.Vector `gorm:"type:vector(5)" json:"-"`
}

func (FoodItem) TableName() string {
	return "food_items"
}

// BeforeSave refreshes the nutrition embedding.
func (f *FoodItem) BeforeSave(tx *gorm.DB) error {
	f.Embedding = pgvector.NewVector(f.ToDomain().Nutrition())
	return nil
}

// ToDomain returns the catalog view of the row.
func (f *FoodItem) ToDomain() types.FoodItem {
	return types.FoodItem{
		ID:            f.ID,
		Name:          f.Name,
		Description:   f.Description,
		Image:         f.Image,
		Price:         f.Price,
		Calories:      f.Calories,
		Sugar:         f.Sugar,
		Protein:       f.Protein,
		Sodium:        f.Sodium,
		Carbs:         f.Carbs,
		StockQuantity: f.StockQuantity,
		IsAvailable:   f.IsAvailable,
	}
}

// FoodItemFromDomain builds a row from a catalog entry.
func FoodItemFromDomain(item types.FoodItem) FoodItem {
	return FoodItem{
		ID:            item.ID,
		Name:          item.Name,
		Description:   item.Description,
		Image:         item.Image,
		Price:         item.Price,
		Calories:      item.Calories,
		Sugar:         item.Sugar,
		Protein:       item.Protein,
		Sodium:        item.Sodium,
		Carbs:         item.Carbs,
		StockQuantity: item.StockQuantity,
		IsAvailable:   item.IsAvailable,
	}
}
