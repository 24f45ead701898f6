package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is an accepted canteen order. Totals are computed from the catalog at
// order time and never recomputed.
type Order struct {
	ID            uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	ItemIDs       JSONList[uint] `gorm:"not null" json:"item_ids"`
	TotalPrice    float64        `gorm:"type:float" json:"total_price"`
	TotalCalories float64        `gorm:"type:float" json:"total_calories"`
	TotalSugar    float64        `gorm:"type:float" json:"total_sugar"`
	TotalSodium   float64        `gorm:"type:float" json:"total_sodium"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	Items         []OrderItem    `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// BeforeCreate assigns an id when none is set.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is one catalog line of an order with the values captured at
// order time.
type OrderItem struct {
	ID         uint      `gorm:"primarykey" json:"-"`
	OrderID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"-"`
	FoodItemID uint      `gorm:"not null" json:"item_id"`
	Name       string    `gorm:"size:255" json:"name"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	UnitPrice  float64   `gorm:"type:float" json:"unit_price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
