package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/smartcanteen/backend/internal/logging"
	"github.com/pageza/smartcanteen/backend/internal/metrics"
	"github.com/pageza/smartcanteen/backend/internal/models"
)

var (
	ErrEmptyOrder = errors.New("order items cannot be empty")
	ErrOutOfStock = errors.New("item is out of stock")
)

// OrderRejection names the item that caused an order to be refused. It wraps
// ErrItemNotFound or ErrOutOfStock; Reason is safe to show to the user.
type OrderRejection struct {
	ItemID   uint
	ItemName string
	Reason   string
	Err      error
}

func (e *OrderRejection) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Reason)
}

func notFound(id uint) *OrderRejection {
	return &OrderRejection{ItemID: id, Reason: fmt.Sprintf("Food item %d not found.", id), Err: ErrItemNotFound}
}

func outOfStock(id uint, name string) *OrderRejection {
	return &OrderRejection{ItemID: id, ItemName: name, Reason: fmt.Sprintf("Item %s is out of stock.", name), Err: ErrOutOfStock}
}

func (e *OrderRejection) Unwrap() error {
	return e.Err
}

// OrderService validates stock and records orders.
type OrderService struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// Ensure OrderService implements IOrderService
var _ IOrderService = (*OrderService)(nil)

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db, logger: logging.Component("orders")}
}

// CreateOrder places an order for itemIDs; an id may repeat to order several
// units. Every item must exist and have enough stock. Stock is decremented and
// the order stored in one transaction, so a rejection leaves nothing behind.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, itemIDs []uint) (*models.Order, error) {
	if len(itemIDs) == 0 {
		metrics.Orders.WithLabelValues("empty").Inc()
		return nil, ErrEmptyOrder
	}

	var ids []uint
	quantity := map[uint]int{}
	for _, id := range itemIDs {
		if quantity[id] == 0 {
			ids = append(ids, id)
		}
		quantity[id]++
	}

	order := models.Order{UserID: userID, ItemIDs: models.JSONList[uint](itemIDs)}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			qty := quantity[id]

			var row models.FoodItem
			q := tx
			if tx.Dialector.Name() == "postgres" {
				q = q.Clauses(clause.Locking{Strength: "UPDATE"})
			}
			if err := q.First(&row, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFound(id)
				}
				return fmt.Errorf("failed to load menu item %d: %w", id, err)
			}

			item := row.ToDomain()
			if !item.HasStock(qty) {
				return outOfStock(id, row.Name)
			}
			if row.StockQuantity != nil {
				res := tx.Model(&models.FoodItem{}).
					Where("id = ? AND stock_quantity >= ?", id, qty).
					UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
				if res.Error != nil {
					return fmt.Errorf("failed to update stock for item %d: %w", id, res.Error)
				}
				if res.RowsAffected == 0 {
					return outOfStock(id, row.Name)
				}
			}

			n := float64(qty)
			order.TotalPrice += item.Price * n
			order.TotalCalories += item.Calories * n
			order.TotalSugar += item.Sugar * n
			order.TotalSodium += item.Sodium * n
			order.Items = append(order.Items, models.OrderItem{
				FoodItemID: id,
				Name:       row.Name,
				Quantity:   qty,
				UnitPrice:  item.Price,
			})
		}

		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
	if err != nil {
		metrics.Orders.WithLabelValues(orderResult(err)).Inc()
		s.logger.Info().Err(err).Str("user_id", userID.String()).Msg("order rejected")
		return nil, err
	}

	metrics.Orders.WithLabelValues("created").Inc()
	s.logger.Info().Str("user_id", userID.String()).Str("order_id", order.ID.String()).Int("items", len(itemIDs)).Msg("order created")
	return &order, nil
}

// History returns the user's orders, newest first.
func (s *OrderService) History(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load order history: %w", err)
	}
	return orders, nil
}

func orderResult(err error) string {
	switch {
	case errors.Is(err, ErrItemNotFound):
		return "not_found"
	case errors.Is(err, ErrOutOfStock):
		return "out_of_stock"
	}
	return "error"
}
