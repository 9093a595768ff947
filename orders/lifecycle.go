package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealerhub/portal-api/models"
	"github.com/dealerhub/portal-api/notify"
	"github.com/dealerhub/portal-api/pricing"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
	// ErrConflict means another transition committed first; the caller should
	// reload and retry.
	ErrConflict = errors.New("order was modified concurrently")
)

// Lifecycle manages quote-request orders: creation from a reconciled cart,
// status transitions along the allowed graph, the append-only audit trail, and
// internal notes. Status changes are atomic with their history entry;
// notification is sent after commit and never rolled back.
type Lifecycle struct {
	db       *gorm.DB
	notifier notify.Notifier
}

func NewLifecycle(db *gorm.DB, notifier notify.Notifier) *Lifecycle {
	return &Lifecycle{db: db, notifier: notifier}
}

// generateOrderNumber builds a human-readable reference like
// Q-20260828-1A2B3C4D.
func generateOrderNumber() string {
	return fmt.Sprintf("Q-%s-%s",
		time.Now().Format("20060102"),
		uuid.NewString()[:8])
}

// CreateOrder materializes an order from an already-reconciled cart. Line
// items are immutable snapshots carrying the discounted unit price plus the
// original price and discount, so later catalog changes never affect history.
// The caller clears the cart after confirming success.
func (l *Lifecycle) CreateOrder(ctx context.Context, user models.User, cart *models.Cart, shippingAddress, notes string) (*models.Order, error) {
	if len(cart.Items) == 0 && len(cart.Vehicles) == 0 {
		return nil, ErrEmptyCart
	}

	var items []models.OrderItem
	var total float64

	for _, line := range cart.Items {
		unit := pricing.DiscountedPrice(line.Price, line.DiscountPercentage)
		lineTotal := unit * float64(line.Quantity)
		original := line.Price
		items = append(items, models.OrderItem{
			Kind:               models.OrderItemProduct,
			RefID:              line.ProductID,
			Name:               line.ProductName,
			Quantity:           line.Quantity,
			UnitPrice:          unit,
			OriginalUnitPrice:  &original,
			DiscountPercentage: line.DiscountPercentage,
			TotalPrice:         lineTotal,
		})
		total += lineTotal
	}

	for _, line := range cart.Vehicles {
		unit := pricing.DiscountedPrice(line.Price, line.DiscountPercentage)
		original := line.Price
		items = append(items, models.OrderItem{
			Kind:               models.OrderItemVehicle,
			RefID:              line.VehicleID,
			Name:               line.Label,
			Quantity:           1,
			UnitPrice:          unit,
			OriginalUnitPrice:  &original,
			DiscountPercentage: line.DiscountPercentage,
			TotalPrice:         unit,
		})
		total += unit
	}

	order := models.Order{
		OrderNumber:     generateOrderNumber(),
		UserID:          user.ID,
		Items:           items,
		Status:          models.OrderStatusPending,
		TotalAmount:     total,
		ShippingAddress: shippingAddress,
		Notes:           notes,
	}

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		entry := models.OrderHistoryEntry{
			OrderID:   order.ID,
			NewStatus: models.OrderStatusPending,
			Notes:     notes,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	l.sendNotification(ctx, notify.TypeOrderCreated, user, &order)
	return &order, nil
}

// Transition moves an order to newStatus if the transition graph allows it,
// appending one audit entry in the same transaction. The row update is guarded
// by a compare-and-swap on the current status so two admins cannot silently
// overwrite each other.
func (l *Lifecycle) Transition(ctx context.Context, orderID uint, newStatus models.OrderStatus, notes string) (*models.Order, error) {
	var order models.Order
	if err := l.db.WithContext(ctx).Preload("User").Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	oldStatus := order.Status
	if !CanTransition(oldStatus, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, oldStatus, newStatus)
	}

	now := time.Now()
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, oldStatus).
			Updates(map[string]interface{}{
				"status":     newStatus,
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}
		entry := models.OrderHistoryEntry{
			OrderID:   order.ID,
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Notes:     notes,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	order.Status = newStatus
	order.UpdatedAt = now
	l.sendNotification(ctx, notify.TypeForStatus(newStatus), order.User, &order)
	return &order, nil
}

// History returns the audit trail for an order, newest first.
func (l *Lifecycle) History(ctx context.Context, orderID uint) ([]models.OrderHistoryEntry, error) {
	var entries []models.OrderHistoryEntry
	err := l.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	return entries, err
}

// sendNotification is fire-and-forget: a delivery failure is logged and the
// triggering state change stands.
func (l *Lifecycle) sendNotification(ctx context.Context, t notify.Type, user models.User, order *models.Order) {
	lines := make([]map[string]any, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, map[string]any{
			"name":       item.Name,
			"quantity":   item.Quantity,
			"unit_price": item.UnitPrice,
			"total":      item.TotalPrice,
		})
	}
	data := notify.Data{
		"order_number":     order.OrderNumber,
		"status":           order.Status,
		"total_amount":     order.TotalAmount,
		"shipping_address": order.ShippingAddress,
		"notes":            order.Notes,
		"items":            lines,
	}
	if err := l.notifier.Notify(ctx, t, user.Email, user.Name, data); err != nil {
		log.Printf("❌ notification %s for order %s failed: %v", t, order.OrderNumber, err)
	}
}
