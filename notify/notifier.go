// Package notify delivers transactional email for order lifecycle events.
// Delivery is best-effort: the lifecycle manager logs failures and never rolls
// back the state change that triggered them.
package notify

import (
	"context"

	"github.com/dealerhub/portal-api/models"
)

type Type string

const (
	TypeOrderCreated    Type = "order_created"
	TypeOrderConfirmed  Type = "order_confirmed"
	TypeOrderProcessing Type = "order_processing"
	TypeOrderShipped    Type = "order_shipped"
	TypeOrderDelivered  Type = "order_delivered"
	TypeOrderCancelled  Type = "order_cancelled"
)

// TypeForStatus maps an order status to the notification type sent when an
// order enters that status.
func TypeForStatus(status models.OrderStatus) Type {
	switch status {
	case models.OrderStatusConfirmed:
		return TypeOrderConfirmed
	case models.OrderStatusProcessing:
		return TypeOrderProcessing
	case models.OrderStatusShipped:
		return TypeOrderShipped
	case models.OrderStatusDelivered:
		return TypeOrderDelivered
	case models.OrderStatusCancelled:
		return TypeOrderCancelled
	default:
		return TypeOrderCreated
	}
}

// Data is the free-form payload rendered into the message body.
type Data map[string]any

type Notifier interface {
	Notify(ctx context.Context, t Type, recipientEmail, recipientName string, data Data) error
}
