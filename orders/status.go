package orders

import "github.com/dealerhub/portal-api/models"

// transitions is the explicit graph of legal status changes. Forward skips
// along the success path are legal (an admin may mark a pending order shipped
// directly); backward moves are not, and delivered/cancelled are terminal.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending: {
		models.OrderStatusConfirmed,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	},
	models.OrderStatusConfirmed: {
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	},
	models.OrderStatusProcessing: {
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	},
	models.OrderStatusShipped: {
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	},
	models.OrderStatusDelivered: {},
	models.OrderStatusCancelled: {},
}

// CanTransition reports whether to is reachable from from in one step.
func CanTransition(from, to models.OrderStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ParseStatus maps a request string to a known status.
func ParseStatus(s string) (models.OrderStatus, bool) {
	switch models.OrderStatus(s) {
	case models.OrderStatusPending,
		models.OrderStatusConfirmed,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled:
		return models.OrderStatus(s), true
	default:
		return "", false
	}
}
