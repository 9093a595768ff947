package orderControllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dealerhub/portal-api/cart"
	"github.com/dealerhub/portal-api/models"
	"github.com/dealerhub/portal-api/orders"
)

// -------- Request Structs --------

type PlaceOrderRequest struct {
	ShippingAddress string `json:"shipping_address"`
	Notes           string `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

func requireUserID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

func orderIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("orderID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return 0, false
	}
	return uint(id), true
}

// -------- Handlers --------

// POST /portal/orders
// The cart is reconciled immediately before submission so the snapshot
// reflects catalog truth; it is cleared only after the order is created.
func PlaceOrderHandler(db *gorm.DB, kv cart.KV, rec *cart.Reconciler, lifecycle *orders.Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
			return
		}

		ctx := c.Request.Context()
		m := cart.NewManager(ctx, cart.NewStore(kv, userID))
		report, err := rec.Reconcile(ctx, m)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate cart against catalog"})
			return
		}

		order, err := lifecycle.CreateOrder(ctx, user, m.Cart(), req.ShippingAddress, req.Notes)
		if err != nil {
			if errors.Is(err, orders.ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty", "removed": report})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			return
		}

		// Clearing is best-effort once the order exists.
		if err := m.Clear(ctx); err != nil {
			log.Printf("failed to clear cart after order %s: %v", order.OrderNumber, err)
		}

		BroadcastOrderUpdate(*order)
		c.JSON(http.StatusCreated, gin.H{"order": order, "removed": report})
	}
}

// GET /portal/orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}
		var userOrders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&userOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, userOrders)
	}
}

// GET /portal/orders/:orderID
func GetOrderByIDHandler(db *gorm.DB, lifecycle *orders.Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}
		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}

		var order models.Order
		if err := db.
			Preload("Items").
			Where("id = ? AND user_id = ?", orderID, userID).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		history, err := lifecycle.History(c.Request.Context(), order.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order, "history": history})
	}
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var allOrders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Order("created_at DESC").
			Find(&allOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, allOrders)
	}
}

// GET /admin/orders/:orderID/history
func GetOrderHistoryHandler(lifecycle *orders.Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}
		history, err := lifecycle.History(c.Request.Context(), orderID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, history)
	}
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatusHandler(lifecycle *orders.Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, ok := orders.ParseStatus(req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
			return
		}

		order, err := lifecycle.Transition(c.Request.Context(), orderID, newStatus, req.Notes)
		if err != nil {
			switch {
			case errors.Is(err, orders.ErrOrderNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			case errors.Is(err, orders.ErrInvalidTransition):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			case errors.Is(err, orders.ErrConflict):
				c.JSON(http.StatusConflict, gin.H{"error": "Order was updated by someone else, reload and retry"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			}
			return
		}

		BroadcastOrderUpdate(*order)
		c.JSON(http.StatusOK, order)
	}
}
