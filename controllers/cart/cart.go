package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dealerhub/portal-api/cart"
	"github.com/dealerhub/portal-api/models"
)

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type AddVehicleInput struct {
	VehicleID uint `json:"vehicle_id" binding:"required"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity"`
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

func managerFor(c *gin.Context, kv cart.KV, userID string) *cart.Manager {
	return cart.NewManager(c.Request.Context(), cart.NewStore(kv, userID))
}

func cartResponse(m *cart.Manager) gin.H {
	return gin.H{
		"cart":   m.Cart(),
		"totals": m.Totals(),
	}
}

// GET /portal/cart
func GetCart(kv cart.KV) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, cartResponse(managerFor(c, kv, userID)))
	}
}

// POST /portal/cart/items
func AddItem(db *gorm.DB, kv cart.KV) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product does not exist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			}
			return
		}
		if !product.IsActive {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product is no longer available"})
			return
		}

		m := managerFor(c, kv, userID)
		if err := m.AddMerchandise(c.Request.Context(), product, input.Quantity); err != nil {
			if errors.Is(err, cart.ErrCapacityExceeded) {
				c.JSON(http.StatusConflict, gin.H{"error": "Requested quantity exceeds available stock"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}
		c.JSON(http.StatusCreated, cartResponse(m))
	}
}

// POST /portal/cart/vehicles
func AddVehicle(db *gorm.DB, kv cart.KV) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		var input AddVehicleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var vehicle models.Vehicle
		if err := db.First(&vehicle, "id = ?", input.VehicleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle does not exist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate vehicle"})
			}
			return
		}

		m := managerFor(c, kv, userID)
		if err := m.AddVehicle(c.Request.Context(), vehicle); err != nil {
			switch {
			case errors.Is(err, cart.ErrDuplicateItem):
				c.JSON(http.StatusConflict, gin.H{"error": "Vehicle is already in your cart"})
			case errors.Is(err, cart.ErrVehicleSold):
				c.JSON(http.StatusConflict, gin.H{"error": "Vehicle has already been sold"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add vehicle to cart"})
			}
			return
		}
		c.JSON(http.StatusCreated, cartResponse(m))
	}
}

// PUT /portal/cart/items/:product_id
func UpdateQuantity(kv cart.KV) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}
		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		m := managerFor(c, kv, userID)
		if err := m.UpdateQuantity(c.Request.Context(), uint(productID), input.Quantity); err != nil {
			switch {
			case errors.Is(err, cart.ErrCapacityExceeded):
				c.JSON(http.StatusConflict, gin.H{"error": "Requested quantity exceeds available stock"})
			case errors.Is(err, cart.ErrItemNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Item is not in your cart"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			}
			return
		}
		c.JSON(http.StatusOK, cartResponse(m))
	}
}

// DELETE /portal/cart/items/:product_id
func RemoveItem(kv cart.KV) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}
		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		m := managerFor(c, kv, userID)
		if err := m.RemoveMerchandise(c.Request.Context(), uint(productID)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(m))
	}
}

// DELETE /portal/cart/vehicles/:vehicle_id
func RemoveVehicle(kv cart.KV) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}
		vehicleID, err := strconv.ParseUint(c.Param("vehicle_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
			return
		}

		m := managerFor(c, kv, userID)
		if err := m.RemoveVehicle(c.Request.Context(), uint(vehicleID)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove vehicle"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(m))
	}
}

// DELETE /portal/cart
func ClearCart(kv cart.KV) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		m := managerFor(c, kv, userID)
		if err := m.Clear(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// POST /portal/cart/reconcile
func Reconcile(rec *cart.Reconciler, kv cart.KV) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		m := managerFor(c, kv, userID)
		report, err := rec.Reconcile(c.Request.Context(), m)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"cart":    m.Cart(),
			"totals":  m.Totals(),
			"removed": report,
		})
	}
}
