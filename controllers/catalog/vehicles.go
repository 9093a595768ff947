package catalogControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dealerhub/portal-api/models"
	"github.com/dealerhub/portal-api/pricing"
)

type VehicleInput struct {
	Make               string   `json:"make" binding:"required"`
	Model              string   `json:"model" binding:"required"`
	Year               int      `json:"year" binding:"required"`
	Mileage            int      `json:"mileage" binding:"min=0"`
	Price              float64  `json:"price" binding:"required,gt=0"`
	DiscountPercentage *float64 `json:"discount_percentage"`
	IsSold             *bool    `json:"is_sold"`
	Image              string   `json:"image"`
}

// GET /vehicles
func GetVehicles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vehicles []models.Vehicle
		if err := db.Where("is_sold = ?", false).Order("created_at DESC").Find(&vehicles).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicles"})
			return
		}
		c.JSON(http.StatusOK, vehicles)
	}
}

// GET /vehicles/:id
func GetVehicleByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
			return
		}

		var vehicle models.Vehicle
		if err := db.First(&vehicle, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vehicle"})
			}
			return
		}
		c.JSON(http.StatusOK, vehicle)
	}
}

// POST /admin/vehicles
func CreateVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input VehicleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := pricing.ValidateDiscount(input.DiscountPercentage); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		vehicle := models.Vehicle{
			Make:               input.Make,
			Model:              input.Model,
			Year:               input.Year,
			Mileage:            input.Mileage,
			Price:              input.Price,
			DiscountPercentage: input.DiscountPercentage,
			Image:              input.Image,
		}
		if input.IsSold != nil {
			vehicle.IsSold = *input.IsSold
		}

		if err := db.Create(&vehicle).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
			return
		}
		c.JSON(http.StatusCreated, vehicle)
	}
}

// PUT /admin/vehicles/:id
func UpdateVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
			return
		}

		var input VehicleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := pricing.ValidateDiscount(input.DiscountPercentage); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var vehicle models.Vehicle
		if err := db.First(&vehicle, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vehicle"})
			}
			return
		}

		vehicle.Make = input.Make
		vehicle.Model = input.Model
		vehicle.Year = input.Year
		vehicle.Mileage = input.Mileage
		vehicle.Price = input.Price
		vehicle.DiscountPercentage = input.DiscountPercentage
		vehicle.Image = input.Image
		if input.IsSold != nil {
			vehicle.IsSold = *input.IsSold
		}

		if err := db.Save(&vehicle).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
			return
		}
		c.JSON(http.StatusOK, vehicle)
	}
}

// DELETE /admin/vehicles/:id (soft delete)
func DeleteVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
			return
		}

		result := db.Delete(&models.Vehicle{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
	}
}
