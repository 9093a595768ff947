package favoritesControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealerhub/portal-api/favorites"
)

type ItemInput struct {
	Kind favorites.ItemKind `json:"kind" binding:"required,oneof=product vehicle"`
	ID   uint               `json:"id" binding:"required"`
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

// POST /portal/favorites/toggle
func ToggleFavorite(tracker *favorites.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}
		var input ItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		added, err := tracker.Toggle(c.Request.Context(), userID, favorites.Item{Kind: input.Kind, ID: input.ID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update favorites"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"favorite": added})
	}
}

// GET /portal/favorites
func ListFavorites(tracker *favorites.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}
		items, err := tracker.Favorites(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// POST /portal/recently-viewed
func RecordView(tracker *favorites.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}
		var input ItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := tracker.RecordView(c.Request.Context(), userID, favorites.Item{Kind: input.Kind, ID: input.ID}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record view"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Recorded"})
	}
}

// GET /portal/recently-viewed
func ListRecentlyViewed(tracker *favorites.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}
		items, err := tracker.RecentlyViewed(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recently viewed"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}
