package orderControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dealerhub/portal-api/orders"
)

type NoteRequest struct {
	Content string `json:"content" binding:"required"`
}

// Admin identity comes from the back office in front of this API.
func requireAdmin(c *gin.Context) (id, name string, ok bool) {
	id = c.GetHeader("X-Admin-ID")
	name = c.GetHeader("X-Admin-Name")
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing admin identity"})
		return "", "", false
	}
	return id, name, true
}

func noteIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("noteID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid note ID"})
		return 0, false
	}
	return uint(id), true
}

// GET /admin/orders/:orderID/notes
func ListOrderNotesHandler(lifecycle *orders.Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}
		notes, err := lifecycle.Notes(c.Request.Context(), orderID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, notes)
	}
}

// POST /admin/orders/:orderID/notes
func AddOrderNoteHandler(lifecycle *orders.Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, adminName, ok := requireAdmin(c)
		if !ok {
			return
		}
		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}
		var req NoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		note, err := lifecycle.AddNote(c.Request.Context(), orderID, adminID, adminName, req.Content)
		if err != nil {
			if errors.Is(err, orders.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add note"})
			return
		}
		c.JSON(http.StatusCreated, note)
	}
}

// PUT /admin/orders/notes/:noteID
func UpdateOrderNoteHandler(lifecycle *orders.Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, _, ok := requireAdmin(c)
		if !ok {
			return
		}
		noteID, ok := noteIDParam(c)
		if !ok {
			return
		}
		var req NoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		note, err := lifecycle.UpdateNote(c.Request.Context(), noteID, adminID, req.Content)
		if err != nil {
			switch {
			case errors.Is(err, orders.ErrNoteNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			case errors.Is(err, orders.ErrNotNoteAuthor):
				c.JSON(http.StatusForbidden, gin.H{"error": "Only the note author may modify it"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update note"})
			}
			return
		}
		c.JSON(http.StatusOK, note)
	}
}

// DELETE /admin/orders/notes/:noteID
func DeleteOrderNoteHandler(lifecycle *orders.Lifecycle) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, _, ok := requireAdmin(c)
		if !ok {
			return
		}
		noteID, ok := noteIDParam(c)
		if !ok {
			return
		}

		if err := lifecycle.DeleteNote(c.Request.Context(), noteID, adminID); err != nil {
			switch {
			case errors.Is(err, orders.ErrNoteNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			case errors.Is(err, orders.ErrNotNoteAuthor):
				c.JSON(http.StatusForbidden, gin.H{"error": "Only the note author may delete it"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete note"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
	}
}
