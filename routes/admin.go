package routes

import (
	"github.com/gin-gonic/gin"

	catalogControllers "github.com/dealerhub/portal-api/controllers/catalog"
	orderControllers "github.com/dealerhub/portal-api/controllers/order"
	"github.com/dealerhub/portal-api/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires the admin API
// key.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateAPIKey)
	{
		// ──────────────── Catalog Management ────────────────
		admin.POST("/products", catalogControllers.CreateProduct(deps.DB))
		admin.PUT("/products/:id", catalogControllers.UpdateProduct(deps.DB))
		admin.DELETE("/products/:id", catalogControllers.DeactivateProduct(deps.DB))
		admin.POST("/vehicles", catalogControllers.CreateVehicle(deps.DB))
		admin.PUT("/vehicles/:id", catalogControllers.UpdateVehicle(deps.DB))
		admin.DELETE("/vehicles/:id", catalogControllers.DeleteVehicle(deps.DB))

		// ──────────────── Order Management ────────────────
		admin.GET("/orders", orderControllers.GetAllOrdersHandler(deps.DB))
		admin.GET("/orders/export", orderControllers.ExportOrdersToExcel(deps.DB))
		admin.GET("/orders/ws", orderControllers.OrderWebSocketHandler)
		admin.GET("/orders/:orderID/history", orderControllers.GetOrderHistoryHandler(deps.Lifecycle))
		admin.PUT("/orders/:orderID/status", orderControllers.UpdateOrderStatusHandler(deps.Lifecycle))

		// ──────────────── Internal Notes ────────────────
		admin.GET("/orders/:orderID/notes", orderControllers.ListOrderNotesHandler(deps.Lifecycle))
		admin.POST("/orders/:orderID/notes", orderControllers.AddOrderNoteHandler(deps.Lifecycle))
		admin.PUT("/orders/notes/:noteID", orderControllers.UpdateOrderNoteHandler(deps.Lifecycle))
		admin.DELETE("/orders/notes/:noteID", orderControllers.DeleteOrderNoteHandler(deps.Lifecycle))
	}
}
