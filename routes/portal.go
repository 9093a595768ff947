package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/dealerhub/portal-api/controllers/cart"
	favoritesControllers "github.com/dealerhub/portal-api/controllers/favorites"
	orderControllers "github.com/dealerhub/portal-api/controllers/order"
	"github.com/dealerhub/portal-api/middleware"
)

// SetupPortalRoutes registers all "/portal/*" endpoints. Requires JWT
// middleware.
func SetupPortalRoutes(r *gin.Engine, deps Deps) {
	portal := r.Group("/portal")
	portal.Use(middleware.ValidateToken)
	{
		// ──────────────── Shopping Cart ────────────────
		cartGroup := portal.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetCart(deps.KV))
			cartGroup.POST("/items", cartControllers.AddItem(deps.DB, deps.KV))
			cartGroup.PUT("/items/:product_id", cartControllers.UpdateQuantity(deps.KV))
			cartGroup.DELETE("/items/:product_id", cartControllers.RemoveItem(deps.KV))
			cartGroup.POST("/vehicles", cartControllers.AddVehicle(deps.DB, deps.KV))
			cartGroup.DELETE("/vehicles/:vehicle_id", cartControllers.RemoveVehicle(deps.KV))
			cartGroup.DELETE("/", cartControllers.ClearCart(deps.KV))
			cartGroup.POST("/reconcile", cartControllers.Reconcile(deps.Reconciler, deps.KV))
		}

		// ──────────────── Quote Requests ────────────────
		portal.POST("/orders", orderControllers.PlaceOrderHandler(deps.DB, deps.KV, deps.Reconciler, deps.Lifecycle))
		portal.GET("/orders", orderControllers.GetUserOrdersHandler(deps.DB))
		portal.GET("/orders/:orderID", orderControllers.GetOrderByIDHandler(deps.DB, deps.Lifecycle))

		// ──────────────── Favorites & Recently Viewed ────────────────
		portal.GET("/favorites", favoritesControllers.ListFavorites(deps.Favorites))
		portal.POST("/favorites/toggle", favoritesControllers.ToggleFavorite(deps.Favorites))
		portal.GET("/recently-viewed", favoritesControllers.ListRecentlyViewed(deps.Favorites))
		portal.POST("/recently-viewed", favoritesControllers.RecordView(deps.Favorites))
	}
}
