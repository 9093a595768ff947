package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dealerhub/portal-api/cart"
	"github.com/dealerhub/portal-api/favorites"
	"github.com/dealerhub/portal-api/orders"
)

// Deps holds everything the route groups need.
type Deps struct {
	DB         *gorm.DB
	KV         cart.KV
	Reconciler *cart.Reconciler
	Lifecycle  *orders.Lifecycle
	Favorites  *favorites.Tracker
}

// SetupRoutes is the single entry-point that wires up the public catalog, the
// JWT-protected portal, and the API-key-protected admin groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	// Public catalog browsing (no middleware)
	SetupPublicRoutes(r, deps)

	// Customer portal (JWT-protected)
	SetupPortalRoutes(r, deps)

	// Admin back office (API-key-protected)
	SetupAdminRoutes(r, deps)
}
