package routes

import (
	"github.com/gin-gonic/gin"

	catalogControllers "github.com/dealerhub/portal-api/controllers/catalog"
)

// SetupPublicRoutes registers the catalog browsing endpoints.
func SetupPublicRoutes(r *gin.Engine, deps Deps) {
	r.GET("/products", catalogControllers.GetProducts(deps.DB))
	r.GET("/products/:id", catalogControllers.GetProductByID(deps.DB))
	r.GET("/vehicles", catalogControllers.GetVehicles(deps.DB))
	r.GET("/vehicles/:id", catalogControllers.GetVehicleByID(deps.DB))
}
