package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carbonchain-backend/internal/analyses"
	"carbonchain-backend/internal/companies"
	"carbonchain-backend/internal/netzero"
	"carbonchain-backend/internal/optimizations"
	"carbonchain-backend/internal/products"
	"carbonchain-backend/internal/shared/config"
	"carbonchain-backend/internal/shared/metrics"
	"carbonchain-backend/internal/shared/server/middleware"
	"carbonchain-backend/internal/shared/server/respond"
	"carbonchain-backend/internal/supplychain"
)

// RouterDeps carries the handlers the router wires under /api.
type RouterDeps struct {
	Config              config.Config
	CompanyHandler      *companies.Handler
	ProductHandler      *products.Handler
	SupplyChainHandler  *supplychain.Handler
	AnalysisHandler     *analyses.Handler
	OptimizationHandler *optimizations.Handler
	NetZeroHandler      *netzero.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())
	deps.CompanyHandler.RegisterRoutes(api)
	deps.ProductHandler.RegisterRoutes(api)
	deps.SupplyChainHandler.RegisterRoutes(api)
	deps.AnalysisHandler.RegisterRoutes(api)
	deps.OptimizationHandler.RegisterRoutes(api)
	deps.NetZeroHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
