package analyses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carbonchain-backend/internal/engine"
	"carbonchain-backend/internal/products"
	"carbonchain-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analysis/:productId", h.run)
	rg.GET("/analysis/history/:productId", h.history)
	rg.GET("/analysis/:productId", h.latest)
}

func (h *Handler) run(c *gin.Context) {
	productID := c.Param("productId")
	c.Set("productId", productID)

	out, err := h.Svc.Run(c.Request.Context(), productID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "product id is required", nil)
		case errors.Is(err, ErrNoStages):
			respond.Error(c, http.StatusBadRequest, "no_stages", "no supply chain nodes found for this product", nil)
		case errors.Is(err, products.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "product not found", nil)
		case errors.Is(err, engine.ErrUnavailable):
			respond.Error(c, http.StatusBadGateway, "engine_unavailable", "emission engine is unavailable", gin.H{
				"hint": "make sure the emission engine service is running",
			})
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "analysis failed", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"message": "analysis completed successfully",
		"data":    toRunResponse(out),
	})
}

func (h *Handler) latest(c *gin.Context) {
	productID := c.Param("productId")
	c.Set("productId", productID)

	result, err := h.Svc.Latest(c.Request.Context(), productID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			// A product with no analyses yet is not an error.
			respond.OK(c, gin.H{"message": "no analysis found for this product", "data": nil})
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "product id is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to retrieve analysis", nil)
		}
		return
	}
	respond.OK(c, gin.H{"data": toResponse(result)})
}

func (h *Handler) history(c *gin.Context) {
	productID := c.Param("productId")
	c.Set("productId", productID)

	all, err := h.Svc.History(c.Request.Context(), productID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "product id is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to retrieve analysis history", nil)
		}
		return
	}
	resp := make([]gin.H, 0, len(all))
	for _, result := range all {
		resp = append(resp, toResponse(result))
	}
	respond.OK(c, gin.H{"data": resp, "count": len(resp)})
}

func toResponse(result Result) gin.H {
	return gin.H{
		"analysisId":                 result.ID,
		"productId":                  result.ProductID,
		"totalEmission":              result.TotalEmission,
		"highestEmissionStage":       result.HighestEmissionStage,
		"carbonEfficiencyScore":      result.CarbonEfficiencyScore,
		"costEfficiencyScore":        result.CostEfficiencyScore,
		"timeEfficiencyScore":        result.TimeEfficiencyScore,
		"netZeroAlignmentPercentage": result.NetZeroAlignmentPercentage,
		"nodesBreakdown":             result.NodesBreakdown,
		"analysisDate":               result.AnalysisDate,
	}
}

func toRunResponse(out RunOutput) gin.H {
	resp := toResponse(out.Result)
	resp["totalCost"] = out.TotalCost
	resp["totalTime"] = out.TotalTime
	return resp
}
