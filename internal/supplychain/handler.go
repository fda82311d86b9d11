package supplychain

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carbonchain-backend/internal/llm"
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

// RegisterRoutes attaches supply chain routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/supply-chain", h.create)
	rg.POST("/supply-chain/route/analyze", h.analyzeRoute)
	rg.GET("/supply-chain/product/:productId", h.listByProduct)
	rg.GET("/supply-chain/:id", h.get)
	rg.PUT("/supply-chain/:id", h.update)
	rg.DELETE("/supply-chain/:id", h.remove)
}

type nodeRequest struct {
	ProductID         string  `json:"productId"`
	StageName         string  `json:"stageName"`
	SupplierName      string  `json:"supplierName"`
	TransportMode     string  `json:"transportMode"`
	DistanceKm        float64 `json:"distanceKm"`
	EnergySource      string  `json:"energySource"`
	TransportCost     float64 `json:"transportCost"`
	TransportTimeDays float64 `json:"transportTimeDays"`
	FromLocation      string  `json:"fromLocation"`
	ToLocation        string  `json:"toLocation"`
}

func (h *Handler) create(c *gin.Context) {
	var req nodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	node, err := h.Svc.Create(c.Request.Context(), CreateInput{
		ProductID:         req.ProductID,
		StageName:         req.StageName,
		SupplierName:      req.SupplierName,
		TransportMode:     req.TransportMode,
		DistanceKm:        req.DistanceKm,
		EnergySource:      req.EnergySource,
		TransportCost:     req.TransportCost,
		TransportTimeDays: req.TransportTimeDays,
		FromLocation:      req.FromLocation,
		ToLocation:        req.ToLocation,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "product id, stage name, and distance are required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create supply chain node", nil)
		}
		return
	}

	c.Set("productId", node.ProductID)
	respond.JSON(c, http.StatusCreated, toResponse(node))
}

type routeAnalyzeRequest struct {
	ProductID    string `json:"productId"`
	FromLocation string `json:"fromLocation"`
	ToLocation   string `json:"toLocation"`
	NodeID       string `json:"nodeId"`
}

func (h *Handler) analyzeRoute(c *gin.Context) {
	var req routeAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	analysis, err := h.Svc.AnalyzeRoute(c.Request.Context(), req.ProductID, req.FromLocation, req.ToLocation, req.NodeID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "product id, fromLocation, and toLocation are required", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "supply chain node not found", nil)
		case errors.Is(err, llm.ErrMissingAPIKey):
			respond.Error(c, http.StatusServiceUnavailable, "provider_not_configured", "AI provider API key is not configured", nil)
		case errors.Is(err, llm.ErrAuth):
			respond.Error(c, http.StatusBadGateway, "provider_auth_error", "AI provider rejected the configured credentials", nil)
		case errors.Is(err, llm.ErrTimeout), errors.Is(err, llm.ErrUnavailable):
			respond.Error(c, http.StatusBadGateway, "provider_unavailable", "AI provider is unavailable, try again later", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "route analysis failed", nil)
		}
		return
	}

	c.Set("productId", req.ProductID)
	respond.OK(c, gin.H{"message": "route analysis completed successfully", "data": analysis})
}

func (h *Handler) get(c *gin.Context) {
	node, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "supply chain node not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch supply chain node", nil)
		}
		return
	}
	respond.OK(c, toResponse(node))
}

func (h *Handler) listByProduct(c *gin.Context) {
	all, err := h.Svc.ListByProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list supply chain nodes", nil)
		return
	}
	resp := make([]gin.H, 0, len(all))
	for _, node := range all {
		resp = append(resp, toResponse(node))
	}
	respond.OK(c, gin.H{"data": resp, "count": len(resp)})
}

func (h *Handler) update(c *gin.Context) {
	var req nodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	node, err := h.Svc.Update(c.Request.Context(), c.Param("id"), CreateInput{
		StageName:         req.StageName,
		SupplierName:      req.SupplierName,
		TransportMode:     req.TransportMode,
		DistanceKm:        req.DistanceKm,
		EnergySource:      req.EnergySource,
		TransportCost:     req.TransportCost,
		TransportTimeDays: req.TransportTimeDays,
		FromLocation:      req.FromLocation,
		ToLocation:        req.ToLocation,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "supply chain node not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update supply chain node", nil)
		}
		return
	}
	respond.OK(c, toResponse(node))
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "supply chain node not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete supply chain node", nil)
		}
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}

func toResponse(node Node) gin.H {
	resp := gin.H{
		"nodeId":            node.ID,
		"productId":         node.ProductID,
		"stageName":         node.StageName,
		"supplierName":      node.SupplierName,
		"transportMode":     node.TransportMode,
		"distanceKm":        node.DistanceKm,
		"energySource":      node.EnergySource,
		"transportCost":     node.TransportCost,
		"transportTimeDays": node.TransportTimeDays,
		"fromLocation":      node.FromLocation,
		"toLocation":        node.ToLocation,
		"hasSeaway":         node.HasSeaway,
		"hasAirport":        node.HasAirport,
		"routeDetails":      node.RouteDetails,
		"createdAt":         node.CreatedAt,
	}
	if node.Emission != nil {
		resp["emission"] = *node.Emission
	}
	return resp
}
