package netzero

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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

// RegisterRoutes attaches net-zero progress routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/netzero-progress", h.create)
	rg.GET("/netzero-progress/product/:productId", h.listByProduct)
	rg.GET("/netzero-progress/:id", h.get)
	rg.PUT("/netzero-progress/:id", h.update)
	rg.DELETE("/netzero-progress/:id", h.remove)
}

type progressRequest struct {
	ProductID           string  `json:"productId"`
	Year                int     `json:"year"`
	TargetEmission      float64 `json:"targetEmission"`
	ActualEmission      float64 `json:"actualEmission"`
	AlignmentPercentage float64 `json:"alignmentPercentage"`
}

func (h *Handler) create(c *gin.Context) {
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	progress, err := h.Svc.Create(c.Request.Context(), req.ProductID, req.Year, req.TargetEmission, req.ActualEmission, req.AlignmentPercentage)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "product id and year are required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create net-zero progress entry", nil)
		}
		return
	}

	c.Set("productId", progress.ProductID)
	respond.JSON(c, http.StatusCreated, toResponse(progress))
}

func (h *Handler) get(c *gin.Context) {
	progress, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "net-zero progress entry not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch net-zero progress entry", nil)
		}
		return
	}
	respond.OK(c, toResponse(progress))
}

func (h *Handler) listByProduct(c *gin.Context) {
	all, err := h.Svc.ListByProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list net-zero progress", nil)
		return
	}
	resp := make([]gin.H, 0, len(all))
	for _, progress := range all {
		resp = append(resp, toResponse(progress))
	}
	respond.OK(c, gin.H{"data": resp, "count": len(resp)})
}

func (h *Handler) update(c *gin.Context) {
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	progress, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.TargetEmission, req.ActualEmission, req.AlignmentPercentage)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "net-zero progress entry not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update net-zero progress entry", nil)
		}
		return
	}
	respond.OK(c, toResponse(progress))
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "net-zero progress entry not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete net-zero progress entry", nil)
		}
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}

func toResponse(progress Progress) gin.H {
	return gin.H{
		"progressId":          progress.ID,
		"productId":           progress.ProductID,
		"year":                progress.Year,
		"targetEmission":      progress.TargetEmission,
		"actualEmission":      progress.ActualEmission,
		"alignmentPercentage": progress.AlignmentPercentage,
		"recordedAt":          progress.RecordedAt,
	}
}
