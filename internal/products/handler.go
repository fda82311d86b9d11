package products

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

// RegisterRoutes attaches product routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/products", h.create)
	rg.GET("/products/company/:companyId", h.listByCompany)
	rg.GET("/products/:id", h.get)
	rg.PUT("/products/:id", h.update)
	rg.DELETE("/products/:id", h.remove)
}

type productRequest struct {
	CompanyID           string  `json:"companyId"`
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	YearlyNetZeroTarget float64 `json:"yearlyNetZeroTarget"`
}

func (h *Handler) create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	product, err := h.Svc.Create(c.Request.Context(), req.CompanyID, req.Name, req.Description, req.YearlyNetZeroTarget)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "company id, product name, and yearly net-zero target are required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create product", nil)
		}
		return
	}

	c.Set("productId", product.ID)
	respond.JSON(c, http.StatusCreated, toResponse(product))
}

func (h *Handler) get(c *gin.Context) {
	product, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "product not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "product id is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch product", nil)
		}
		return
	}
	respond.OK(c, toResponse(product))
}

func (h *Handler) listByCompany(c *gin.Context) {
	all, err := h.Svc.ListByCompany(c.Request.Context(), c.Param("companyId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "company id is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list products", nil)
		}
		return
	}
	resp := make([]gin.H, 0, len(all))
	for _, product := range all {
		resp = append(resp, toResponse(product))
	}
	respond.OK(c, gin.H{"data": resp, "count": len(resp)})
}

func (h *Handler) update(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	product, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.Name, req.Description, req.YearlyNetZeroTarget)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "product not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "product id is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update product", nil)
		}
		return
	}
	respond.OK(c, toResponse(product))
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "product not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete product", nil)
		}
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}

func toResponse(product Product) gin.H {
	resp := gin.H{
		"productId":           product.ID,
		"companyId":           product.CompanyID,
		"name":                product.Name,
		"description":         product.Description,
		"yearlyNetZeroTarget": product.YearlyNetZeroTarget,
		"currentYearEmission": product.CurrentYearEmission,
		"createdAt":           product.CreatedAt,
	}
	if product.CarbonEfficiencyScore != nil {
		resp["carbonEfficiencyScore"] = *product.CarbonEfficiencyScore
	}
	return resp
}
