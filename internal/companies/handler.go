package companies

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

// RegisterRoutes attaches company routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/companies/register", h.register)
	rg.POST("/companies/login", h.login)
	rg.GET("/companies", h.list)
	rg.GET("/companies/:id", h.get)
	rg.PUT("/companies/:id", h.update)
	rg.DELETE("/companies/:id", h.remove)
}

type registerRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	Industry             string `json:"industry"`
	SustainabilityGoal   string `json:"sustainabilityGoal"`
	HeadquartersLocation string `json:"headquartersLocation"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	company, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Industry, req.SustainabilityGoal, req.HeadquartersLocation)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "company name, email, and password are required", nil)
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusBadRequest, "email_taken", "email already registered", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to register company", nil)
		}
		return
	}

	c.Set("companyId", company.ID)
	respond.JSON(c, http.StatusCreated, toResponse(company))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	company, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "email and password are required", nil)
		case errors.Is(err, ErrInvalidCredentials):
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to login", nil)
		}
		return
	}

	c.Set("companyId", company.ID)
	respond.OK(c, toResponse(company))
}

func (h *Handler) get(c *gin.Context) {
	company, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "company not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "company id is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch company", nil)
		}
		return
	}
	respond.OK(c, toResponse(company))
}

func (h *Handler) list(c *gin.Context) {
	all, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list companies", nil)
		return
	}
	resp := make([]gin.H, 0, len(all))
	for _, company := range all {
		resp = append(resp, toResponse(company))
	}
	respond.OK(c, resp)
}

type updateRequest struct {
	Name                 string `json:"name"`
	Industry             string `json:"industry"`
	SustainabilityGoal   string `json:"sustainabilityGoal"`
	HeadquartersLocation string `json:"headquartersLocation"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	company, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.Name, req.Industry, req.SustainabilityGoal, req.HeadquartersLocation)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "company not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "company id is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update company", nil)
		}
		return
	}
	respond.OK(c, toResponse(company))
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "company not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete company", nil)
		}
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}

// toResponse never includes the password hash.
func toResponse(company Company) gin.H {
	return gin.H{
		"companyId":            company.ID,
		"name":                 company.Name,
		"email":                company.Email,
		"industry":             company.Industry,
		"sustainabilityGoal":   company.SustainabilityGoal,
		"headquartersLocation": company.HeadquartersLocation,
		"createdAt":            company.CreatedAt,
	}
}
