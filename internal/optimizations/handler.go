package optimizations

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

// RegisterRoutes attaches optimization routes to the router group. The
// singular /optimization prefix carries insight-level CRUD; the plural
// /optimizations prefix carries product-scoped operations.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/optimization", h.create)
	rg.GET("/optimization/:id", h.get)
	rg.PUT("/optimization/:id", h.update)
	rg.DELETE("/optimization/:id", h.remove)

	rg.GET("/optimizations", h.recent)
	rg.GET("/optimizations/:productId", h.listByProduct)
	rg.POST("/optimizations/:productId/generate", h.generateHeuristic)
	rg.GET("/optimizations/:productId/gemini", h.getOrGenerate)
	rg.POST("/optimizations/:productId/gemini/regenerate", h.regenerate)
}

func (h *Handler) getOrGenerate(c *gin.Context) {
	productID := c.Param("productId")
	c.Set("productId", productID)

	insights, err := h.Svc.GetOrGenerate(c.Request.Context(), productID)
	if err != nil {
		h.respondPipelineError(c, err)
		return
	}
	respond.OK(c, gin.H{"data": toResponses(insights), "count": len(insights), "source": GeneratedByAI})
}

func (h *Handler) regenerate(c *gin.Context) {
	productID := c.Param("productId")
	c.Set("productId", productID)

	insights, err := h.Svc.Regenerate(c.Request.Context(), productID)
	if err != nil {
		h.respondPipelineError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"data": toResponses(insights), "count": len(insights), "source": GeneratedByAI})
}

// respondPipelineError maps generation failures so callers can tell a
// deployment problem (missing key) from a transient provider fault and
// from unusable provider output.
func (h *Handler) respondPipelineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "product id is required", nil)
	case errors.Is(err, llm.ErrMissingAPIKey):
		respond.Error(c, http.StatusServiceUnavailable, "provider_not_configured", "AI provider API key is not configured", gin.H{
			"hint": "set GEMINI_API_KEY and restart the server",
		})
	case errors.Is(err, llm.ErrAuth):
		respond.Error(c, http.StatusBadGateway, "provider_auth_error", "AI provider rejected the configured credentials", nil)
	case errors.Is(err, llm.ErrTimeout), errors.Is(err, llm.ErrUnavailable):
		respond.Error(c, http.StatusBadGateway, "provider_unavailable", "AI provider is unavailable, try again later", nil)
	case errors.Is(err, ErrNoJSONArray), errors.Is(err, ErrMalformedJSON), errors.Is(err, ErrUnexpectedShape):
		respond.Error(c, http.StatusBadGateway, "provider_output_invalid", "AI provider returned an unparseable response, try regenerating", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate recommendations", nil)
	}
}

func (h *Handler) generateHeuristic(c *gin.Context) {
	productID := c.Param("productId")
	c.Set("productId", productID)

	insights, err := h.Svc.GenerateHeuristic(c.Request.Context(), productID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "product id is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate recommendations", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"data": toResponses(insights), "count": len(insights)})
}

type insightRequest struct {
	ProductID                string  `json:"productId"`
	StageName                string  `json:"stageName"`
	RecommendationType       string  `json:"recommendationType"`
	CurrentState             string  `json:"currentState"`
	SuggestedImprovement     string  `json:"suggestedImprovement"`
	CarbonReductionPercent   float64 `json:"carbonReductionPercent"`
	CostImpactINR            float64 `json:"costImpactINR"`
	TimeImpactDays           float64 `json:"timeImpactDays"`
	ImplementationDifficulty string  `json:"implementationDifficulty"`
	RecommendationText       string  `json:"recommendationText"`
}

func (req insightRequest) toInput() CreateInput {
	return CreateInput{
		ProductID:                req.ProductID,
		StageName:                req.StageName,
		RecommendationType:       req.RecommendationType,
		CurrentState:             req.CurrentState,
		SuggestedImprovement:     req.SuggestedImprovement,
		CarbonReductionPercent:   req.CarbonReductionPercent,
		CostImpactINR:            req.CostImpactINR,
		TimeImpactDays:           req.TimeImpactDays,
		ImplementationDifficulty: req.ImplementationDifficulty,
		RecommendationText:       req.RecommendationText,
	}
}

func (h *Handler) create(c *gin.Context) {
	var req insightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	insight, err := h.Svc.Create(c.Request.Context(), req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "product id and stage name are required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create optimization insight", nil)
		}
		return
	}

	c.Set("productId", insight.ProductID)
	respond.JSON(c, http.StatusCreated, toResponse(insight))
}

func (h *Handler) get(c *gin.Context) {
	insight, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "optimization insight not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch optimization insight", nil)
		}
		return
	}
	respond.OK(c, toResponse(insight))
}

func (h *Handler) listByProduct(c *gin.Context) {
	productID := c.Param("productId")
	c.Set("productId", productID)

	insights, err := h.Svc.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list optimization insights", nil)
		return
	}
	respond.OK(c, gin.H{"data": toResponses(insights), "count": len(insights)})
}

func (h *Handler) recent(c *gin.Context) {
	insights, err := h.Svc.ListRecent(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list optimization insights", nil)
		return
	}
	respond.OK(c, gin.H{"data": toResponses(insights), "count": len(insights)})
}

func (h *Handler) update(c *gin.Context) {
	var req insightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	insight, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "optimization insight not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update optimization insight", nil)
		}
		return
	}
	respond.OK(c, toResponse(insight))
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "optimization insight not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete optimization insight", nil)
		}
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}

func toResponse(insight Insight) gin.H {
	return gin.H{
		"insightId":                insight.ID,
		"productId":                insight.ProductID,
		"stageName":                insight.StageName,
		"recommendationType":       insight.RecommendationType,
		"currentState":             insight.CurrentState,
		"suggestedImprovement":     insight.SuggestedImprovement,
		"carbonReductionPercent":   insight.CarbonReductionPercent,
		"costImpactINR":            insight.CostImpactINR,
		"timeImpactDays":           insight.TimeImpactDays,
		"implementationDifficulty": insight.ImplementationDifficulty,
		"maharashtraSpecificNotes": insight.MaharashtraSpecificNotes,
		"whyThisApproach":          insight.WhyThisApproach,
		"recommendationText":       insight.RecommendationText,
		"generatedBy":              insight.GeneratedBy,
		"createdAt":                insight.CreatedAt,
	}
}

func toResponses(insights []Insight) []gin.H {
	out := make([]gin.H, 0, len(insights))
	for _, insight := range insights {
		out = append(out, toResponse(insight))
	}
	return out
}
