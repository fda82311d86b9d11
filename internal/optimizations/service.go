package optimizations

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"carbonchain-backend/internal/analyses"
	"carbonchain-backend/internal/engine"
	"carbonchain-backend/internal/llm"
	"carbonchain-backend/internal/shared/metrics"
	"carbonchain-backend/internal/shared/telemetry"
	"carbonchain-backend/internal/supplychain"
)

const recentLimit = 10

// Service owns the AI recommendation pipeline and the insight store.
type Service struct {
	Repo   Repo
	Nodes  supplychain.Repo
	Client llm.Client
	// Results is optional. When set, the latest analysis breakdown is
	// fed into the prompt summary.
	Results analyses.Repo
}

// GetOrGenerate returns the stored AI-generated set for a product, running
// the pipeline only when no set exists. Repeated calls with a stored set
// never touch the provider.
func (s *Service) GetOrGenerate(ctx context.Context, productID string) ([]Insight, error) {
	if productID == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.Repo.ListAIByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}
	return s.generate(ctx, productID, s.latestBreakdown(ctx, productID))
}

// Regenerate discards the stored AI-generated set and runs the pipeline
// fresh. A failure after the delete leaves the product with no AI records.
func (s *Service) Regenerate(ctx context.Context, productID string) ([]Insight, error) {
	if productID == "" {
		return nil, ErrInvalidInput
	}
	if err := s.Repo.DeleteAIByProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.generate(ctx, productID, s.latestBreakdown(ctx, productID))
}

// GenerateForProduct runs the pipeline with a breakdown supplied by a
// just-completed analysis, replacing any stored AI set.
func (s *Service) GenerateForProduct(ctx context.Context, productID string, result engine.Result) error {
	_, err := s.generate(ctx, productID, result.NodesBreakdown)
	return err
}

func (s *Service) generate(ctx context.Context, productID string, breakdown []engine.StageBreakdown) ([]Insight, error) {
	nodes, err := s.Nodes.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		// Nothing to summarize. The provider is not called.
		return []Insight{}, nil
	}

	summary, err := BuildSummary(nodes, breakdown)
	if err != nil {
		return nil, err
	}

	raw, err := s.Client.Generate(ctx, BuildPrompt(summary))
	if err != nil {
		return nil, err
	}

	items, err := ExtractArray(raw)
	if err != nil {
		metrics.IncOptimizationParseFail()
		telemetry.Error("optimizations.parse.failed", map[string]any{
			"product_id": productID,
			"error":      err.Error(),
			"raw":        raw,
		})
		return nil, err
	}

	now := time.Now().UTC()
	insights := make([]Insight, 0, len(items))
	for _, item := range items {
		insight := mapItem(item, productID)
		insight.ID = uuid.NewString()
		insight.CreatedAt = now
		insight.UpdatedAt = now
		insights = append(insights, insight)
	}

	if err := s.Repo.DeleteAIByProduct(ctx, productID); err != nil {
		return nil, err
	}
	if err := s.Repo.InsertBatch(ctx, insights); err != nil {
		return nil, err
	}
	metrics.IncOptimizationGenerated()
	return insights, nil
}

func (s *Service) latestBreakdown(ctx context.Context, productID string) []engine.StageBreakdown {
	if s.Results == nil {
		return nil
	}
	latest, err := s.Results.GetLatestByProduct(ctx, productID)
	if err != nil {
		if !errors.Is(err, analyses.ErrNotFound) {
			telemetry.Warn("optimizations.breakdown.unavailable", map[string]any{
				"product_id": productID,
				"error":      err.Error(),
			})
		}
		return nil
	}
	return latest.NodesBreakdown
}

// CreateInput carries the fields accepted when recording a manual insight.
type CreateInput struct {
	ProductID                string
	StageName                string
	RecommendationType       string
	CurrentState             string
	SuggestedImprovement     string
	CarbonReductionPercent   float64
	CostImpactINR            float64
	TimeImpactDays           float64
	ImplementationDifficulty string
	RecommendationText       string
}

// Create records a manual insight.
func (s *Service) Create(ctx context.Context, in CreateInput) (Insight, error) {
	in.ProductID = strings.TrimSpace(in.ProductID)
	in.StageName = strings.TrimSpace(in.StageName)
	if in.ProductID == "" || in.StageName == "" {
		return Insight{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	insight := Insight{
		ID:                       uuid.NewString(),
		ProductID:                in.ProductID,
		StageName:                in.StageName,
		RecommendationType:       toRecommendationType(in.RecommendationType),
		CurrentState:             in.CurrentState,
		SuggestedImprovement:     in.SuggestedImprovement,
		CarbonReductionPercent:   in.CarbonReductionPercent,
		CostImpactINR:            in.CostImpactINR,
		TimeImpactDays:           in.TimeImpactDays,
		ImplementationDifficulty: toDifficulty(in.ImplementationDifficulty),
		RecommendationText:       in.RecommendationText,
		GeneratedBy:              GeneratedByManual,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
	if err := s.Repo.Create(ctx, insight); err != nil {
		return Insight{}, err
	}
	return insight, nil
}

// Get returns an insight by ID.
func (s *Service) Get(ctx context.Context, insightID string) (Insight, error) {
	if insightID == "" {
		return Insight{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, insightID)
}

// ListByProduct returns all insights for a product.
func (s *Service) ListByProduct(ctx context.Context, productID string) ([]Insight, error) {
	if productID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByProduct(ctx, productID)
}

// ListRecent returns the newest insights across all products.
func (s *Service) ListRecent(ctx context.Context) ([]Insight, error) {
	return s.Repo.ListRecent(ctx, recentLimit)
}

// Update replaces the mutable fields of an insight.
func (s *Service) Update(ctx context.Context, insightID string, in CreateInput) (Insight, error) {
	if insightID == "" {
		return Insight{}, ErrInvalidInput
	}
	insight, err := s.Repo.GetByID(ctx, insightID)
	if err != nil {
		return Insight{}, err
	}
	if trimmed := strings.TrimSpace(in.StageName); trimmed != "" {
		insight.StageName = trimmed
	}
	if in.RecommendationType != "" {
		insight.RecommendationType = toRecommendationType(in.RecommendationType)
	}
	if in.CurrentState != "" {
		insight.CurrentState = in.CurrentState
	}
	if in.SuggestedImprovement != "" {
		insight.SuggestedImprovement = in.SuggestedImprovement
	}
	if in.CarbonReductionPercent != 0 {
		insight.CarbonReductionPercent = in.CarbonReductionPercent
	}
	if in.CostImpactINR != 0 {
		insight.CostImpactINR = in.CostImpactINR
	}
	if in.TimeImpactDays != 0 {
		insight.TimeImpactDays = in.TimeImpactDays
	}
	if in.ImplementationDifficulty != "" {
		insight.ImplementationDifficulty = toDifficulty(in.ImplementationDifficulty)
	}
	if in.RecommendationText != "" {
		insight.RecommendationText = in.RecommendationText
	}
	if err := s.Repo.Update(ctx, insight); err != nil {
		return Insight{}, err
	}
	return s.Repo.GetByID(ctx, insightID)
}

// Delete removes an insight.
func (s *Service) Delete(ctx context.Context, insightID string) error {
	if insightID == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, insightID)
}

var _ analyses.InsightGenerator = (*Service)(nil)
