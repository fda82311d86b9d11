package analyses

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carbonchain-backend/internal/engine"
	"carbonchain-backend/internal/products"
	"carbonchain-backend/internal/shared/metrics"
	"carbonchain-backend/internal/shared/telemetry"
	"carbonchain-backend/internal/supplychain"
)

// optimizationTimeout bounds the background recommendation run so a slow
// provider never holds a goroutine indefinitely.
const optimizationTimeout = 90 * time.Second

// EngineClient calculates emission totals for a set of stage records.
type EngineClient interface {
	CalculateTotal(ctx context.Context, nodes []engine.NodePayload) (engine.Result, error)
}

// InsightGenerator refreshes AI recommendations after an analysis run.
type InsightGenerator interface {
	GenerateForProduct(ctx context.Context, productID string, result engine.Result) error
}

// Service runs emission analyses: it collects a product's stage records,
// calls the engine, derives efficiency scores, and persists the result.
type Service struct {
	Repo     Repo
	Nodes    supplychain.Repo
	Products products.Repo
	Engine   EngineClient
	// Optimizer is optional. When set, a successful run triggers AI
	// recommendation generation in the background.
	Optimizer InsightGenerator
}

// Run executes a full analysis for the product.
func (s *Service) Run(ctx context.Context, productID string) (RunOutput, error) {
	if productID == "" {
		return RunOutput{}, ErrInvalidInput
	}
	metrics.IncAnalysisStarted()
	started := metrics.NowMillis()

	nodes, err := s.Nodes.ListByProduct(ctx, productID)
	if err != nil {
		metrics.IncAnalysisFailed()
		return RunOutput{}, err
	}
	if len(nodes) == 0 {
		metrics.IncAnalysisFailed()
		return RunOutput{}, ErrNoStages
	}

	payload := make([]engine.NodePayload, 0, len(nodes))
	for _, node := range nodes {
		payload = append(payload, engine.NodePayload{
			StageName:         node.StageName,
			SupplierName:      node.SupplierName,
			TransportMode:     node.TransportMode,
			DistanceKm:        node.DistanceKm,
			EnergySource:      node.EnergySource,
			TransportCost:     node.TransportCost,
			TransportTimeDays: node.TransportTimeDays,
		})
	}

	engineResult, err := s.Engine.CalculateTotal(ctx, payload)
	if err != nil {
		metrics.IncAnalysisFailed()
		return RunOutput{}, err
	}

	product, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		metrics.IncAnalysisFailed()
		return RunOutput{}, err
	}

	var totalCost, totalTime, totalDistance float64
	for _, node := range nodes {
		totalCost += node.TransportCost
		totalTime += node.TransportTimeDays
		totalDistance += node.DistanceKm
	}

	result := Result{
		ID:                         uuid.NewString(),
		ProductID:                  productID,
		TotalEmission:              engineResult.TotalEmission,
		HighestEmissionStage:       engineResult.HighestEmissionStage,
		CarbonEfficiencyScore:      carbonEfficiencyScore(engineResult.TotalEmission, len(nodes)),
		CostEfficiencyScore:        costEfficiencyScore(totalCost, totalDistance),
		TimeEfficiencyScore:        timeEfficiencyScore(totalTime, len(nodes)),
		NetZeroAlignmentPercentage: netZeroAlignment(engineResult.TotalEmission, product.YearlyNetZeroTarget),
		NodesBreakdown:             engineResult.NodesBreakdown,
		AnalysisDate:               time.Now().UTC(),
	}
	if result.NodesBreakdown == nil {
		result.NodesBreakdown = []engine.StageBreakdown{}
	}

	if err := s.Repo.Create(ctx, result); err != nil {
		metrics.IncAnalysisFailed()
		return RunOutput{}, err
	}
	if err := s.Products.UpdateEmissionStats(ctx, productID, result.TotalEmission, result.CarbonEfficiencyScore); err != nil {
		metrics.IncAnalysisFailed()
		return RunOutput{}, err
	}
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(metrics.NowMillis() - started)

	if s.Optimizer != nil {
		go s.generateInsights(productID, engineResult)
	}

	return RunOutput{Result: result, TotalCost: totalCost, TotalTime: totalTime}, nil
}

func (s *Service) generateInsights(productID string, result engine.Result) {
	ctx, cancel := context.WithTimeout(context.Background(), optimizationTimeout)
	defer cancel()

	if err := s.Optimizer.GenerateForProduct(ctx, productID, result); err != nil {
		telemetry.Warn("analysis.optimizations.failed", map[string]any{
			"product_id": productID,
			"error":      err.Error(),
		})
	}
}

// Latest returns the most recent analysis for a product.
func (s *Service) Latest(ctx context.Context, productID string) (Result, error) {
	if productID == "" {
		return Result{}, ErrInvalidInput
	}
	return s.Repo.GetLatestByProduct(ctx, productID)
}

// History returns a product's analyses newest-first.
func (s *Service) History(ctx context.Context, productID string) ([]Result, error) {
	if productID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByProduct(ctx, productID)
}

// carbonEfficiencyScore normalizes total emission against a baseline of
// 10 tCO2e per stage.
func carbonEfficiencyScore(totalEmission float64, stages int) float64 {
	if stages == 0 {
		return 0
	}
	baseline := float64(stages) * 10
	return clamp(100 - (totalEmission/baseline)*100)
}

// costEfficiencyScore normalizes average transport cost per km against a
// baseline of 5 per km.
func costEfficiencyScore(totalCost, totalDistance float64) float64 {
	avgCostPerKm := 0.0
	if totalDistance > 0 {
		avgCostPerKm = totalCost / totalDistance
	}
	return clamp(100 - (avgCostPerKm/5)*100)
}

// timeEfficiencyScore normalizes average transit days per stage against a
// baseline of 30 days.
func timeEfficiencyScore(totalTime float64, stages int) float64 {
	avgTimePerStage := 0.0
	if stages > 0 {
		avgTimePerStage = totalTime / float64(stages)
	}
	return clamp(100 - (avgTimePerStage/30)*100)
}

// netZeroAlignment reports how far the total emission sits under the yearly
// target. A product without a target scores 0. The score floors at 0 but is
// not capped, matching the 100 ceiling only through the formula itself.
func netZeroAlignment(totalEmission, yearlyTarget float64) float64 {
	if yearlyTarget == 0 {
		return 0
	}
	score := 100 - (totalEmission/yearlyTarget)*100
	if score < 0 {
		return 0
	}
	return score
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
