package analyses

import (
	"time"

	"carbonchain-backend/internal/engine"
)

// Result is one stored emission analysis for a product.
type Result struct {
	ID                         string
	ProductID                  string
	TotalEmission              float64
	HighestEmissionStage       string
	CarbonEfficiencyScore      float64
	CostEfficiencyScore        float64
	TimeEfficiencyScore        float64
	NetZeroAlignmentPercentage float64
	NodesBreakdown             []engine.StageBreakdown
	AnalysisDate               time.Time
}

// RunOutput is the result of a fresh analysis run, including aggregates
// that are reported but not persisted.
type RunOutput struct {
	Result
	TotalCost float64
	TotalTime float64
}
