package optimizations

import "time"

// Recommendation categories the provider is allowed to emit.
const (
	RecommendationTransport = "transport"
	RecommendationEnergy    = "energy"
	RecommendationNetwork   = "network"
	RecommendationPackaging = "packaging"
	RecommendationOther     = "other"
)

// Implementation difficulty levels.
const (
	DifficultyLow    = "low"
	DifficultyMedium = "medium"
	DifficultyHigh   = "high"
)

// Provenance tags. AI-generated insights are managed as a replaceable set;
// manual insights are never touched by the AI pipeline.
const (
	GeneratedByAI     = "gemini-ai"
	GeneratedByManual = "manual"
)

// Insight is one optimization recommendation for a product.
type Insight struct {
	ID                       string
	ProductID                string
	StageName                string
	RecommendationType       string
	CurrentState             string
	SuggestedImprovement     string
	CarbonReductionPercent   float64
	CostImpactINR            float64
	TimeImpactDays           float64
	ImplementationDifficulty string
	MaharashtraSpecificNotes string
	WhyThisApproach          string
	RecommendationText       string
	GeneratedBy              string
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
