package optimizations

import "strconv"

// mapItem coerces one parsed provider object into an Insight. Every field
// is defensive: missing or mistyped values fall back to a safe default
// rather than failing the batch.
func mapItem(raw any, productID string) Insight {
	item, _ := raw.(map[string]any)
	return Insight{
		ProductID:                productID,
		StageName:                toString(item["stage"]),
		RecommendationType:       toRecommendationType(item["recommendationType"]),
		CurrentState:             toString(item["currentState"]),
		SuggestedImprovement:     toString(item["suggestedImprovement"]),
		CarbonReductionPercent:   toNumber(item["carbonReductionPercent"]),
		CostImpactINR:            toNumber(item["costImpactINR"]),
		TimeImpactDays:           toNumber(item["timeImpactDays"]),
		ImplementationDifficulty: toDifficulty(item["implementationDifficulty"]),
		MaharashtraSpecificNotes: toString(item["maharashtraSpecificNotes"]),
		WhyThisApproach:          toString(item["whyThisApproach"]),
		GeneratedBy:              GeneratedByAI,
	}
}

func toString(v any) string {
	s, _ := v.(string)
	return s
}

func toNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		if parsed, err := strconv.ParseFloat(n, 64); err == nil {
			return parsed
		}
	}
	return 0
}

func toRecommendationType(v any) string {
	switch toString(v) {
	case RecommendationTransport:
		return RecommendationTransport
	case RecommendationEnergy:
		return RecommendationEnergy
	case RecommendationNetwork:
		return RecommendationNetwork
	case RecommendationPackaging:
		return RecommendationPackaging
	default:
		return RecommendationOther
	}
}

func toDifficulty(v any) string {
	switch toString(v) {
	case DifficultyLow:
		return DifficultyLow
	case DifficultyHigh:
		return DifficultyHigh
	default:
		return DifficultyMedium
	}
}
