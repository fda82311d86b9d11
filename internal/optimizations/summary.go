package optimizations

import (
	"fmt"
	"strconv"
	"strings"

	"carbonchain-backend/internal/engine"
	"carbonchain-backend/internal/supplychain"
)

const noBreakdownPlaceholder = "No detailed emission breakdown available"

// BuildSummary renders a product's supply chain as plain text for the
// provider prompt. Raw records are never serialized as JSON; the provider
// only ever sees this summary.
func BuildSummary(stages []supplychain.Node, breakdown []engine.StageBreakdown) (string, error) {
	if stages == nil {
		return "", ErrInvalidInput
	}

	stageLines := make([]string, 0, len(stages))
	for _, stage := range stages {
		stageLines = append(stageLines, fmt.Sprintf(
			"Stage: %s, Transport: %s, Distance: %skm, Energy: %s",
			stage.StageName, stage.TransportMode, formatNumber(stage.DistanceKm), stage.EnergySource,
		))
	}

	emissionSummary := noBreakdownPlaceholder
	if len(breakdown) > 0 {
		emissionLines := make([]string, 0, len(breakdown))
		for _, item := range breakdown {
			emissionLines = append(emissionLines, fmt.Sprintf(
				"Stage %s: %s tCO2e (%s%%)",
				item.StageName, formatNumber(item.TotalEmission), formatNumber(item.PercentageOfTotal),
			))
		}
		emissionSummary = strings.Join(emissionLines, "\n")
	}

	return fmt.Sprintf(`
SUPPLY CHAIN OVERVIEW:
%s

EMISSION SUMMARY:
%s
`, strings.Join(stageLines, "\n"), emissionSummary), nil
}

// formatNumber renders a float without a trailing ".0" for whole values.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
