package optimizations

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"carbonchain-backend/internal/supplychain"
)

// Per-km emission factors in kg CO2e.
var emissionFactors = map[string]float64{
	supplychain.TransportTruck: 0.12,
	supplychain.TransportRail:  0.04,
	supplychain.TransportShip:  0.02,
	supplychain.TransportAir:   0.5,
}

// Per-km transport cost factors.
var costFactors = map[string]float64{
	supplychain.TransportTruck: 1.5,
	supplychain.TransportRail:  1.1,
	supplychain.TransportShip:  0.8,
	supplychain.TransportAir:   3.0,
}

// GenerateHeuristic produces rule-based transport-switch recommendations
// without calling the provider. Stages already on ship or rail are skipped.
func (s *Service) GenerateHeuristic(ctx context.Context, productID string) ([]Insight, error) {
	if productID == "" {
		return nil, ErrInvalidInput
	}

	nodes, err := s.Nodes.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	out := []Insight{}
	for _, node := range nodes {
		mode := strings.ToLower(node.TransportMode)
		if mode == supplychain.TransportShip || mode == supplychain.TransportRail {
			continue
		}
		for _, insight := range transportSuggestions(node, mode) {
			insight.ID = uuid.NewString()
			insight.CreatedAt = now
			insight.UpdatedAt = now
			if err := s.Repo.Create(ctx, insight); err != nil {
				return nil, err
			}
			out = append(out, insight)
		}
	}
	return out, nil
}

func transportSuggestions(node supplychain.Node, currentMode string) []Insight {
	distance := node.DistanceKm
	currentFactor, known := emissionFactors[currentMode]
	if !known || distance <= 0 {
		return nil
	}

	suggestions := []Insight{}
	for mode, factor := range emissionFactors {
		if mode == currentMode {
			continue
		}
		// Feasibility limits.
		if mode == supplychain.TransportAir && distance > 10000 {
			continue
		}
		if mode == supplychain.TransportShip && distance < 100 {
			continue
		}

		currentEmission := distance * currentFactor
		newEmission := distance * factor
		carbonSavedPercent := (currentEmission - newEmission) / currentEmission * 100

		costSaved := node.TransportCost - distance*costFactors[mode]
		timeImpact := transportDays(mode, distance) - node.TransportTimeDays

		difficulty := DifficultyLow
		if timeImpact > 5 {
			difficulty = DifficultyMedium
		}
		if timeImpact > 10 {
			difficulty = DifficultyHigh
		}

		suggestions = append(suggestions, Insight{
			ProductID:                node.ProductID,
			StageName:                node.StageName,
			RecommendationType:       RecommendationTransport,
			CurrentState:             currentMode,
			SuggestedImprovement:     mode,
			CarbonReductionPercent:   round2(carbonSavedPercent),
			CostImpactINR:            round2(costSaved),
			TimeImpactDays:           round1(timeImpact),
			ImplementationDifficulty: difficulty,
			RecommendationText:       recommendationText(node.StageName, currentMode, mode, carbonSavedPercent, costSaved, timeImpact),
			GeneratedBy:              GeneratedByManual,
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].CarbonReductionPercent > suggestions[j].CarbonReductionPercent
	})
	return suggestions
}

func transportDays(mode string, distance float64) float64 {
	switch mode {
	case supplychain.TransportTruck:
		return distance / 80
	case supplychain.TransportRail:
		return distance / 100
	case supplychain.TransportShip:
		return 7 + distance/500
	case supplychain.TransportAir:
		return 1
	default:
		return 0
	}
}

func recommendationText(stage, currentMode, suggestedMode string, carbonPercent, costSaved, timeImpact float64) string {
	if timeImpact > 0 {
		return fmt.Sprintf("Switch %s from %s to %s: save %.0f%% carbon and %.2f, but adds %.1f days delivery.",
			stage, currentMode, suggestedMode, carbonPercent, math.Abs(costSaved), timeImpact)
	}
	return fmt.Sprintf("Switch %s from %s to %s: save %.0f%% carbon, save %.2f, and reduce time by %.1f days.",
		stage, currentMode, suggestedMode, carbonPercent, costSaved, math.Abs(timeImpact))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
