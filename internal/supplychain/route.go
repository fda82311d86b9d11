package supplychain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"carbonchain-backend/internal/llm"
)

// cityInfra describes the logistics infrastructure of a Maharashtra city.
type cityInfra struct {
	HasSeaway  bool
	HasAirport bool
	Ports      []string
	Airports   []string
}

// Maharashtra cities with major logistics infrastructure. Unknown cities
// fall back to the zero value.
var maharashtraCities = map[string]cityInfra{
	"Mumbai":                   {HasSeaway: true, HasAirport: true, Ports: []string{"JNPT", "Mumbai Port"}, Airports: []string{"BOM"}},
	"Pune":                     {HasAirport: true, Airports: []string{"PNQ"}},
	"Aurangabad":               {HasAirport: true, Airports: []string{"IXU"}},
	"Chhatrapati Sambhajinagar": {HasAirport: true, Airports: []string{"IXU"}},
	"Nashik":                   {},
	"Thane":                    {HasSeaway: true, Ports: []string{"Jawaharlal Nehru Port"}},
	"Kolhapur":                 {},
	"Solapur":                  {},
	"Buldhana":                 {},
	"Parbhani":                 {},
	"Sangli":                   {},
	"Satara":                   {},
	"Sindhdurg":                {HasSeaway: true, Ports: []string{"Malvan"}},
	"Raigad":                   {HasSeaway: true, Ports: []string{"Raigad Port"}},
	"Jalgaon":                  {},
	"Nagpur":                   {HasAirport: true, Airports: []string{"NAG"}},
	"Akola":                    {},
	"Amravati":                 {},
}

// RouteAnalysis is the provider's assessment of a route, combined with the
// static infrastructure lookup for both endpoints.
type RouteAnalysis struct {
	FromLocation    string   `json:"fromLocation"`
	ToLocation      string   `json:"toLocation"`
	FromHasSeaway   bool     `json:"fromHasSeaway"`
	FromHasAirport  bool     `json:"fromHasAirport"`
	ToHasSeaway     bool     `json:"toHasSeaway"`
	ToHasAirport    bool     `json:"toHasAirport"`
	RouteDetails    string   `json:"routeDetails"`
	TransportOptions []string `json:"transportOptions"`
	RecommendedMode string   `json:"recommendedMode"`
	OptimalMode     string   `json:"optimalMode"`
	GreenOpportunities []string `json:"greenOpportunities"`
}

// routeResponse is the JSON shape the provider is asked to return.
type routeResponse struct {
	RouteDescription            string   `json:"routeDescription"`
	TransportOptions            []string `json:"transportOptions"`
	RecommendedMode             string   `json:"recommendedMode"`
	RouteDistance               string   `json:"routeDistance"`
	TimeEstimate                string   `json:"timeEstimate"`
	GreenTransportOpportunities []string `json:"greenTransportOpportunities"`
	LogisticsHubs               []string `json:"logisticsHubs"`
	SelectedOptimalMode         string   `json:"selectedOptimalMode"`
}

// RouteAnalyzer asks the LLM provider to assess a route between two cities.
type RouteAnalyzer struct {
	Client llm.Client
}

// Analyze looks up both endpoints in the infrastructure table, asks the
// provider for a route assessment, and merges the two.
func (a *RouteAnalyzer) Analyze(ctx context.Context, fromLocation, toLocation string) (RouteAnalysis, error) {
	from := maharashtraCities[fromLocation]
	to := maharashtraCities[toLocation]

	prompt := buildRoutePrompt(fromLocation, toLocation, from, to)
	text, err := a.Client.Generate(ctx, prompt)
	if err != nil {
		return RouteAnalysis{}, fmt.Errorf("route analysis: %w", err)
	}

	var parsed routeResponse
	if err := json.Unmarshal([]byte(stripObjectFences(text)), &parsed); err != nil {
		return RouteAnalysis{}, fmt.Errorf("route analysis: parse response: %w", err)
	}

	return RouteAnalysis{
		FromLocation:       fromLocation,
		ToLocation:         toLocation,
		FromHasSeaway:      from.HasSeaway,
		FromHasAirport:     from.HasAirport,
		ToHasSeaway:        to.HasSeaway,
		ToHasAirport:       to.HasAirport,
		RouteDetails:       parsed.RouteDescription,
		TransportOptions:   parsed.TransportOptions,
		RecommendedMode:    parsed.RecommendedMode,
		OptimalMode:        parsed.SelectedOptimalMode,
		GreenOpportunities: parsed.GreenTransportOpportunities,
	}, nil
}

func buildRoutePrompt(fromLocation, toLocation string, from, to cityInfra) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this supply chain route in Maharashtra, India:\nFrom: %s\nTo: %s\n\n", fromLocation, toLocation)
	fmt.Fprintf(&b, "From location infrastructure:\n")
	writeInfra(&b, from)
	fmt.Fprintf(&b, "\nTo location infrastructure:\n")
	writeInfra(&b, to)
	b.WriteString(`
Provide a JSON response with:
{
  "routeDescription": "Brief description of the optimal route",
  "transportOptions": ["list", "of", "viable", "modes"],
  "recommendedMode": "truck/rail/ship/air",
  "routeDistance": "estimated km",
  "timeEstimate": "estimated days",
  "greenTransportOpportunities": ["renewable", "fuel", "alternatives"],
  "logisticsHubs": ["nearby distribution centers"],
  "selectedOptimalMode": "truck/rail/ship/air based on emissions"
}

Return ONLY valid JSON.`)
	return b.String()
}

func writeInfra(b *strings.Builder, c cityInfra) {
	fmt.Fprintf(b, "- Has seaway access: %t\n", c.HasSeaway)
	fmt.Fprintf(b, "- Has airport: %t\n", c.HasAirport)
	fmt.Fprintf(b, "- Ports: %s\n", joinOrNone(c.Ports))
	fmt.Fprintf(b, "- Airports: %s\n", joinOrNone(c.Airports))
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

// stripObjectFences removes a surrounding markdown code fence, if present,
// and trims the text to the outermost JSON object.
func stripObjectFences(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return s
}
