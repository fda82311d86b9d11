package products

import "time"

// Product is a tracked item owned by a company, carrying its net-zero target
// and the latest derived emission figures.
type Product struct {
	ID                    string
	CompanyID             string
	Name                  string
	Description           string
	YearlyNetZeroTarget   float64
	CurrentYearEmission   float64
	CarbonEfficiencyScore *float64
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
