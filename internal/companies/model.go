package companies

import "time"

// Company represents a registered organization that owns products.
type Company struct {
	ID                   string
	Name                 string
	Email                string
	PasswordHash         string
	Industry             string
	SustainabilityGoal   string
	HeadquartersLocation string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
