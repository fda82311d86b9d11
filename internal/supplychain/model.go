package supplychain

import "time"

// Transport modes accepted for a stage record.
const (
	TransportTruck = "truck"
	TransportRail  = "rail"
	TransportShip  = "ship"
	TransportAir   = "air"
)

// Node is one segment of a product's supply chain.
type Node struct {
	ID                string
	ProductID         string
	StageName         string
	SupplierName      string
	TransportMode     string
	DistanceKm        float64
	EnergySource      string
	TransportCost     float64
	TransportTimeDays float64
	Emission          *float64
	FromLocation      string
	ToLocation        string
	HasSeaway         bool
	HasAirport        bool
	RouteDetails      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
