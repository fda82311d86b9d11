package netzero

import "time"

// Progress is one yearly net-zero tracking entry for a product.
type Progress struct {
	ID                  string
	ProductID           string
	Year                int
	TargetEmission      float64
	ActualEmission      float64
	AlignmentPercentage float64
	RecordedAt          time.Time
}
