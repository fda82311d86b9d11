package analyses

import "errors"

var (
	ErrNotFound     = errors.New("analysis not found")
	ErrNoStages     = errors.New("no supply chain stages found for product")
	ErrInvalidInput = errors.New("invalid input")
)
