package optimizations

import "errors"

var (
	ErrNotFound     = errors.New("optimization insight not found")
	ErrInvalidInput = errors.New("invalid input")

	// Parse failures for provider output. The raw response text is logged
	// by the caller whenever one of these is returned.
	ErrNoJSONArray     = errors.New("no JSON array found in provider output")
	ErrMalformedJSON   = errors.New("provider output is not valid JSON")
	ErrUnexpectedShape = errors.New("provider output is not a JSON array")
)
