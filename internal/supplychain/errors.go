package supplychain

import "errors"

var (
	ErrNotFound     = errors.New("supply chain node not found")
	ErrInvalidInput = errors.New("invalid input")
)
