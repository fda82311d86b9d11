package netzero

import "errors"

var (
	ErrNotFound     = errors.New("net-zero progress entry not found")
	ErrInvalidInput = errors.New("invalid input")
)
