package hw

import "errors"

var (
	// ErrNoPin indicates the indicator pin is not known to the host.
	ErrNoPin = errors.New("no such gpio pin")
	// ErrNotInitialized indicates use before Init.
	ErrNotInitialized = errors.New("device not initialized")
	// ErrCursorOutOfRange indicates a cursor outside of the grid.
	ErrCursorOutOfRange = errors.New("cursor out of range")
)
