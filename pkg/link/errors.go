package link

import (
	"errors"
	"fmt"
)

var (
	// ErrFrameTooLarge indicates a length prefix above MaxFrameSize.
	ErrFrameTooLarge = errors.New("frame too large")
	// ErrClosed indicates the link stopped running.
	ErrClosed = errors.New("link closed")
	// ErrOverrun indicates the peer sent a frame before the previous one
	// was consumed.
	ErrOverrun = errors.New("link overrun")
)

// SequenceError indicates a lost or duplicated frame.
type SequenceError struct {
	Frame    string
	Expected uint32
	Actual   uint32
}

// Error implements error.
func (e *SequenceError) Error() string {
	return fmt.Sprintf("%s out of sequence: expected %d, got %d", e.Frame, e.Expected, e.Actual)
}

// FrameError indicates a frame which can't be decoded into a message.
type FrameError struct {
	Type uint32
	Kind uint32
}

// Error implements error.
func (e *FrameError) Error() string {
	return fmt.Sprintf("bad frame: type=%d kind=%d", e.Type, e.Kind)
}
