package telemetry

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyReading indicates a Reading without measurements.
	ErrEmptyReading = errors.New("reading has no measurements")
	// ErrUnknownMessage indicates a Message variant the consumer can't handle.
	ErrUnknownMessage = errors.New("unknown message")
)

// InvalidMeasurementError rejects a measurement when building a Reading.
type InvalidMeasurementError struct {
	Measurement Measurement
	Duplicated  bool
}

// Error implements error.
func (e *InvalidMeasurementError) Error() string {
	if e.Duplicated {
		return fmt.Sprintf("duplicated %s measurement", e.Measurement.Quantity)
	}
	return fmt.Sprintf("invalid %s measurement: %v", e.Measurement.Quantity, e.Measurement.Value)
}

// Severity classifies how a failure affects the loop observing it.
type Severity int

// Severities.
const (
	// Recoverable failures are logged and the current step is skipped.
	Recoverable Severity = iota
	// Fatal failures stop the loop.
	Fatal
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	if s == Fatal {
		return "fatal"
	}
	return "recoverable"
}

// Error wraps a failure with its severity.
type Error struct {
	Op       string
	Severity Severity
	Err      error
}

// Error implements error.
func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Severity, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Severity, e.Err)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewFatal marks err as fatal to op.
func NewFatal(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Severity: Fatal, Err: err}
}

// NewRecoverable marks err as recoverable for op.
func NewRecoverable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Severity: Recoverable, Err: err}
}

// SeverityOf returns the severity attached to err, or def when err doesn't
// carry one.
func SeverityOf(err error, def Severity) Severity {
	var e *Error
	if errors.As(err, &e) {
		return e.Severity
	}
	return def
}

// IsFatal reports whether err is explicitly marked fatal.
func IsFatal(err error) bool {
	return err != nil && SeverityOf(err, Recoverable) == Fatal
}

// Policy decides what a loop does on failures of its collaborators.
type Policy int

// Policies.
const (
	// PolicyLogAndContinue logs recoverable failures and keeps the loop running.
	PolicyLogAndContinue Policy = iota
	// PolicyHalt stops the loop on any failure.
	PolicyHalt
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	if p == PolicyHalt {
		return "halt"
	}
	return "log-and-continue"
}

// Halts reports whether err stops a loop running with this policy.
func (p Policy) Halts(err error) bool {
	if err == nil {
		return false
	}
	return p == PolicyHalt || IsFatal(err)
}
