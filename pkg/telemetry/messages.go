package telemetry

import (
	"fmt"
	"math"
	"strings"
)

// Kind identifies the variant of a Message.
type Kind uint32

// Message kinds.
const (
	KindIndicatorOn  Kind = 1
	KindIndicatorOff Kind = 2
	KindReading      Kind = 3
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindIndicatorOn:
		return "IndicatorOn"
	case KindIndicatorOff:
		return "IndicatorOff"
	case KindReading:
		return "Reading"
	}
	return fmt.Sprintf("Kind(%d)", uint32(k))
}

// Message is the tagged union carried over a Channel.
// The set of variants is closed: IndicatorOn, IndicatorOff and Reading.
type Message interface {
	// Kind returns the variant tag.
	Kind() Kind

	message()
}

// IndicatorOn requests the indicator to be asserted.
type IndicatorOn struct{}

// Kind implements Message.
func (IndicatorOn) Kind() Kind { return KindIndicatorOn }

// String implements fmt.Stringer.
func (IndicatorOn) String() string { return KindIndicatorOn.String() }

func (IndicatorOn) message() {}

// IndicatorOff requests the indicator to be deasserted.
type IndicatorOff struct{}

// Kind implements Message.
func (IndicatorOff) Kind() Kind { return KindIndicatorOff }

// String implements fmt.Stringer.
func (IndicatorOff) String() string { return KindIndicatorOff.String() }

func (IndicatorOff) message() {}

// Quantity is the physical quantity of a measurement.
type Quantity uint32

// Quantities.
const (
	// Distance in millimetres.
	Distance Quantity = 1
	// Pressure in pascal.
	Pressure Quantity = 2
	// Temperature in degrees Celsius.
	Temperature Quantity = 3
)

// String implements fmt.Stringer.
func (q Quantity) String() string {
	switch q {
	case Distance:
		return "distance"
	case Pressure:
		return "pressure"
	case Temperature:
		return "temperature"
	}
	return fmt.Sprintf("quantity(%d)", uint32(q))
}

// Measurement is a single numeric value of a sample.
type Measurement struct {
	Quantity Quantity
	Value    float64
}

// Reading is one completed sensor sample.
type Reading struct {
	Measurements []Measurement
}

// NewReading validates measurements and creates a Reading.
func NewReading(measurements ...Measurement) (Reading, error) {
	if len(measurements) == 0 {
		return Reading{}, ErrEmptyReading
	}
	var seen [4]bool
	for _, m := range measurements {
		if math.IsNaN(m.Value) || math.IsInf(m.Value, 0) {
			return Reading{}, &InvalidMeasurementError{Measurement: m}
		}
		if m.Quantity < Distance || m.Quantity > Temperature {
			return Reading{}, &InvalidMeasurementError{Measurement: m}
		}
		if seen[m.Quantity] {
			return Reading{}, &InvalidMeasurementError{Measurement: m, Duplicated: true}
		}
		seen[m.Quantity] = true
	}
	r := Reading{Measurements: make([]Measurement, len(measurements))}
	copy(r.Measurements, measurements)
	return r, nil
}

// Kind implements Message.
func (Reading) Kind() Kind { return KindReading }

func (Reading) message() {}

// Value looks up the value of a quantity.
func (r Reading) Value(q Quantity) (float64, bool) {
	for _, m := range r.Measurements {
		if m.Quantity == q {
			return m.Value, true
		}
	}
	return 0, false
}

// String implements fmt.Stringer.
func (r Reading) String() string {
	parts := make([]string, len(r.Measurements))
	for n, m := range r.Measurements {
		parts[n] = fmt.Sprintf("%s=%g", m.Quantity, m.Value)
	}
	return "Reading(" + strings.Join(parts, ",") + ")"
}
