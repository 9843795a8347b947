package sim

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/robotalks/telemetry.go/pkg/clock"
	"github.com/robotalks/telemetry.go/pkg/telemetry"
)

var (
	// ErrSampleTimeout is the simulated transient acquisition failure.
	ErrSampleTimeout = errors.New("sample timeout")
	// ErrNotStarted indicates Acquire before Init.
	ErrNotStarted = errors.New("sensor not started")
)

// Ranging simulates a time-of-flight distance sensor.
type Ranging struct {
	// Budget is the measurement timing budget; each Acquire takes this long.
	Budget time.Duration
	// Base and Variation shape the random walk, in millimetres.
	Base      float64
	Variation float64
	// FailureRate is the probability in [0, 1) of a transient failure.
	FailureRate float64
	Clock       clock.Clock
	Seed        int64

	rnd     *rand.Rand
	current float64
	lock    sync.Mutex
}

// Defaults for the ranging sensor.
const (
	DefaultRangingBudget = 200 * time.Millisecond
	DefaultRangingBase   = 250
	MaxRange             = 2000
)

// NewRanging creates a Ranging sensor with defaults.
func NewRanging(clk clock.Clock) *Ranging {
	return &Ranging{
		Budget:    DefaultRangingBudget,
		Base:      DefaultRangingBase,
		Variation: 20,
		Clock:     clk,
		Seed:      time.Now().UnixNano(),
	}
}

// Init implements Sensor.
func (s *Ranging) Init(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.rnd = rand.New(rand.NewSource(s.Seed))
	s.current = s.Base
	return nil
}

// Acquire implements Sensor.
func (s *Ranging) Acquire(ctx context.Context) ([]telemetry.Measurement, error) {
	if err := s.Clock.Sleep(ctx, s.Budget); err != nil {
		return nil, err
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.rnd == nil {
		return nil, ErrNotStarted
	}
	if s.FailureRate > 0 && s.rnd.Float64() < s.FailureRate {
		return nil, ErrSampleTimeout
	}
	s.current += (s.rnd.Float64() - 0.5) * 2 * s.Variation
	s.current = math.Max(0, math.Min(MaxRange, s.current))
	return []telemetry.Measurement{
		{Quantity: telemetry.Distance, Value: math.Floor(s.current)},
	}, nil
}

// Barometer simulates a pressure/temperature sensor.
type Barometer struct {
	// Standby is the conversion time of one sample.
	Standby     time.Duration
	Pressure    float64
	Temperature float64
	FailureRate float64
	Clock       clock.Clock
	Seed        int64

	rnd  *rand.Rand
	p, t float64
	lock sync.Mutex
}

// Defaults for the barometer.
const (
	DefaultBarometerStandby = 40 * time.Millisecond
	DefaultPressure         = 101325
	DefaultTemperature      = 21.5
)

// NewBarometer creates a Barometer with defaults.
func NewBarometer(clk clock.Clock) *Barometer {
	return &Barometer{
		Standby:     DefaultBarometerStandby,
		Pressure:    DefaultPressure,
		Temperature: DefaultTemperature,
		Clock:       clk,
		Seed:        time.Now().UnixNano(),
	}
}

// Init implements Sensor.
func (s *Barometer) Init(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.rnd = rand.New(rand.NewSource(s.Seed))
	s.p, s.t = s.Pressure, s.Temperature
	return nil
}

// Acquire implements Sensor.
func (s *Barometer) Acquire(ctx context.Context) ([]telemetry.Measurement, error) {
	if err := s.Clock.Sleep(ctx, s.Standby); err != nil {
		return nil, err
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.rnd == nil {
		return nil, ErrNotStarted
	}
	if s.FailureRate > 0 && s.rnd.Float64() < s.FailureRate {
		return nil, ErrSampleTimeout
	}
	s.p += (s.rnd.Float64() - 0.5) * 20
	s.t += (s.rnd.Float64() - 0.5) * 0.1
	return []telemetry.Measurement{
		{Quantity: telemetry.Pressure, Value: s.p},
		{Quantity: telemetry.Temperature, Value: s.t},
	}, nil
}
