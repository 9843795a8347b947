package hw

import (
	"context"
	"fmt"
	"sync"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"

	"github.com/robotalks/telemetry.go/pkg/telemetry"
)

type senser interface {
	Sense(env *physic.Env) error
}

// Barometer is a BMP280/BME280 pressure and temperature sensor.
type Barometer struct {
	Bus  i2c.Bus
	Addr uint16
	Opts bmxx80.Opts

	dev  senser
	lock sync.Mutex
}

// NewBarometer creates a Barometer with default oversampling.
func NewBarometer(bus i2c.Bus, addr uint16) *Barometer {
	return &Barometer{Bus: bus, Addr: addr, Opts: bmxx80.DefaultOpts}
}

// Init implements sampler.Sensor.
func (s *Barometer) Init(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	dev, err := bmxx80.NewI2C(s.Bus, s.Addr, &s.Opts)
	if err != nil {
		return fmt.Errorf("bmxx80 at 0x%02x: %w", s.Addr, err)
	}
	glog.Infof("sensor: %s", dev)
	s.dev = dev
	return nil
}

// Acquire implements sampler.Sensor.
func (s *Barometer) Acquire(ctx context.Context) ([]telemetry.Measurement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.dev == nil {
		return nil, ErrNotInitialized
	}
	var env physic.Env
	if err := s.dev.Sense(&env); err != nil {
		return nil, err
	}
	return envMeasurements(env), nil
}

func envMeasurements(env physic.Env) []telemetry.Measurement {
	return []telemetry.Measurement{
		{Quantity: telemetry.Pressure, Value: float64(env.Pressure) / float64(physic.Pascal)},
		{Quantity: telemetry.Temperature, Value: float64(env.Temperature-physic.ZeroCelsius) / float64(physic.Celsius)},
	}
}
