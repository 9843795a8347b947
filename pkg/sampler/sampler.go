// Package sampler implements the producer context: it drives the sensor
// and the indicator pulse at a fixed cadence.
package sampler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/telemetry.go/pkg/clock"
	"github.com/robotalks/telemetry.go/pkg/telemetry"
)

// Sensor is the sensor collaborator owned by the Sampler.
type Sensor interface {
	// Init configures the device once before sampling starts.
	Init(ctx context.Context) error
	// Acquire blocks until one complete sample is available.
	Acquire(ctx context.Context) ([]telemetry.Measurement, error)
}

// Defaults
const (
	DefaultPulseOn  = 100 * time.Millisecond
	DefaultPulseOff = 400 * time.Millisecond
)

// Stats counts what the Sampler has done so far.
// Cycles only counts completed cycles.
type Stats struct {
	Cycles   uint64
	Readings uint64
	Skipped  uint64
}

// Sampler is the sampling loop.
type Sampler struct {
	Sensor Sensor
	Output telemetry.Sender
	Clock  clock.Clock

	// PulseOn is how long the indicator stays asserted.
	PulseOn time.Duration
	// PulseOff is the hold after deasserting, before acquisition.
	PulseOff time.Duration
	// Period normalizes the total cycle time when non-zero.
	Period time.Duration
	// Policy applies to acquisition failures. Init failures always halt.
	Policy telemetry.Policy

	cycles   uint64
	readings uint64
	skipped  uint64
}

// New creates a Sampler with default pulse timing.
func New(sensor Sensor, out telemetry.Sender, clk clock.Clock) *Sampler {
	return &Sampler{
		Sensor:   sensor,
		Output:   out,
		Clock:    clk,
		PulseOn:  DefaultPulseOn,
		PulseOff: DefaultPulseOff,
	}
}

// Name implements Named.
func (s *Sampler) Name() string {
	return "sampler"
}

// Stats returns a snapshot of the counters.
func (s *Sampler) Stats() Stats {
	return Stats{
		Cycles:   atomic.LoadUint64(&s.cycles),
		Readings: atomic.LoadUint64(&s.readings),
		Skipped:  atomic.LoadUint64(&s.skipped),
	}
}

// Run implements Runnable.
func (s *Sampler) Run(ctx context.Context) error {
	if err := s.Sensor.Init(ctx); err != nil {
		glog.Errorf("sensor init error: %v", err)
		return telemetry.NewFatal("sensor init", err)
	}
	glog.Infof("sampling started: pulse %v/%v period %v", s.PulseOn, s.PulseOff, s.Period)
	for {
		if err := s.RunCycle(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
	}
}

// RunCycle runs one pulse-acquire-send cycle.
// A skipped acquisition is not an error.
func (s *Sampler) RunCycle(ctx context.Context) error {
	start := s.Clock.Elapsed()

	if err := s.send(ctx, telemetry.IndicatorOn{}); err != nil {
		return err
	}
	if err := s.Clock.Sleep(ctx, s.PulseOn); err != nil {
		return err
	}
	if err := s.send(ctx, telemetry.IndicatorOff{}); err != nil {
		return err
	}
	if err := s.Clock.Sleep(ctx, s.PulseOff); err != nil {
		return err
	}

	reading, err := s.acquire(ctx)
	switch {
	case err == nil:
		if err = s.send(ctx, reading); err != nil {
			return err
		}
		atomic.AddUint64(&s.readings, 1)
	case ctx.Err() != nil:
		return ctx.Err()
	case s.Policy.Halts(err):
		glog.Errorf("sensor acquire error: %v", err)
		return telemetry.NewFatal("sensor acquire", err)
	default:
		atomic.AddUint64(&s.skipped, 1)
		glog.Warningf("sensor acquire error, cycle skipped: %v", err)
	}
	atomic.AddUint64(&s.cycles, 1)

	if s.Period > 0 {
		if remain := s.Period - (s.Clock.Elapsed() - start); remain > 0 {
			return s.Clock.Sleep(ctx, remain)
		}
	}
	return nil
}

// acquire completes a sample fully before any Reading exists.
func (s *Sampler) acquire(ctx context.Context) (telemetry.Reading, error) {
	measurements, err := s.Sensor.Acquire(ctx)
	if err != nil {
		return telemetry.Reading{}, err
	}
	return telemetry.NewReading(measurements...)
}

func (s *Sampler) send(ctx context.Context, msg telemetry.Message) error {
	if glog.V(2) {
		glog.Infof("SND %v", msg)
	}
	return s.Output.Send(ctx, msg)
}
