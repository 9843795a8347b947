package sim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/telemetry.go/pkg/clock"
	"github.com/robotalks/telemetry.go/pkg/telemetry"
)

func TestRanging(t *testing.T) {
	clk := &clock.Manual{}
	s := NewRanging(clk)
	s.Seed = 1
	_, err := s.Acquire(context.Background())
	require.Equal(t, ErrNotStarted, err)

	require.NoError(t, s.Init(context.Background()))
	for i := 0; i < 100; i++ {
		ms, err := s.Acquire(context.Background())
		require.NoError(t, err)
		require.Len(t, ms, 1)
		require.Equal(t, telemetry.Distance, ms[0].Quantity)
		require.True(t, ms[0].Value >= 0 && ms[0].Value <= MaxRange)
		_, err = telemetry.NewReading(ms...)
		require.NoError(t, err)
	}
	require.Equal(t, 101*DefaultRangingBudget, clk.Elapsed())
}

func TestRangingFailures(t *testing.T) {
	s := NewRanging(&clock.Manual{})
	s.Seed, s.FailureRate = 7, 0.5
	require.NoError(t, s.Init(context.Background()))
	var failures int
	for i := 0; i < 200; i++ {
		if _, err := s.Acquire(context.Background()); err != nil {
			require.Equal(t, ErrSampleTimeout, err)
			failures++
		}
	}
	require.True(t, failures > 0 && failures < 200)
}

func TestBarometer(t *testing.T) {
	s := NewBarometer(&clock.Manual{})
	s.Seed = 3
	require.NoError(t, s.Init(context.Background()))
	ms, err := s.Acquire(context.Background())
	require.NoError(t, err)
	r, err := telemetry.NewReading(ms...)
	require.NoError(t, err)
	p, ok := r.Value(telemetry.Pressure)
	require.True(t, ok)
	require.InDelta(t, DefaultPressure, p, 10)
	temp, ok := r.Value(telemetry.Temperature)
	require.True(t, ok)
	require.InDelta(t, DefaultTemperature, temp, 0.05)
}

func TestAcquireCanceled(t *testing.T) {
	s := NewBarometer(clock.NewSystem())
	s.Standby = time.Hour
	require.NoError(t, s.Init(context.Background()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Acquire(ctx)
	require.Equal(t, context.Canceled, err)
}
