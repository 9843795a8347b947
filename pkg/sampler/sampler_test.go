package sampler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/telemetry.go/pkg/clock"
	"github.com/robotalks/telemetry.go/pkg/telemetry"
)

type acquireResult struct {
	measurements []telemetry.Measurement
	err          error
}

type testSensor struct {
	initErr error
	results []acquireResult
	clk     *clock.Manual
	delay   time.Duration
	calls   int
}

func (s *testSensor) Init(ctx context.Context) error {
	return s.initErr
}

func (s *testSensor) Acquire(ctx context.Context) ([]telemetry.Measurement, error) {
	if s.clk != nil {
		s.clk.Advance(s.delay)
	}
	r := s.results[s.calls%len(s.results)]
	s.calls++
	return r.measurements, r.err
}

func distance(v float64) acquireResult {
	return acquireResult{measurements: []telemetry.Measurement{{Quantity: telemetry.Distance, Value: v}}}
}

// recorder is a Sender stopping the loop after limit messages.
type recorder struct {
	limit  int
	cancel func()
	lock   sync.Mutex
	msgs   []telemetry.Message
}

func (r *recorder) Send(ctx context.Context, msg telemetry.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.lock.Lock()
	r.msgs = append(r.msgs, msg)
	n := len(r.msgs)
	r.lock.Unlock()
	if r.limit > 0 && n >= r.limit {
		r.cancel()
	}
	return nil
}

func (r *recorder) kinds() []telemetry.Kind {
	r.lock.Lock()
	defer r.lock.Unlock()
	kinds := make([]telemetry.Kind, len(r.msgs))
	for n, msg := range r.msgs {
		kinds[n] = msg.Kind()
	}
	return kinds
}

func runUntil(t *testing.T, s *Sampler, limit int) (*recorder, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec := &recorder{limit: limit, cancel: cancel}
	s.Output = rec
	return rec, s.Run(ctx)
}

func TestCycleOrder(t *testing.T) {
	clk := &clock.Manual{}
	s := New(&testSensor{results: []acquireResult{distance(250), distance(251)}}, nil, clk)
	rec, err := runUntil(t, s, 6)
	require.Equal(t, context.Canceled, err)
	require.Equal(t, []telemetry.Kind{
		telemetry.KindIndicatorOn, telemetry.KindIndicatorOff, telemetry.KindReading,
		telemetry.KindIndicatorOn, telemetry.KindIndicatorOff, telemetry.KindReading,
	}, rec.kinds())
	v, ok := rec.msgs[5].(telemetry.Reading).Value(telemetry.Distance)
	require.True(t, ok)
	require.Equal(t, float64(251), v)
	require.Equal(t, []time.Duration{DefaultPulseOn, DefaultPulseOff, DefaultPulseOn, DefaultPulseOff}, clk.Sleeps())
	require.Equal(t, Stats{Cycles: 2, Readings: 2}, s.Stats())
}

func TestPulsesBracketReadings(t *testing.T) {
	s := New(&testSensor{results: []acquireResult{
		distance(1),
		{err: errors.New("timeout")},
		distance(3),
	}}, nil, &clock.Manual{})
	rec, _ := runUntil(t, s, 20)
	kinds := rec.kinds()
	readings := 0
	for n, kind := range kinds {
		if kind == telemetry.KindReading {
			readings++
			require.True(t, n >= 2)
			require.Equal(t, telemetry.KindIndicatorOn, kinds[n-2])
			require.Equal(t, telemetry.KindIndicatorOff, kinds[n-1])
		}
	}
	require.True(t, readings > 0)
}

func TestAcquireFailure(t *testing.T) {
	testCases := []struct {
		name    string
		policy  telemetry.Policy
		err     error
		halts   bool
		skipped uint64
	}{
		{
			name:    "recoverable skipped",
			policy:  telemetry.PolicyLogAndContinue,
			err:     errors.New("range timeout"),
			skipped: 1,
		},
		{
			name:   "fatal halts",
			policy: telemetry.PolicyLogAndContinue,
			err:    telemetry.NewFatal("read", errors.New("device gone")),
			halts:  true,
		},
		{
			name:   "halt policy",
			policy: telemetry.PolicyHalt,
			err:    errors.New("range timeout"),
			halts:  true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(&testSensor{results: []acquireResult{{err: tc.err}, distance(42)}}, nil, &clock.Manual{})
			s.Policy = tc.policy
			rec, err := runUntil(t, s, 5)
			if tc.halts {
				require.True(t, telemetry.IsFatal(err))
				require.True(t, errors.Is(err, tc.err))
				require.Equal(t, []telemetry.Kind{telemetry.KindIndicatorOn, telemetry.KindIndicatorOff}, rec.kinds())
				return
			}
			require.Equal(t, context.Canceled, err)
			require.Equal(t, []telemetry.Kind{
				telemetry.KindIndicatorOn, telemetry.KindIndicatorOff,
				telemetry.KindIndicatorOn, telemetry.KindIndicatorOff, telemetry.KindReading,
			}, rec.kinds())
			require.Equal(t, tc.skipped, s.Stats().Skipped)
		})
	}
}

func TestInvalidSampleNeverSent(t *testing.T) {
	s := New(&testSensor{results: []acquireResult{
		{measurements: nil},
		distance(7),
	}}, nil, &clock.Manual{})
	rec, err := runUntil(t, s, 5)
	require.Equal(t, context.Canceled, err)
	require.Equal(t, telemetry.KindReading, rec.kinds()[4])
	require.Equal(t, uint64(1), s.Stats().Skipped)
}

func TestInitFailure(t *testing.T) {
	initErr := errors.New("no device")
	s := New(&testSensor{initErr: initErr}, nil, &clock.Manual{})
	rec, err := runUntil(t, s, 1)
	require.True(t, telemetry.IsFatal(err))
	require.True(t, errors.Is(err, initErr))
	require.Empty(t, rec.kinds())
}

func TestPeriodNormalization(t *testing.T) {
	testCases := []struct {
		name   string
		delay  time.Duration
		expect []time.Duration
	}{
		{
			name:   "remaining interval",
			delay:  200 * time.Millisecond,
			expect: []time.Duration{DefaultPulseOn, DefaultPulseOff, 300 * time.Millisecond},
		},
		{
			name:   "acquisition overruns period",
			delay:  800 * time.Millisecond,
			expect: []time.Duration{DefaultPulseOn, DefaultPulseOff},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clk := &clock.Manual{}
			s := New(&testSensor{results: []acquireResult{distance(1)}, clk: clk, delay: tc.delay}, &recorder{}, clk)
			s.Period = time.Second
			require.NoError(t, s.RunCycle(context.Background()))
			require.Equal(t, tc.expect, clk.Sleeps())
		})
	}
}

func TestBackpressure(t *testing.T) {
	mb := telemetry.NewMailbox()
	s := New(&testSensor{results: []acquireResult{distance(250)}}, mb, &clock.Manual{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()

	// consumer is slow: the first message sits in the slot and the
	// producer must suspend on the next send.
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 1, mb.Len())
	require.Equal(t, Stats{}, s.Stats())

	expect := []telemetry.Kind{telemetry.KindIndicatorOn, telemetry.KindIndicatorOff, telemetry.KindReading}
	for _, kind := range expect {
		msg, err := mb.Receive(ctx)
		require.NoError(t, err)
		require.Equal(t, kind, msg.Kind())
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	select {
	case err := <-errCh:
		require.Equal(t, context.Canceled, err)
	case <-time.After(time.Second):
		t.Fatal("sampler not stopped")
	}
}
