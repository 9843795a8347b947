package framework

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func blockUntilDone(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestRunnerFailureCancelsOthers(t *testing.T) {
	failure := errors.New("sensor gone")
	r := NewRunner()
	r.Go(
		NamedRun("renderer", RunFunc(blockUntilDone)),
		NamedRun("sampler", RunFunc(func(ctx context.Context) error { return failure })),
	)
	errCh := make(chan error, 1)
	go func() { errCh <- r.Wait() }()
	select {
	case err := <-errCh:
		require.True(t, errors.Is(err, failure))
		var runErr *RunError
		require.True(t, errors.As(err, &runErr))
		require.Equal(t, "sampler", runErr.Name)
		require.Equal(t, "sampler: sensor gone", err.Error())
	case <-time.After(time.Second):
		t.Fatal("runner not stopped")
	}
}

func TestRunnerStop(t *testing.T) {
	r := NewRunner()
	r.Go(RunFunc(blockUntilDone), RunFunc(blockUntilDone))
	r.Stop()
	require.NoError(t, r.Wait())
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil).Aggregate())
	e1, e2 := errors.New("a"), errors.New("b")
	err := errs.Add(e1, nil, e2).Aggregate()
	require.Equal(t, "Multiple errors:\na\nb", err.Error())
	require.True(t, errors.Is(err, e2))
}

type testCloser struct {
	closed chan struct{}
}

func (c *testCloser) Close() error {
	close(c.closed)
	return nil
}

func TestRunWithContextCloser(t *testing.T) {
	closer := &testCloser{closed: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	go cancel()
	err := RunWithContextCloser(ctx, closer, func() error {
		<-closer.closed
		return io.EOF
	})
	require.Equal(t, context.Canceled, err)

	closer = &testCloser{closed: make(chan struct{})}
	err = RunWithContextCloser(context.Background(), closer, func() error { return io.EOF })
	require.Equal(t, io.EOF, err)
	_, open := <-closer.closed
	require.False(t, open)
}
