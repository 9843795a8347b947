package sim

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGrid(t *testing.T) {
	g := NewGrid(16, 8)
	require.Equal(t, ErrNotInitialized, g.Write("x"))
	require.NoError(t, g.Init())

	require.NoError(t, g.SetCursor(0, 2))
	require.NoError(t, g.Write("Distance:"))
	require.NoError(t, g.SetCursor(10, 2))
	require.NoError(t, g.Write("250   "))
	require.Equal(t, "Distance: 250", g.Line(2))
	require.Equal(t, "250   ", g.Text(10, 2, 6))

	// clipped at the last column.
	require.NoError(t, g.SetCursor(14, 3))
	require.NoError(t, g.Write("abcdef"))
	require.Equal(t, "ab", g.Text(14, 3, 6))

	require.Equal(t, ErrCursorOutOfRange, g.SetCursor(16, 0))
	require.Equal(t, ErrCursorOutOfRange, g.SetCursor(0, 8))
	require.Equal(t, 3, g.Writes())

	require.NoError(t, g.Clear())
	require.Equal(t, "", g.Line(2))
	require.Equal(t, 0, g.Writes())
}

func TestGridRedraw(t *testing.T) {
	var out bytes.Buffer
	g := &Grid{Cols: 4, Rows: 2, Out: &out}
	require.NoError(t, g.Init())
	require.NoError(t, g.Write("hi"))
	frames := strings.Split(out.String(), "\x1b[H\x1b[2J")
	require.Equal(t, "hi  \n    \n", frames[len(frames)-1])
}

func TestLED(t *testing.T) {
	var led LED
	require.NoError(t, led.Assert())
	require.NoError(t, led.Assert())
	require.True(t, led.On())
	require.NoError(t, led.Deassert())
	require.False(t, led.On())
	require.Equal(t, 2, led.Toggles())
}
