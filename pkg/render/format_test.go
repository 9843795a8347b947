package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatFixed2(t *testing.T) {
	testCases := []struct {
		in     float64
		expect string
	}{
		{23.456, "23.45"},
		{23.459, "23.45"},
		{21.5, "21.50"},
		{0.07, "0.07"},
		{100, "100.00"},
		{-5.25, "-5.25"},
		{-0.5, "-0.50"},
		{0.29, "0.29"},
		{1.15, "1.15"},
		{21.57, "21.57"},
		{-0.001, "0.00"},
		{-12.349, "-12.34"},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expect, FormatFixed2(tc.in), "input %v", tc.in)
	}
}

func TestFormatHecto(t *testing.T) {
	require.Equal(t, "1013", FormatHecto(101325.0))
	require.Equal(t, "1013", FormatHecto(101399.9))
	require.Equal(t, "0", FormatHecto(99))
}

func TestFormatInt(t *testing.T) {
	require.Equal(t, "250", FormatInt(250))
	require.Equal(t, "8190", FormatInt(8190.9))
}

func TestTimeUnit(t *testing.T) {
	require.Equal(t, "12", Seconds.Format(12*time.Second+999*time.Millisecond))
	require.Equal(t, "12999", Milliseconds.Format(12*time.Second+999*time.Millisecond))
	require.Equal(t, "3", TimeUnit(0).Format(3*time.Second))
}

func TestFieldPad(t *testing.T) {
	f := Field{Width: 6}
	require.Equal(t, "250   ", f.Pad("250"))
	require.Equal(t, "123456", f.Pad("123456"))
	require.Equal(t, "######", f.Pad("1234567"))
	require.Equal(t, "abc", Field{}.Pad("abc"))
}
