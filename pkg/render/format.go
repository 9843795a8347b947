package render

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatInt renders v as a plain integer, truncated toward zero.
func FormatInt(v float64) string {
	return strconv.FormatInt(int64(v), 10)
}

// FormatHecto renders a raw value in hecto-units, truncated toward zero.
// 101325 Pa renders as "1013".
func FormatHecto(v float64) string {
	return strconv.FormatInt(int64(v/100), 10)
}

// FormatFixed2 renders v as a fixed-point number with two fractional
// digits. Both digit groups are truncated, never rounded: 23.456 renders
// as "23.45".
// The digits are cut from the shortest decimal form of v, so 0.29 renders
// as "0.29" even though 0.29*100 is below 29 in binary.
func FormatFixed2(v float64) string {
	digits := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	whole, frac := digits, ""
	if dot := strings.IndexByte(digits, '.'); dot >= 0 {
		whole, frac = digits[:dot], digits[dot+1:]
	}
	frac = (frac + "00")[:2]
	if v < 0 && strings.Trim(whole+frac, "0") != "" {
		return "-" + whole + "." + frac
	}
	return whole + "." + frac
}

// TimeUnit is the resolution of the elapsed time field.
type TimeUnit time.Duration

// Time units.
const (
	Seconds      = TimeUnit(time.Second)
	Milliseconds = TimeUnit(time.Millisecond)
)

// Format renders d as an integer count of the unit.
func (u TimeUnit) Format(d time.Duration) string {
	if u <= 0 {
		u = Seconds
	}
	return strconv.FormatInt(int64(d/time.Duration(u)), 10)
}

// FormatCounter renders the sample counter.
func FormatCounter(n uint64) string {
	return strconv.FormatUint(n, 10)
}
