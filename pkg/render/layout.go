package render

import (
	"strings"

	"github.com/robotalks/telemetry.go/pkg/telemetry"
)

// Formatter renders a measured value as text.
type Formatter func(float64) string

// Field is a named value region at a fixed grid position.
type Field struct {
	Name     string
	Label    string
	Row      int
	LabelCol int
	ValueCol int
	Width    int
}

// OverflowMark fills a value region too narrow for its value.
const OverflowMark = '#'

// Pad fits text to the value region, overwriting stale characters.
// Digits are never cut: a value wider than the region shows as a run of
// OverflowMark instead.
func (f Field) Pad(text string) string {
	if f.Width <= 0 {
		return text
	}
	if len(text) > f.Width {
		return strings.Repeat(string(OverflowMark), f.Width)
	}
	return text + strings.Repeat(" ", f.Width-len(text))
}

// Names of housekeeping fields.
const (
	FieldTime    = "time"
	FieldCounter = "counter"
)

// Layout is the fixed placement of a title and fields on the grid.
type Layout struct {
	Title    string
	TitleRow int
	Fields   []Field

	quantities map[telemetry.Quantity]measureField
	byName     map[string]int
}

type measureField struct {
	index  int
	format Formatter
}

// NewLayout creates a Layout from its fields. Positions never change after
// creation.
func NewLayout(title string, fields ...Field) *Layout {
	l := &Layout{
		Title:      title,
		Fields:     append([]Field(nil), fields...),
		quantities: make(map[telemetry.Quantity]measureField),
		byName:     make(map[string]int),
	}
	for n, f := range l.Fields {
		l.byName[f.Name] = n
	}
	return l
}

// Bind maps a quantity to the named field with its formatter.
func (l *Layout) Bind(q telemetry.Quantity, name string, format Formatter) *Layout {
	if n, ok := l.byName[name]; ok {
		l.quantities[q] = measureField{index: n, format: format}
	}
	return l
}

// Field looks up a field by name.
func (l *Layout) Field(name string) (Field, bool) {
	if n, ok := l.byName[name]; ok {
		return l.Fields[n], true
	}
	return Field{}, false
}

func (l *Layout) measure(q telemetry.Quantity) (Field, Formatter, bool) {
	mf, ok := l.quantities[q]
	if !ok {
		return Field{}, nil, false
	}
	return l.Fields[mf.index], mf.format, true
}

// Rows of the standard layouts.
const (
	RowTitle   = 0
	RowValue   = 2
	RowValue2  = 3
	RowTime    = 4
	RowCounter = 5

	ValueCol   = 10
	ValueWidth = 6
)

// DistanceLayout is the layout for the ranging sensor variant.
func DistanceLayout() *Layout {
	return NewLayout("Distance Display",
		Field{Name: "distance", Label: "Distance:", Row: RowValue, ValueCol: ValueCol, Width: ValueWidth},
		Field{Name: FieldTime, Label: "Time:", Row: RowTime, ValueCol: ValueCol, Width: ValueWidth},
		Field{Name: FieldCounter, Label: "Counter:", Row: RowCounter, ValueCol: ValueCol, Width: ValueWidth},
	).Bind(telemetry.Distance, "distance", FormatInt)
}

// WeatherLayout is the layout for the pressure/temperature sensor variant.
func WeatherLayout() *Layout {
	return NewLayout("Weather Display",
		Field{Name: "pressure", Label: "Pressure:", Row: RowValue, ValueCol: ValueCol, Width: ValueWidth},
		Field{Name: "temperature", Label: "Temp:", Row: RowValue2, ValueCol: ValueCol, Width: ValueWidth},
		Field{Name: FieldTime, Label: "Time:", Row: RowTime, ValueCol: ValueCol, Width: ValueWidth},
		Field{Name: FieldCounter, Label: "Counter:", Row: RowCounter, ValueCol: ValueCol, Width: ValueWidth},
	).Bind(telemetry.Pressure, "pressure", FormatHecto).
		Bind(telemetry.Temperature, "temperature", FormatFixed2)
}
