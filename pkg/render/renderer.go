// Package render implements the consumer context: it owns the display and
// the indicator and turns each received message into a physical effect.
package render

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/robotalks/telemetry.go/pkg/clock"
	"github.com/robotalks/telemetry.go/pkg/telemetry"
)

// Display is a character-grid display. Coordinates are caller-managed.
type Display interface {
	Init() error
	Clear() error
	SetCursor(col, row int) error
	Write(text string) error
}

// Indicator is a digital output.
type Indicator interface {
	Assert() error
	Deassert() error
}

// Renderer is the rendering loop.
type Renderer struct {
	Display   Display
	Indicator Indicator
	Input     telemetry.Receiver
	Clock     clock.Clock
	Layout    *Layout
	TimeUnit  TimeUnit
	// Policy applies to display and indicator failures after startup.
	Policy telemetry.Policy

	counter uint64
	unbound map[telemetry.Quantity]bool
	started bool
}

// New creates a Renderer.
func New(display Display, indicator Indicator, in telemetry.Receiver, clk clock.Clock, layout *Layout) *Renderer {
	return &Renderer{
		Display:   display,
		Indicator: indicator,
		Input:     in,
		Clock:     clk,
		Layout:    layout,
		TimeUnit:  Seconds,
	}
}

// Name implements Named.
func (r *Renderer) Name() string {
	return "renderer"
}

// Count returns the number of readings rendered so far.
func (r *Renderer) Count() uint64 {
	return atomic.LoadUint64(&r.counter)
}

// Start initializes the display and writes the title and labels once.
// Any failure here is fatal.
func (r *Renderer) Start() error {
	if err := r.Display.Init(); err != nil {
		return telemetry.NewFatal("display init", err)
	}
	if err := r.Display.Clear(); err != nil {
		return telemetry.NewFatal("display clear", err)
	}
	if r.Layout.Title != "" {
		if err := r.writeAt(0, r.Layout.TitleRow, r.Layout.Title); err != nil {
			return telemetry.NewFatal("display title", err)
		}
	}
	for _, f := range r.Layout.Fields {
		if err := r.writeAt(f.LabelCol, f.Row, f.Label); err != nil {
			return telemetry.NewFatal("display label", err)
		}
	}
	r.started = true
	glog.Infof("display ready: %q", r.Layout.Title)
	return nil
}

// Run implements Runnable.
// When ctx is done, a message still pending in the channel is handled
// before Run returns.
func (r *Renderer) Run(ctx context.Context) error {
	if !r.started {
		if err := r.Start(); err != nil {
			glog.Errorf("%v", err)
			return err
		}
	}
	for {
		msg, err := r.Input.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return r.drain(ctx.Err())
			}
			return err
		}
		if err = r.Handle(msg); err != nil {
			return err
		}
	}
}

func (r *Renderer) drain(reason error) error {
	if d, ok := r.Input.(telemetry.Drainer); ok {
		if msg, ok := d.TryReceive(); ok {
			if err := r.Handle(msg); err != nil {
				return err
			}
		}
	}
	return reason
}

// Handle applies one message. It returns an error only when the failure
// halts the loop under the configured Policy.
func (r *Renderer) Handle(msg telemetry.Message) error {
	if glog.V(2) {
		glog.Infof("RCV %v", msg)
	}
	var err error
	switch m := msg.(type) {
	case telemetry.IndicatorOn:
		err = r.check("indicator assert", r.Indicator.Assert())
	case telemetry.IndicatorOff:
		err = r.check("indicator deassert", r.Indicator.Deassert())
	case telemetry.Reading:
		err = r.renderReading(m)
	default:
		return telemetry.NewFatal("dispatch", fmt.Errorf("%w: %T", telemetry.ErrUnknownMessage, msg))
	}
	return err
}

// renderReading counts the reading before any display write, so a failed
// write never loses a count.
func (r *Renderer) renderReading(reading telemetry.Reading) error {
	count := atomic.AddUint64(&r.counter, 1) - 1
	for _, m := range reading.Measurements {
		f, format, ok := r.Layout.measure(m.Quantity)
		if !ok {
			r.reportUnbound(m.Quantity)
			continue
		}
		if err := r.updateField(f, format(m.Value)); err != nil {
			return err
		}
	}
	if f, ok := r.Layout.Field(FieldTime); ok {
		if err := r.updateField(f, r.TimeUnit.Format(r.Clock.Elapsed())); err != nil {
			return err
		}
	}
	if f, ok := r.Layout.Field(FieldCounter); ok {
		if err := r.updateField(f, FormatCounter(count)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) updateField(f Field, text string) error {
	return r.check("display "+f.Name, r.writeAt(f.ValueCol, f.Row, f.Pad(text)))
}

func (r *Renderer) writeAt(col, row int, text string) error {
	if err := r.Display.SetCursor(col, row); err != nil {
		return err
	}
	return r.Display.Write(text)
}

func (r *Renderer) check(op string, err error) error {
	if err == nil {
		return nil
	}
	if r.Policy.Halts(err) {
		glog.Errorf("%s error: %v", op, err)
		return telemetry.NewFatal(op, err)
	}
	glog.Warningf("%s error: %v", op, err)
	return nil
}

func (r *Renderer) reportUnbound(q telemetry.Quantity) {
	if r.unbound == nil {
		r.unbound = make(map[telemetry.Quantity]bool)
	}
	if !r.unbound[q] {
		r.unbound[q] = true
		glog.V(1).Infof("no display field for %s, ignored", q)
	}
}
