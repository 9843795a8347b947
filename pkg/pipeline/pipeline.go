// Package pipeline wires the sampling and rendering contexts together,
// either in one process over a Mailbox or on one side of a Link.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/telemetry.go/pkg/clock"
	fx "github.com/robotalks/telemetry.go/pkg/framework"
	"github.com/robotalks/telemetry.go/pkg/link"
	"github.com/robotalks/telemetry.go/pkg/render"
	"github.com/robotalks/telemetry.go/pkg/sampler"
	"github.com/robotalks/telemetry.go/pkg/telemetry"
)

// Role selects which contexts run in this process.
type Role string

// Roles
const (
	RoleBoth     Role = "both"
	RoleSampler  Role = "sampler"
	RoleRenderer Role = "renderer"
)

var (
	// ErrLinkRequired indicates a single role without a link to the peer.
	ErrLinkRequired = errors.New("link required for a single role")
	// ErrLinkUnused indicates a link given while both contexts run in-process.
	ErrLinkUnused = errors.New("link not used when both contexts run in-process")
)

// Variant is the fixed cadence and layout of a sensor kind.
type Variant struct {
	Name     string
	PulseOn  time.Duration
	PulseOff time.Duration
	Period   time.Duration
	TimeUnit render.TimeUnit
	Layout   func() *render.Layout
}

// Variants
var (
	Ranging = Variant{
		Name:     "tof",
		PulseOn:  sampler.DefaultPulseOn,
		PulseOff: sampler.DefaultPulseOff,
		TimeUnit: render.Seconds,
		Layout:   render.DistanceLayout,
	}
	Weather = Variant{
		Name:     "env",
		PulseOn:  sampler.DefaultPulseOn,
		PulseOff: sampler.DefaultPulseOff,
		Period:   time.Second,
		TimeUnit: render.Seconds,
		Layout:   render.WeatherLayout,
	}
)

// VariantByName looks up a Variant.
func VariantByName(name string) (Variant, bool) {
	for _, v := range []Variant{Ranging, Weather} {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Pipeline describes the contexts to run and their collaborators.
// Sensor is needed by the sampler role, Display and Indicator by the
// renderer role.
type Pipeline struct {
	Variant   Variant
	Role      Role
	Policy    telemetry.Policy
	Clock     clock.Clock
	Sensor    sampler.Sensor
	Display   render.Display
	Indicator render.Indicator
	// Channel connects the contexts in-process, a Mailbox if nil.
	Channel telemetry.Channel
	// Link is the stream to the peer for a single role.
	Link   io.ReadWriter
	NodeID string

	Sampler  *sampler.Sampler
	Renderer *render.Renderer
}

// Build creates the Runnables for the configured role.
func (p *Pipeline) Build() ([]fx.Runnable, error) {
	if p.Clock == nil {
		p.Clock = clock.NewSystem()
	}
	var ch telemetry.Channel
	var runnables []fx.Runnable
	switch p.Role {
	case RoleBoth, "":
		if p.Link != nil {
			return nil, ErrLinkUnused
		}
		ch = p.Channel
		if ch == nil {
			ch = telemetry.NewMailbox()
		}
	case RoleSampler, RoleRenderer:
		if p.Link == nil {
			return nil, ErrLinkRequired
		}
		nodeID := p.NodeID
		if nodeID == "" {
			nodeID = link.NodeID()
		}
		l := link.New(p.Link, nodeID)
		ch = l
		runnables = append(runnables, l)
	default:
		return nil, fmt.Errorf("unknown role %q", p.Role)
	}

	if p.Role != RoleRenderer {
		s := sampler.New(p.Sensor, ch, p.Clock)
		s.PulseOn, s.PulseOff, s.Period = p.Variant.PulseOn, p.Variant.PulseOff, p.Variant.Period
		s.Policy = p.Policy
		p.Sampler = s
		runnables = append(runnables, s)
	}
	if p.Role != RoleSampler {
		r := render.New(p.Display, p.Indicator, ch, p.Clock, p.Variant.Layout())
		r.TimeUnit = p.Variant.TimeUnit
		r.Policy = p.Policy
		p.Renderer = r
		runnables = append(runnables, r)
	}
	return runnables, nil
}

// Run builds and runs the contexts until ctx is done or one of them fails.
func (p *Pipeline) Run(ctx context.Context) error {
	return p.Go(fx.NewRunnerWith(ctx))
}

// Go builds the contexts, runs them with runner and waits.
func (p *Pipeline) Go(runner *fx.Runner) error {
	runnables, err := p.Build()
	if err != nil {
		return err
	}
	glog.Infof("pipeline %s: role=%s", p.Variant.Name, p.Role)
	return runner.Go(runnables...).Wait()
}
