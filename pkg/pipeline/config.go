package pipeline

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/robotalks/telemetry.go/pkg/clock"
	"github.com/robotalks/telemetry.go/pkg/hw"
	"github.com/robotalks/telemetry.go/pkg/link"
	"github.com/robotalks/telemetry.go/pkg/sim"
	"github.com/robotalks/telemetry.go/pkg/telemetry"
)

// ErrNoRangingDriver indicates the ranging variant was asked on hardware.
var ErrNoRangingDriver = errors.New("no hardware ranging driver, use -sensor=env")

// Config defines the process bring-up choices.
type Config struct {
	Sensor      string
	Hardware    bool
	Role        string
	Link        string
	Baud        int
	HaltOnError bool
}

var defaultConfig = Config{
	Sensor: Ranging.Name,
	Role:   string(RoleBoth),
	Baud:   115200,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Sensor, "sensor", defaultConfig.Sensor, "Sensor variant: tof or env.")
	flag.BoolVar(&defaultConfig.Hardware, "hw", defaultConfig.Hardware, "Use periph.io hardware instead of simulation.")
	flag.StringVar(&defaultConfig.Role, "role", defaultConfig.Role, "Contexts to run: both, sampler or renderer.")
	flag.StringVar(&defaultConfig.Link, "link", defaultConfig.Link, "Serial device to the peer board for a single role.")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Baud rate of the serial link.")
	flag.BoolVar(&defaultConfig.HaltOnError, "halt-on-error", defaultConfig.HaltOnError, "Stop on any sensor or display failure.")
	hw.SetupFlags()
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

type closers []io.Closer

func (c closers) Close() error {
	var err error
	for n := len(c) - 1; n >= 0; n-- {
		if e := c[n].Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// NewPipeline selects the collaborators and creates the Pipeline.
// The returned Closer releases opened devices.
func (c *Config) NewPipeline() (*Pipeline, io.Closer, error) {
	variant, ok := VariantByName(c.Sensor)
	if !ok {
		return nil, nil, fmt.Errorf("unknown sensor %q", c.Sensor)
	}
	p := &Pipeline{
		Variant: variant,
		Role:    Role(c.Role),
		Clock:   clock.NewSystem(),
	}
	if c.HaltOnError {
		p.Policy = telemetry.PolicyHalt
	}
	var opened closers
	fail := func(err error) (*Pipeline, io.Closer, error) {
		opened.Close()
		return nil, nil, err
	}

	if c.Link != "" {
		port, err := link.OpenSerial(c.Link, c.Baud)
		if err != nil {
			return fail(fmt.Errorf("open link %q: %w", c.Link, err))
		}
		opened = append(opened, port)
		p.Link = port
	}

	if c.Hardware {
		board, err := hw.NewConfig().Open()
		if err != nil {
			return fail(err)
		}
		opened = append(opened, board)
		if p.Role != RoleRenderer {
			if variant.Name != Weather.Name {
				return fail(ErrNoRangingDriver)
			}
			p.Sensor = board.NewSensor()
		}
		if p.Role != RoleSampler {
			if p.Indicator, err = board.NewIndicator(); err != nil {
				return fail(err)
			}
			if p.Display, err = board.NewDisplay(); err != nil {
				return fail(err)
			}
		}
		return p, opened, nil
	}

	if variant.Name == Weather.Name {
		p.Sensor = sim.NewBarometer(p.Clock)
	} else {
		p.Sensor = sim.NewRanging(p.Clock)
	}
	grid := sim.NewGrid(sim.DefaultGridCols, sim.DefaultGridRows)
	grid.Out = os.Stdout
	p.Display = grid
	p.Indicator = &sim.LED{Name: "status"}
	return p, opened, nil
}
