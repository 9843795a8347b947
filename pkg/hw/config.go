package hw

import (
	"flag"
	"fmt"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Config defines the hardware bring-up options.
type Config struct {
	I2C          string
	SensorAddr   uint
	IndicatorPin string
}

var defaultConfig = Config{
	SensorAddr:   0x76,
	IndicatorPin: "GPIO25",
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.I2C, "i2c", defaultConfig.I2C, "I2C bus name, empty for the first available.")
	flag.UintVar(&defaultConfig.SensorAddr, "sensor-addr", defaultConfig.SensorAddr, "I2C address of the BMx280 sensor.")
	flag.StringVar(&defaultConfig.IndicatorPin, "led", defaultConfig.IndicatorPin, "GPIO pin driving the indicator LED.")
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Board holds the opened host resources.
type Board struct {
	Config *Config
	Bus    i2c.BusCloser
}

// Open initializes the host drivers and opens the I2C bus.
func (c *Config) Open() (*Board, error) {
	state, err := host.Init()
	if err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	if glog.V(1) {
		for _, d := range state.Loaded {
			glog.Infof("host driver: %s", d)
		}
	}
	bus, err := i2creg.Open(c.I2C)
	if err != nil {
		return nil, fmt.Errorf("open i2c %q: %w", c.I2C, err)
	}
	return &Board{Config: c, Bus: bus}, nil
}

// Close releases the I2C bus.
func (b *Board) Close() error {
	return b.Bus.Close()
}

// NewSensor creates the BMx280 sensor on the board bus.
func (b *Board) NewSensor() *Barometer {
	return NewBarometer(b.Bus, uint16(b.Config.SensorAddr))
}

// NewIndicator looks up the indicator pin.
func (b *Board) NewIndicator() (*LED, error) {
	pin := gpioreg.ByName(b.Config.IndicatorPin)
	if pin == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoPin, b.Config.IndicatorPin)
	}
	return NewLED(pin), nil
}

// NewDisplay opens the SSD1306 on the board bus.
func (b *Board) NewDisplay() (*TextDisplay, error) {
	return OpenSSD1306(b.Bus)
}
