package hw

import (
	"sync"

	"periph.io/x/conn/v3/gpio"
)

type outPin interface {
	Out(l gpio.Level) error
}

// LED is an indicator on a GPIO output, active high.
type LED struct {
	Pin outPin

	lock sync.Mutex
}

// NewLED creates an LED on pin.
func NewLED(pin outPin) *LED {
	return &LED{Pin: pin}
}

// Assert implements render.Indicator.
func (l *LED) Assert() error {
	return l.out(gpio.High)
}

// Deassert implements render.Indicator.
func (l *LED) Deassert() error {
	return l.out(gpio.Low)
}

func (l *LED) out(level gpio.Level) error {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.Pin.Out(level)
}
