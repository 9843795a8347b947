package sim

import (
	"sync"

	"github.com/golang/glog"
)

// LED is a simulated indicator output.
type LED struct {
	Name string

	on      bool
	toggles int
	lock    sync.Mutex
}

// Assert implements Indicator.
func (l *LED) Assert() error {
	l.set(true)
	return nil
}

// Deassert implements Indicator.
func (l *LED) Deassert() error {
	l.set(false)
	return nil
}

// On reports the current level.
func (l *LED) On() bool {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.on
}

// Toggles returns the number of level changes.
func (l *LED) Toggles() int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.toggles
}

func (l *LED) set(on bool) {
	l.lock.Lock()
	changed := l.on != on
	l.on = on
	if changed {
		l.toggles++
	}
	l.lock.Unlock()
	if !changed {
		return
	}
	if glog.V(3) {
		glog.Infof("LED %s: %v", l.Name, on)
	}
}
