package link

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/tarm/serial"
)

// SerialReadTimeout bounds a single read so Close is noticed by the reader.
const SerialReadTimeout = 100 * time.Millisecond

// SerialPort is a serial device used as the stream between two boards.
// Reads which time out in the driver are retried until the port is closed.
type SerialPort struct {
	Port io.ReadWriteCloser

	closed int32
}

// OpenSerial opens a serial device.
func OpenSerial(name string, baud int) (*SerialPort, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: SerialReadTimeout,
	})
	if err != nil {
		return nil, err
	}
	return &SerialPort{Port: port}, nil
}

// Read implements io.Reader.
func (p *SerialPort) Read(b []byte) (int, error) {
	for {
		n, err := p.Port.Read(b)
		if n > 0 || (err != nil && err != io.EOF) {
			return n, err
		}
		if atomic.LoadInt32(&p.closed) != 0 {
			return 0, ErrClosed
		}
	}
}

// Write implements io.Writer.
func (p *SerialPort) Write(b []byte) (int, error) {
	return p.Port.Write(b)
}

// Close implements io.Closer.
func (p *SerialPort) Close() error {
	atomic.StoreInt32(&p.closed, 1)
	return p.Port.Close()
}
