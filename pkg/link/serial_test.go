package link

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// timeoutPort returns io.EOF for empty reads like a serial driver with a
// read timeout.
type timeoutPort struct {
	lock   sync.Mutex
	buf    bytes.Buffer
	empty  int
	closed bool
}

func (p *timeoutPort) Read(b []byte) (int, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.buf.Len() == 0 {
		p.empty++
		if p.empty == 3 {
			p.buf.WriteString("hi")
		}
		return 0, io.EOF
	}
	return p.buf.Read(b)
}

func (p *timeoutPort) Write(b []byte) (int, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.buf.Write(b)
}

func (p *timeoutPort) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.closed = true
	return nil
}

func TestSerialPortRetriesTimeouts(t *testing.T) {
	raw := &timeoutPort{}
	port := &SerialPort{Port: raw}
	b := make([]byte, 2)
	n, err := port.Read(b)
	require.NoError(t, err)
	require.Equal(t, "hi", string(b[:n]))
	require.Equal(t, 3, raw.empty)

	require.NoError(t, port.Close())
	require.True(t, raw.closed)
	_, err = port.Read(b)
	require.Equal(t, ErrClosed, err)
}
