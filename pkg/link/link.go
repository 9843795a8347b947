package link

import (
	"context"
	"io"
	"sync"

	"github.com/golang/glog"

	fx "github.com/robotalks/telemetry.go/pkg/framework"
	"github.com/robotalks/telemetry.go/pkg/telemetry"
)

// Link is a telemetry.Channel over a byte stream.
// Run must be running for Send to see ACKs and for Receive to see DATA.
type Link struct {
	Stream *Stream
	NodeID string

	writeLock sync.Mutex

	// producer state, owned by the single sending goroutine.
	sendSeq  uint32
	inflight bool

	// consumer state.
	recvLock sync.Mutex
	recvSeq  uint32

	acks   chan uint32
	frames chan *Frame

	peerLock sync.RWMutex
	peer     string

	done     chan struct{}
	doneOnce sync.Once
	err      error
}

// New creates a Link over rw.
func New(rw io.ReadWriter, nodeID string) *Link {
	return &Link{
		Stream: NewStream(rw),
		NodeID: nodeID,
		acks:   make(chan uint32, 1),
		frames: make(chan *Frame, 1),
		done:   make(chan struct{}),
	}
}

// Name implements Named.
func (l *Link) Name() string {
	return "link"
}

// Peer returns the node id announced by the peer, empty before HELLO.
func (l *Link) Peer() string {
	l.peerLock.RLock()
	defer l.peerLock.RUnlock()
	return l.peer
}

// Run implements Runnable: it announces this node and pumps inbound frames.
func (l *Link) Run(ctx context.Context) error {
	// the peer may be saying HELLO at the same time over an unbuffered
	// stream, so reading starts before writing.
	go func() {
		if err := l.writeFrame(&Frame{Type: FrameHello, NodeID: l.NodeID}); err != nil {
			glog.Warningf("link hello error: %v", err)
			l.fail(err)
		}
	}()
	var err error
	if closer, ok := l.Stream.ReadWriter.(io.Closer); ok {
		err = fx.RunWithContextCloser(ctx, closer, l.readLoop)
	} else {
		err = fx.RunWithContext(ctx, l.readLoop)
	}
	if ctx.Err() != nil {
		l.fail(ErrClosed)
		return ctx.Err()
	}
	l.fail(err)
	return err
}

func (l *Link) readLoop() error {
	for {
		pkt, err := l.Stream.ReadPacket()
		if err != nil {
			return err
		}
		frame, err := DecodeFrame(pkt)
		if err != nil {
			return err
		}
		if err = l.dispatch(frame); err != nil {
			return err
		}
	}
}

func (l *Link) dispatch(frame *Frame) error {
	if glog.V(2) {
		glog.Infof("LNK %s", frame.String())
	}
	switch frame.Type {
	case FrameHello:
		l.peerLock.Lock()
		l.peer = frame.NodeID
		l.peerLock.Unlock()
		glog.Infof("link peer: %s", frame.NodeID)
	case FrameAck:
		select {
		case l.acks <- frame.Seq:
		default:
			return ErrOverrun
		}
	case FrameData:
		select {
		case l.frames <- frame:
		default:
			return ErrOverrun
		}
	default:
		return &FrameError{Type: frame.Type, Kind: frame.Kind}
	}
	return nil
}

// Send implements telemetry.Sender.
// It returns once the DATA frame is written; the next Send waits for its
// ACK first.
func (l *Link) Send(ctx context.Context, msg telemetry.Message) error {
	if l.inflight {
		select {
		case seq := <-l.acks:
			if seq != l.sendSeq {
				err := &SequenceError{Frame: "ack", Expected: l.sendSeq, Actual: seq}
				l.fail(err)
				return telemetry.NewFatal("link", err)
			}
			l.inflight = false
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return l.err
		}
	}
	frame, err := DataFrame(msg, l.sendSeq+1)
	if err != nil {
		return telemetry.NewFatal("link", err)
	}
	if err = l.writeFrame(frame); err != nil {
		return err
	}
	l.sendSeq, l.inflight = frame.Seq, true
	return nil
}

// Receive implements telemetry.Receiver.
func (l *Link) Receive(ctx context.Context) (telemetry.Message, error) {
	select {
	case frame := <-l.frames:
		return l.consume(frame)
	default:
	}
	select {
	case frame := <-l.frames:
		return l.consume(frame)
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.done:
		return nil, l.err
	}
}

// TryReceive implements telemetry.Drainer.
func (l *Link) TryReceive() (telemetry.Message, bool) {
	select {
	case frame := <-l.frames:
		msg, err := l.consume(frame)
		if err != nil {
			glog.Warningf("link drain error: %v", err)
			return nil, false
		}
		return msg, true
	default:
		return nil, false
	}
}

func (l *Link) consume(frame *Frame) (telemetry.Message, error) {
	l.recvLock.Lock()
	defer l.recvLock.Unlock()
	if frame.Seq != l.recvSeq+1 {
		err := &SequenceError{Frame: "data", Expected: l.recvSeq + 1, Actual: frame.Seq}
		l.fail(err)
		return nil, telemetry.NewFatal("link", err)
	}
	l.recvSeq = frame.Seq
	msg, err := frame.Message()
	if err != nil {
		l.fail(err)
		return nil, telemetry.NewFatal("link", err)
	}
	if err = l.writeFrame(&Frame{Type: FrameAck, Seq: frame.Seq}); err != nil {
		return nil, err
	}
	return msg, nil
}

func (l *Link) writeFrame(frame *Frame) error {
	pkt, err := frame.Encode()
	if err != nil {
		return err
	}
	l.writeLock.Lock()
	defer l.writeLock.Unlock()
	return l.Stream.WritePacket(pkt)
}

func (l *Link) fail(err error) {
	if err == nil {
		err = ErrClosed
	}
	l.doneOnce.Do(func() {
		l.err = err
		close(l.done)
	})
}
