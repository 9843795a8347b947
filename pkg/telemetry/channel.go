package telemetry

import "context"

// Sender is the producer end of a Channel.
type Sender interface {
	// Send blocks until the slot is free, then deposits msg.
	Send(ctx context.Context, msg Message) error
}

// Receiver is the consumer end of a Channel.
type Receiver interface {
	// Receive blocks until a message is pending, then removes and returns it.
	Receive(ctx context.Context) (Message, error)
}

// Drainer takes a pending message without blocking.
type Drainer interface {
	TryReceive() (Message, bool)
}

// Channel is a single-producer single-consumer mailbox.
type Channel interface {
	Sender
	Receiver
}

// Mailbox is the in-process Channel with capacity exactly 1.
// One goroutine must Send and one goroutine must Receive; ordering with
// more producers is undefined.
type Mailbox struct {
	slot chan Message
}

// NewMailbox creates an empty Mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{slot: make(chan Message, 1)}
}

// Send implements Sender.
// On cancellation the message is not deposited.
func (m *Mailbox) Send(ctx context.Context, msg Message) error {
	select {
	case m.slot <- msg:
		return nil
	default:
	}
	select {
	case m.slot <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receive implements Receiver.
// On cancellation a pending message stays in the slot.
func (m *Mailbox) Receive(ctx context.Context) (Message, error) {
	select {
	case msg := <-m.slot:
		return msg, nil
	default:
	}
	select {
	case msg := <-m.slot:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryReceive implements Drainer.
func (m *Mailbox) TryReceive() (Message, bool) {
	select {
	case msg := <-m.slot:
		return msg, true
	default:
		return nil, false
	}
}

// Len returns the number of pending messages, 0 or 1.
func (m *Mailbox) Len() int {
	return len(m.slot)
}
