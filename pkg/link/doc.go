// Package link carries the telemetry Channel across a byte stream, so the
// sampling and the rendering contexts can run on separate boards.
package link

// Frames are length-prefixed protobuf messages. Each side says HELLO once
// with its node id. The producer writes DATA frames, numbered from 1; the
// consumer answers each DATA with an ACK of the same sequence when the
// message is handed out by Receive. The producer does not write DATA n+1
// before ACK n arrived, which keeps the capacity of the link at exactly one
// message, the same as the in-process Mailbox.
//
// Producer: sampler board
// Consumer: display board
