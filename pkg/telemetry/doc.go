// Package telemetry defines the hand-off protocol between the sampling
// context and the rendering context.
package telemetry

// Producer: sampling loop, owns the sensor.
// Consumer: rendering loop, owns the display and the indicator.
//
// The two contexts share nothing but a Channel with a single slot. A Send
// suspends while the slot is occupied and a Receive suspends while it is
// empty, which gives total backpressure: the producer never runs more than
// one message ahead of the consumer.
