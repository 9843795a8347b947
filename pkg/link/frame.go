package link

import (
	"github.com/golang/protobuf/proto"

	"github.com/robotalks/telemetry.go/pkg/telemetry"
)

// Frame types
const (
	FrameHello uint32 = 1
	FrameData  uint32 = 2
	FrameAck   uint32 = 3
)

// Frame is the unit on the wire.
type Frame struct {
	Type         uint32         `protobuf:"varint,1,opt,name=type,proto3" json:"type,omitempty"`
	Seq          uint32         `protobuf:"varint,2,opt,name=seq,proto3" json:"seq,omitempty"`
	Kind         uint32         `protobuf:"varint,3,opt,name=kind,proto3" json:"kind,omitempty"`
	Measurements []*Measurement `protobuf:"bytes,4,rep,name=measurements,proto3" json:"measurements,omitempty"`
	NodeID       string         `protobuf:"bytes,5,opt,name=node_id,proto3" json:"node_id,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *Frame) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Frame) Reset() { *m = Frame{} }

// String implements proto.Message.
func (m *Frame) String() string { return proto.CompactTextString(m) }

// Measurement is the wire form of telemetry.Measurement.
type Measurement struct {
	Quantity uint32  `protobuf:"varint,1,opt,name=quantity,proto3" json:"quantity,omitempty"`
	Value    float64 `protobuf:"fixed64,2,opt,name=value,proto3" json:"value,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *Measurement) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Measurement) Reset() { *m = Measurement{} }

// String implements proto.Message.
func (m *Measurement) String() string { return proto.CompactTextString(m) }

// DataFrame encodes a message as a DATA frame.
func DataFrame(msg telemetry.Message, seq uint32) (*Frame, error) {
	f := &Frame{Type: FrameData, Seq: seq, Kind: uint32(msg.Kind())}
	switch m := msg.(type) {
	case telemetry.IndicatorOn, telemetry.IndicatorOff:
	case telemetry.Reading:
		f.Measurements = make([]*Measurement, len(m.Measurements))
		for n, v := range m.Measurements {
			f.Measurements[n] = &Measurement{Quantity: uint32(v.Quantity), Value: v.Value}
		}
	default:
		return nil, telemetry.ErrUnknownMessage
	}
	return f, nil
}

// Message decodes a DATA frame.
func (m *Frame) Message() (telemetry.Message, error) {
	if m.Type != FrameData {
		return nil, &FrameError{Type: m.Type, Kind: m.Kind}
	}
	switch telemetry.Kind(m.Kind) {
	case telemetry.KindIndicatorOn:
		return telemetry.IndicatorOn{}, nil
	case telemetry.KindIndicatorOff:
		return telemetry.IndicatorOff{}, nil
	case telemetry.KindReading:
		ms := make([]telemetry.Measurement, 0, len(m.Measurements))
		for _, v := range m.Measurements {
			if v == nil {
				continue
			}
			ms = append(ms, telemetry.Measurement{Quantity: telemetry.Quantity(v.Quantity), Value: v.Value})
		}
		return telemetry.NewReading(ms...)
	}
	return nil, &FrameError{Type: m.Type, Kind: m.Kind}
}

// Encode marshals the frame.
func (m *Frame) Encode() ([]byte, error) {
	return proto.Marshal(m)
}

// DecodeFrame unmarshals a frame.
func DecodeFrame(data []byte) (*Frame, error) {
	var f Frame
	if err := proto.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
