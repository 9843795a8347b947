package link

import (
	"encoding/binary"
	"io"
)

// MaxFrameSize bounds the length prefix accepted from the peer.
const MaxFrameSize = 1024

// Stream reads and writes length-prefixed packets.
// Each packet is prefixed by 4-byte (little-endian) indicate the length.
type Stream struct {
	io.ReadWriter
}

// NewStream wraps an io.ReadWriter.
func NewStream(rw io.ReadWriter) *Stream {
	return &Stream{rw}
}

// ReadPacket reads one packet.
func (s *Stream) ReadPacket() ([]byte, error) {
	var size uint32
	if err := binary.Read(s.ReadWriter, binary.LittleEndian, &size); err != nil {
		return nil, err
	}
	if size > MaxFrameSize {
		return nil, ErrFrameTooLarge
	}
	pkt := make([]byte, size)
	_, err := io.ReadFull(s.ReadWriter, pkt)
	return pkt, err
}

// WritePacket writes one packet in a single Write.
func (s *Stream) WritePacket(pkt []byte) error {
	if len(pkt) > MaxFrameSize {
		return ErrFrameTooLarge
	}
	buf := make([]byte, 4+len(pkt))
	binary.LittleEndian.PutUint32(buf, uint32(len(pkt)))
	copy(buf[4:], pkt)
	_, err := s.ReadWriter.Write(buf)
	return err
}
