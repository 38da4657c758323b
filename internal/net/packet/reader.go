package packet

import (
	"encoding/binary"
	"math"
)

// Reader reads pointer-feed fields from a payload. Byte 0 is the opcode.
// Short reads yield zero values; callers check Remaining when it matters.
type Reader struct {
	data []byte
	off  int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data, off: 1}
}

func (r *Reader) Opcode() byte {
	if len(r.data) == 0 {
		return 0
	}
	return r.data[0]
}

// ReadD reads 4 bytes as little-endian int32.
func (r *Reader) ReadD() int32 {
	if r.off+4 > len(r.data) {
		return 0
	}
	v := int32(binary.LittleEndian.Uint32(r.data[r.off:]))
	r.off += 4
	return v
}

// ReadF reads a little-endian IEEE-754 float32, widened to float64.
func (r *Reader) ReadF() float64 {
	if r.off+4 > len(r.data) {
		r.off = len(r.data)
		return 0
	}
	bits := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return float64(math.Float32frombits(bits))
}

// ReadS reads a null-terminated string in the wire charset and returns UTF-8.
func (r *Reader) ReadS() string {
	start := r.off
	for r.off < len(r.data) {
		if r.data[r.off] == 0 {
			raw := r.data[start:r.off]
			r.off++
			return decodeString(raw)
		}
		r.off++
	}
	return decodeString(r.data[start:r.off])
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}
