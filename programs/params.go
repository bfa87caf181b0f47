package programs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	// ParamsSize is the encoded size of Params in bytes.
	ParamsSize = 40

	// MaxParamsSize is the largest parameter block the fragment stage is allowed to read.
	MaxParamsSize = 128
)

var ErrShortParams = errors.New("parameter block shorter than 40 bytes")

// Params is the only state driving a frame. It is copied into the fragment
// stage's parameter block before every draw.
//
// The encoded layout is fixed and read positionally by the shader:
//
//	0  width       uint32
//	4  height      uint32
//	8  iterations  uint32
//	12 reserved    uint32, always zero
//	16 zoom        float64
//	24 middle_x    float64
//	32 middle_y    float64
type Params struct {
	Width      uint32
	Height     uint32
	Iterations uint32
	_          uint32
	Zoom       float64
	MiddleX    float64
	MiddleY    float64
}

func NewParams(width, height, iterations uint32) Params {
	return Params{
		Width:      width,
		Height:     height,
		Iterations: iterations,
		Zoom:       1,
		MiddleX:    -0.5,
		MiddleY:    0,
	}
}

// AppendBinary appends the little-endian encoding of p to b.
func (p Params) AppendBinary(b []byte) []byte {
	b = binary.LittleEndian.AppendUint32(b, p.Width)
	b = binary.LittleEndian.AppendUint32(b, p.Height)
	b = binary.LittleEndian.AppendUint32(b, p.Iterations)
	b = binary.LittleEndian.AppendUint32(b, 0)
	b = binary.LittleEndian.AppendUint64(b, math.Float64bits(p.Zoom))
	b = binary.LittleEndian.AppendUint64(b, math.Float64bits(p.MiddleX))
	b = binary.LittleEndian.AppendUint64(b, math.Float64bits(p.MiddleY))
	return b
}

func (p Params) MarshalBinary() ([]byte, error) {
	return p.AppendBinary(make([]byte, 0, ParamsSize)), nil
}

// UnmarshalBinary decodes a parameter block the way the fragment stage reads it.
// The reserved word is skipped.
func (p *Params) UnmarshalBinary(b []byte) error {
	if len(b) < ParamsSize {
		return fmt.Errorf("%w: got %v", ErrShortParams, len(b))
	}

	*p = Params{
		Width:      binary.LittleEndian.Uint32(b[0:]),
		Height:     binary.LittleEndian.Uint32(b[4:]),
		Iterations: binary.LittleEndian.Uint32(b[8:]),
		Zoom:       math.Float64frombits(binary.LittleEndian.Uint64(b[16:])),
		MiddleX:    math.Float64frombits(binary.LittleEndian.Uint64(b[24:])),
		MiddleY:    math.Float64frombits(binary.LittleEndian.Uint64(b[32:])),
	}
	return nil
}

// compile time check that the block fits the channel budget.
var _ [MaxParamsSize - ParamsSize]struct{}
