package programs

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestNewParams(t *testing.T) {
	p := NewParams(800, 600, 100)

	want := Params{Width: 800, Height: 600, Iterations: 100, Zoom: 1, MiddleX: -0.5, MiddleY: 0}
	if p != want {
		t.Errorf("NewParams() = %+v, want %+v", p, want)
	}
}

func TestParamsLayout(t *testing.T) {
	p := Params{
		Width:      0x01020304,
		Height:     0x05060708,
		Iterations: 0x090a0b0c,
		Zoom:       0.25,
		MiddleX:    -1.5,
		MiddleY:    3.75,
	}

	b, err := p.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != ParamsSize {
		t.Fatalf("encoded length = %v, want %v", len(b), ParamsSize)
	}

	u32 := []struct {
		offset int
		want   uint32
	}{
		{0, p.Width},
		{4, p.Height},
		{8, p.Iterations},
		{12, 0},
	}
	for _, f := range u32 {
		if got := binary.LittleEndian.Uint32(b[f.offset:]); got != f.want {
			t.Errorf("uint32 at offset %v = %#x, want %#x", f.offset, got, f.want)
		}
	}

	f64 := []struct {
		offset int
		want   float64
	}{
		{16, p.Zoom},
		{24, p.MiddleX},
		{32, p.MiddleY},
	}
	for _, f := range f64 {
		if got := math.Float64frombits(binary.LittleEndian.Uint64(b[f.offset:])); got != f.want {
			t.Errorf("float64 at offset %v = %v, want %v", f.offset, got, f.want)
		}
	}
}

func TestParamsRoundTrip(t *testing.T) {
	underflowed := uint32(0)
	underflowed -= 100

	tests := []struct {
		name   string
		params Params
	}{
		{"defaults", NewParams(800, 600, 100)},
		{"max iterations", Params{Width: 1, Height: 1, Iterations: math.MaxUint32, Zoom: 1}},
		{"wrapped iterations", Params{Width: 1920, Height: 1080, Iterations: underflowed, Zoom: 0.5}},
		{"subnormal zoom", Params{Width: 3840, Height: 2160, Iterations: 5000, Zoom: math.SmallestNonzeroFloat64, MiddleX: -0.743643887037151, MiddleY: 0.131825904205330}},
		{"large zoom", Params{Width: 2, Height: 3, Zoom: math.MaxFloat64, MiddleX: -math.MaxFloat64, MiddleY: math.Inf(1)}},
		{"negative zero", Params{Zoom: 1, MiddleX: math.Copysign(0, -1), MiddleY: math.Copysign(0, -1)}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := test.params.MarshalBinary()
			if err != nil {
				t.Fatal(err)
			}

			var got Params
			if err := got.UnmarshalBinary(b); err != nil {
				t.Fatal(err)
			}

			if got.Width != test.params.Width || got.Height != test.params.Height || got.Iterations != test.params.Iterations {
				t.Errorf("integer fields = %v %v %v, want %v %v %v",
					got.Width, got.Height, got.Iterations,
					test.params.Width, test.params.Height, test.params.Iterations)
			}

			floats := [][2]float64{
				{got.Zoom, test.params.Zoom},
				{got.MiddleX, test.params.MiddleX},
				{got.MiddleY, test.params.MiddleY},
			}
			for i, f := range floats {
				if math.Float64bits(f[0]) != math.Float64bits(f[1]) {
					t.Errorf("float field %v = %v, want %v", i, f[0], f[1])
				}
			}
		})
	}
}

func TestParamsIgnoresReserved(t *testing.T) {
	b, _ := NewParams(800, 600, 100).MarshalBinary()
	binary.LittleEndian.PutUint32(b[12:], 0xdeadbeef)

	var got Params
	if err := got.UnmarshalBinary(b); err != nil {
		t.Fatal(err)
	}
	if got != NewParams(800, 600, 100) {
		t.Errorf("UnmarshalBinary() = %+v", got)
	}

	out := got.AppendBinary(nil)
	if r := binary.LittleEndian.Uint32(out[12:]); r != 0 {
		t.Errorf("reserved word encoded as %#x", r)
	}
}

func TestParamsShort(t *testing.T) {
	var p Params
	err := p.UnmarshalBinary(make([]byte, ParamsSize-1))
	if !errors.Is(err, ErrShortParams) {
		t.Errorf("UnmarshalBinary(short) error = %v, want ErrShortParams", err)
	}
}

func TestParamsAppend(t *testing.T) {
	prefix := []byte{0xff, 0xfe}
	b := NewParams(1, 2, 3).AppendBinary(prefix)

	if len(b) != len(prefix)+ParamsSize {
		t.Fatalf("len = %v", len(b))
	}
	if b[0] != 0xff || b[1] != 0xfe {
		t.Errorf("prefix overwritten: %x", b[:2])
	}
}
