package programs

import (
	_ "embed"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

//go:embed shaders/mandelbrot.frag
var mandelbrotFragment string

// Width and height of the complex plane window spanned by the surface at zoom 1.
const (
	PlaneWidth  = 3
	PlaneHeight = 2
)

var Mandelbrot = Program{
	Name:           "mandelbrot",
	VertexShader:   defaultVertexShader,
	FragmentShader: mandelbrotFragment,
	GetPixel: func(params Params, pos mgl32.Vec2) mgl32.Vec4 {
		c := PixelToPlane(params, float64(pos[0]), float64(pos[1]))
		return Colour(EscapeTime(c, params.Iterations), params.Iterations)
	},
}

func init() {
	NewProgram(Mandelbrot)
}

// PixelToPlane maps a window position in pixels (origin top left) to a point
// on the complex plane.
func PixelToPlane(params Params, px, py float64) mgl64.Vec2 {
	width, height := float64(params.Width), float64(params.Height)
	return mgl64.Vec2{
		params.MiddleX + ((px-width/2)/width*PlaneWidth)*params.Zoom,
		params.MiddleY + ((py-height/2)/height*PlaneHeight)*params.Zoom,
	}
}

func square(n mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{n[0]*n[0] - n[1]*n[1], 2 * n[0] * n[1]}
}

// Escape iterates z = z² + c from zero at most iterations times.
// It returns the 0-based step at which |z| first exceeded 2, and whether that happened at all.
func Escape(c mgl64.Vec2, iterations uint32) (uint32, bool) {
	z := mgl64.Vec2{}
	for i := uint32(0); i < iterations; i++ {
		z = square(z).Add(c)
		if z.Len() > 2 {
			return i, true
		}
	}
	return 0, false
}

// EscapeTime is Escape as the fragment stage sees it: points that never escape
// report 0, the same as points escaping on the first step.
func EscapeTime(c mgl64.Vec2, iterations uint32) uint32 {
	i, _ := Escape(c, iterations)
	return i
}

// Colour maps an escape count to an opaque colour.
func Colour(i, iterations uint32) mgl32.Vec4 {
	if iterations == 0 {
		return mgl32.Vec4{0, 0, 0, 1}
	}

	t := float32(i) / float32(iterations)
	return mgl32.Vec4{t, t * t, float32(math.Sqrt(float64(t))), 1}
}
