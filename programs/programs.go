package programs

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrNoCPUImplementation = errors.New("fractal does not have a CPU implementation")

//go:embed default.vert
var defaultVertexShader string

// QuadVertices are the corners of the full-screen quad in normalized device coordinates.
var QuadVertices = []mgl32.Vec2{
	{-1, 1},
	{-1, -1},
	{1, -1},
	{1, 1},
}

// QuadIndices draw QuadVertices as two counter-clockwise triangles.
var QuadIndices = []uint16{0, 1, 2, 0, 2, 3}

// VertexStage is the CPU counterpart of default.vert.
func VertexStage(vert mgl32.Vec2) mgl32.Vec4 {
	return vert.Vec4(0, 1)
}

func NumPrograms() int {
	return len(programs)
}

func GetProgram(i int) Program {
	return programs[i]
}

// LookupProgram returns the registered program with the given name.
func LookupProgram(name string) (Program, error) {
	for _, p := range programs {
		if p.Name == name {
			return p, nil
		}
	}
	return Program{}, fmt.Errorf("no program named %q", name)
}

func NewProgram(p Program) {
	programs = append(programs, p)
}

var programs []Program

// PixelFunc computes the colour of the pixel whose centre is at pos,
// in window pixels with the origin at the top left.
type PixelFunc func(params Params, pos mgl32.Vec2) mgl32.Vec4

type Program struct {
	Name           string
	VertexShader   string
	FragmentShader string
	GetPixel       PixelFunc
}
