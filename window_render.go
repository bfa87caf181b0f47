package main

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/stewi1014/glmandel/programs"
)

// ErrSurfaceUnavailable is returned by Draw when the default framebuffer cannot be drawn to.
// The frame is skipped; later frames may succeed.
var ErrSurfaceUnavailable = errors.New("surface unavailable")

// paramsBinding is the uniform buffer binding point of the Params block.
const paramsBinding = 0

// NewRenderer builds the pipeline for program in the current OpenGL context.
func NewRenderer(program programs.Program, width, height uint32, debug bool) (*Renderer, error) {
	err := gl.Init()
	if err != nil {
		return nil, fmt.Errorf("gl.Init: %w", err)
	}
	version := gl.GoStr(gl.GetString(gl.VERSION))
	log.Println("OpenGL version", version)

	if debug {
		gl.DebugMessageCallback(glDebugMessage, nil)
		gl.Enable(gl.DEBUG_OUTPUT)
	}

	r := &Renderer{
		params: make([]byte, 0, programs.ParamsSize),
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(programs.QuadVertices)*2*4, gl.Ptr(programs.QuadVertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(programs.QuadIndices)*2, gl.Ptr(programs.QuadIndices), gl.STATIC_DRAW)

	blockSize, err := r.loadProgram(program)
	if err != nil {
		return nil, err
	}

	gl.GenBuffers(1, &r.ubo)
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.ubo)
	gl.BufferData(gl.UNIFORM_BUFFER, blockSize, nil, gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, paramsBinding, r.ubo)

	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.DEPTH_TEST)

	r.Configure(width, height)

	return r, nil
}

// Renderer draws the full-screen quad with a fractal program.
// All methods must be called from the thread owning the OpenGL context.
type Renderer struct {
	vao     uint32
	vbo     uint32
	ebo     uint32
	ubo     uint32
	program uint32

	width, height uint32

	// params is reused to encode the parameter block each frame.
	params []byte
}

// Configure sets the drawable surface size. Zero sizes are ignored.
func (r *Renderer) Configure(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}

	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Draw renders one frame with params. The caller presents it by swapping buffers.
func (r *Renderer) Draw(params programs.Params) error {
	if r.width == 0 || r.height == 0 {
		return fmt.Errorf("%w: zero sized", ErrSurfaceUnavailable)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("%w: framebuffer status 0x%x", ErrSurfaceUnavailable, status)
	}

	r.params = params.AppendBinary(r.params[:0])

	gl.UseProgram(r.program)
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.ubo)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(r.params), gl.Ptr(r.params))
	gl.BindBufferBase(gl.UNIFORM_BUFFER, paramsBinding, r.ubo)

	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, int32(len(programs.QuadIndices)), gl.UNSIGNED_SHORT, nil)
	return nil
}

// Destroy releases the GPU objects owned by the renderer.
func (r *Renderer) Destroy() {
	gl.DeleteProgram(r.program)
	buffers := []uint32{r.vbo, r.ebo, r.ubo}
	gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
	gl.DeleteVertexArrays(1, &r.vao)
}

// loadProgram compiles and links program, checks its Params block
// against the encoded layout and returns the size of the block.
func (r *Renderer) loadProgram(program programs.Program) (int, error) {
	vertexShader, err := compileShader(program.VertexShader+"\x00", gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(program.FragmentShader+"\x00", gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragmentShader)

	r.program = gl.CreateProgram()
	gl.AttachShader(r.program, vertexShader)
	gl.AttachShader(r.program, fragmentShader)
	gl.BindFragDataLocation(r.program, 0, gl.Str("outputColor\x00"))
	gl.LinkProgram(r.program)

	var status int32
	gl.GetProgramiv(r.program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetProgramiv(r.program, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetProgramInfoLog(r.program, l, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to link program %v: %v", program.Name, log)
	}
	gl.UseProgram(r.program)

	block := gl.GetUniformBlockIndex(r.program, gl.Str("Params\x00"))
	if block == gl.INVALID_INDEX {
		return 0, fmt.Errorf("program %v has no Params uniform block", program.Name)
	}

	var size int32
	gl.GetActiveUniformBlockiv(r.program, block, gl.UNIFORM_BLOCK_DATA_SIZE, &size)
	if size < programs.ParamsSize || size > programs.MaxParamsSize {
		return 0, fmt.Errorf("program %v Params block is %v bytes, want %v", program.Name, size, programs.ParamsSize)
	}
	err = checkParamsLayout(r.program)
	if err != nil {
		return 0, fmt.Errorf("program %v: %w", program.Name, err)
	}
	gl.UniformBlockBinding(r.program, block, paramsBinding)

	vertexAttrib := uint32(gl.GetAttribLocation(r.program, gl.Str("vert\x00")))
	gl.BindVertexArray(r.vao)
	gl.EnableVertexAttribArray(vertexAttrib)
	gl.VertexAttribPointerWithOffset(vertexAttrib, 2, gl.FLOAT, false, 2*4, 0)

	return int(size), nil
}

// paramsOffsets are the byte offsets of the Params block members as encoded by programs.Params.
var paramsOffsets = []struct {
	name   string
	offset int32
}{
	{"width", 0},
	{"height", 4},
	{"iterations", 8},
	{"zoom", 16},
	{"middle_x", 24},
	{"middle_y", 32},
}

// checkParamsLayout verifies that the linked program reads every Params member
// at the offset it is encoded at.
func checkParamsLayout(program uint32) error {
	names := make([]string, len(paramsOffsets))
	for i, member := range paramsOffsets {
		names[i] = member.name + "\x00"
	}
	cnames, free := gl.Strs(names...)
	defer free()

	count := int32(len(paramsOffsets))
	indices := make([]uint32, count)
	gl.GetUniformIndices(program, count, cnames, &indices[0])
	for i, index := range indices {
		if index == gl.INVALID_INDEX {
			return fmt.Errorf("Params member %v is not active", paramsOffsets[i].name)
		}
	}

	offsets := make([]int32, count)
	gl.GetActiveUniformsiv(program, count, &indices[0], gl.UNIFORM_OFFSET, &offsets[0])
	for i, member := range paramsOffsets {
		if offsets[i] != member.offset {
			return fmt.Errorf("Params member %v is at offset %v, want %v", member.name, offsets[i], member.offset)
		}
	}

	return nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	defer runtime.KeepAlive(source)
	cstring, free := gl.Strs(source)
	defer free()

	shader := gl.CreateShader(shaderType)
	gl.ShaderSource(shader, 1, cstring, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetShaderInfoLog(shader, l, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("shader\n\"\n%v\n\"\nfailed to compile: %v", source, log)
	}

	return shader, nil
}

func glDebugMessage(
	source,
	gltype,
	id,
	severity uint32,
	length int32,
	message string,
	user unsafe.Pointer,
) {
	severityStr := "unknown"
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		severityStr = "high"
	case gl.DEBUG_SEVERITY_LOW:
		severityStr = "low"
	case gl.DEBUG_SEVERITY_MEDIUM:
		severityStr = "medium"
	case gl.DEBUG_SEVERITY_NOTIFICATION:
		severityStr = "notification"
	}

	sourceStr := "unknownSource"
	switch source {
	case gl.DEBUG_SOURCE_API:
		sourceStr = "api"
	case gl.DEBUG_SOURCE_APPLICATION:
		sourceStr = "application"
	case gl.DEBUG_SOURCE_OTHER:
		sourceStr = "other"
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		sourceStr = "shaderCompiler"
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		sourceStr = "thirdParty"
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		sourceStr = "windowSystem"
	}

	typeStr := "unknownType"
	switch gltype {
	case gl.DEBUG_TYPE_ERROR:
		typeStr = "error"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		typeStr = "deprecatedBehavior"
	case gl.DEBUG_TYPE_MARKER:
		typeStr = "marker"
	case gl.DEBUG_TYPE_OTHER:
		typeStr = "other"
	case gl.DEBUG_TYPE_PERFORMANCE:
		typeStr = "performance"
	case gl.DEBUG_TYPE_PORTABILITY:
		typeStr = "portability"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		typeStr = "undefinedBehavior"
	}

	log.Printf("%v(%v): %v; %v\n", sourceStr, severityStr, typeStr, message)
}
