package main

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stewi1014/glmandel/navigation"
)

// NewRenderWindow opens the window and makes its OpenGL context current.
// glfw must be initialised and the calling goroutine locked to its thread.
func NewRenderWindow(config WindowConfig) (*RenderWindow, error) {
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if config.Debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}

	width, height := config.Width, config.Height
	var monitor *glfw.Monitor
	if config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		if monitor == nil {
			return nil, fmt.Errorf("glfw.GetPrimaryMonitor: no monitor connected")
		}

		// Matching the current video mode gives a borderless window
		// instead of a mode switch.
		mode := monitor.GetVideoMode()
		glfw.WindowHint(glfw.RedBits, mode.RedBits)
		glfw.WindowHint(glfw.GreenBits, mode.GreenBits)
		glfw.WindowHint(glfw.BlueBits, mode.BlueBits)
		glfw.WindowHint(glfw.RefreshRate, mode.RefreshRate)
		width, height = mode.Width, mode.Height
	}

	window, err := glfw.CreateWindow(
		width,
		height,
		config.Title,
		monitor,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("glfw.CreateWindow failed: %w", err)
	}

	w := &RenderWindow{
		Window: window,
	}

	w.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w.SetFramebufferSizeCallback(w.resize)
	w.SetCloseCallback(w.close)
	w.SetKeyCallback(w.key)
	w.SetCursorPosCallback(w.cursor)
	w.SetMouseButtonCallback(w.button)

	return w, nil
}

// RenderWindow queues glfw callbacks as navigation events
// until the event loop collects them with PollEvents.
type RenderWindow struct {
	*glfw.Window
	events []navigation.Event
}

// PollEvents processes pending window system events and returns them in arrival order.
// The returned slice is only valid until the next call.
func (w *RenderWindow) PollEvents() []navigation.Event {
	w.events = w.events[:0]
	glfw.PollEvents()
	return w.events
}

// FramebufferSize returns the drawable size in pixels.
func (w *RenderWindow) FramebufferSize() (width, height uint32) {
	fw, fh := w.GetFramebufferSize()
	return uint32(max(fw, 0)), uint32(max(fh, 0))
}

func (w *RenderWindow) resize(_ *glfw.Window, width, height int) {
	w.events = append(w.events, navigation.Resize{Width: width, Height: height})
}

func (w *RenderWindow) close(_ *glfw.Window) {
	w.events = append(w.events, navigation.CloseRequest{})
}

func (w *RenderWindow) key(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}

	var k navigation.Key
	switch key {
	case glfw.KeyEscape:
		k = navigation.KeyEscape
	case glfw.KeyUp:
		k = navigation.KeyUp
	case glfw.KeyDown:
		k = navigation.KeyDown
	default:
		return
	}
	w.events = append(w.events, navigation.KeyPress{Key: k})
}

// cursor converts glfw's screen coordinates into framebuffer pixels,
// which differ on high DPI displays.
func (w *RenderWindow) cursor(_ *glfw.Window, x, y float64) {
	ww, wh := w.GetSize()
	fw, fh := w.GetFramebufferSize()
	if ww > 0 && wh > 0 {
		x *= float64(fw) / float64(ww)
		y *= float64(fh) / float64(wh)
	}
	w.events = append(w.events, navigation.CursorMove{X: x, Y: y})
}

func (w *RenderWindow) button(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}

	var b navigation.Button
	switch button {
	case glfw.MouseButtonLeft:
		b = navigation.ButtonLeft
	case glfw.MouseButtonRight:
		b = navigation.ButtonRight
	default:
		return
	}
	w.events = append(w.events, navigation.ButtonPress{Button: b})
}
