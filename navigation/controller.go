// Package navigation turns window input into changes of the view parameters.
package navigation

import (
	"github.com/stewi1014/glmandel/programs"
)

// Surface is the output the view is drawn to.
type Surface interface {
	// Configure resizes the surface. It is only called with non-zero dimensions.
	Configure(width, height uint32)
}

type Config struct {
	InitialIterations uint32
	IterationStep     uint32
}

func DefaultConfig() Config {
	return Config{
		InitialIterations: 100,
		IterationStep:     100,
	}
}

// Controller owns the view parameters and updates them in response to events.
// It is not safe for concurrent use; the event loop is its only caller.
type Controller struct {
	config  Config
	surface Surface
	params  programs.Params

	mouseX, mouseY float64
	exited         bool
}

func NewController(surface Surface, width, height uint32, config Config) *Controller {
	return &Controller{
		config:  config,
		surface: surface,
		params:  programs.NewParams(width, height, config.InitialIterations),
	}
}

// Params returns a copy of the current view parameters.
func (c *Controller) Params() programs.Params {
	return c.params
}

func (c *Controller) Exited() bool {
	return c.exited
}

// Handle applies event to the view. Once ActionExit has been returned,
// every further event is ignored.
func (c *Controller) Handle(event Event) Action {
	if c.exited {
		return ActionNone
	}

	switch e := event.(type) {
	case Resize:
		c.resize(e.Width, e.Height)

	case CloseRequest:
		return c.exit()

	case CursorMove:
		c.mouseX, c.mouseY = e.X, e.Y

	case KeyPress:
		switch e.Key {
		case KeyEscape:
			return c.exit()
		case KeyUp:
			c.params.Iterations += c.config.IterationStep
		case KeyDown:
			if c.params.Iterations < c.config.IterationStep {
				c.params.Iterations = 0
			} else {
				c.params.Iterations -= c.config.IterationStep
			}
		}

	case ButtonPress:
		switch e.Button {
		case ButtonLeft:
			c.zoomIn()
		case ButtonRight:
			c.params.Zoom *= 2
		}

	case Idle:
		return ActionRedraw
	}

	return ActionNone
}

func (c *Controller) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	c.params.Width, c.params.Height = uint32(width), uint32(height)
	if c.surface != nil {
		c.surface.Configure(c.params.Width, c.params.Height)
	}
}

// zoomIn recentres the view on the cursor and halves the window.
func (c *Controller) zoomIn() {
	centre := programs.PixelToPlane(c.params, c.mouseX, c.mouseY)
	c.params.MiddleX, c.params.MiddleY = centre[0], centre[1]
	c.params.Zoom /= 2
}

func (c *Controller) exit() Action {
	c.exited = true
	return ActionExit
}
