package navigation

// Event is an input or window event delivered to the Controller.
type Event interface {
	event()
}

// Resize reports the new framebuffer size in pixels.
type Resize struct {
	Width, Height int
}

// CloseRequest is sent when the window system asks the window to close.
type CloseRequest struct{}

type KeyPress struct {
	Key Key
}

// CursorMove reports the cursor position in framebuffer pixels, origin top left.
type CursorMove struct {
	X, Y float64
}

type ButtonPress struct {
	Button Button
}

// Idle is sent once per loop iteration after pending events are handled.
type Idle struct{}

func (Resize) event()       {}
func (CloseRequest) event() {}
func (KeyPress) event()     {}
func (CursorMove) event()   {}
func (ButtonPress) event()  {}
func (Idle) event()         {}

type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyUp
	KeyDown
)

type Button int

const (
	ButtonUnknown Button = iota
	ButtonLeft
	ButtonRight
)

// Action tells the event loop what to do after an event was handled.
type Action int

const (
	ActionNone Action = iota
	ActionRedraw
	ActionExit
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionRedraw:
		return "redraw"
	case ActionExit:
		return "exit"
	}
	return "unknown"
}
