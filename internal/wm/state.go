package wm

import "fmt"

// WindowState is the size state of a window. Exactly one holds at a time.
type WindowState int

const (
	StateNormal WindowState = iota
	StateMinimized
	StateMaximized
	StateFullScreen
)

// String returns a string representation of the window state.
func (s WindowState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateMinimized:
		return "minimized"
	case StateMaximized:
		return "maximized"
	case StateFullScreen:
		return "fullscreen"
	default:
		return "unknown"
	}
}

// ParseWindowState accepts the names produced by String.
func ParseWindowState(s string) (WindowState, error) {
	switch s {
	case "", "normal":
		return StateNormal, nil
	case "minimized":
		return StateMinimized, nil
	case "maximized":
		return StateMaximized, nil
	case "fullscreen", "full-screen":
		return StateFullScreen, nil
	}
	return StateNormal, fmt.Errorf("unknown window state %q", s)
}

func (s WindowState) valid() bool {
	return s >= StateNormal && s <= StateFullScreen
}

// ClosingBehavior governs whether a close attempt asks descendants first.
type ClosingBehavior int

const (
	// CloseOwnerOnly raises Closing on the window being closed only.
	CloseOwnerOnly ClosingBehavior = iota
	// CloseOwnerAndChildren raises Closing on every descendant first; any veto
	// aborts the whole close.
	CloseOwnerAndChildren
)

func (b ClosingBehavior) String() string {
	if b == CloseOwnerAndChildren {
		return "owner-and-children"
	}
	return "owner-only"
}

// ParseClosingBehavior accepts the names produced by String.
func ParseClosingBehavior(s string) (ClosingBehavior, error) {
	switch s {
	case "", "owner-only":
		return CloseOwnerOnly, nil
	case "owner-and-children":
		return CloseOwnerAndChildren, nil
	}
	return CloseOwnerOnly, fmt.Errorf("unknown closing behavior %q", s)
}

// CloseReason tells Closing handlers why they are being asked.
type CloseReason int

const (
	CloseReasonWindowClosing CloseReason = iota
	CloseReasonOwnerClosing
)

func (r CloseReason) String() string {
	if r == CloseReasonOwnerClosing {
		return "owner-closing"
	}
	return "window-closing"
}

// ResizeReason describes the source of a Resized notification.
type ResizeReason int

const (
	ResizeUnspecified ResizeReason = iota
	// ResizeUser is an interactive pointer or keyboard resize.
	ResizeUser
	// ResizeLayout comes from placement or a size-state transition.
	ResizeLayout
	// ResizeSurface follows a change of the surface bounds.
	ResizeSurface
)

func (r ResizeReason) String() string {
	switch r {
	case ResizeUser:
		return "user"
	case ResizeLayout:
		return "layout"
	case ResizeSurface:
		return "surface"
	default:
		return "unspecified"
	}
}

type lifecycle int

const (
	lifecycleCreated lifecycle = iota
	lifecycleShown
	lifecycleClosing
	lifecycleClosed
)

func (l lifecycle) String() string {
	switch l {
	case lifecycleShown:
		return "shown"
	case lifecycleClosing:
		return "closing"
	case lifecycleClosed:
		return "closed"
	default:
		return "created"
	}
}

// Capabilities is the small set of behaviours a window opts into.
type Capabilities struct {
	Resizable    bool // user resize, minimize, maximize
	Closable     bool // close button shown by the host
	ModalCapable bool // may be shown with ShowDialog
	FullScreen   bool // supports StateFullScreen
}

// DefaultCapabilities enables everything.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		Resizable:    true,
		Closable:     true,
		ModalCapable: true,
		FullScreen:   true,
	}
}

// MinimalCapabilities is the reduced profile without full screen support.
func MinimalCapabilities() Capabilities {
	return Capabilities{
		Resizable:    true,
		Closable:     true,
		ModalCapable: true,
	}
}

// Decorations reports which chrome the host should draw for the current state.
type Decorations struct {
	TitleBar bool
	Border   bool
}

func decorationsFor(s WindowState) Decorations {
	switch s {
	case StateMaximized:
		return Decorations{TitleBar: true}
	case StateFullScreen:
		return Decorations{}
	case StateMinimized:
		return Decorations{TitleBar: true}
	default:
		return Decorations{TitleBar: true, Border: true}
	}
}
