package geometry

import "fmt"

// StartupLocation selects where a window appears when first shown.
type StartupLocation int

const (
	StartupManual StartupLocation = iota
	StartupCenterScreen
	StartupCenterOwner
)

func (l StartupLocation) String() string {
	switch l {
	case StartupCenterScreen:
		return "center-screen"
	case StartupCenterOwner:
		return "center-owner"
	default:
		return "manual"
	}
}

// ParseStartupLocation accepts the names produced by String.
func ParseStartupLocation(s string) (StartupLocation, error) {
	switch s {
	case "", "manual":
		return StartupManual, nil
	case "center-screen", "center":
		return StartupCenterScreen, nil
	case "center-owner":
		return StartupCenterOwner, nil
	}
	return StartupManual, fmt.Errorf("unknown startup location %q", s)
}

// SizeToContent selects which dimensions follow the measured content.
type SizeToContent int

const (
	SizeManual SizeToContent = iota
	SizeWidth
	SizeHeight
	SizeWidthAndHeight
)

func (s SizeToContent) String() string {
	switch s {
	case SizeWidth:
		return "width"
	case SizeHeight:
		return "height"
	case SizeWidthAndHeight:
		return "width-and-height"
	default:
		return "manual"
	}
}

// ParseSizeToContent accepts the names produced by String.
func ParseSizeToContent(s string) (SizeToContent, error) {
	switch s {
	case "", "manual":
		return SizeManual, nil
	case "width":
		return SizeWidth, nil
	case "height":
		return SizeHeight, nil
	case "width-and-height", "both":
		return SizeWidthAndHeight, nil
	}
	return SizeManual, fmt.Errorf("unknown size-to-content mode %q", s)
}

// DesiredSize resolves the size a window should open with. Manual keeps the
// explicit size, falling back to the measured size for unset dimensions.
func DesiredSize(mode SizeToContent, explicit, measured Size) Size {
	pick := func(follow bool, e, m int) int {
		if follow || e <= 0 {
			return m
		}
		return e
	}
	return Size{
		Width:  pick(mode == SizeWidth || mode == SizeWidthAndHeight, explicit.Width, measured.Width),
		Height: pick(mode == SizeHeight || mode == SizeWidthAndHeight, explicit.Height, measured.Height),
	}
}

// OwnerInfo describes the owner window for CenterOwner placement.
type OwnerInfo struct {
	Bounds    Rect
	Minimized bool
}

// EffectiveLocation applies the CenterOwner fallback: without an owner, or
// with a minimized owner, the window is centred on the surface instead.
func EffectiveLocation(loc StartupLocation, owner *OwnerInfo) StartupLocation {
	if loc == StartupCenterOwner && (owner == nil || owner.Minimized) {
		return StartupCenterScreen
	}
	return loc
}

// Place returns the startup position of a window of the given size.
func Place(loc StartupLocation, current Point, size Size, surface Rect, owner *OwnerInfo) Point {
	switch EffectiveLocation(loc, owner) {
	case StartupCenterScreen:
		return surface.CenterRect(size).Position()
	case StartupCenterOwner:
		return owner.Bounds.CenterRect(size).Position()
	default:
		return current
	}
}
