package geometry

// Edge identifies the border zone a resize session grabs.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeNorth
	EdgeSouth
	EdgeWest
	EdgeEast
	EdgeNorthWest
	EdgeNorthEast
	EdgeSouthWest
	EdgeSouthEast
)

func (e Edge) String() string {
	switch e {
	case EdgeNorth:
		return "north"
	case EdgeSouth:
		return "south"
	case EdgeWest:
		return "west"
	case EdgeEast:
		return "east"
	case EdgeNorthWest:
		return "north-west"
	case EdgeNorthEast:
		return "north-east"
	case EdgeSouthWest:
		return "south-west"
	case EdgeSouthEast:
		return "south-east"
	default:
		return "none"
	}
}

// Horizontal reports whether the edge moves the left or right side.
func (e Edge) Horizontal() bool {
	switch e {
	case EdgeWest, EdgeEast, EdgeNorthWest, EdgeNorthEast, EdgeSouthWest, EdgeSouthEast:
		return true
	}
	return false
}

// Vertical reports whether the edge moves the top or bottom side.
func (e Edge) Vertical() bool {
	switch e {
	case EdgeNorth, EdgeSouth, EdgeNorthWest, EdgeNorthEast, EdgeSouthWest, EdgeSouthEast:
		return true
	}
	return false
}

func (e Edge) west() bool  { return e == EdgeWest || e == EdgeNorthWest || e == EdgeSouthWest }
func (e Edge) north() bool { return e == EdgeNorth || e == EdgeNorthWest || e == EdgeNorthEast }

// ClassifyEdge returns the resize zone containing p for a window occupying r
// with a border hit-test thickness of t. The X zones are tested independently
// of Y and vice versa; corners are the conjunction of an X zone and a Y zone.
// When a window is narrower than two borders the west/north side wins.
func ClassifyEdge(p Point, r Rect, t int) Edge {
	if t <= 0 || r.IsEmpty() {
		return EdgeNone
	}
	left := p.X >= r.X && p.X < r.X+t
	right := !left && p.X >= r.Right()-t && p.X < r.Right()
	top := p.Y >= r.Y && p.Y < r.Y+t
	bottom := !top && p.Y >= r.Bottom()-t && p.Y < r.Bottom()

	switch {
	case top && left:
		return EdgeNorthWest
	case top && right:
		return EdgeNorthEast
	case bottom && left:
		return EdgeSouthWest
	case bottom && right:
		return EdgeSouthEast
	case top:
		return EdgeNorth
	case bottom:
		return EdgeSouth
	case left:
		return EdgeWest
	case right:
		return EdgeEast
	}
	return EdgeNone
}
