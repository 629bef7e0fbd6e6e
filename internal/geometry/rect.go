// Package geometry holds the pure functions behind window placement and
// resizing: rectangles, resize-edge classification, clamped resize deltas and
// startup placement. Nothing in here keeps state.
package geometry

import "fmt"

// Point is a position in surface coordinates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the delta from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// IsZero reports whether both coordinates are zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Size is a width/height pair. A zero dimension means "not set".
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// IsEmpty reports whether either dimension is unset.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Rect is a position plus size.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RectFrom builds a rectangle from a position and a size.
func RectFrom(pos Point, size Size) Rect {
	return Rect{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}
}

// Position returns the top-left corner.
func (r Rect) Position() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the dimensions of r.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Translate returns r moved by d.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// WithPosition returns r moved so its top-left corner is p.
func (r Rect) WithPosition(p Point) Rect {
	r.X = p.X
	r.Y = p.Y
	return r
}

// WithSize returns r resized to s, keeping its position.
func (r Rect) WithSize(s Size) Rect {
	r.Width = s.Width
	r.Height = s.Height
	return r
}

// CenterRect returns a rectangle of the given size centred within r.
func (r Rect) CenterRect(size Size) Rect {
	return Rect{
		X:      r.X + (r.Width-size.Width)/2,
		Y:      r.Y + (r.Height-size.Height)/2,
		Width:  size.Width,
		Height: size.Height,
	}
}

// Scale returns a rectangle with the same centre as r and its dimensions
// multiplied by f.
func (r Rect) Scale(f float64) Rect {
	size := Size{Width: int(float64(r.Width) * f), Height: int(float64(r.Height) * f)}
	return r.CenterRect(size)
}

// Intersect returns the overlap between r and o, or an empty rect.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Lerp interpolates between from and to; t is clamped to [0,1].
func Lerp(from, to Rect, t float64) Rect {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}
	mix := func(a, b int) int {
		return a + int(float64(b-a)*t)
	}
	return Rect{
		X:      mix(from.X, to.X),
		Y:      mix(from.Y, to.Y),
		Width:  mix(from.Width, to.Width),
		Height: mix(from.Height, to.Height),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", r.X, r.Y, r.Width, r.Height)
}
