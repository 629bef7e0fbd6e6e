package geometry

// Bounds limits a window's size. A zero maximum dimension is unbounded.
type Bounds struct {
	Min Size
	Max Size
}

// AllowsWidth reports whether w fits the horizontal bounds.
func (b Bounds) AllowsWidth(w int) bool {
	if w < 1 || w < b.Min.Width {
		return false
	}
	return b.Max.Width <= 0 || w <= b.Max.Width
}

// AllowsHeight reports whether h fits the vertical bounds.
func (b Bounds) AllowsHeight(h int) bool {
	if h < 1 || h < b.Min.Height {
		return false
	}
	return b.Max.Height <= 0 || h <= b.Max.Height
}

// Clamp forces s into the bounds.
func (b Bounds) Clamp(s Size) Size {
	if b.Max.Width > 0 && s.Width > b.Max.Width {
		s.Width = b.Max.Width
	}
	if b.Max.Height > 0 && s.Height > b.Max.Height {
		s.Height = b.Max.Height
	}
	if s.Width < b.Min.Width {
		s.Width = b.Min.Width
	}
	if s.Height < b.Min.Height {
		s.Height = b.Min.Height
	}
	return s
}

// ApplyResize applies a pointer delta to r for the given edge. West and north
// edges move the position and shrink the size by the delta; east and south
// edges only grow the size. An axis whose resulting size would fall outside
// the bounds is left untouched for this call, position included, while the
// other axis still applies. A zero delta returns r unchanged.
func ApplyResize(r Rect, edge Edge, dx, dy int, b Bounds) Rect {
	if edge == EdgeNone || (dx == 0 && dy == 0) {
		return r
	}
	out := r
	if edge.Horizontal() && dx != 0 {
		x, w := r.X, r.Width
		if edge.west() {
			x += dx
			w -= dx
		} else {
			w += dx
		}
		if b.AllowsWidth(w) {
			out.X, out.Width = x, w
		}
	}
	if edge.Vertical() && dy != 0 {
		y, h := r.Y, r.Height
		if edge.north() {
			y += dy
			h -= dy
		} else {
			h += dy
		}
		if b.AllowsHeight(h) {
			out.Y, out.Height = y, h
		}
	}
	return out
}
