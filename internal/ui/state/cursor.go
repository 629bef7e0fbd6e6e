package state

// MoveCursor moves the cursor by delta, stopping at either end.
func (l *List) MoveCursor(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = min(max(l.Cursor+delta, 0), len(l.Items)-1)
	return l.Cursor != old
}

// CycleCursor moves the cursor by delta, wrapping around either end.
func (l *List) CycleCursor(delta int) bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = ((l.Cursor+delta)%n + n) % n
	return l.Cursor != old
}

// MoveCursorHome moves the cursor to the first match.
func (l *List) MoveCursorHome() bool {
	return l.MoveCursor(-len(l.Items))
}

// MoveCursorEnd moves the cursor to the last match.
func (l *List) MoveCursorEnd() bool {
	return l.MoveCursor(len(l.Items))
}

// MoveCursorPage moves the cursor by pages of the given height.
func (l *List) MoveCursorPage(pages, height int) bool {
	if height <= 0 || height > len(l.Items) {
		height = len(l.Items)
	}
	return l.MoveCursor(pages * max(height, 1))
}

// EnsureCursorVisible scrolls the viewport so the cursor is one of the
// height visible rows.
func (l *List) EnsureCursorVisible(height int) {
	l.clamp()
	if height <= 0 || len(l.Items) == 0 {
		l.Offset = 0
		return
	}
	maxOffset := max(len(l.Items)-height, 0)
	l.Offset = min(l.Offset, maxOffset)
	if l.Cursor < l.Offset {
		l.Offset = l.Cursor
	}
	if l.Cursor >= l.Offset+height {
		l.Offset = l.Cursor - height + 1
	}
}

// Visible returns the matches inside the viewport.
func (l *List) Visible(height int) []Entry {
	l.EnsureCursorVisible(height)
	if height <= 0 {
		return l.Items
	}
	end := min(l.Offset+height, len(l.Items))
	return l.Items[l.Offset:end]
}
