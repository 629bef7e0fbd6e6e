package state

import "slices"

// Entry is one selectable row of a List.
type Entry struct {
	ID    string
	Label string
	// Detail holds extra columns shown next to the label.
	Detail []string
}

// List tracks a set of entries narrowed by a filter query, with a cursor and
// a viewport over the matches.
type List struct {
	ID           string
	Items        []Entry
	Filter       string
	FilterCursor int
	Cursor       int
	Offset       int

	all         []Entry
	savedCursor int
}

// NewList builds a list over entries with an empty filter.
func NewList(id string, entries []Entry) *List {
	l := &List{ID: id, savedCursor: -1}
	l.SetEntries(entries)
	return l
}

// SetEntries replaces the entries. The cursor stays on the selected entry if
// it still matches the filter.
func (l *List) SetEntries(entries []Entry) {
	prev, hadPrev := l.Selected()
	l.all = slices.Clone(entries)
	l.Items = FilterEntries(l.all, l.Filter)
	if hadPrev {
		if idx := l.IndexOf(prev.ID); idx >= 0 {
			l.Cursor = idx
		}
	}
	l.clamp()
}

// Entries returns every entry regardless of the filter.
func (l *List) Entries() []Entry { return slices.Clone(l.all) }

// Len returns the number of entries matching the filter.
func (l *List) Len() int { return len(l.Items) }

// IndexOf returns the position of id among the matches, or -1.
func (l *List) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(l.Items, func(e Entry) bool { return e.ID == id })
}

// Selected returns the entry under the cursor.
func (l *List) Selected() (Entry, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Entry{}, false
	}
	return l.Items[l.Cursor], true
}

func (l *List) clamp() {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		l.Offset = 0
		return
	}
	l.Cursor = min(max(l.Cursor, 0), n-1)
	l.Offset = min(max(l.Offset, 0), n-1)
}
