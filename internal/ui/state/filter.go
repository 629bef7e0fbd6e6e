package state

import (
	"slices"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter replaces the query and places the filter cursor at cursor. While
// a query is set the cursor jumps to the best match; clearing the query
// returns the cursor to where it was before filtering began.
func (l *List) SetFilter(query string, cursor int) {
	wasFiltered := strings.TrimSpace(l.Filter) != ""
	trimmed := strings.TrimSpace(query)
	l.Filter = query
	l.FilterCursor = min(max(cursor, 0), len([]rune(query)))
	l.Items = FilterEntries(l.all, query)
	switch {
	case trimmed != "":
		if !wasFiltered {
			l.savedCursor = l.Cursor
		}
		l.Cursor = max(BestMatch(l.Items, trimmed), 0)
		l.Offset = 0
	case wasFiltered:
		l.Cursor = l.savedCursor
		l.savedCursor = -1
	}
	l.clamp()
}

// FilterCursorPos returns the filter cursor as a rune offset.
func (l *List) FilterCursorPos() int {
	return min(max(l.FilterCursor, 0), len([]rune(l.Filter)))
}

func (l *List) editFilter(edit func(runes []rune, pos int) ([]rune, int)) bool {
	runes := []rune(l.Filter)
	next, pos := edit(runes, l.FilterCursorPos())
	if next == nil {
		return false
	}
	l.SetFilter(string(next), pos)
	return true
}

// InsertFilterText inserts text at the filter cursor.
func (l *List) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	return l.editFilter(func(runes []rune, pos int) ([]rune, int) {
		return slices.Insert(runes, pos, insert...), pos + len(insert)
	})
}

// DeleteFilterRuneBackward removes the rune before the filter cursor.
func (l *List) DeleteFilterRuneBackward() bool {
	return l.editFilter(func(runes []rune, pos int) ([]rune, int) {
		if pos == 0 {
			return nil, pos
		}
		return slices.Delete(runes, pos-1, pos), pos - 1
	})
}

// DeleteFilterWordBackward removes the word before the filter cursor.
func (l *List) DeleteFilterWordBackward() bool {
	return l.editFilter(func(runes []rune, pos int) ([]rune, int) {
		start := wordStart(runes, pos)
		if start == pos {
			return nil, pos
		}
		return slices.Delete(runes, start, pos), start
	})
}

// MoveFilterCursor moves the filter cursor by delta runes.
func (l *List) MoveFilterCursor(delta int) bool {
	pos := l.FilterCursorPos()
	next := min(max(pos+delta, 0), len([]rune(l.Filter)))
	l.FilterCursor = next
	return next != pos
}

// MoveFilterCursorWord moves the filter cursor one word backward (dir < 0)
// or forward.
func (l *List) MoveFilterCursorWord(dir int) bool {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	next := wordEnd(runes, pos)
	if dir < 0 {
		next = wordStart(runes, pos)
	}
	l.FilterCursor = next
	return next != pos
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}

func wordEnd(runes []rune, pos int) int {
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	return i
}

// FilterEntries returns the entries whose label fuzzy-matches query, closest
// match first. When nothing matches fuzzily, entries containing query in
// their label or id are returned in their original order.
func FilterEntries(entries []Entry, query string) []Entry {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return slices.Clone(entries)
	}
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) > 0 {
		slices.SortStableFunc(ranks, func(a, b fuzzy.Rank) int {
			if a.Distance != b.Distance {
				return a.Distance - b.Distance
			}
			return a.OriginalIndex - b.OriginalIndex
		})
		out := make([]Entry, 0, len(ranks))
		for _, r := range ranks {
			out = append(out, entries[r.OriginalIndex])
		}
		return out
	}
	lower := strings.ToLower(trimmed)
	var out []Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Label), lower) || strings.Contains(strings.ToLower(e.ID), lower) {
			out = append(out, e)
		}
	}
	return out
}

// BestMatch returns the index of the entry that best matches query: an exact
// label, then a label prefix, then the first entry. It returns -1 for an
// empty slice.
func BestMatch(entries []Entry, query string) int {
	if len(entries) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	if i := slices.IndexFunc(entries, func(e Entry) bool { return strings.EqualFold(e.Label, trimmed) }); i >= 0 {
		return i
	}
	lower := strings.ToLower(trimmed)
	if i := slices.IndexFunc(entries, func(e Entry) bool { return strings.HasPrefix(strings.ToLower(e.Label), lower) }); i >= 0 {
		return i
	}
	return 0
}
