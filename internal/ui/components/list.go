package components

// List is a scrolling window over a list of labels with an optional cursor.
type List struct {
	Items    []string
	Cursor   int // -1 when nothing is selected
	Offset   int
	PageSize int
}

// NewList creates an empty list showing pageSize items at a time.
func NewList(pageSize int) *List {
	return &List{PageSize: pageSize, Cursor: -1}
}

// SetItems replaces the items and moves the cursor to cursor, or clears it
// when cursor is out of range. The window keeps its offset when it can.
func (l *List) SetItems(items []string, cursor int) {
	l.Items = items
	l.Cursor = -1
	if l.Offset >= len(items) {
		l.Offset = max(len(items)-l.PageSize, 0)
	}
	l.Select(cursor)
}

// Visible returns the items inside the window.
func (l *List) Visible() []string {
	if len(l.Items) == 0 {
		return nil
	}
	end := min(l.Offset+l.PageSize, len(l.Items))
	return l.Items[l.Offset:end]
}

// IsSelected reports whether absIdx is the cursor.
func (l *List) IsSelected(absIdx int) bool {
	return l.Cursor >= 0 && absIdx == l.Cursor
}

// RelToAbs converts a visible index to an index into Items.
func (l *List) RelToAbs(relIdx int) int {
	return l.Offset + relIdx
}

// Select moves the cursor to idx, scrolling so it stays visible. An index
// outside the items leaves the cursor unchanged.
func (l *List) Select(idx int) {
	if idx < 0 || idx >= len(l.Items) {
		return
	}
	l.Cursor = idx
	if l.PageSize <= 0 {
		return
	}
	if l.Cursor < l.Offset {
		l.Offset = l.Cursor
	}
	if l.Cursor >= l.Offset+l.PageSize {
		l.Offset = l.Cursor - l.PageSize + 1
	}
}
