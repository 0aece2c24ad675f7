package state

// List tracks a filtered item list and a cursor into the visible items.
type List struct {
	Full   []Item
	Items  []Item
	Filter string
	Cursor int
}

// NewList builds a list showing every item with the cursor on the first.
func NewList(items []Item) *List {
	l := &List{}
	l.SetItems(items)
	return l
}

// SetItems replaces the full item set and reapplies the current filter.
func (l *List) SetItems(items []Item) {
	l.Full = CloneItems(items)
	l.SetFilter(l.Filter)
}

// SetFilter narrows the visible items and moves the cursor to the best match.
func (l *List) SetFilter(query string) {
	l.Filter = query
	l.Items = FilterItems(l.Full, query)
	l.Cursor = BestMatchIndex(l.Items, query)
	if l.Cursor < 0 {
		l.Cursor = 0
	}
}

// Move shifts the cursor by delta, wrapping at either end. It reports
// whether the cursor changed.
func (l *List) Move(delta int) bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = ((l.Cursor+delta)%n + n) % n
	return l.Cursor != old
}

// Current returns the item under the cursor.
func (l *List) Current() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}
