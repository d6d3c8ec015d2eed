package objects

import "github.com/dshills/rewind/history"

// IntList is the simplest showcase host: an append-only list of zeros
// with a reversible AddNew.
type IntList struct {
	ctx   *history.Context
	items []int
}

// NewIntList creates the list with its own root context and makes that
// context active.
func NewIntList() *IntList {
	l := &IntList{ctx: history.NewContext()}
	history.SetContext(l.ctx)
	return l
}

// Context returns the list's root context.
func (l *IntList) Context() *history.Context {
	return l.ctx
}

// Len returns the number of items.
func (l *IntList) Len() int {
	return len(l.items)
}

// Items returns a copy of the list contents.
func (l *IntList) Items() []int {
	out := make([]int, len(l.items))
	copy(out, l.items)
	return out
}

// AddNew appends a zero to the list.
func (l *IntList) AddNew() bool {
	history.GetContext().Push("AddNew", l.AddNew, l.addNewUndo)
	scope := history.BeginPush()
	defer scope.End()

	l.items = append(l.items, 0)
	return true
}

func (l *IntList) addNewUndo() bool {
	scope := history.BeginPop()
	defer scope.End()

	l.items = l.items[:len(l.items)-1]
	return true
}
