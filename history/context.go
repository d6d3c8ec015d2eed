package history

import (
	"strings"
	"sync"
)

// Context is a node in the history tree: an ordered stack of records with
// a present cursor. Stack index 0 holds a sentinel that is never
// executed; real records occupy indices 1..N. Records strictly above the
// cursor form the redo tail.
//
// The mutex serializes Undo and Redo on this context; everything else
// follows the single-driving-thread contract described in the package
// documentation.
type Context struct {
	mu sync.Mutex

	stack   []*Record
	present int

	// Parent back-pointer. The parent is never owned by the child;
	// ownership flows parent -> record -> sub-context.
	parent *Context

	// Set only for the duration of an Undo or Redo call on this context.
	undoing bool
	redoing bool

	onStackChanged func(present int)
}

// NewContext creates a root context. Sub-contexts are created by their
// owning records.
func NewContext() *Context {
	return newContext(nil)
}

func newContext(parent *Context) *Context {
	return &Context{
		stack:  make([]*Record, 1),
		parent: parent,
	}
}

// at returns the record at index i, materializing the sentinel on first
// access. Only index 0 can hold nil.
func (c *Context) at(i int) *Record {
	if c.stack[i] == nil {
		c.stack[i] = newSentinel(c)
	}
	return c.stack[i]
}

// Push creates a new record capturing do and undo and appends it at the
// cursor, truncating the redo tail first. No-op while the gate is locked
// or while this context or any ancestor is undoing or redoing — during a
// replay the record already exists.
func (c *Context) Push(label string, do, undo Delegate) {
	if locked {
		return
	}
	if c.IsUndoingOrRedoing() {
		return
	}
	c.prePush()
	c.stack = append(c.stack, newRecord(c, label, do, undo))
}

// prePush advances the cursor and drops every record above it.
func (c *Context) prePush() {
	c.present++
	c.stack = c.stack[:c.present]
}

// AbortPush removes the most recently pushed record and retreats the
// cursor. Used when a do-body decides the operation did nothing
// observable. No-op under the same conditions as Push.
func (c *Context) AbortPush() {
	if locked {
		return
	}
	if c.IsUndoingOrRedoing() {
		return
	}
	c.present--
	c.stack = c.stack[:len(c.stack)-1]
}

// Undo reverses the present record and retreats the cursor. Returns the
// undo-delegate's result, or false when the gate is locked or everything
// is already undone.
//
// The cursor still points at the record while its undo-body runs; pop
// scopes inside the body rely on that, and push scopes and Load inside it
// rely on the undoing flag.
func (c *Context) Undo() bool {
	if locked {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.present == 0 {
		return false
	}

	c.undoing = true
	result := c.stack[c.present].invokeUndo()
	c.present--
	c.undoing = false

	c.notify(c.present)
	return result
}

// Redo replays the next record and advances the cursor. Returns the
// do-delegate's result, or false when the gate is locked or there is
// nothing to redo.
//
// The cursor is advanced before the body runs so that push scopes inside
// the body descend into the record being replayed.
func (c *Context) Redo() bool {
	if locked {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.present == len(c.stack)-1 {
		return false
	}

	c.redoing = true
	c.present++
	result := c.stack[c.present].invokeRedo()
	c.redoing = false

	c.notify(c.present)
	return result
}

// IsUndoing reports whether this context or any ancestor is inside an
// Undo call.
func (c *Context) IsUndoing() bool {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if ctx.undoing {
			return true
		}
	}
	return false
}

// IsRedoing reports whether this context or any ancestor is inside a
// Redo call.
func (c *Context) IsRedoing() bool {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if ctx.redoing {
			return true
		}
	}
	return false
}

// IsUndoingOrRedoing reports whether either replay direction is active on
// this context or any ancestor.
func (c *Context) IsUndoingOrRedoing() bool {
	return c.IsUndoing() || c.IsRedoing()
}

// Present returns the record at the cursor, or nil while the gate is
// locked. At cursor 0 this is the sentinel.
func (c *Context) Present() *Record {
	if locked {
		return nil
	}
	return c.at(c.present)
}

// PeekFuture returns the record that Redo would replay next, nil if the
// redo tail is empty or the gate is locked.
func (c *Context) PeekFuture() *Record {
	if locked {
		return nil
	}
	if c.present < len(c.stack)-1 {
		return c.at(c.present + 1)
	}
	return nil
}

// Parent returns the enclosing context, nil on the root or while the
// gate is locked.
func (c *Context) Parent() *Context {
	if locked {
		return nil
	}
	return c.parent
}

// StackView returns a snapshot of the stack, sentinel included. The
// returned slice is the caller's; the records are shared.
func (c *Context) StackView() []*Record {
	out := make([]*Record, len(c.stack))
	for i := range c.stack {
		out[i] = c.at(i)
	}
	return out
}

// Dump renders the stack top-down for debugging, marking the present
// record and recursing into sub-contexts with increased indentation.
func (c *Context) Dump(indent int) string {
	var b strings.Builder
	tabs := strings.Repeat("\t", indent)
	for i := len(c.stack) - 1; i > 0; i-- {
		b.WriteString(tabs)
		b.WriteString(c.stack[i].label)
		if i == c.present {
			b.WriteString(" <<<")
		}
		b.WriteByte('\n')
		if sub := c.stack[i].sub; sub != nil {
			b.WriteString(sub.Dump(indent + 1))
		}
	}
	return b.String()
}

// BindOnStackChanged registers the single observer invoked with the new
// cursor after push completion, undo, redo, and clear. A later bind
// replaces the previous observer. No-op while the gate is locked.
func (c *Context) BindOnStackChanged(fn func(present int)) {
	if locked {
		return
	}
	c.onStackChanged = fn
}

// UnbindOnStackChanged removes the observer.
func (c *Context) UnbindOnStackChanged() {
	c.onStackChanged = nil
}

func (c *Context) notify(present int) {
	if c.onStackChanged != nil {
		c.onStackChanged(present)
	}
}

// Clear wipes the stack back to a lone sentinel and fires the observer.
func (c *Context) Clear() {
	if locked {
		return
	}
	c.present = 0
	c.stack = make([]*Record, 1)
	c.notify(0)
}
