package history

import (
	"strings"
	"sync/atomic"
)

// Delegate is a do- or undo-function registered with Push. Arguments are
// captured by value in the closure at push time; references must not be
// retained. The return value propagates through Undo and Redo verbatim.
type Delegate func() bool

// lastID issues process-unique record ids. Id 0 is reserved for
// sentinels.
var lastID atomic.Uint64

// Record is one reversible operation on a context stack.
type Record struct {
	label    string
	id       uint64
	doFn     Delegate
	undoFn   Delegate
	owner    *Context
	sub      *Context
	mementos map[string]any
}

func newRecord(owner *Context, label string, do, undo Delegate) *Record {
	return &Record{
		label:  label,
		id:     lastID.Add(1),
		doFn:   do,
		undoFn: undo,
		owner:  owner,
	}
}

// newSentinel builds the never-executed record occupying stack index 0.
// Its delegates are nil and its id is 0.
func newSentinel(owner *Context) *Record {
	return &Record{owner: owner}
}

// Label returns the human-readable tag given to Push.
func (r *Record) Label() string {
	return r.label
}

// ID returns the record's process-unique id. Sentinels report 0.
func (r *Record) ID() uint64 {
	return r.id
}

// SubContext returns the context nested beneath this record. It holds the
// records produced while this record's do-body ran. Allocated lazily so
// sentinels stay cheap.
func (r *Record) SubContext() *Context {
	if r.sub == nil {
		r.sub = newContext(r.owner)
	}
	return r.sub
}

// invokeRedo runs the stored do-delegate. Sentinels report false.
func (r *Record) invokeRedo() bool {
	if r.doFn == nil {
		return false
	}
	return r.doFn()
}

// invokeUndo runs the stored undo-delegate. Sentinels report false.
func (r *Record) invokeUndo() bool {
	if r.undoFn == nil {
		return false
	}
	return r.undoFn()
}

// Save stores value under key in the record's memento store, overwriting
// silently. It fails when the gate is locked or during undo/redo: saves
// belong to the natural first execution only.
func Save[T any](r *Record, key string, value T) bool {
	if r == nil || locked {
		return false
	}
	if r.SubContext().IsUndoingOrRedoing() {
		return false
	}
	if r.mementos == nil {
		r.mementos = make(map[string]any)
	}
	r.mementos[key] = value
	return true
}

// Load retrieves a value previously stored with Save. It fails when the
// gate is locked, outside undo/redo, when the key is absent, or when the
// stored value is not a T. The stored value is left intact either way.
//
// Everything from the first "_Undo" in key onward is stripped before
// lookup so do- and
// undo-functions address the same slot (see the package documentation).
func Load[T any](r *Record, key string, out *T) bool {
	if r == nil || locked {
		return false
	}
	if !r.SubContext().IsUndoingOrRedoing() {
		return false
	}
	raw, ok := r.mementos[canonicalKey(key)]
	if !ok {
		return false
	}
	value, ok := raw.(T)
	if !ok {
		return false
	}
	*out = value
	return true
}

// canonicalKey strips everything from the first "_Undo" onward.
func canonicalKey(key string) string {
	if i := strings.Index(key, "_Undo"); i >= 0 {
		return key[:i]
	}
	return key
}
