package objects

import (
	"slices"

	"github.com/dshills/rewind/history"
)

// SetStore maps names to integer sets and is the richest showcase host.
// SetObject has a branching undo (restore the previous set, or remove the
// key if there was none), and MergeObjects composes Remove and Set as
// sub-records inside its own push scope.
type SetStore struct {
	ctx     *history.Context
	objects map[string]IntSet
}

// NewSetStore creates the store with its own root context and makes that
// context active.
func NewSetStore() *SetStore {
	s := &SetStore{
		ctx:     history.NewContext(),
		objects: make(map[string]IntSet),
	}
	history.SetContext(s.ctx)
	return s
}

// Context returns the store's root context.
func (s *SetStore) Context() *history.Context {
	return s.ctx
}

// Get returns a copy of the set stored under key.
func (s *SetStore) Get(key string) (IntSet, bool) {
	v, ok := s.objects[key]
	if !ok {
		return nil, false
	}
	return v.Clone(), true
}

// Len returns the number of entries.
func (s *SetStore) Len() int {
	return len(s.objects)
}

// Keys returns the stored keys in ascending order.
func (s *SetStore) Keys() []string {
	out := make([]string, 0, len(s.objects))
	for k := range s.objects {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// SetObject stores values under key. The previous set, if any, is saved
// so undo can tell modification apart from insertion.
func (s *SetStore) SetObject(key string, values IntSet) bool {
	values = values.Clone()

	history.GetContext().Push("SetObject",
		func() bool { return s.SetObject(key, values) },
		func() bool { return s.setObjectUndo(key) })
	scope := history.BeginPush()
	defer scope.End()

	if old, exists := s.objects[key]; exists {
		hOldValues := old.Clone()
		saveVar(memKey("hOldValues", "SetObject"), hOldValues)
	}

	s.objects[key] = values.Clone()
	return true
}

func (s *SetStore) setObjectUndo(key string) bool {
	scope := history.BeginPop()
	defer scope.End()

	var hOldValues IntSet
	if loadVar(memKey("hOldValues", "SetObject_Undo"), &hOldValues) {
		// Old values loaded: this undoes a modification.
		s.SetObject(key, hOldValues)
	} else {
		// Nothing saved: this undoes an insertion.
		s.RemoveObject(key)
	}
	return true
}

// RemoveObject erases key, saving the erased set for undo.
func (s *SetStore) RemoveObject(key string) bool {
	history.GetContext().Push("RemoveObject",
		func() bool { return s.RemoveObject(key) },
		func() bool { return s.removeObjectUndo(key) })
	scope := history.BeginPush()
	defer scope.End()

	hOldValue := s.objects[key].Clone()
	saveVar(memKey("hOldValue", "RemoveObject"), hOldValue)

	delete(s.objects, key)
	return true
}

func (s *SetStore) removeObjectUndo(key string) bool {
	scope := history.BeginPop()
	defer scope.End()

	var hOldValue IntSet
	loadVar(memKey("hOldValue", "RemoveObject_Undo"), &hOldValue)

	s.SetObject(key, hOldValue)
	return true
}

// MergeObjects removes the source keys and stores their union under
// newKey, as sub-records of the merge: one remove per source key, then
// one set. The union is computed once
// during the first execution and saved; redo loads it instead of
// recomputing from state that no longer exists.
func (s *SetStore) MergeObjects(keys []string, newKey string) bool {
	keys = slices.Clone(keys)

	history.GetContext().Push("MergeObjects",
		func() bool { return s.MergeObjects(keys, newKey) },
		func() bool { return s.mergeObjectsUndo(keys, newKey) })
	scope := history.BeginPush()
	defer scope.End()

	var hNewValues IntSet
	if !loadVar(memKey("hNewValues", "MergeObjects"), &hNewValues) {
		hNewValues = NewIntSet()
		for _, key := range keys {
			hNewValues = hNewValues.Union(s.objects[key])
		}
		saveVar(memKey("hNewValues", "MergeObjects"), hNewValues.Clone())
	}

	for _, key := range keys {
		s.RemoveObject(key)
	}
	s.SetObject(newKey, hNewValues)
	return true
}

func (s *SetStore) mergeObjectsUndo(keys []string, newKey string) bool {
	scope := history.BeginPop()
	defer scope.End()

	// Stack unwinding: reverse the do-body's step order.
	s.setObjectUndo(newKey)
	for i := len(keys) - 1; i >= 0; i-- {
		s.removeObjectUndo(keys[i])
	}
	return true
}
