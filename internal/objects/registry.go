package objects

import "github.com/dshills/rewind/history"

// Registry maps names to ints with reversible add and remove. Remove
// demonstrates the memento protocol: the erased value is saved during
// the natural first execution and loaded back during undo.
type Registry struct {
	ctx     *history.Context
	objects map[string]int
}

// NewRegistry creates the registry with its own root context and makes
// that context active.
func NewRegistry() *Registry {
	r := &Registry{
		ctx:     history.NewContext(),
		objects: make(map[string]int),
	}
	history.SetContext(r.ctx)
	return r
}

// Context returns the registry's root context.
func (r *Registry) Context() *history.Context {
	return r.ctx
}

// Get looks up a value.
func (r *Registry) Get(key string) (int, bool) {
	v, ok := r.objects[key]
	return v, ok
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.objects)
}

// Keys returns the stored keys in unspecified order.
func (r *Registry) Keys() []string {
	out := make([]string, 0, len(r.objects))
	for k := range r.objects {
		out = append(out, k)
	}
	return out
}

// AddObject inserts key with value. Returns false without recording
// anything if the key already exists.
func (r *Registry) AddObject(key string, value int) bool {
	if _, exists := r.objects[key]; exists {
		return false
	}

	history.GetContext().Push("AddObject",
		func() bool { return r.AddObject(key, value) },
		func() bool { return r.addObjectUndo(key) })
	scope := history.BeginPush()
	defer scope.End()

	r.objects[key] = value
	return true
}

func (r *Registry) addObjectUndo(key string) bool {
	scope := history.BeginPop()
	defer scope.End()

	delete(r.objects, key)
	return true
}

// RemoveObject erases key, saving the erased value for undo.
func (r *Registry) RemoveObject(key string) bool {
	history.GetContext().Push("RemoveObject",
		func() bool { return r.RemoveObject(key) },
		func() bool { return r.removeObjectUndo(key) })
	scope := history.BeginPush()
	defer scope.End()

	hOldValue := r.objects[key]
	saveVar(memKey("hOldValue", "RemoveObject"), hOldValue)

	delete(r.objects, key)
	return true
}

func (r *Registry) removeObjectUndo(key string) bool {
	scope := history.BeginPop()
	defer scope.End()

	var hOldValue int
	loadVar(memKey("hOldValue", "RemoveObject_Undo"), &hOldValue)

	return r.AddObject(key, hOldValue)
}
