package objects

import "github.com/dshills/rewind/history"

// memKey builds the memento key for a variable saved inside a named
// function. Undo-functions append "_Undo" to the function name; the core
// strips it on load so both sides address the same slot.
func memKey(name, fn string) string {
	return name + "<-" + fn
}

// currentRecord resolves the record whose do- or undo-body is running:
// the present record of the active context's parent. Nil while the gate
// is locked or outside a scope.
func currentRecord() *history.Record {
	ctx := history.GetContext()
	if ctx == nil {
		return nil
	}
	parent := ctx.Parent()
	if parent == nil {
		return nil
	}
	return parent.Present()
}

// saveVar stores value on the current record.
func saveVar[T any](key string, value T) bool {
	return history.Save(currentRecord(), key, value)
}

// loadVar retrieves a value from the current record.
func loadVar[T any](key string, out *T) bool {
	return history.Load(currentRecord(), key, out)
}
