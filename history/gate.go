package history

// Process-wide recording gate: the active context receiving Push calls,
// and the lock that silences all history operations.
//
// Both are intended to be mutated from a single driving thread (typically
// the UI thread). Push and pop scopes swap the active context as nested
// operations begin and end.
var (
	activeContext *Context
	locked        bool
)

// GetContext returns the context that currently receives Push calls.
// Set a context before using any history operation.
func GetContext() *Context {
	return activeContext
}

// SetContext makes ctx the active context.
func SetContext(ctx *Context) {
	activeContext = ctx
}

// Disable blocks all history operations until Enable is called. While
// disabled, mutating operations are no-ops and queries return neutral
// values (false or nil).
func Disable() {
	locked = true
}

// Enable lifts the lock set by Disable.
func Enable() {
	locked = false
}

// RootContext ascends from the active context to the one without a
// parent. Returns nil if no context has been set.
func RootContext() *Context {
	ctx := GetContext()
	if ctx == nil {
		return nil
	}
	for ctx.Parent() != nil {
		ctx = ctx.Parent()
	}
	return ctx
}
