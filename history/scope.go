package history

// PushScope brackets the body of a do-function. BeginPush descends the
// active context into the present record's sub-context so nested
// operations record themselves as children; End ascends and performs the
// cursor bookkeeping that keeps redo replays aligned.
//
// The scope must cover every exit from the do-body:
//
//	ctx.Push("Merge", doFn, undoFn)
//	scope := history.BeginPush()
//	defer scope.End()
//
// End is idempotent; Abort (or an early End plus AbortPush) implements
// the abort protocol.
type PushScope struct {
	active bool
}

// BeginPush acquires the scope. No-op while the gate is locked, and
// during undo — there the undo-body's PopScope handles the descent
// instead.
func BeginPush() *PushScope {
	s := &PushScope{active: true}
	if locked {
		return s
	}
	ctx := GetContext()
	if ctx.IsUndoing() {
		return s
	}
	SetContext(ctx.Present().SubContext())
	return s
}

// End releases the scope: ascends to the parent context and either
// advances its cursor (during redo, where Push was skipped because the
// record already exists) or fires its observer to signal completion of
// the operation. Safe to call more than once; only the first call has
// effect.
func (s *PushScope) End() {
	if locked || !s.active {
		return
	}
	ctx := GetContext()
	if ctx.IsUndoing() {
		return
	}

	parent := ctx.parent
	SetContext(parent)

	switch {
	case parent.parent != nil && parent.IsRedoing() && parent.present < len(parent.stack)-1:
		parent.present++
	case !parent.IsRedoing():
		parent.notify(parent.present)
	}

	s.active = false
}

// Abort releases the scope early without notifying observers and removes
// the record from the parent context. Call it when the do-body decides
// the operation did nothing observable; the deferred End then no-ops.
func (s *PushScope) Abort() {
	if locked || !s.active {
		return
	}
	ctx := GetContext()
	if ctx.IsUndoing() {
		return
	}

	parent := ctx.parent
	SetContext(parent)
	s.active = false

	parent.AbortPush()
}

// PopScope brackets the body of an undo-function, symmetric to
// PushScope. Construct it first thing in the undo-body:
//
//	scope := history.BeginPop()
//	defer scope.End()
type PopScope struct{}

// BeginPop descends the active context into the present record's
// sub-context. No-op while the gate is locked.
func BeginPop() *PopScope {
	s := &PopScope{}
	if locked {
		return s
	}
	ctx := GetContext()
	SetContext(ctx.Present().SubContext())
	return s
}

// End ascends to the parent context and, when that context is itself a
// sub-context whose cursor is above 1, retreats its cursor — the step an
// outer undo would have performed. The cursor is never retreated below 1.
func (s *PopScope) End() {
	if locked {
		return
	}
	ctx := GetContext()

	parent := ctx.parent
	SetContext(parent)

	if parent.parent != nil && parent.present > 1 {
		parent.present--
	}
}
