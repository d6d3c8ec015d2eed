// Package history provides a tree-structured, context-aware undo/redo
// framework for interactive applications.
//
// Application code registers reversible operations as they execute; the
// framework replays them backward (undo) or forward (redo) without the
// application serializing state transitions itself. Key concepts:
//
// # Records
//
// A Record is one reversible operation: a label, a process-unique id, a
// do/undo delegate pair capturing its arguments by value, a keyed memento
// store, and a sub-context holding the records produced while its do-body
// ran. Records therefore form a tree.
//
// # Contexts
//
// A Context is an ordered stack of records with a "present" cursor.
// Index 0 is a sentinel that is never executed; present == 0 means
// everything in this context is undone. Undo and Redo move the cursor and
// invoke the record delegates; any new Push truncates the redo tail.
//
// # The active context and scoped controllers
//
// Push calls land in the process-wide active context. A PushScope,
// created right after Push at the top of a do-function, descends the
// active context into the new record's sub-context so that nested
// operations record themselves as children:
//
//	func (s *Store) Remove(key string) bool {
//	    history.GetContext().Push("Remove",
//	        func() bool { return s.Remove(key) },
//	        func() bool { return s.removeUndo(key) })
//	    scope := history.BeginPush()
//	    defer scope.End()
//	    // ... mutate state, Save mementos ...
//	    return true
//	}
//
// Undo-functions bracket their body with a PopScope the same way. The
// scopes also perform the cursor bookkeeping that keeps nested replays
// aligned during undo and redo.
//
// # Mementos
//
// Save stores auxiliary values on a record during its natural first
// execution; Load retrieves them during undo or redo. A trailing "_Undo"
// in a load key is stripped, so a do-function saving under
// "hOld<-Remove" and an undo-function loading under "hOld<-Remove_Undo"
// address the same slot.
//
// # The gate
//
// Disable silences every recording and playback operation process-wide;
// guarded calls return false or nil instead of mutating anything. Enable
// lifts the lock.
//
// All fallible operations report failure through their bool or nil
// return; the package never logs and never panics on its own behalf.
package history
