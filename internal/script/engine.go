// Package script embeds a sandboxed Lua runtime that drives the rewind
// showcase stores. Scripts get a store module for mutations and a hist
// module for undo/redo, making scripted history sessions repeatable.
package script

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// ErrClosed is returned by DoFile and DoString after Close.
var ErrClosed = errors.New("script: engine closed")

// Engine wraps a gopher-lua state.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes access
// from Go, and Lua execution itself is single-threaded.
type Engine struct {
	mu sync.Mutex

	L       *lua.LState
	timeout time.Duration
	closed  bool
}

// New creates a sandboxed engine. Only the base, table, string, and math
// libraries are opened; io, os, debug, and package stay out. A zero
// timeout means executions are unbounded.
func New(timeout time.Duration) *Engine {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	return &Engine{
		L:       L,
		timeout: timeout,
	}
}

func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// DoFile executes the Lua file at path. The call blocks until the script
// finishes, fails, or hits the timeout.
func (e *Engine) DoFile(path string) error {
	return e.do(func() error { return e.L.DoFile(path) })
}

// DoString executes Lua source code.
func (e *Engine) DoString(code string) error {
	return e.do(func() error { return e.L.DoString(code) })
}

func (e *Engine) do(fn func() error) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	if e.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		defer cancel()
		e.L.SetContext(ctx)
		defer e.L.RemoveContext()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// RegisterModule installs a table of Go functions as a Lua global.
func (e *Engine) RegisterModule(name string, funcs map[string]lua.LGFunction) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}

	mod := e.L.SetFuncs(e.L.NewTable(), funcs)
	e.L.SetGlobal(name, mod)
}

// Close releases the Lua state. Safe to call more than once.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.L.Close()
	e.closed = true
	return nil
}
