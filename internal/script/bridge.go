package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/rewind/history"
	"github.com/dshills/rewind/internal/objects"
)

// Bind exposes the set store and its history context to Lua as the
// "store" and "hist" globals.
//
// store.set(key, {ints}), store.remove(key), store.merge({keys}, into),
// store.get(key), store.keys(), store.len()
//
// hist.undo(), hist.redo(), hist.can_undo(), hist.can_redo(),
// hist.dump(), hist.clear(), hist.enable(), hist.disable()
func Bind(e *Engine, store *objects.SetStore) {
	e.RegisterModule("store", storeFuncs(store))
	e.RegisterModule("hist", histFuncs(store.Context()))
}

func storeFuncs(store *objects.SetStore) map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"set": func(L *lua.LState) int {
			key := L.CheckString(1)
			values := checkIntSet(L, 2)
			L.Push(lua.LBool(store.SetObject(key, values)))
			return 1
		},
		"remove": func(L *lua.LState) int {
			key := L.CheckString(1)
			L.Push(lua.LBool(store.RemoveObject(key)))
			return 1
		},
		"merge": func(L *lua.LState) int {
			keys := checkStrings(L, 1)
			into := L.CheckString(2)
			L.Push(lua.LBool(store.MergeObjects(keys, into)))
			return 1
		},
		"get": func(L *lua.LState) int {
			key := L.CheckString(1)
			values, ok := store.Get(key)
			if !ok {
				L.Push(lua.LNil)
				return 1
			}
			L.Push(pushInts(L, values))
			return 1
		},
		"keys": func(L *lua.LState) int {
			tbl := L.NewTable()
			for _, key := range store.Keys() {
				tbl.Append(lua.LString(key))
			}
			L.Push(tbl)
			return 1
		},
		"len": func(L *lua.LState) int {
			L.Push(lua.LNumber(store.Len()))
			return 1
		},
	}
}

func histFuncs(ctx *history.Context) map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"undo": func(L *lua.LState) int {
			L.Push(lua.LBool(ctx.Undo()))
			return 1
		},
		"redo": func(L *lua.LState) int {
			L.Push(lua.LBool(ctx.Redo()))
			return 1
		},
		"can_undo": func(L *lua.LState) int {
			rec := ctx.Present()
			L.Push(lua.LBool(rec != nil && rec.ID() != 0))
			return 1
		},
		"can_redo": func(L *lua.LState) int {
			L.Push(lua.LBool(ctx.PeekFuture() != nil))
			return 1
		},
		"dump": func(L *lua.LState) int {
			L.Push(lua.LString(ctx.Dump(0)))
			return 1
		},
		"clear": func(L *lua.LState) int {
			ctx.Clear()
			return 0
		},
		"enable": func(L *lua.LState) int {
			history.Enable()
			return 0
		},
		"disable": func(L *lua.LState) int {
			history.Disable()
			return 0
		},
	}
}

// checkIntSet reads a Lua array of integers at position n.
func checkIntSet(L *lua.LState, n int) objects.IntSet {
	tbl := L.CheckTable(n)
	values := objects.NewIntSet()
	tbl.ForEach(func(_, v lua.LValue) {
		num, ok := v.(lua.LNumber)
		if !ok {
			L.ArgError(n, "expected an array of integers")
			return
		}
		values[int(num)] = true
	})
	return values
}

// checkStrings reads a Lua array of strings at position n.
func checkStrings(L *lua.LState, n int) []string {
	tbl := L.CheckTable(n)
	var out []string
	tbl.ForEach(func(_, v lua.LValue) {
		str, ok := v.(lua.LString)
		if !ok {
			L.ArgError(n, "expected an array of strings")
			return
		}
		out = append(out, string(str))
	})
	return out
}

// pushInts builds a sorted Lua array from a set.
func pushInts(L *lua.LState, values objects.IntSet) *lua.LTable {
	tbl := L.NewTable()
	for _, v := range values.Sorted() {
		tbl.Append(lua.LNumber(v))
	}
	return tbl
}
