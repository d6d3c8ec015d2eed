package objects

import (
	"testing"

	"github.com/dshills/rewind/history"
)

func reset(t *testing.T) {
	t.Helper()
	history.Enable()
	t.Cleanup(func() {
		history.SetContext(nil)
		history.Enable()
	})
}

func TestIntListAddUndoRedo(t *testing.T) {
	reset(t)
	list := NewIntList()

	list.AddNew()
	if list.Len() != 1 {
		t.Fatalf("len = %d, want 1", list.Len())
	}

	history.GetContext().Undo()
	if list.Len() != 0 {
		t.Errorf("len after undo = %d, want 0", list.Len())
	}

	history.GetContext().Redo()
	if list.Len() != 1 {
		t.Errorf("len after redo = %d, want 1", list.Len())
	}
}

func TestRegistryParameterCapture(t *testing.T) {
	reset(t)
	reg := NewRegistry()

	if !reg.AddObject("foo", 11) {
		t.Fatal("add failed")
	}
	if v, ok := reg.Get("foo"); !ok || v != 11 {
		t.Fatalf("foo = %d, %v; want 11, true", v, ok)
	}

	history.GetContext().Undo()
	if reg.Len() != 0 {
		t.Errorf("len after undo = %d, want 0", reg.Len())
	}

	history.GetContext().Redo()
	if v, ok := reg.Get("foo"); !ok || v != 11 {
		t.Errorf("foo after redo = %d, %v; want 11, true", v, ok)
	}
}

func TestRegistryAddDuplicateNotRecorded(t *testing.T) {
	reset(t)
	reg := NewRegistry()

	reg.AddObject("foo", 11)
	if reg.AddObject("foo", 99) {
		t.Error("duplicate add should fail")
	}

	// Only the first add is on the stack.
	history.GetContext().Undo()
	if reg.Len() != 0 {
		t.Errorf("len = %d, want 0", reg.Len())
	}
	if history.GetContext().Undo() {
		t.Error("nothing else should be undoable")
	}
}

func TestRegistryRemoveMemento(t *testing.T) {
	reset(t)
	reg := NewRegistry()
	reg.AddObject("foo", 11)

	reg.RemoveObject("foo")
	if reg.Len() != 0 {
		t.Fatalf("len = %d, want 0", reg.Len())
	}

	// Undo loads the saved value and reinserts it.
	history.GetContext().Undo()
	if v, ok := reg.Get("foo"); !ok || v != 11 {
		t.Errorf("foo after undo = %d, %v; want 11, true", v, ok)
	}

	history.GetContext().Redo()
	if reg.Len() != 0 {
		t.Errorf("len after redo = %d, want 0", reg.Len())
	}
}

func TestSetStoreBranchingUndo(t *testing.T) {
	reset(t)
	store := NewSetStore()

	// Insertion path: nothing saved, undo removes the key.
	store.SetObject("k", NewIntSet(1, 2, 3))
	history.GetContext().Undo()
	if store.Len() != 0 {
		t.Fatalf("len after undoing insertion = %d, want 0", store.Len())
	}

	history.GetContext().Redo()
	if got, ok := store.Get("k"); !ok || !got.Equal(NewIntSet(1, 2, 3)) {
		t.Fatalf("k after redo = %v, want {1, 2, 3}", got)
	}

	// Modification path: old values saved, undo restores them.
	store.SetObject("k", NewIntSet(9))
	if got, _ := store.Get("k"); !got.Equal(NewIntSet(9)) {
		t.Fatalf("k = %v, want {9}", got)
	}

	history.GetContext().Undo()
	if got, ok := store.Get("k"); !ok || !got.Equal(NewIntSet(1, 2, 3)) {
		t.Errorf("k after undoing modification = %v, want {1, 2, 3}", got)
	}

	history.GetContext().Redo()
	if got, _ := store.Get("k"); !got.Equal(NewIntSet(9)) {
		t.Errorf("k after redo = %v, want {9}", got)
	}
}

func TestSetStoreMergeObjects(t *testing.T) {
	reset(t)
	store := NewSetStore()
	store.SetObject("foo", NewIntSet(11, 23, 49))
	store.SetObject("bar", NewIntSet(7, 8, 23))

	store.MergeObjects([]string{"foo", "bar"}, "foobar")

	merged := NewIntSet(7, 8, 11, 23, 49)
	if store.Len() != 1 {
		t.Fatalf("len = %d, want 1", store.Len())
	}
	if got, ok := store.Get("foobar"); !ok || !got.Equal(merged) {
		t.Fatalf("foobar = %v, want %v", got, merged)
	}

	// The merge record carries three sub-records.
	sub := history.GetContext().Present().SubContext()
	if len(sub.StackView()) != 4 {
		t.Errorf("merge sub-records = %d, want 3", len(sub.StackView())-1)
	}

	history.GetContext().Undo()
	if store.Len() != 2 {
		t.Fatalf("len after undo = %d, want 2", store.Len())
	}
	if got, _ := store.Get("foo"); !got.Equal(NewIntSet(11, 23, 49)) {
		t.Errorf("foo after undo = %v, want {11, 23, 49}", got)
	}
	if got, _ := store.Get("bar"); !got.Equal(NewIntSet(7, 8, 23)) {
		t.Errorf("bar after undo = %v, want {7, 8, 23}", got)
	}

	history.GetContext().Redo()
	if store.Len() != 1 {
		t.Fatalf("len after redo = %d, want 1", store.Len())
	}
	if got, ok := store.Get("foobar"); !ok || !got.Equal(merged) {
		t.Errorf("foobar after redo = %v, want %v", got, merged)
	}
}

func TestSetStoreMergeUndoRedoCycles(t *testing.T) {
	reset(t)
	store := NewSetStore()
	store.SetObject("foo", NewIntSet(1))
	store.SetObject("bar", NewIntSet(2))
	store.MergeObjects([]string{"foo", "bar"}, "both")

	merged := NewIntSet(1, 2)
	for i := 0; i < 3; i++ {
		history.GetContext().Undo()
		if store.Len() != 2 {
			t.Fatalf("cycle %d: len after undo = %d, want 2", i, store.Len())
		}
		history.GetContext().Redo()
		if got, ok := store.Get("both"); !ok || !got.Equal(merged) {
			t.Fatalf("cycle %d: both = %v, want %v", i, got, merged)
		}
	}
}

func TestUndoRedoChain(t *testing.T) {
	reset(t)
	store := NewSetStore()
	store.SetObject("a", NewIntSet(1))
	store.SetObject("b", NewIntSet(2))
	store.SetObject("c", NewIntSet(3))

	ctx := history.GetContext()
	for ctx.Undo() {
	}
	if store.Len() != 0 {
		t.Fatalf("len after full unwind = %d, want 0", store.Len())
	}
	for ctx.Redo() {
	}
	if store.Len() != 3 {
		t.Fatalf("len after full replay = %d, want 3", store.Len())
	}
}

func TestMementoKeysSharedBetweenDoAndUndo(t *testing.T) {
	reset(t)

	if got := memKey("hOldValue", "RemoveObject"); got != "hOldValue<-RemoveObject" {
		t.Errorf("memKey = %q", got)
	}
	if got := memKey("hOldValue", "RemoveObject_Undo"); got != "hOldValue<-RemoveObject_Undo" {
		t.Errorf("memKey = %q", got)
	}

	// Both keys address the same memento slot.
	ctx := history.NewContext()
	history.SetContext(ctx)
	var got int
	var ok bool
	ctx.Push("RemoveObject",
		func() bool { return true },
		func() bool {
			ok = history.Load(ctx.Present(), memKey("hOldValue", "RemoveObject_Undo"), &got)
			return true
		})
	history.Save(ctx.Present(), memKey("hOldValue", "RemoveObject"), 11)
	ctx.Undo()
	if !ok || got != 11 {
		t.Errorf("undo-side load = %d, %v; want 11, true", got, ok)
	}
}

func TestCurrentRecordOutsideScope(t *testing.T) {
	reset(t)
	history.SetContext(history.NewContext())

	// At the root there is no parent, so no record to save on.
	if currentRecord() != nil {
		t.Error("currentRecord at root should be nil")
	}
	if saveVar("k<-Fn", 1) {
		t.Error("saveVar without a scope should fail")
	}
}
