package scenario

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/dshills/rewind/history"
	"github.com/dshills/rewind/internal/objects"
)

// Report is the outcome of one scenario run.
type Report struct {
	RunID    string
	Scenario string
	Steps    int
	Failures []string
}

// OK reports whether the run matched the expected state.
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

// String renders a one-line summary.
func (r *Report) String() string {
	if r.OK() {
		return fmt.Sprintf("%s [%s]: ok (%d steps)", r.Scenario, r.RunID, r.Steps)
	}
	return fmt.Sprintf("%s [%s]: %d failure(s)", r.Scenario, r.RunID, len(r.Failures))
}

// Run applies the scenario to a fresh set store and checks the expected
// state. The store's context becomes the active history context for the
// duration of the run.
func Run(sc *Scenario) *Report {
	report := &Report{
		RunID:    uuid.New().String(),
		Scenario: sc.Name,
	}

	store := objects.NewSetStore()
	ctx := store.Context()

	for i, step := range sc.Steps {
		report.Steps++
		if err := apply(store, ctx, step); err != nil {
			report.Failures = append(report.Failures, fmt.Sprintf("step %d (%s): %v", i+1, step.Op, err))
			return report
		}
	}

	check(store, sc.Expect, report)
	return report
}

func apply(store *objects.SetStore, ctx *history.Context, step Step) error {
	times := step.Count
	if times <= 0 {
		times = 1
	}

	switch step.Op {
	case OpSet:
		if !store.SetObject(step.Key, objects.NewIntSet(step.Values...)) {
			return fmt.Errorf("set %q failed", step.Key)
		}
	case OpRemove:
		if !store.RemoveObject(step.Key) {
			return fmt.Errorf("remove %q failed", step.Key)
		}
	case OpMerge:
		if !store.MergeObjects(step.Keys, step.Into) {
			return fmt.Errorf("merge into %q failed", step.Into)
		}
	case OpUndo:
		for i := 0; i < times; i++ {
			if !ctx.Undo() {
				return fmt.Errorf("undo %d of %d failed", i+1, times)
			}
		}
	case OpRedo:
		for i := 0; i < times; i++ {
			if !ctx.Redo() {
				return fmt.Errorf("redo %d of %d failed", i+1, times)
			}
		}
	case OpClear:
		ctx.Clear()
	}
	return nil
}

func check(store *objects.SetStore, expect map[string][]int, report *Report) {
	for key, values := range expect {
		got, ok := store.Get(key)
		if !ok {
			report.Failures = append(report.Failures, fmt.Sprintf("expected key %q missing", key))
			continue
		}
		want := objects.NewIntSet(values...)
		if !got.Equal(want) {
			report.Failures = append(report.Failures, fmt.Sprintf("key %q = %v, want %v", key, got, want))
		}
	}

	for _, key := range store.Keys() {
		if _, ok := expect[key]; !ok {
			report.Failures = append(report.Failures, fmt.Sprintf("unexpected key %q = %v", key, mustGet(store, key)))
		}
	}

	slices.Sort(report.Failures)
}

func mustGet(store *objects.SetStore, key string) objects.IntSet {
	v, _ := store.Get(key)
	return v
}
