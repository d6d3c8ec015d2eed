// Package tui is the interactive history explorer: a small tcell
// application showing a set store side by side with its history tree.
package tui

import (
	"fmt"
	"strings"

	"github.com/dshills/rewind/history"
	"github.com/dshills/rewind/internal/objects"
)

// renderLines builds the full screen contents. Pure so it can be tested
// without a terminal.
func renderLines(store *objects.SetStore, ctx *history.Context, showIDs bool, status string) []string {
	lines := []string{
		"rewind explorer",
		"",
		"Objects:",
	}

	keys := store.Keys()
	if len(keys) == 0 {
		lines = append(lines, "  (empty)")
	}
	for _, key := range keys {
		values, _ := store.Get(key)
		lines = append(lines, fmt.Sprintf("  %s = %s", key, values))
	}

	lines = append(lines, "", "History:")
	hist := renderContext(ctx, 1, showIDs)
	if len(hist) == 0 {
		lines = append(lines, "  (empty)")
	}
	lines = append(lines, hist...)

	lines = append(lines, "", status,
		"[1-3] set  [d] remove  [m] merge  [u] undo  [r] redo  [c] clear  [q] quit")
	return lines
}

// renderContext walks the stack top-down like Context.Dump, optionally
// prefixing record ids.
func renderContext(ctx *history.Context, indent int, showIDs bool) []string {
	var lines []string
	view := ctx.StackView()
	present := 0
	for i, rec := range view {
		if rec == ctx.Present() {
			present = i
		}
	}

	for i := len(view) - 1; i > 0; i-- {
		rec := view[i]
		var b strings.Builder
		b.WriteString(strings.Repeat("  ", indent))
		if showIDs {
			fmt.Fprintf(&b, "[%d] ", rec.ID())
		}
		b.WriteString(rec.Label())
		if i == present {
			b.WriteString(" <<<")
		}
		lines = append(lines, b.String())
		lines = append(lines, renderContext(rec.SubContext(), indent+1, showIDs)...)
	}
	return lines
}
