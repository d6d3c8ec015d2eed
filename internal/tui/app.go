package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/rewind/internal/objects"
)

// App drives the explorer event loop.
type App struct {
	screen  tcell.Screen
	store   *objects.SetStore
	showIDs bool
	status  string
}

// New creates the app with a real terminal screen.
func New(store *objects.SetStore, showIDs bool) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, store, showIDs), nil
}

// NewWithScreen creates the app on a caller-supplied screen. Tests use a
// tcell simulation screen.
func NewWithScreen(screen tcell.Screen, store *objects.SetStore, showIDs bool) *App {
	return &App{
		screen:  screen,
		store:   store,
		showIDs: showIDs,
		status:  "ready",
	}
}

// Run initializes the screen and processes events until quit. The
// store's context observer keeps the status line in sync with the
// cursor.
func (a *App) Run() error {
	if err := a.screen.Init(); err != nil {
		return err
	}
	defer a.screen.Fini()

	ctx := a.store.Context()
	ctx.BindOnStackChanged(func(present int) {
		a.status = fmt.Sprintf("stack changed: present=%d", present)
	})
	defer ctx.UnbindOnStackChanged()

	for {
		a.draw()

		ev := a.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventKey:
			if a.handleKey(ev) {
				return nil
			}
		case nil:
			// Screen finalized underneath us.
			return nil
		}
	}
}

// handleKey applies one key press. Returns true to quit.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyCtrlZ:
		a.undo()
		return false
	case tcell.KeyCtrlY:
		a.redo()
		return false
	case tcell.KeyRune:
		// Handled below.
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case '1':
		a.store.SetObject("foo", objects.NewIntSet(11, 23, 49))
	case '2':
		a.store.SetObject("bar", objects.NewIntSet(7, 8, 23))
	case '3':
		a.store.SetObject("baz", objects.NewIntSet(1, 2, 3))
	case 'd':
		if keys := a.store.Keys(); len(keys) > 0 {
			a.store.RemoveObject(keys[0])
		}
	case 'm':
		if keys := a.store.Keys(); len(keys) > 1 {
			a.store.MergeObjects(keys, "merged")
		}
	case 'u':
		a.undo()
	case 'r':
		a.redo()
	case 'c':
		a.store.Context().Clear()
	}
	return false
}

func (a *App) undo() {
	if !a.store.Context().Undo() {
		a.status = "nothing to undo"
	}
}

func (a *App) redo() {
	if !a.store.Context().Redo() {
		a.status = "nothing to redo"
	}
}

func (a *App) draw() {
	a.screen.Clear()

	width, height := a.screen.Size()
	lines := renderLines(a.store, a.store.Context(), a.showIDs, a.status)
	for y, line := range lines {
		if y >= height {
			break
		}
		x := 0
		for _, r := range line {
			if x >= width {
				break
			}
			a.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
			x++
		}
	}

	a.screen.Show()
}
