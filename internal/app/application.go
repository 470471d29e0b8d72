package app

import (
	"time"

	"github.com/gdamore/tcell/v2"
	search "github.com/kk-code-lab/qopen/internal/search"
	statepkg "github.com/kk-code-lab/qopen/internal/state"
	inputui "github.com/kk-code-lab/qopen/internal/ui/input"
	renderui "github.com/kk-code-lab/qopen/internal/ui/render"
)

// Options configures the interactive dialog.
type Options struct {
	// PrintOnly makes Enter print the chosen path instead of opening an editor.
	PrintOnly bool
	// InitialQuery is typed into the prompt before the first frame.
	InitialQuery string
}

// Application represents the running dialog.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.AppState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	session    *search.Session
	actionCh   chan statepkg.Action
	shouldQuit bool
	printOnly  bool
	editorCmd  []string
	chosenPath string

	lastClickKey  string
	lastClickTime time.Time
}

// Close cleans up resources.
func (app *Application) Close() error {
	if app.session != nil {
		app.session.Close()
	}
	app.screen.Fini()
	return nil
}

// ChosenPath returns the file the user picked, or "" when the dialog was
// cancelled or the file was already opened in an editor.
func (app *Application) ChosenPath() string {
	return app.chosenPath
}

// State exposes the dialog state, mainly for tests.
func (app *Application) State() *statepkg.AppState {
	return app.state
}
