package app

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	search "github.com/kk-code-lab/qopen/internal/search"
	statepkg "github.com/kk-code-lab/qopen/internal/state"
	"github.com/kk-code-lab/qopen/internal/ui/input"
	renderui "github.com/kk-code-lab/qopen/internal/ui/render"
)

const (
	doubleClickThreshold = 300 * time.Millisecond
	// renderInterval throttles redraws while fillers are still indexing.
	renderInterval = 30 * time.Millisecond
	listStartRow   = 3
)

// NewApplication opens the terminal and prepares a dialog over session.
func NewApplication(session *search.Session, opts Options) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Parse mouse sequences so modified clicks don't leak as key events.
	screen.EnableMouse()

	editorCmd, _ := detectEditorCommand()
	return newApplicationWithScreen(screen, session, editorCmd, opts), nil
}

func newApplicationWithScreen(screen tcell.Screen, session *search.Session, editorCmd []string, opts Options) *Application {
	session.Open()

	state := &statepkg.AppState{
		Roots:           session.Roots(),
		Searcher:        session,
		EditorAvailable: len(editorCmd) > 0,
	}
	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h

	actionCh := make(chan statepkg.Action, 64)
	state.SetDispatch(func(action statepkg.Action) {
		select {
		case actionCh <- action:
		default:
			go func() { actionCh <- action }()
		}
	})

	inputHandler := input.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	app := &Application{
		screen:    screen,
		state:     state,
		reducer:   statepkg.NewStateReducer(),
		renderer:  renderui.NewRenderer(screen),
		input:     inputHandler,
		session:   session,
		actionCh:  actionCh,
		printOnly: opts.PrintOnly,
		editorCmd: editorCmd,
	}

	for _, ch := range opts.InitialQuery {
		app.reduce(statepkg.CharAction{Char: ch})
	}
	return app
}

// Run drives the dialog until the user picks a file or cancels. Indexing
// work runs on this goroutine, one scheduler step at a time, whenever no
// input is waiting.
func (app *Application) Run() {
	defer app.screen.Fini()

	app.renderer.Render(app.state)
	renderPending := false
	lastRender := time.Now()

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		pending := app.session.Pending()
		if renderPending && (!pending || time.Since(lastRender) >= renderInterval) {
			app.renderer.Render(app.state)
			renderPending = false
			lastRender = time.Now()
		}

		if pending {
			select {
			case ev := <-eventChan:
				if app.handleEvent(ev) {
					renderPending = true
				}
			case action := <-app.actionCh:
				if app.handleAction(action) {
					renderPending = true
				}
			case <-sigContCh:
				if app.resumeAfterStop() {
					renderPending = true
				}
			default:
				app.session.Step()
			}
		} else {
			select {
			case ev := <-eventChan:
				if app.handleEvent(ev) {
					renderPending = true
				}
			case action := <-app.actionCh:
				if app.handleAction(action) {
					renderPending = true
				}
			case <-sigContCh:
				if app.resumeAfterStop() {
					renderPending = true
				}
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if !app.input.ProcessEvent(ev) {
			// Drain the action the key produced (quit) before leaving.
			app.processActions()
			app.shouldQuit = true
		}
	case *tcell.EventResize:
		app.screen.Sync()
		app.input.ProcessEvent(ev)
	case *tcell.EventMouse:
		app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse maps primary clicks on result rows to selection; a double
// click opens the row.
func (app *Application) handleMouse(ev *tcell.EventMouse) {
	if app.state == nil || ev.Buttons()&tcell.Button1 == 0 {
		return
	}

	_, y := ev.Position()
	bottomLimit := app.state.ScreenHeight - 1
	if y < listStartRow || y >= bottomLimit {
		return
	}
	idx := app.state.ScrollOffset + (y - listStartRow)
	if idx < 0 || idx >= len(app.state.Results) {
		return
	}

	clickKey := fmt.Sprintf("result-%d", idx)
	doubleClick := app.lastClickKey == clickKey && time.Since(app.lastClickTime) <= doubleClickThreshold
	app.lastClickKey = clickKey
	app.lastClickTime = time.Now()

	app.actionCh <- statepkg.SelectIndexAction{Index: idx}
	if doubleClick {
		app.actionCh <- statepkg.OpenAction{}
	}
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case statepkg.OpenAction:
		return app.handleOpen()
	}

	app.reduce(action)
	return true
}

func (app *Application) reduce(action statepkg.Action) {
	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.state.LastError = err
	}
}
