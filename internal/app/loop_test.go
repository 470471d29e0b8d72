package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	search "github.com/kk-code-lab/qopen/internal/search"
	statepkg "github.com/kk-code-lab/qopen/internal/state"
)

func newTestSession(t *testing.T, files ...string) (*search.Session, string) {
	t.Helper()
	root := t.TempDir()
	for _, rel := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	rules, err := search.NewIgnoreRules(nil, nil, false)
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	return search.NewSession(search.Options{
		Roots:    []string{root},
		Producer: search.NewWalker(rules),
	}), root
}

func newTestApp(t *testing.T, opts Options, files ...string) (*Application, string) {
	t.Helper()
	session, root := newTestSession(t, files...)
	screen := newTestScreen(t)
	screen.SetSize(80, 24)
	return newApplicationWithScreen(screen, session, nil, opts), root
}

func drain(t *testing.T, app *Application) {
	t.Helper()
	if err := app.session.Run(context.Background()); err != nil {
		t.Fatalf("run session: %v", err)
	}
	app.processActions()
}

func TestInitialQueryProducesResults(t *testing.T) {
	app, root := newTestApp(t, Options{InitialQuery: "main"}, "app/main.py", "lib/main.go", "README.md")

	if app.State().Query != "main" {
		t.Fatalf("expected initial query to be typed, got %q", app.State().Query)
	}
	drain(t, app)

	results := app.State().Results
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %+v", results)
	}
	if results[0].AbsPath != filepath.Join(root, "app", "main.py") {
		t.Fatalf("expected app/main.py first, got %s", results[0].AbsPath)
	}
	if app.State().InProgress {
		t.Fatalf("search should be complete after draining the session")
	}
}

func TestTypingNewQueryDropsStaleEmissions(t *testing.T) {
	app, _ := newTestApp(t, Options{}, "app/main.py", "app/util.py")

	app.handleAction(statepkg.CharAction{Char: 'm'})
	app.session.Step()
	app.handleAction(statepkg.CharAction{Char: 'x'})
	drain(t, app)

	if len(app.State().Results) != 0 {
		t.Fatalf("expected no results for 'mx', got %+v", app.State().Results)
	}
	if app.State().Status != statepkg.SearchStatusComplete {
		t.Fatalf("expected completed status, got %q", app.State().Status)
	}
}

func TestMouseClickSelectsAndDoubleClickOpens(t *testing.T) {
	app, root := newTestApp(t, Options{InitialQuery: "py", PrintOnly: true}, "a.py", "b.py")
	drain(t, app)
	if len(app.State().Results) != 2 {
		t.Fatalf("expected two results, got %d", len(app.State().Results))
	}

	click := tcell.NewEventMouse(4, listStartRow+1, tcell.Button1, tcell.ModNone)
	app.handleEvent(click)
	app.processActions()
	if app.State().SelectedIndex != 1 {
		t.Fatalf("expected second row selected, got %d", app.State().SelectedIndex)
	}

	app.handleEvent(click)
	app.processActions()
	if app.ChosenPath() != filepath.Join(root, "b.py") {
		t.Fatalf("double click should choose b.py, got %q", app.ChosenPath())
	}
	if !app.shouldQuit {
		t.Fatalf("double click in print mode should close the dialog")
	}
}

func TestEscapeOnEmptyQueryQuits(t *testing.T) {
	app, _ := newTestApp(t, Options{}, "a.py")

	app.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))

	if !app.shouldQuit {
		t.Fatalf("escape on an empty prompt should close the dialog")
	}
	if app.ChosenPath() != "" {
		t.Fatalf("cancel should not choose a file")
	}
}

func TestResizeUpdatesState(t *testing.T) {
	app, _ := newTestApp(t, Options{}, "a.py")

	app.handleEvent(tcell.NewEventResize(100, 30))
	app.processActions()

	if app.State().ScreenWidth != 100 || app.State().ScreenHeight != 30 {
		t.Fatalf("expected 100x30, got %dx%d", app.State().ScreenWidth, app.State().ScreenHeight)
	}
}
