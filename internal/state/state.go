package state

import (
	"strings"

	search "github.com/kk-code-lab/qopen/internal/search"
)

type Result = search.Result
type Progress = search.Progress
type Generation = search.Generation

// Searcher runs queries for the dialog. *search.Session satisfies it.
type Searcher interface {
	SetQuery(raw string, emit search.EmitFunc) search.Generation
}

type SearchStatus string

const (
	SearchStatusIdle      SearchStatus = ""
	SearchStatusSearching SearchStatus = "searching"
	SearchStatusComplete  SearchStatus = "complete"
)

// chromeLines is the number of rows not used by the result list: header,
// prompt, separator and status line.
const chromeLines = 4

// AppState is the single source of truth for the quick-open dialog.
type AppState struct {
	Roots []string

	// Prompt
	Query     string
	CursorPos int

	// Results
	Results       []Result
	SelectedIndex int
	ScrollOffset  int
	Status        SearchStatus
	InProgress    bool
	Progress      Progress
	Generation    Generation

	// Selection preserved across result refreshes of the same query.
	desiredSelectionPath string

	Searcher       Searcher
	dispatchAction func(Action)

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	EditorAvailable bool

	// Chosen is set once the user confirmed a result.
	Chosen *Result

	// Error state
	LastError error
}

// SetDispatch wires the function used to deliver asynchronous actions, such
// as result updates, back into the event loop.
func (s *AppState) SetDispatch(fn func(Action)) {
	s.dispatchAction = fn
}

func (s *AppState) getDispatch() func(Action) {
	return s.dispatchAction
}

// CleanQuery returns the query without surrounding whitespace.
func (s *AppState) CleanQuery() string {
	return strings.TrimSpace(s.Query)
}

// CurrentResult returns the selected result or nil.
func (s *AppState) CurrentResult() *Result {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Results) {
		return nil
	}
	return &s.Results[s.SelectedIndex]
}

// VisibleLines reports how many result rows fit on screen.
func (s *AppState) VisibleLines() int {
	visible := s.ScreenHeight - chromeLines
	if visible < 1 {
		visible = 1
	}
	return visible
}

func (s *AppState) clampSelection() {
	if len(s.Results) == 0 {
		s.SelectedIndex = 0
		s.ScrollOffset = 0
		return
	}

	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	} else if s.SelectedIndex >= len(s.Results) {
		s.SelectedIndex = len(s.Results) - 1
	}

	s.updateScroll()
}

func (s *AppState) updateScroll() {
	visibleLines := s.VisibleLines()

	maxScroll := len(s.Results) - visibleLines
	if maxScroll < 0 {
		maxScroll = 0
	}

	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
	if s.ScrollOffset > maxScroll {
		s.ScrollOffset = maxScroll
	}

	if s.SelectedIndex < s.ScrollOffset {
		s.ScrollOffset = s.SelectedIndex
	} else if s.SelectedIndex >= s.ScrollOffset+visibleLines {
		s.ScrollOffset = s.SelectedIndex - visibleLines + 1
	}
}

func (s *AppState) applyDesiredSelection() {
	if s.desiredSelectionPath == "" {
		return
	}
	for idx, result := range s.Results {
		if result.AbsPath == s.desiredSelectionPath {
			s.SelectedIndex = idx
			s.updateScroll()
			return
		}
	}
}

func (s *AppState) rememberSelection() {
	if current := s.CurrentResult(); current != nil {
		s.desiredSelectionPath = current.AbsPath
	}
}

func (s *AppState) clearDesiredSelection() {
	s.desiredSelectionPath = ""
}

// StatusLabel describes the search phase for the status line.
func (s *AppState) StatusLabel() string {
	return s.Status.label(s.InProgress)
}

func (status SearchStatus) label(inProgress bool) string {
	switch status {
	case SearchStatusSearching:
		if inProgress {
			return "indexing…"
		}
		return "results ready"
	case SearchStatusComplete:
		return "results ready"
	default:
		if inProgress {
			return "searching…"
		}
		return ""
	}
}
