package state

import (
	"unicode"

	search "github.com/kk-code-lab/qopen/internal/search"
)

// StateReducer handles all state mutations
type StateReducer struct{}

// NewStateReducer creates a new reducer
func NewStateReducer() *StateReducer {
	return &StateReducer{}
}

func isSearchWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func previousWordBoundary(runes []rune, pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}

	i := pos - 1
	for i >= 0 && !isSearchWordChar(runes[i]) {
		i--
	}
	for i >= 0 && isSearchWordChar(runes[i]) {
		i--
	}
	return i + 1
}

func nextWordBoundary(runes []rune, pos int) int {
	if pos >= len(runes) {
		return len(runes)
	}
	if pos < 0 {
		pos = 0
	}

	i := pos
	for i < len(runes) && !isSearchWordChar(runes[i]) {
		i++
	}
	for i < len(runes) && isSearchWordChar(runes[i]) {
		i++
	}
	return i
}

func clampCursor(cursor, length int) int {
	if cursor < 0 {
		return 0
	}
	if cursor > length {
		return length
	}
	return cursor
}

// triggerSearch hands the current query to the searcher. Emissions come back
// as ResultsAction through the dispatch function, or are applied in place
// when no dispatch is wired.
func (r *StateReducer) triggerSearch(state *AppState) {
	state.clearDesiredSelection()

	if state.Searcher == nil {
		state.Status = SearchStatusIdle
		state.InProgress = false
		return
	}

	dispatch := state.getDispatch()
	emit := func(results []search.Result, progress search.Progress) {
		resultsCopy := make([]Result, len(results))
		copy(resultsCopy, results)
		if dispatch != nil {
			dispatch(ResultsAction{Results: resultsCopy, Progress: progress})
			return
		}
		r.applyResults(state, resultsCopy, progress)
	}

	state.Generation = state.Searcher.SetQuery(state.Query, emit)

	if search.ParseQuery(state.Query).Empty() {
		state.Results = nil
		state.SelectedIndex = 0
		state.ScrollOffset = 0
		state.InProgress = false
		state.Status = SearchStatusIdle
		state.Progress = Progress{}
		return
	}
	state.InProgress = true
	state.Status = SearchStatusSearching
}

func (r *StateReducer) applyResults(state *AppState, results []Result, progress Progress) {
	if progress.Generation != state.Generation {
		return
	}

	sameQuery := state.Progress.Generation == progress.Generation
	if sameQuery {
		state.rememberSelection()
	} else {
		state.SelectedIndex = 0
		state.ScrollOffset = 0
	}

	state.Results = results
	state.Progress = progress
	state.InProgress = !progress.Done
	if progress.Done {
		state.Status = SearchStatusComplete
	} else {
		state.Status = SearchStatusSearching
	}

	state.clampSelection()
	if sameQuery {
		state.applyDesiredSelection()
	}
	state.clearDesiredSelection()
}

func (r *StateReducer) setQuery(state *AppState, runes []rune, cursor int) {
	state.Query = string(runes)
	state.CursorPos = clampCursor(cursor, len(runes))
	r.triggerSearch(state)
}

// Reduce applies an action to state and returns the new state.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== PROMPT =====

	case CharAction:
		runes := []rune(state.Query)
		cursor := clampCursor(state.CursorPos, len(runes))

		buffer := make([]rune, 0, len(runes)+1)
		buffer = append(buffer, runes[:cursor]...)
		buffer = append(buffer, a.Char)
		buffer = append(buffer, runes[cursor:]...)

		r.setQuery(state, buffer, cursor+1)
		return state, nil

	case BackspaceAction:
		runes := []rune(state.Query)
		cursor := clampCursor(state.CursorPos, len(runes))
		if cursor == 0 {
			return state, nil
		}

		buffer := append([]rune{}, runes[:cursor-1]...)
		buffer = append(buffer, runes[cursor:]...)

		r.setQuery(state, buffer, cursor-1)
		return state, nil

	case DeleteAction:
		runes := []rune(state.Query)
		cursor := clampCursor(state.CursorPos, len(runes))
		if cursor >= len(runes) {
			return state, nil
		}

		buffer := append([]rune{}, runes[:cursor]...)
		buffer = append(buffer, runes[cursor+1:]...)

		r.setQuery(state, buffer, cursor)
		return state, nil

	case DeleteWordAction:
		runes := []rune(state.Query)
		cursor := clampCursor(state.CursorPos, len(runes))
		if cursor == 0 {
			return state, nil
		}

		start := previousWordBoundary(runes, cursor)
		buffer := append([]rune{}, runes[:start]...)
		buffer = append(buffer, runes[cursor:]...)

		r.setQuery(state, buffer, start)
		return state, nil

	case MoveCursorAction:
		runes := []rune(state.Query)
		switch a.Direction {
		case "left":
			if state.CursorPos > 0 {
				state.CursorPos--
			}
		case "right":
			if state.CursorPos < len(runes) {
				state.CursorPos++
			}
		case "word-left":
			state.CursorPos = previousWordBoundary(runes, state.CursorPos)
		case "word-right":
			state.CursorPos = nextWordBoundary(runes, state.CursorPos)
		case "home":
			state.CursorPos = 0
		case "end":
			state.CursorPos = len(runes)
		}
		return state, nil

	case ResetQueryAction:
		if state.Query == "" {
			return state, nil
		}
		r.setQuery(state, nil, 0)
		return state, nil

	// ===== RESULT LIST =====

	case ResultsAction:
		r.applyResults(state, a.Results, a.Progress)
		return state, nil

	case NavigateAction:
		if len(state.Results) == 0 {
			return state, nil
		}
		if a.Direction == "up" && state.SelectedIndex > 0 {
			state.SelectedIndex--
			state.updateScroll()
		} else if a.Direction == "down" && state.SelectedIndex < len(state.Results)-1 {
			state.SelectedIndex++
			state.updateScroll()
		}
		return state, nil

	case SelectIndexAction:
		if len(state.Results) == 0 {
			return state, nil
		}
		state.SelectedIndex = a.Index
		state.clampSelection()
		return state, nil

	case PageUpAction:
		if len(state.Results) == 0 {
			return state, nil
		}
		newIdx := state.SelectedIndex - state.VisibleLines()
		if newIdx < 0 {
			newIdx = 0
		}
		state.SelectedIndex = newIdx
		state.updateScroll()
		return state, nil

	case PageDownAction:
		if len(state.Results) == 0 {
			return state, nil
		}
		newIdx := state.SelectedIndex + state.VisibleLines()
		if maxIdx := len(state.Results) - 1; newIdx > maxIdx {
			newIdx = maxIdx
		}
		state.SelectedIndex = newIdx
		state.updateScroll()
		return state, nil

	case HomeAction:
		if len(state.Results) > 0 {
			state.SelectedIndex = 0
			state.updateScroll()
		}
		return state, nil

	case EndAction:
		if len(state.Results) > 0 {
			state.SelectedIndex = len(state.Results) - 1
			state.updateScroll()
		}
		return state, nil

	case OpenAction:
		if current := state.CurrentResult(); current != nil {
			chosen := *current
			state.Chosen = &chosen
		}
		return state, nil

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.clampSelection()
		return state, nil
	}

	return state, nil
}
