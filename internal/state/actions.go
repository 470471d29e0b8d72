package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== PROMPT ACTIONS =====

type CharAction struct {
	Char rune
}
type BackspaceAction struct{}
type DeleteAction struct{}
type DeleteWordAction struct{}
type ResetQueryAction struct{}
type MoveCursorAction struct {
	Direction string // "left", "right", "word-left", "word-right", "home", "end"
}

// ===== RESULT LIST ACTIONS =====

type NavigateAction struct {
	Direction string // "up" or "down"
}
type SelectIndexAction struct {
	Index int
}
type PageUpAction struct{}
type PageDownAction struct{}
type HomeAction struct{}
type EndAction struct{}
type OpenAction struct{}

// ResultsAction carries a filler emission. Emissions from an older
// generation are ignored.
type ResultsAction struct {
	Results  []Result
	Progress Progress
}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{} // close the dialog without choosing
type SuspendAction struct{}
