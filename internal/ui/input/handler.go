package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/qopen/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference consulted for context-dependent keys
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the event ends the dialog.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		if ih.state != nil && ih.state.Query != "" {
			ih.actionChan <- statepkg.ResetQueryAction{}
			return true
		}
		ih.actionChan <- statepkg.QuitAction{}
		return false

	case tcell.KeyCtrlC:
		ih.actionChan <- statepkg.QuitAction{}
		return false

	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
		return true

	case tcell.KeyEnter:
		ih.actionChan <- statepkg.OpenAction{}
		return true

	case tcell.KeyUp, tcell.KeyCtrlP:
		ih.actionChan <- statepkg.NavigateAction{Direction: "up"}
		return true

	case tcell.KeyDown, tcell.KeyCtrlN:
		ih.actionChan <- statepkg.NavigateAction{Direction: "down"}
		return true

	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.PageUpAction{}
		return true

	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.PageDownAction{}
		return true

	case tcell.KeyRight:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			ih.actionChan <- statepkg.MoveCursorAction{Direction: "word-right"}
		} else {
			ih.actionChan <- statepkg.MoveCursorAction{Direction: "right"}
		}
		return true

	case tcell.KeyLeft:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			ih.actionChan <- statepkg.MoveCursorAction{Direction: "word-left"}
		} else {
			ih.actionChan <- statepkg.MoveCursorAction{Direction: "left"}
		}
		return true

	case tcell.KeyHome, tcell.KeyCtrlA:
		ih.actionChan <- statepkg.MoveCursorAction{Direction: "home"}
		return true

	case tcell.KeyEnd, tcell.KeyCtrlE:
		ih.actionChan <- statepkg.MoveCursorAction{Direction: "end"}
		return true

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.BackspaceAction{}
		return true

	case tcell.KeyDelete:
		ih.actionChan <- statepkg.DeleteAction{}
		return true

	case tcell.KeyCtrlW:
		ih.actionChan <- statepkg.DeleteWordAction{}
		return true

	case tcell.KeyCtrlU:
		ih.actionChan <- statepkg.ResetQueryAction{}
		return true

	case tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			switch r {
			case 'a', 'A':
				ih.actionChan <- statepkg.MoveCursorAction{Direction: "home"}
				return true
			case 'e', 'E':
				ih.actionChan <- statepkg.MoveCursorAction{Direction: "end"}
				return true
			case 'w', 'W':
				ih.actionChan <- statepkg.DeleteWordAction{}
				return true
			}
		}
		if ev.Modifiers()&tcell.ModAlt != 0 {
			switch r {
			case 'b', 'B':
				ih.actionChan <- statepkg.MoveCursorAction{Direction: "word-left"}
				return true
			case 'f', 'F':
				ih.actionChan <- statepkg.MoveCursorAction{Direction: "word-right"}
				return true
			}
		}
		if ev.Modifiers()&tcell.ModShift != 0 {
			// Normalize shifted alphabetic runes to reflect user intent (Shift+A => 'A')
			r = unicode.ToUpper(r)
		}
		if !unicode.IsPrint(r) {
			return true
		}
		ih.actionChan <- statepkg.CharAction{Char: r}
		return true

	default:
		return true
	}
}
