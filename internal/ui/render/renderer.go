package render

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	searchpkg "github.com/kk-code-lab/qopen/internal/search"
	statepkg "github.com/kk-code-lab/qopen/internal/state"
	textutil "github.com/kk-code-lab/qopen/internal/textutil"
)

const (
	headerRow    = 0
	promptRow    = 1
	separatorRow = 2
	listStartRow = 3

	promptText  = "> "
	placeholder = "Type something to search"
	noMatches   = "No matches"
	groupGap    = 2
)

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()

	w, h := r.screen.Size()
	if w <= 0 || h <= 0 || state == nil {
		r.screen.Show()
		return
	}

	r.drawHeader(state, w)
	if h > promptRow {
		r.drawPrompt(state, w)
	}
	if h > separatorRow {
		r.drawSeparator(w)
	}
	r.drawResults(state, w, h)
	if h > listStartRow {
		r.drawStatusLine(state, w, h)
	}

	r.screen.Show()
}

// drawHeader renders the title, the project roots and the search status.
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.HeaderFg)
	titleStyle := headerStyle.Bold(true)

	status := textutil.SanitizeTerminalText(formatSearchStatus(state))
	statusWidth := r.measureTextWidth(status)
	rootsLimit := w
	if status != "" && statusWidth+2 < w {
		rootsLimit = w - statusWidth - 1
	}

	x := r.drawStyledStringClipped(0, headerRow, rootsLimit, "qopen", titleStyle)
	if x < rootsLimit {
		x = r.drawStyledRune(x, headerRow, rootsLimit, ' ', headerStyle)
	}

	roots := make([]string, 0, len(state.Roots))
	for _, root := range state.Roots {
		roots = append(roots, textutil.SanitizeTerminalText(root))
	}
	rootsText := textutil.ElideLeft(strings.Join(roots, ", "), rootsLimit-x)
	x = r.drawStyledStringClipped(x, headerRow, rootsLimit, rootsText, headerStyle)
	r.fillRow(x, headerRow, w, headerStyle)

	if rootsLimit < w {
		r.drawStyledStringClipped(w-statusWidth, headerRow, w, status, headerStyle.Foreground(r.theme.PlaceholderFg))
	}
}

// drawPrompt renders the query line and places the terminal cursor.
func (r *Renderer) drawPrompt(state *statepkg.AppState, w int) {
	promptStyle := tcell.StyleDefault.Foreground(r.theme.PromptFg).Bold(true)
	queryStyle := tcell.StyleDefault.Foreground(r.theme.Foreground)

	x := r.drawStyledStringClipped(0, promptRow, w, promptText, promptStyle)
	queryStart := x

	runes := []rune(textutil.SanitizeTerminalText(state.Query))
	cursor := state.CursorPos
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}

	// Scroll the query horizontally so the cursor stays visible.
	available := w - queryStart - 1
	if available < 1 {
		available = 1
	}
	start := 0
	for start < cursor && r.measureTextWidth(string(runes[start:cursor])) > available {
		start++
	}

	cursorX := queryStart + r.measureTextWidth(string(runes[start:cursor]))
	r.drawStyledStringClipped(queryStart, promptRow, w, string(runes[start:]), queryStyle)

	if cursorX >= w {
		cursorX = w - 1
	}
	r.screen.ShowCursor(cursorX, promptRow)
}

func (r *Renderer) drawSeparator(w int) {
	style := tcell.StyleDefault.Foreground(r.theme.SeparatorFg)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, separatorRow, '─', nil, style)
	}
}

// drawResults renders the visible window of result rows.
func (r *Renderer) drawResults(state *statepkg.AppState, w, h int) {
	bottomLimit := h - 1
	if bottomLimit <= listStartRow {
		return
	}
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)

	if len(state.Results) == 0 {
		message := ""
		switch {
		case state.CleanQuery() == "":
			message = placeholder
		case !state.InProgress:
			message = noMatches
		}
		if message != "" {
			style := baseStyle.Foreground(r.theme.PlaceholderFg)
			r.drawStyledStringClipped(2, listStartRow, w, r.truncateTextToWidth(message, w-2), style)
		}
		return
	}

	visibleLines := bottomLimit - listStartRow
	startIdx := state.ScrollOffset
	maxStart := len(state.Results) - visibleLines
	if maxStart < 0 {
		maxStart = 0
	}
	if startIdx > maxStart {
		startIdx = maxStart
	}
	if startIdx < 0 {
		startIdx = 0
	}

	query := searchpkg.ParseQuery(state.Query)
	y := listStartRow
	for idx := startIdx; idx < len(state.Results) && y < bottomLimit; idx++ {
		r.drawResultRow(state.Results[idx], query, idx == state.SelectedIndex, y, w, baseStyle)
		y++
	}
}

func (r *Renderer) drawResultRow(result statepkg.Result, query searchpkg.Query, isSelected bool, y, w int, baseStyle tcell.Style) {
	rowStyle := baseStyle
	if isSelected {
		rowStyle = tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	}
	r.fillRow(0, y, w, rowStyle)

	nameStyle, nameMatchStyle, groupStyle, groupMatchStyle := r.rowStyles(rowStyle, isSelected, result.Buffer)

	marker := ' '
	if isSelected {
		marker = '▶'
	}
	x := r.drawStyledRune(0, y, w, marker, rowStyle.Bold(isSelected))
	x = r.drawStyledRune(x, y, w, ' ', rowStyle)

	name := textutil.SanitizeTerminalText(result.Name)
	group := textutil.SanitizeTerminalText(result.Group)
	nameSpans, groupSpans := searchpkg.HighlightSpans(query, name, group)

	x = r.drawHighlightedText(x, y, w, name, nameSpans, nameStyle, nameMatchStyle)
	if x+groupGap >= w || group == "" {
		return
	}
	x += groupGap

	// Long groups lose their head so the directories nearest the file stay visible.
	available := w - x
	if r.measureTextWidth(group) > available {
		elided := textutil.ElideLeft(group, available)
		dropped := len([]rune(group)) - (len([]rune(elided)) - 1)
		group = elided
		groupSpans = shiftSpans(groupSpans, dropped-1)
	}
	r.drawHighlightedText(x, y, w, group, groupSpans, groupStyle, groupMatchStyle)
}

// shiftSpans moves spans left by delta runes, dropping what falls off the start.
func shiftSpans(spans []searchpkg.MatchSpan, delta int) []searchpkg.MatchSpan {
	out := make([]searchpkg.MatchSpan, 0, len(spans))
	for _, span := range spans {
		start, end := span.Start-delta, span.End-delta
		if end <= 1 {
			continue
		}
		if start < 1 {
			start = 1
		}
		out = append(out, searchpkg.MatchSpan{Start: start, End: end})
	}
	return out
}

func (r *Renderer) rowStyles(rowStyle tcell.Style, isSelected, isBuffer bool) (name, nameMatch, group, groupMatch tcell.Style) {
	if isSelected {
		base := rowStyle.Foreground(r.theme.SelectionFg)
		return base, base.Bold(true).Underline(true), base, base.Bold(true)
	}

	nameColor := r.theme.NameFg
	if isBuffer {
		nameColor = r.theme.BufferFg
	}
	name = rowStyle.Foreground(nameColor)
	nameMatch = rowStyle.Foreground(r.theme.NameMatchFg).Bold(true)
	group = rowStyle.Foreground(r.theme.GroupFg)
	groupMatch = rowStyle.Foreground(r.theme.GroupMatchFg).Bold(true)
	return name, nameMatch, group, groupMatch
}

// drawStatusLine renders the selected path, or the last error, followed by
// key hints.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	normalStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	y := h - 1

	var left string
	leftStyle := normalStyle
	if state.LastError != nil {
		left = state.LastError.Error()
		leftStyle = normalStyle.Foreground(r.theme.ErrorFg)
	} else if current := state.CurrentResult(); current != nil {
		left = current.AbsPath
	}
	left = textutil.SanitizeTerminalText(left)

	help := buildFooterHelpText(state)
	helpWidth := r.measureTextWidth(help)

	leftLimit := w
	if helpWidth > 0 && helpWidth+10 < w {
		leftLimit = w - helpWidth
	}
	if left != "" {
		left = textutil.ElideLeft(left, leftLimit-1)
	}

	x := r.drawStyledStringClipped(0, y, leftLimit, left, leftStyle)
	r.fillRow(x, y, w, normalStyle)
	if leftLimit < w {
		r.drawStyledStringClipped(leftLimit, y, w, help, normalStyle.Foreground(r.theme.PlaceholderFg))
	}
}
