package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/qopen/internal/state"
)

// buildFooterHelpText returns the footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	if state.CleanQuery() == "" {
		return []string{
			"type: search",
			"a/b: dir/file",
			"Esc: close",
		}
	}

	return []string{
		"↵: open",
		"↑↓: select",
		"PgUp/PgDn: page",
		"Esc: clear",
		"^C: close",
	}
}
