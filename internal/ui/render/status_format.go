package render

import (
	"fmt"
	"strings"
	"time"

	statepkg "github.com/kk-code-lab/qopen/internal/state"
)

// formatSearchStatus summarizes the filler progress for the header.
func formatSearchStatus(state *statepkg.AppState) string {
	if state.CleanQuery() == "" {
		return ""
	}

	var parts []string
	if label := state.StatusLabel(); label != "" {
		parts = append(parts, label)
	}

	progress := state.Progress
	if progress.FilesIndexed > 0 {
		parts = append(parts, fmt.Sprintf("%s files", formatCompactNumber(progress.FilesIndexed)))
	}
	if progress.RootsTotal > 1 && !progress.Done {
		parts = append(parts, fmt.Sprintf("root %d/%d", min(progress.RootsDone+1, progress.RootsTotal), progress.RootsTotal))
	}
	if progress.Duration > 0 {
		parts = append(parts, formatDurationShort(progress.Duration))
	}
	return strings.Join(parts, " · ")
}

func formatCompactNumber(n int) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000.0)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000.0)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000.0)
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimTrailingZero(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	unit := s[len(s)-1:]
	number := strings.TrimSuffix(strings.TrimSuffix(s[:len(s)-1], "0"), ".")
	return number + unit
}

func formatDurationShort(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return trimTrailingZero(fmt.Sprintf("%.1fs", d.Seconds()))
	case d < time.Hour:
		return trimTrailingZero(fmt.Sprintf("%.1fm", d.Minutes()))
	default:
		return trimTrailingZero(fmt.Sprintf("%.1fh", d.Hours()))
	}
}
