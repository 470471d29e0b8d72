package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/kk-code-lab/qopen/internal/search"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var errEmptyQuery = errors.New("empty query")

func newQueryCommand(flags *sessionFlags) *cobra.Command {
	var stats bool

	cmd := &cobra.Command{
		Use:   "query QUERY [roots...]",
		Short: "Print the best matches for QUERY without opening the dialog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig(cmd, args[1:])
			if err != nil {
				return err
			}
			session, err := flags.newSession(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			results, progress, err := runQuery(ctx, session, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printResults(out, search.ParseQuery(args[0]), results, useColor(out))
			if stats {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d results, %d files indexed in %s\n",
					len(results), progress.FilesIndexed, progress.Duration.Round(time.Millisecond))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&stats, "stats", false, "print indexing statistics to stderr")
	return cmd
}

// runQuery drives session until the filler for raw finishes and returns its
// final emission.
func runQuery(ctx context.Context, session *search.Session, raw string) ([]search.Result, search.Progress, error) {
	if search.ParseQuery(raw).Empty() {
		return nil, search.Progress{}, errEmptyQuery
	}

	session.Open()
	defer session.Close()

	var (
		results  []search.Result
		progress search.Progress
	)
	session.SetQuery(raw, func(r []search.Result, p search.Progress) {
		results = r
		progress = p
	})
	if err := session.Run(ctx); err != nil {
		return results, progress, fmt.Errorf("query %q: %w", raw, err)
	}
	return results, progress, nil
}

func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type resultPalette struct {
	name   *color.Color
	match  *color.Color
	group  *color.Color
	buffer *color.Color
}

func newResultPalette(enabled bool) resultPalette {
	p := resultPalette{
		name:   color.New(color.Bold),
		match:  color.New(color.FgYellow, color.Bold),
		group:  color.New(color.FgHiBlack),
		buffer: color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.name, p.match, p.group, p.buffer} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// printResults writes one "name  group" line per result. Open buffers are
// marked with a leading '*'.
func printResults(w io.Writer, q search.Query, results []search.Result, colorize bool) {
	palette := newResultPalette(colorize)
	for _, res := range results {
		nameSpans, groupSpans := search.HighlightSpans(q, res.Name, res.Group)

		var line strings.Builder
		if res.Buffer {
			line.WriteString(palette.buffer.Sprint("*"))
		} else {
			line.WriteByte(' ')
		}
		line.WriteByte(' ')
		line.WriteString(highlight(res.Name, nameSpans, palette.name, palette.match))
		if res.Group != "" {
			line.WriteString("  ")
			line.WriteString(highlight(res.Group, groupSpans, palette.group, palette.match))
		}
		fmt.Fprintln(w, line.String())
	}
}

func highlight(text string, spans []search.MatchSpan, base, hl *color.Color) string {
	runes := []rune(text)
	var b strings.Builder
	pos := 0
	for _, span := range spans {
		start, end := clampSpan(span, len(runes))
		if start < pos {
			start = pos
		}
		if start >= end {
			continue
		}
		if start > pos {
			b.WriteString(base.Sprint(string(runes[pos:start])))
		}
		b.WriteString(hl.Sprint(string(runes[start:end])))
		pos = end
	}
	if pos < len(runes) {
		b.WriteString(base.Sprint(string(runes[pos:])))
	}
	return b.String()
}

func clampSpan(span search.MatchSpan, n int) (int, int) {
	return max(0, min(span.Start, n)), max(0, min(span.End, n))
}
