package search

import (
	"sort"
	"unicode"
)

// MatchSpan marks a half-open rune range [Start, End) to highlight.
type MatchSpan struct {
	Start int
	End   int
}

// MergeMatchSpans joins overlapping or touching spans. Input must be sorted by Start.
func MergeMatchSpans(spans []MatchSpan) []MatchSpan {
	if len(spans) == 0 {
		return nil
	}
	merged := make([]MatchSpan, 0, len(spans))
	current := spans[0]
	for i := 1; i < len(spans); i++ {
		next := spans[i]
		if next.Start <= current.End {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	return merged
}

// HighlightSpans locates the query tokens in a result row. The filename token
// is looked up in name; the remaining tokens, and the filename token when the
// record matched through a directory, are looked up in group.
func HighlightSpans(q Query, name, group string) (nameSpans, groupSpans []MatchSpan) {
	if q.Empty() {
		return nil, nil
	}

	if span, ok := findToken(name, q.Tokens[0]); ok {
		nameSpans = []MatchSpan{span}
	} else if span, ok := findToken(group, q.Tokens[0]); ok {
		groupSpans = append(groupSpans, span)
	}

	for _, token := range q.Tokens[1:] {
		if span, ok := findToken(group, token); ok {
			groupSpans = append(groupSpans, span)
		}
	}

	if len(groupSpans) > 1 {
		sort.Slice(groupSpans, func(i, j int) bool {
			if groupSpans[i].Start == groupSpans[j].Start {
				return groupSpans[i].End < groupSpans[j].End
			}
			return groupSpans[i].Start < groupSpans[j].Start
		})
		groupSpans = MergeMatchSpans(groupSpans)
	}
	return nameSpans, groupSpans
}

// findToken returns the first case-insensitive occurrence of token in text,
// in rune offsets.
func findToken(text, token string) (MatchSpan, bool) {
	if token == "" || text == "" {
		return MatchSpan{}, false
	}
	haystack := []rune(text)
	needle := []rune(token)
	for i := range needle {
		needle[i] = unicode.ToLower(needle[i])
	}

	for start := 0; start+len(needle) <= len(haystack); start++ {
		matched := true
		for j, r := range needle {
			if unicode.ToLower(haystack[start+j]) != r {
				matched = false
				break
			}
		}
		if matched {
			return MatchSpan{Start: start, End: start + len(needle)}, true
		}
	}
	return MatchSpan{}, false
}
