package search

import (
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// Query is a parsed path query. Tokens are folded and ordered nearest to the
// filename first: "app/main" yields ["main", "app"].
type Query struct {
	Raw    string
	Tokens []string
}

// ParseQuery splits raw on '/'. Empty tokens produced by leading, trailing or
// doubled separators are dropped.
func ParseQuery(raw string) Query {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	tokens := make([]string, 0, len(parts))
	for i := len(parts) - 1; i >= 0; i-- {
		token := foldSegment(strings.TrimSpace(parts[i]))
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return Query{Raw: raw, Tokens: tokens}
}

// Empty reports whether the query has nothing to match.
func (q Query) Empty() bool {
	return len(q.Tokens) == 0
}

// RecordStream yields matched records lazily, best first.
type RecordStream interface {
	Next() (FileRecord, bool)
}

// QueryEngine answers queries against a PathIndex.
type QueryEngine struct {
	index *PathIndex
}

// NewQueryEngine returns an engine reading idx.
func NewQueryEngine(idx *PathIndex) *QueryEngine {
	return &QueryEngine{index: idx}
}

// Match returns the records matching q. The first token must match the
// filename when the query has several tokens; every further token k must
// match an ancestor directory at least k levels above the file.
func (e *QueryEngine) Match(q Query) RecordStream {
	if q.Empty() {
		return emptyRecordStream{}
	}

	if len(q.Tokens) == 1 {
		return &recordStream{src: &dedupStream{
			src:  e.tokenStream(q.Tokens[0]),
			seen: roaring.New(),
		}}
	}

	var primary EntryStream = &dedupStream{
		src: &filterStream{
			src:  e.tokenStream(q.Tokens[0]),
			keep: func(entry IndexEntry) bool { return entry.Depth == 0 },
		},
		seen: roaring.New(),
	}

	for k := 1; k < len(q.Tokens); k++ {
		minDepth := k
		secondary := &filterStream{
			src:  e.tokenStream(q.Tokens[k]),
			keep: func(entry IndexEntry) bool { return entry.MaxDepth >= minDepth },
		}
		primary = &refineStream{
			primary:   primary,
			secondary: secondary,
			consumed:  roaring.New(),
		}
	}

	return &recordStream{src: primary}
}

// Take returns at most n records matching q.
func (e *QueryEngine) Take(q Query, n int) []FileRecord {
	if n <= 0 {
		return nil
	}
	stream := e.Match(q)
	out := make([]FileRecord, 0, min(n, 32))
	for len(out) < n {
		rec, ok := stream.Next()
		if !ok {
			break
		}
		out = append(out, rec)
	}
	return out
}

func (e *QueryEngine) tokenStream(token string) EntryStream {
	prefix, substring := MatchToken(e.index, token)
	return concatStreams(prefix, substring)
}

// dedupStream passes each record through once, at its first (best) position.
type dedupStream struct {
	src  EntryStream
	seen *roaring.Bitmap
}

func (s *dedupStream) Next() (IndexEntry, bool) {
	for {
		entry, ok := s.src.Next()
		if !ok {
			return IndexEntry{}, false
		}
		if s.seen.CheckedAdd(entry.ord) {
			return entry, true
		}
	}
}

// refineStream keeps the primary candidates that also appear in secondary.
// Secondary is consumed lazily and every entry is read at most once; records
// already read are remembered so later candidates can be confirmed without
// rescanning. Once secondary is exhausted, unconfirmed candidates are dropped.
type refineStream struct {
	primary   EntryStream
	secondary EntryStream
	consumed  *roaring.Bitmap
	exhausted bool
}

func (s *refineStream) Next() (IndexEntry, bool) {
	for {
		candidate, ok := s.primary.Next()
		if !ok {
			return IndexEntry{}, false
		}
		if s.consumed.Contains(candidate.ord) {
			return candidate, true
		}
		for !s.exhausted {
			entry, ok := s.secondary.Next()
			if !ok {
				s.exhausted = true
				break
			}
			s.consumed.Add(entry.ord)
			if entry.ord == candidate.ord {
				return candidate, true
			}
		}
	}
}

type recordStream struct {
	src EntryStream
}

func (s *recordStream) Next() (FileRecord, bool) {
	entry, ok := s.src.Next()
	if !ok {
		return FileRecord{}, false
	}
	return *entry.Record, true
}

type emptyRecordStream struct{}

func (emptyRecordStream) Next() (FileRecord, bool) {
	return FileRecord{}, false
}
