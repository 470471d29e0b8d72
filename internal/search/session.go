package search

import (
	"context"
)

const (
	// DefaultBatchSize is how many newly discovered records a filler indexes per step.
	DefaultBatchSize = 50
	// DefaultResultLimit is how many rows a filler emits.
	DefaultResultLimit = 20
)

// Options configures a Session.
type Options struct {
	Roots       []string
	Producer    DirectoryStream
	Buffers     BufferEnumerator
	BatchSize   int
	ResultLimit int
}

// Session owns everything that lives for one open search dialog: the index,
// the per-root discovery cache and the scheduler running fillers.
type Session struct {
	roots       []string
	batchSize   int
	resultLimit int
	bufferSrc   BufferEnumerator

	index   *PathIndex
	engine  *QueryEngine
	cache   *SessionCache
	cursors map[string]int
	sched   *Scheduler

	buffers      []FileRecord
	bufferIndex  *PathIndex
	bufferEngine *QueryEngine

	query Query
	open  bool
}

// NewSession builds a closed session; call Open before querying.
func NewSession(opts Options) *Session {
	batch := opts.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	limit := opts.ResultLimit
	if limit <= 0 {
		limit = DefaultResultLimit
	}

	index := NewPathIndex()
	bufferIndex := NewPathIndex()
	return &Session{
		roots:        dedupRoots(opts.Roots),
		batchSize:    batch,
		resultLimit:  limit,
		bufferSrc:    opts.Buffers,
		index:        index,
		engine:       NewQueryEngine(index),
		cache:        NewSessionCache(opts.Producer),
		cursors:      make(map[string]int),
		sched:        NewScheduler(),
		bufferIndex:  bufferIndex,
		bufferEngine: NewQueryEngine(bufferIndex),
	}
}

// Open resets the session: index, cache and pending work are discarded and
// open buffers are enumerated again.
func (s *Session) Open() {
	s.reset()
	if s.bufferSrc != nil {
		s.buffers = s.bufferSrc.Buffers()
	}
	s.bufferIndex.Extend(s.buffers)
	s.open = true
	debugf("session open roots=%v buffers=%d", s.roots, len(s.buffers))
}

// Close discards the session state. A closed session ignores queries.
func (s *Session) Close() {
	s.reset()
	s.open = false
}

func (s *Session) reset() {
	s.sched.Reset()
	s.cache.Clear()
	s.index.Clear()
	s.bufferIndex.Clear()
	s.buffers = nil
	s.cursors = make(map[string]int)
	s.query = Query{}
}

// SetQuery makes raw the active query and starts a filler for it. Any filler
// for an earlier query stops at its next step without emitting. An empty
// query only cancels.
func (s *Session) SetQuery(raw string, emit EmitFunc) Generation {
	gen := s.sched.NextGeneration()
	s.query = ParseQuery(raw)
	if !s.open || s.query.Empty() {
		return gen
	}
	debugf("query gen=%d raw=%q tokens=%v", gen, raw, s.query.Tokens)
	s.sched.Spawn(newFiller(s, s.query, gen, emit))
	return gen
}

// Step runs one scheduler step and reports whether more work is pending.
func (s *Session) Step() bool {
	return s.sched.Step()
}

// Pending reports whether a filler still has work to do.
func (s *Session) Pending() bool {
	return s.sched.Pending()
}

// Run drives the scheduler until every filler finished or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	return s.sched.RunUntilIdle(ctx)
}

// Query returns the active query.
func (s *Session) Query() Query {
	return s.query
}

// Roots returns the configured project roots.
func (s *Session) Roots() []string {
	out := make([]string, len(s.roots))
	copy(out, s.roots)
	return out
}

// IndexedCount reports how many walked records the index holds.
func (s *Session) IndexedCount() int {
	return s.index.Len()
}

// pull hands out up to n records of root that the index has not seen yet.
func (s *Session) pull(root string, n int) ([]FileRecord, bool) {
	stream := s.cache.StreamFor(root)
	cursor := s.cursors[root]
	batch := make([]FileRecord, 0, n)
	for len(batch) < n {
		rec, ok := stream.At(cursor)
		if !ok {
			break
		}
		batch = append(batch, rec)
		cursor++
	}
	s.cursors[root] = cursor
	return batch, stream.Exhausted() && cursor >= stream.Len()
}

func dedupRoots(roots []string) []string {
	seen := make(map[string]struct{}, len(roots))
	out := make([]string, 0, len(roots))
	for _, root := range roots {
		if root == "" {
			continue
		}
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		out = append(out, root)
	}
	return out
}
