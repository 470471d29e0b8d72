package search

import "time"

// EmitFunc receives the current top results of a query. It is called from
// the goroutine driving the scheduler.
type EmitFunc func(results []Result, progress Progress)

// filler grows the session index for one query and re-emits its top results
// after every batch. It stops as soon as a newer query takes over.
type filler struct {
	session *Session
	query   Query
	gen     Generation
	emit    EmitFunc
	rootIdx int
	steps   int
	started time.Time
}

func newFiller(session *Session, query Query, gen Generation, emit EmitFunc) *filler {
	return &filler{
		session: session,
		query:   query,
		gen:     gen,
		emit:    emit,
		started: time.Now(),
	}
}

func (f *filler) Step() bool {
	s := f.session
	if !s.sched.IsCurrent(f.gen) {
		debugf("filler stale query=%q gen=%d live=%d", f.query.Raw, f.gen, s.sched.Current())
		return false
	}
	f.steps++

	for f.rootIdx < len(s.roots) {
		root := s.roots[f.rootIdx]
		batch, exhausted := s.pull(root, s.batchSize)
		if len(batch) > 0 {
			s.index.Extend(batch)
		}
		if exhausted {
			debugf("filler root done root=%s indexed=%d", root, s.index.Len())
			f.rootIdx++
		}
		if len(batch) > 0 {
			break
		}
	}

	done := f.rootIdx >= len(s.roots)
	f.emitTop(done)
	return !done
}

func (f *filler) emitTop(done bool) {
	s := f.session
	files := s.engine.Take(f.query, s.resultLimit+len(s.buffers))
	buffers := s.bufferEngine.Take(f.query, s.resultLimit)
	results := mergeResults(buffers, files, s.resultLimit)

	now := time.Now()
	progress := Progress{
		Query:        f.query.Raw,
		Generation:   f.gen,
		FilesIndexed: s.index.Len(),
		RootsDone:    f.rootIdx,
		RootsTotal:   len(s.roots),
		Steps:        f.steps,
		Done:         done,
		StartedAt:    f.started,
		UpdatedAt:    now,
		Duration:     now.Sub(f.started),
	}
	if f.emit != nil {
		f.emit(results, progress)
	}
}
