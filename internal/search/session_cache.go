package search

// RecordSource is a finite, non-restartable sequence of discovered records.
type RecordSource interface {
	Next() (FileRecord, bool)
	Close()
}

// DirectoryStream produces the records found under a root.
type DirectoryStream interface {
	Produce(root string) RecordSource
}

// ReplayStream wraps a RecordSource and remembers everything it has yielded,
// so several readers can walk the same discovery without restarting it.
type ReplayStream struct {
	src     RecordSource
	records []FileRecord
	done    bool
}

func newReplayStream(src RecordSource) *ReplayStream {
	return &ReplayStream{src: src}
}

// At returns record i, pulling from the source as needed. It reports false
// once the source is exhausted before reaching i.
func (s *ReplayStream) At(i int) (FileRecord, bool) {
	for len(s.records) <= i && !s.done {
		rec, ok := s.src.Next()
		if !ok {
			s.finish()
			break
		}
		s.records = append(s.records, rec)
	}
	if i < 0 || i >= len(s.records) {
		return FileRecord{}, false
	}
	return s.records[i], true
}

// Len reports how many records have been produced so far.
func (s *ReplayStream) Len() int {
	return len(s.records)
}

// Exhausted reports whether the underlying source has finished.
func (s *ReplayStream) Exhausted() bool {
	return s.done
}

func (s *ReplayStream) finish() {
	if s.done {
		return
	}
	s.done = true
	s.src.Close()
}

// SessionCache memoizes one ReplayStream per root for the lifetime of a
// session, so a directory is walked at most once between Clear calls.
type SessionCache struct {
	producer DirectoryStream
	entries  map[string]*ReplayStream
}

// NewSessionCache returns a cache backed by producer.
func NewSessionCache(producer DirectoryStream) *SessionCache {
	return &SessionCache{
		producer: producer,
		entries:  make(map[string]*ReplayStream),
	}
}

// StreamFor returns the stream for root, creating it on first use.
func (c *SessionCache) StreamFor(root string) *ReplayStream {
	if stream, ok := c.entries[root]; ok {
		return stream
	}
	var src RecordSource = emptySource{}
	if c.producer != nil {
		src = c.producer.Produce(root)
	}
	stream := newReplayStream(src)
	c.entries[root] = stream
	return stream
}

// Clear closes any unfinished walk and forgets every stream.
func (c *SessionCache) Clear() {
	for _, stream := range c.entries {
		stream.finish()
	}
	c.entries = make(map[string]*ReplayStream)
}
