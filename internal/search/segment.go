package search

import (
	"container/heap"
	"sort"
	"strings"
)

// EntryStream yields index entries lazily.
type EntryStream interface {
	Next() (IndexEntry, bool)
}

// MatchToken returns two lazy streams over the buckets of idx: entries from
// buckets whose key starts with token, then entries from buckets that only
// contain it. Both streams are ordered by depth from the filename.
func MatchToken(idx *PathIndex, token string) (prefix EntryStream, substring EntryStream) {
	key := foldSegment(token)
	prefix = &bucketMergeStream{
		index: idx,
		selectKeys: func(keys []string) []string {
			start := sort.SearchStrings(keys, key)
			end := start
			for end < len(keys) && strings.HasPrefix(keys[end], key) {
				end++
			}
			return keys[start:end]
		},
	}
	substring = &bucketMergeStream{
		index: idx,
		selectKeys: func(keys []string) []string {
			var out []string
			for _, k := range keys {
				if strings.Contains(k, key) && !strings.HasPrefix(k, key) {
					out = append(out, k)
				}
			}
			return out
		},
	}
	return prefix, substring
}

// bucketCursor walks one sorted bucket during a k-way merge.
type bucketCursor struct {
	entries []IndexEntry
	pos     int
	rank    int // position of the bucket key in ascending key order
}

func (c *bucketCursor) head() IndexEntry {
	return c.entries[c.pos]
}

type cursorHeap []*bucketCursor

func (h cursorHeap) Len() int { return len(h) }
func (h cursorHeap) Less(i, j int) bool {
	a, b := h[i].head(), h[j].head()
	if a.Depth != b.Depth {
		return a.Depth < b.Depth
	}
	if a.RelPath != b.RelPath {
		return a.RelPath < b.RelPath
	}
	return h[i].rank < h[j].rank
}
func (h cursorHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *cursorHeap) Push(x any) {
	*h = append(*h, x.(*bucketCursor))
}

func (h *cursorHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// bucketMergeStream merges the sorted buckets picked by selectKeys. Nothing is
// selected or sorted until the first call to Next.
type bucketMergeStream struct {
	index      *PathIndex
	selectKeys func(keys []string) []string
	started    bool
	cursors    cursorHeap
}

func (s *bucketMergeStream) start() {
	s.started = true
	keys := s.selectKeys(s.index.Keys())
	s.cursors = make(cursorHeap, 0, len(keys))
	for rank, key := range keys {
		entries := s.index.sortedBucketKey(key)
		if len(entries) == 0 {
			continue
		}
		s.cursors = append(s.cursors, &bucketCursor{entries: entries, rank: rank})
	}
	heap.Init(&s.cursors)
}

func (s *bucketMergeStream) Next() (IndexEntry, bool) {
	if !s.started {
		s.start()
	}
	if s.cursors.Len() == 0 {
		return IndexEntry{}, false
	}
	top := s.cursors[0]
	entry := top.head()
	top.pos++
	if top.pos >= len(top.entries) {
		heap.Pop(&s.cursors)
	} else {
		heap.Fix(&s.cursors, 0)
	}
	return entry, true
}

type concatStream struct {
	streams []EntryStream
}

func concatStreams(streams ...EntryStream) EntryStream {
	return &concatStream{streams: streams}
}

func (s *concatStream) Next() (IndexEntry, bool) {
	for len(s.streams) > 0 {
		if entry, ok := s.streams[0].Next(); ok {
			return entry, true
		}
		s.streams = s.streams[1:]
	}
	return IndexEntry{}, false
}

type filterStream struct {
	src  EntryStream
	keep func(IndexEntry) bool
}

func (s *filterStream) Next() (IndexEntry, bool) {
	for {
		entry, ok := s.src.Next()
		if !ok {
			return IndexEntry{}, false
		}
		if s.keep(entry) {
			return entry, true
		}
	}
}
