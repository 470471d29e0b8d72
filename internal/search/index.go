package search

import (
	"sort"
)

// IndexEntry is one record's membership in a segment bucket.
type IndexEntry struct {
	Depth      int // separators between the segment and the filename; 0 is the filename
	MaxDepth   int // deepest occurrence of the segment when a path repeats it
	TotalDepth int // number of segments in RelPath
	RelPath    string
	Record     *FileRecord

	ord uint32
}

type indexBucket struct {
	entries []IndexEntry
}

// PathIndex maps every path segment to the records that contain it. Buckets
// are appended to in Extend and sorted lazily on the next read.
//
// PathIndex is not safe for concurrent use; the session drives it from a
// single goroutine.
type PathIndex struct {
	buckets   map[string]*indexBucket
	dirty     map[string]struct{}
	records   []*FileRecord
	keys      []string
	keysDirty bool
}

// NewPathIndex returns an empty index.
func NewPathIndex() *PathIndex {
	idx := &PathIndex{}
	idx.Clear()
	return idx
}

// Clear drops every bucket and record.
func (idx *PathIndex) Clear() {
	idx.buckets = make(map[string]*indexBucket)
	idx.dirty = make(map[string]struct{})
	idx.records = nil
	idx.keys = nil
	idx.keysDirty = false
}

// Extend indexes records. Each distinct segment of a record's path gets one
// bucket entry at the depth nearest the filename; a repeated name only raises
// that entry's MaxDepth.
func (idx *PathIndex) Extend(records []FileRecord) {
	for i := range records {
		rec := records[i]
		ord := uint32(len(idx.records))
		idx.records = append(idx.records, &rec)

		segments := splitSegments(rec.RelPath)
		total := len(segments)
		seen := make([]seenSegment, 0, total)
		for depth, segment := range segments {
			key := foldSegment(segment)
			if prev, ok := findSeen(seen, key); ok {
				prev.bucket.entries[prev.pos].MaxDepth = depth
				continue
			}

			b, ok := idx.buckets[key]
			if !ok {
				b = &indexBucket{}
				idx.buckets[key] = b
				idx.keys = append(idx.keys, key)
				idx.keysDirty = true
			}
			seen = append(seen, seenSegment{key: key, bucket: b, pos: len(b.entries)})
			b.entries = append(b.entries, IndexEntry{
				Depth:      depth,
				MaxDepth:   depth,
				TotalDepth: total,
				RelPath:    rec.RelPath,
				Record:     &rec,
				ord:        ord,
			})
			idx.dirty[key] = struct{}{}
		}
	}
}

// SortedBucket returns the entries for segment ordered by depth, then path.
// The returned slice must not be modified.
func (idx *PathIndex) SortedBucket(segment string) []IndexEntry {
	return idx.sortedBucketKey(foldSegment(segment))
}

func (idx *PathIndex) sortedBucketKey(key string) []IndexEntry {
	b, ok := idx.buckets[key]
	if !ok {
		return nil
	}
	if _, dirty := idx.dirty[key]; dirty {
		sort.SliceStable(b.entries, func(i, j int) bool {
			return lessEntry(b.entries[i], b.entries[j])
		})
		delete(idx.dirty, key)
	}
	n := len(b.entries)
	return b.entries[:n:n]
}

// Keys returns the bucket keys in ascending order.
func (idx *PathIndex) Keys() []string {
	if idx.keysDirty {
		sort.Strings(idx.keys)
		idx.keysDirty = false
	}
	n := len(idx.keys)
	return idx.keys[:n:n]
}

// Len reports how many records have been indexed.
func (idx *PathIndex) Len() int {
	return len(idx.records)
}

func lessEntry(a, b IndexEntry) bool {
	if a.Depth != b.Depth {
		return a.Depth < b.Depth
	}
	if a.RelPath != b.RelPath {
		return a.RelPath < b.RelPath
	}
	return a.ord < b.ord
}

// seenSegment locates the entry a record already has in a bucket. Positions
// stay valid while one record is being added since buckets are only sorted
// on read.
type seenSegment struct {
	key    string
	bucket *indexBucket
	pos    int
}

func findSeen(seen []seenSegment, key string) (seenSegment, bool) {
	for _, s := range seen {
		if s.key == key {
			return s, true
		}
	}
	return seenSegment{}, false
}
