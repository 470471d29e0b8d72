package search

import (
	"os"
	"path/filepath"
	"testing"
)

// sliceProducer is a DirectoryStream over fixed relative paths per root.
type sliceProducer struct {
	paths    map[string][]string
	produced map[string]int
}

func newSliceProducer(paths map[string][]string) *sliceProducer {
	return &sliceProducer{paths: paths, produced: make(map[string]int)}
}

func (p *sliceProducer) Produce(root string) RecordSource {
	p.produced[root]++
	return &sliceSource{root: root, paths: p.paths[root]}
}

type sliceSource struct {
	root   string
	paths  []string
	pos    int
	closed bool
}

func (s *sliceSource) Next() (FileRecord, bool) {
	if s.closed || s.pos >= len(s.paths) {
		return FileRecord{}, false
	}
	rec := NewFileRecord(s.root, s.paths[s.pos])
	s.pos++
	return rec, true
}

func (s *sliceSource) Close() {
	s.closed = true
}

func recordsFor(root string, paths ...string) []FileRecord {
	records := make([]FileRecord, 0, len(paths))
	for _, p := range paths {
		records = append(records, NewFileRecord(root, p))
	}
	return records
}

func names(records []FileRecord) []string {
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec.Name
	}
	return out
}

func relPaths(records []FileRecord) []string {
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec.RelPath
	}
	return out
}

func resultNames(results []Result) []string {
	out := make([]string, len(results))
	for i, res := range results {
		out[i] = res.Name
	}
	return out
}

func writeTestFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
