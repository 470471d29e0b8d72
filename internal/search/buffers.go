package search

import (
	"path/filepath"
)

// BufferEnumerator lists the files the user already has open. Their records
// are always listed ahead of walked files.
type BufferEnumerator interface {
	Buffers() []FileRecord
}

// StaticBuffers is a BufferEnumerator over a fixed list of paths.
type StaticBuffers struct {
	Paths []string
	Roots []string
}

// Buffers returns one record per distinct path, in the given order.
func (b StaticBuffers) Buffers() []FileRecord {
	if len(b.Paths) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(b.Paths))
	records := make([]FileRecord, 0, len(b.Paths))
	for _, p := range b.Paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = filepath.Clean(p)
		}
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}
		records = append(records, NewBufferRecord(abs, b.Roots))
	}
	return records
}

// Result is one row handed to the renderer.
type Result struct {
	Name    string
	Group   string
	AbsPath string
	Root    string
	Buffer  bool
	Record  FileRecord
}

func newResult(rec FileRecord) Result {
	return Result{
		Name:    rec.Name,
		Group:   rec.Group,
		AbsPath: rec.AbsPath,
		Root:    rec.Root,
		Buffer:  rec.Root == BufferRoot,
		Record:  rec,
	}
}

// mergeResults lists buffer matches first, then walked matches whose file is
// not already open, up to limit rows.
func mergeResults(buffers, files []FileRecord, limit int) []Result {
	if limit <= 0 {
		return nil
	}
	results := make([]Result, 0, min(limit, len(buffers)+len(files)))
	seen := make(map[string]struct{}, len(buffers))
	for _, rec := range buffers {
		if len(results) >= limit {
			return results
		}
		if _, ok := seen[rec.AbsPath]; ok {
			continue
		}
		seen[rec.AbsPath] = struct{}{}
		results = append(results, newResult(rec))
	}
	for _, rec := range files {
		if len(results) >= limit {
			break
		}
		if _, ok := seen[rec.AbsPath]; ok {
			continue
		}
		seen[rec.AbsPath] = struct{}{}
		results = append(results, newResult(rec))
	}
	return results
}
