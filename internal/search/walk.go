package search

import (
	"os"
	"path"
	"path/filepath"
)

// Walker is the filesystem DirectoryStream. It walks roots breadth-first and
// only reads a directory when the consumer asks for more records.
type Walker struct {
	Rules *IgnoreRules
}

// NewWalker returns a walker applying rules.
func NewWalker(rules *IgnoreRules) *Walker {
	return &Walker{Rules: rules}
}

// Produce starts a lazy walk of root. A missing or unreadable root yields an
// empty sequence.
func (w *Walker) Produce(root string) RecordSource {
	return &walkSource{
		root:  root,
		rules: w.Rules,
		queue: []walkDir{{absPath: root, relPath: "."}},
	}
}

type walkDir struct {
	absPath string
	relPath string
}

type walkSource struct {
	root    string
	rules   *IgnoreRules
	queue   []walkDir
	current walkDir
	entries []os.DirEntry
	pos     int
	closed  bool
}

func (s *walkSource) Next() (FileRecord, bool) {
	for !s.closed {
		if s.pos >= len(s.entries) {
			if !s.advanceDir() {
				s.Close()
				return FileRecord{}, false
			}
			continue
		}

		entry := s.entries[s.pos]
		s.pos++

		name := entry.Name()
		rel := joinRelPath(s.current.relPath, name)
		abs := filepath.Join(s.current.absPath, name)

		if entry.IsDir() {
			if !s.rules.SkipDir(rel, abs, name) {
				s.queue = append(s.queue, walkDir{absPath: abs, relPath: rel})
			}
			continue
		}
		if s.rules.SkipFile(rel, abs, name) {
			continue
		}
		return NewFileRecord(s.root, rel), true
	}
	return FileRecord{}, false
}

// advanceDir loads the next readable directory from the queue.
func (s *walkSource) advanceDir() bool {
	for len(s.queue) > 0 {
		dir := s.queue[0]
		s.queue = s.queue[1:]

		entries, err := os.ReadDir(dir.absPath)
		if err != nil {
			debugf("walk skip dir=%s err=%v", dir.absPath, err)
			continue
		}
		s.current = dir
		s.entries = entries
		s.pos = 0
		return true
	}
	return false
}

func (s *walkSource) Close() {
	s.closed = true
	s.queue = nil
	s.entries = nil
}

func joinRelPath(parent, child string) string {
	if parent == "." || parent == "" {
		return child
	}
	return path.Join(parent, child)
}

type emptySource struct{}

func (emptySource) Next() (FileRecord, bool) { return FileRecord{}, false }
func (emptySource) Close()                   {}
