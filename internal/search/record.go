package search

import (
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// BufferRoot is the root tag carried by records that come from open buffers.
const BufferRoot = "__buffer__"

// FileRecord describes one discovered file. Records are immutable once created.
type FileRecord struct {
	Name    string // display name (the filename)
	RelPath string // root-relative path, always '/'-separated and NFC-normalized
	Root    string // root tag: the project root path or BufferRoot
	Group   string // display group shown next to the name
	AbsPath string
}

// NewFileRecord builds a record for relPath discovered under root.
func NewFileRecord(root, relPath string) FileRecord {
	rel := normalizeRelPath(relPath)
	name := path.Base(rel)
	dir := path.Dir(rel)

	group := filepath.Base(root)
	if dir != "." {
		group = group + "/" + dir
	}

	return FileRecord{
		Name:    name,
		RelPath: rel,
		Root:    root,
		Group:   group,
		AbsPath: filepath.Join(root, filepath.FromSlash(relPath)),
	}
}

// NewBufferRecord builds a record for an open buffer. When the file lives
// under one of roots its relative path is computed against that root so that
// directory tokens behave the same as for walked files.
func NewBufferRecord(absPath string, roots []string) FileRecord {
	cleaned := filepath.Clean(absPath)
	rel := ""
	for _, root := range roots {
		candidate, err := filepath.Rel(root, cleaned)
		if err != nil || candidate == "." || strings.HasPrefix(candidate, "..") {
			continue
		}
		rel = candidate
		break
	}
	if rel == "" {
		rel = strings.TrimPrefix(filepath.ToSlash(cleaned), filepath.ToSlash(filepath.VolumeName(cleaned)))
	}

	rel = normalizeRelPath(rel)
	return FileRecord{
		Name:    path.Base(rel),
		RelPath: rel,
		Root:    BufferRoot,
		Group:   "* " + filepath.Dir(cleaned),
		AbsPath: cleaned,
	}
}

func normalizeRelPath(relPath string) string {
	rel := filepath.ToSlash(relPath)
	rel = strings.Trim(rel, "/")
	rel = strings.TrimPrefix(rel, "./")
	if rel == "" {
		return "."
	}
	return norm.NFC.String(rel)
}

// splitSegments returns the segments of relPath ordered filename first, so the
// slice index is the depth from the leaf.
func splitSegments(relPath string) []string {
	parts := strings.Split(relPath, "/")
	segments := make([]string, 0, len(parts))
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] == "" || parts[i] == "." {
			continue
		}
		segments = append(segments, parts[i])
	}
	return segments
}

// foldSegment is the key form used for buckets and query tokens.
func foldSegment(segment string) string {
	return strings.ToLower(norm.NFC.String(segment))
}
