package search

import (
	"reflect"
	"testing"
)

func TestPathIndexExtendBucketsEverySegment(t *testing.T) {
	idx := NewPathIndex()
	idx.Extend(recordsFor("/proj", "src/app/main.py"))

	cases := []struct {
		segment string
		depth   int
	}{
		{"main.py", 0},
		{"app", 1},
		{"src", 2},
	}
	for _, tc := range cases {
		entries := idx.SortedBucket(tc.segment)
		if len(entries) != 1 {
			t.Fatalf("bucket %q: expected 1 entry, got %d", tc.segment, len(entries))
		}
		if entries[0].Depth != tc.depth {
			t.Fatalf("bucket %q: expected depth %d, got %d", tc.segment, tc.depth, entries[0].Depth)
		}
		if entries[0].TotalDepth != 3 {
			t.Fatalf("bucket %q: expected total depth 3, got %d", tc.segment, entries[0].TotalDepth)
		}
		if entries[0].Record.AbsPath != "/proj/src/app/main.py" {
			t.Fatalf("bucket %q: unexpected record %+v", tc.segment, entries[0].Record)
		}
	}
}

func TestPathIndexSortedBucketOrdersByDepthThenPath(t *testing.T) {
	idx := NewPathIndex()
	idx.Extend(recordsFor("/proj",
		"x/lib/deep/file.go",
		"lib/b.go",
		"lib/a.go",
		"lib/lib.go",
	))

	entries := idx.SortedBucket("lib")
	var got []string
	for _, e := range entries {
		got = append(got, e.RelPath)
	}
	want := []string{"lib/a.go", "lib/b.go", "lib/lib.go", "x/lib/deep/file.go"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected bucket order\nwant: %v\ngot:  %v", want, got)
	}
}

func TestPathIndexDuplicateSegmentCollapses(t *testing.T) {
	idx := NewPathIndex()
	idx.Extend(recordsFor("/proj", "pkg/util/pkg/main.go"))

	entries := idx.SortedBucket("pkg")
	if len(entries) != 1 {
		t.Fatalf("expected one entry for repeated segment, got %d", len(entries))
	}
	if entries[0].Depth != 1 {
		t.Fatalf("expected nearest depth 1, got %d", entries[0].Depth)
	}
	if entries[0].MaxDepth != 3 {
		t.Fatalf("expected deepest depth 3, got %d", entries[0].MaxDepth)
	}
}

func TestPathIndexSortIsDeferredUntilRead(t *testing.T) {
	idx := NewPathIndex()
	idx.Extend(recordsFor("/proj", "b/x.txt"))
	idx.Extend(recordsFor("/proj", "a/x.txt"))

	if _, dirty := idx.dirty["x.txt"]; !dirty {
		t.Fatalf("expected bucket to be dirty after extend")
	}
	entries := idx.SortedBucket("x.txt")
	if entries[0].RelPath != "a/x.txt" {
		t.Fatalf("expected sorted bucket, got %v", entries[0].RelPath)
	}
	if _, dirty := idx.dirty["x.txt"]; dirty {
		t.Fatalf("expected dirty flag cleared after read")
	}

	idx.Extend(recordsFor("/proj", "0/x.txt"))
	entries = idx.SortedBucket("x.txt")
	if entries[0].RelPath != "0/x.txt" {
		t.Fatalf("expected re-sort after extend, got %v", entries[0].RelPath)
	}
}

func TestPathIndexUnknownSegmentAndClear(t *testing.T) {
	idx := NewPathIndex()
	if got := idx.SortedBucket("nope"); len(got) != 0 {
		t.Fatalf("expected empty bucket, got %v", got)
	}

	idx.Extend(recordsFor("/proj", "a/b.txt"))
	if idx.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", idx.Len())
	}
	idx.Clear()
	if idx.Len() != 0 || len(idx.Keys()) != 0 {
		t.Fatalf("expected empty index after clear, got len=%d keys=%v", idx.Len(), idx.Keys())
	}
	if got := idx.SortedBucket("b.txt"); len(got) != 0 {
		t.Fatalf("expected bucket dropped after clear, got %v", got)
	}
}

func TestPathIndexKeysAreFoldedAndSorted(t *testing.T) {
	idx := NewPathIndex()
	idx.Extend(recordsFor("/proj", "Zeta/README.md", "alpha/main.go"))

	want := []string{"alpha", "main.go", "readme.md", "zeta"}
	if got := idx.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("keys mismatch\nwant: %v\ngot:  %v", want, got)
	}
	if got := idx.SortedBucket("README.md"); len(got) != 1 {
		t.Fatalf("expected case-insensitive bucket lookup, got %d entries", len(got))
	}
}

func TestNewFileRecordNormalizesPaths(t *testing.T) {
	rec := NewFileRecord("/proj", "docs/cafe\u0301.md")
	if rec.RelPath != "docs/caf\u00e9.md" {
		t.Fatalf("expected NFC relative path, got %q", rec.RelPath)
	}
	if rec.Name != "caf\u00e9.md" {
		t.Fatalf("unexpected name %q", rec.Name)
	}
	if rec.Group != "proj/docs" {
		t.Fatalf("unexpected group %q", rec.Group)
	}

	top := NewFileRecord("/proj", "Makefile")
	if top.Group != "proj" {
		t.Fatalf("expected root group for top-level file, got %q", top.Group)
	}
}
