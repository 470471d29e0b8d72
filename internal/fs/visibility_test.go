//go:build !windows

package fs

import "testing"

func TestIsHidden(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{".git", true},
		{".env", true},
		{"main.go", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsHidden("/tmp/"+tt.name, tt.name); got != tt.want {
			t.Fatalf("IsHidden(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if ShouldHideFromListing("/tmp/x", "x") {
		t.Fatalf("expected nothing hidden from listing on unix")
	}
}
