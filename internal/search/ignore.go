package search

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	fsutil "github.com/kk-code-lab/qopen/internal/fs"
)

// HiddenDirPattern is the ignore-dir pattern that hides dot-directories. It is
// left out of the compiled rules when hidden entries are shown.
const HiddenDirPattern = `(^|.*/)\.`

// IgnoreRules decide which walked entries never reach the index.
type IgnoreRules struct {
	dirs       []*regexp.Regexp
	extensions map[string]struct{}
	showHidden bool
}

// NewIgnoreRules compiles the directory patterns. Patterns are matched
// against the root-relative, '/'-separated directory path; extensions are
// compared without the leading dot and case-insensitively. With showHidden
// set, HiddenDirPattern is dropped so dot-directories are walked too.
func NewIgnoreRules(dirPatterns, extensions []string, showHidden bool) (*IgnoreRules, error) {
	rules := &IgnoreRules{
		extensions: make(map[string]struct{}, len(extensions)),
		showHidden: showHidden,
	}
	for _, pattern := range dirPatterns {
		if pattern == "" || (showHidden && pattern == HiddenDirPattern) {
			continue
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("ignore dir pattern %q: %w", pattern, err)
		}
		rules.dirs = append(rules.dirs, re)
	}
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext == "" {
			continue
		}
		rules.extensions[ext] = struct{}{}
	}
	return rules, nil
}

// SkipDir reports whether the directory at relPath should not be descended.
func (r *IgnoreRules) SkipDir(relPath, absPath, name string) bool {
	if name == ".git" {
		return true
	}
	if fsutil.ShouldHideFromListing(absPath, name) {
		return true
	}
	if r == nil {
		return false
	}
	if !r.showHidden && fsutil.IsHidden(absPath, name) {
		return true
	}
	for _, re := range r.dirs {
		if re.MatchString(relPath) {
			return true
		}
	}
	return false
}

// SkipFile reports whether the file at relPath should be left out.
func (r *IgnoreRules) SkipFile(relPath, absPath, name string) bool {
	if fsutil.ShouldHideFromListing(absPath, name) {
		return true
	}
	if r == nil {
		return false
	}
	if !r.showHidden && fsutil.IsHidden(absPath, name) {
		return true
	}
	if len(r.extensions) > 0 {
		ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
		if _, ok := r.extensions[ext]; ok && ext != "" {
			return true
		}
	}
	return false
}
