// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// NormalizeExtensions lowercases the given extensions and prepends a missing
// leading dot, so "pdf" and ".PDF" select the same candidate set. An empty
// input returns nil, meaning no filtering.
func NormalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		return nil
	}
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func matchesExtension(path string, exts []string) bool {
	if exts == nil {
		return true
	}
	suffix := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if suffix == e {
			return true
		}
	}
	return false
}

// Candidates yields the files under root eligible for conversion, in lexical
// order. With recursive set it descends into subdirectories; otherwise only
// immediate children are considered. exts must already be normalized (see
// NormalizeExtensions); nil selects every file. Unreadable entries are
// skipped. The sequence is lazy and single-use.
func Candidates(root string, exts []string, recursive bool) iter.Seq[string] {
	if recursive {
		return func(yield func(string) bool) {
			filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil || d.IsDir() {
					return nil
				}
				if !matchesExtension(path, exts) {
					return nil
				}
				if !yield(path) {
					return filepath.SkipAll
				}
				return nil
			})
		}
	}
	return func(yield func(string) bool) {
		entries, err := os.ReadDir(root)
		if err != nil {
			return
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(root, entry.Name())
			if !matchesExtension(path, exts) {
				continue
			}
			if !yield(path) {
				return
			}
		}
	}
}

// Stem returns the base name of path with its extension stripped; the
// output file for a conversion is always Stem(path) + ".md".
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
