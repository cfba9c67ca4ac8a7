package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// DiscoverStats tracks file discovery statistics
type DiscoverStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files kept for extraction
	FilesSkipped    int // Files skipped by excludes or .gitignore
}

// Discoverer expands glob patterns into the set of files to extract from.
type Discoverer struct {
	Patterns []string
	Excludes []string
	// GitIgnore filters relative paths. Nil disables the check.
	GitIgnore *ignore.GitIgnore
}

// LoadGitIgnore compiles the .gitignore at path.
// A missing file is not an error; it returns nil.
func LoadGitIgnore(path string) (*ignore.GitIgnore, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	return gi, nil
}

// shouldSkip determines if a file should be excluded from scanning
//
// Two-layer filtering:
// 1. Exclude globs from configuration
// 2. Gitignore check (only for relative paths)
func (d *Discoverer) shouldSkip(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range d.Excludes {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}

	// Absolute paths (like /tmp/...) are not affected by project gitignore
	if d.GitIgnore != nil && !filepath.IsAbs(path) {
		return d.GitIgnore.MatchesPath(path)
	}
	return false
}

// Discover expands all patterns, dropping duplicates and directories.
// The returned paths are sorted.
func (d *Discoverer) Discover() ([]string, DiscoverStats, error) {
	var files []string
	seen := make(map[string]bool)
	stats := DiscoverStats{}

	for _, pattern := range d.Patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if d.shouldSkip(match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	sort.Strings(files)
	return files, stats, nil
}

// Matches reports whether path would be selected by the patterns and not
// skipped. Used by the watcher to filter change events.
func (d *Discoverer) Matches(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range d.Patterns {
		if ok, _ := doublestar.Match(filepath.ToSlash(pattern), slashed); ok {
			return !d.shouldSkip(path)
		}
	}
	return false
}
