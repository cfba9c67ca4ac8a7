// Package pipeline drives the extractor over a tree of source files.
//
// It plays the host build pipeline's role: discover tracked files, invoke the
// extractor once per file, and union the per-file results into the set of
// selectors the CSS generator must keep.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sort"

	"github.com/yacobolo/unoscan"
	"golang.org/x/sync/errgroup"
)

// Config holds pipeline configuration
type Config struct {
	Patterns         []string        // ["src/**/*.rs"]
	Excludes         []string        // ["target/**"]
	Options          unoscan.Options // Extractor variants
	Workers          int             // Concurrent file extractions (0 = GOMAXPROCS)
	CacheSize        int             // Files remembered between runs (0 = DefaultCacheSize)
	RespectGitignore bool            // Skip files listed in ./.gitignore
}

// FileResult is the extraction outcome for one file.
type FileResult struct {
	Path      string
	Content   string
	Matches   []unoscan.Match
	Selectors unoscan.ResultSet
	Cached    bool
}

// Stats summarizes a run.
type Stats struct {
	DiscoverStats
	FilesFailed int
	CacheHits   int
	Matches     int
}

// Result is the merged outcome of a run.
type Result struct {
	Selectors unoscan.ResultSet
	Files     []FileResult // sorted by path
	Stats     Stats
}

// Pipeline runs extraction over the configured files.
type Pipeline struct {
	config    Config
	extractor *unoscan.Extractor
	discover  *Discoverer
	cache     *Cache
	logger    *slog.Logger
}

// New builds a pipeline. A nil logger discards log output.
func New(config Config, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	d := &Discoverer{Patterns: config.Patterns, Excludes: config.Excludes}
	if config.RespectGitignore {
		gi, err := LoadGitIgnore(".gitignore")
		if err != nil {
			return nil, err
		}
		d.GitIgnore = gi
	}

	cache, err := NewCache(config.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	return &Pipeline{
		config:    config,
		extractor: unoscan.New(config.Options),
		discover:  d,
		cache:     cache,
		logger:    logger,
	}, nil
}

// Discoverer returns the discoverer used to select files.
func (p *Pipeline) Discoverer() *Discoverer {
	return p.discover
}

// Invalidate drops any cached result for path.
func (p *Pipeline) Invalidate(path string) {
	p.cache.Invalidate(path)
}

// Run discovers files and extracts selectors from each of them concurrently.
// Unreadable files are logged and skipped.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	files, dstats, err := p.discover.Discover()
	if err != nil {
		return nil, fmt.Errorf("discover files: %w", err)
	}
	p.logger.Debug("discovered files",
		"scanned", dstats.FilesScanned,
		"skipped", dstats.FilesSkipped)

	results := make([]FileResult, len(files))
	failed := make([]bool, len(files))

	workers := p.config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := p.extractFile(path)
			if err != nil {
				p.logger.Warn("skipping file", "path", path, "error", err)
				failed[i] = true
				return nil
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return p.merge(results, failed, dstats), nil
}

// extractFile reads one file and extracts from it, consulting the cache.
func (p *Pipeline) extractFile(path string) (FileResult, error) {
	// #nosec G304 - path comes from configured glob patterns
	content, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("read file: %w", err)
	}

	src := string(content)
	matches, cached := p.cache.Get(path, content)
	if !cached {
		matches = p.extractor.Scan(src)
		p.cache.Put(path, content, matches)
	}

	selectors := make(unoscan.ResultSet)
	for _, m := range matches {
		for _, sel := range m.Selectors {
			selectors.Add(sel)
		}
	}

	return FileResult{
		Path:      path,
		Content:   src,
		Matches:   matches,
		Selectors: selectors,
		Cached:    cached,
	}, nil
}

func (p *Pipeline) merge(results []FileResult, failed []bool, dstats DiscoverStats) *Result {
	out := &Result{
		Selectors: make(unoscan.ResultSet),
		Stats:     Stats{DiscoverStats: dstats},
	}
	for i, res := range results {
		if failed[i] {
			out.Stats.FilesFailed++
			continue
		}
		if res.Cached {
			out.Stats.CacheHits++
		}
		out.Stats.Matches += len(res.Matches)
		out.Selectors.Union(res.Selectors)
		out.Files = append(out.Files, res)
	}

	sort.Slice(out.Files, func(i, j int) bool {
		return out.Files[i].Path < out.Files[j].Path
	})

	p.logger.Info("extraction complete",
		"files", len(out.Files),
		"selectors", out.Selectors.Len(),
		"cache_hits", out.Stats.CacheHits)
	return out
}
