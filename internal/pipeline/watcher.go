package pipeline

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a change triggers a rerun.
const DefaultDebounce = 200 * time.Millisecond

// ChangeFunc receives the result of each rerun along with the files whose
// change triggered it.
type ChangeFunc func(result *Result, changed []string, err error)

// Watcher reruns a pipeline whenever a tracked file changes.
type Watcher struct {
	pipeline *Pipeline
	watcher  *fsnotify.Watcher
	debounce time.Duration
	doneCh   chan struct{}
	cancel   context.CancelFunc
	stopOnce sync.Once
}

// NewWatcher watches the base directories of the pipeline's patterns
// recursively.
func NewWatcher(p *Pipeline, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		pipeline: p,
		watcher:  fw,
		debounce: debounce,
		doneCh:   make(chan struct{}),
	}

	for _, root := range watchRoots(p.discover.Patterns) {
		if err := w.addRecursive(root); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// watchRoots returns the static directory prefix of each pattern, deduplicated.
func watchRoots(patterns []string) []string {
	seen := make(map[string]bool)
	var roots []string
	for _, pattern := range patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		base = filepath.FromSlash(base)
		if !seen[base] {
			seen[base] = true
			roots = append(roots, base)
		}
	}
	sort.Strings(roots)
	return roots
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Directories that vanish mid-walk are fine
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if w.pipeline.discover.shouldSkip(path) && path != root {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// Start runs an initial extraction and then reruns on every debounced batch
// of changes until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context, onChange ChangeFunc) {
	ctx, w.cancel = context.WithCancel(ctx)

	result, err := w.pipeline.Run(ctx)
	onChange(result, nil, err)

	go w.watch(ctx, onChange)
}

// Stop stops watching. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
			<-w.doneCh
		} else {
			close(w.doneCh)
		}
		err = w.watcher.Close()
	})
	return err
}

// watch is the main event loop with debouncing logic.
func (w *Watcher) watch(ctx context.Context, onChange ChangeFunc) {
	defer close(w.doneCh)

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	changed := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.handleEvent(event) {
				continue
			}
			changed[event.Name] = true

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			files := make([]string, 0, len(changed))
			for f := range changed {
				files = append(files, f)
				w.pipeline.Invalidate(f)
			}
			sort.Strings(files)
			changed = make(map[string]bool)

			w.pipeline.logger.Debug("rerunning extraction", "changed", len(files))
			result, err := w.pipeline.Run(ctx)
			if ctx.Err() != nil {
				return
			}
			onChange(result, files, err)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.pipeline.logger.Warn("watcher error", "error", err)
		}
	}
}

// handleEvent reports whether event concerns a tracked file. New directories
// are added to the watch list.
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return false
	}
	if event.Has(fsnotify.Create) {
		if err := w.addRecursive(event.Name); err != nil {
			w.pipeline.logger.Warn("watch new directory", "path", event.Name, "error", err)
		}
	}
	// Removed files matter too: their selectors drop out of the union
	return w.pipeline.discover.Matches(event.Name)
}
