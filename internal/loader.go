package internal

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultPattern matches bWell log files
const DefaultPattern = "*.json"

type loadConfig struct {
	pattern     string
	workers     int
	skipErrors  bool
	readOptions []ReadOption
	counter     *Counter
}

// LoadOption configures LoadAllLogs
type LoadOption func(*loadConfig)

// WithPattern sets the glob matched against file base names
func WithPattern(pattern string) LoadOption {
	return func(c *loadConfig) {
		if pattern != "" {
			c.pattern = pattern
		}
	}
}

// WithWorkers bounds the number of files loaded at once
func WithWorkers(n int) LoadOption {
	return func(c *loadConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithSkipErrors chooses between skipping failed files (true, the default)
// and stopping at the first failure.
func WithSkipErrors(skip bool) LoadOption {
	return func(c *loadConfig) {
		c.skipErrors = skip
	}
}

// WithReadOptions passes options through to LoadLog for every file
func WithReadOptions(opts ...ReadOption) LoadOption {
	return func(c *loadConfig) {
		c.readOptions = append(c.readOptions, opts...)
	}
}

// WithCounter reports the number of matched files and finished loads to c
func WithCounter(c *Counter) LoadOption {
	return func(cfg *loadConfig) {
		cfg.counter = c
	}
}

// FileError records one file that failed to load
type FileError struct {
	RelativePath string
	Err          error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.RelativePath, e.Err)
}

// BatchResult holds the sessions loaded by LoadAllLogs, keyed by path
// relative to the scanned directory (slash-separated).
type BatchResult struct {
	Sessions map[string]*Session
	Failed   []FileError
}

// Paths returns the loaded relative paths in sorted order
func (b *BatchResult) Paths() []string {
	paths := make([]string, 0, len(b.Sessions))
	for p := range b.Sessions {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// LoadAllLogs loads every file under dir whose base name matches the
// pattern, in parallel. Each session gets a relative_path metadata entry.
// With skip-errors off the first failure cancels the remaining work.
func LoadAllLogs(ctx context.Context, dir string, opts ...LoadOption) (*BatchResult, error) {
	cfg := &loadConfig{
		pattern:    DefaultPattern,
		workers:    runtime.NumCPU(),
		skipErrors: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if _, err := filepath.Match(cfg.pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", cfg.pattern, err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, &ReadError{Path: dir, Op: "scan", Err: err}
	}
	if !info.IsDir() {
		return nil, &ReadError{Path: dir, Op: "scan", Err: fmt.Errorf("not a directory")}
	}

	files, err := findLogFiles(ctx, dir, cfg.pattern)
	if err != nil {
		return nil, &ReadError{Path: dir, Op: "scan", Err: err}
	}
	logDebug("Found %d log files under %s", len(files), dir)
	if cfg.counter != nil {
		cfg.counter.SetTotal(len(files))
	}

	result := &BatchResult{Sessions: make(map[string]*Session, len(files))}
	if len(files) == 0 {
		return result, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)

	for _, path := range files {
		path := path
		if gctx.Err() != nil {
			break
		}
		rel := relativePath(dir, path)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			session, err := LoadLog(path, cfg.readOptions...)
			if cfg.counter != nil {
				cfg.counter.Inc()
			}
			if err != nil {
				if !cfg.skipErrors {
					return &ReadError{Path: rel, Op: "load", Err: err}
				}
				mu.Lock()
				result.Failed = append(result.Failed, FileError{RelativePath: rel, Err: err})
				mu.Unlock()
				return nil
			}
			session.SetMetadata(MetadataRelativePath, rel)

			mu.Lock()
			result.Sessions[rel] = session
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(result.Failed) > 0 {
		sort.Slice(result.Failed, func(i, j int) bool {
			return result.Failed[i].RelativePath < result.Failed[j].RelativePath
		})
		failed := make([]string, len(result.Failed))
		for i, f := range result.Failed {
			failed[i] = f.RelativePath
		}
		logWarn("Failed to load %d file(s): %v", len(failed), failed)
	}

	return result, nil
}

func findLogFiles(ctx context.Context, dir, pattern string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return err
		}
		if ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
