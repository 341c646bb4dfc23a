// Package scanner implements selective recursive directory traversal.
//
// A Scanner walks a directory tree, consults the filter engine for every
// entry, prunes denied subtrees, and collects the absolute paths of files
// that pass. Entries within one directory are evaluated concurrently to
// overlap I/O latency; recursion into an allowed subdirectory is always
// joined before the parent directory is considered complete.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/harrison/sift/internal/filter"
	"github.com/harrison/sift/internal/trace"
)

// ErrAborted reports a cancelled scan. The partial result accumulated up to
// the cancellation point is still returned alongside it.
var ErrAborted = errors.New("scan aborted")

// DefaultMaxConcurrency bounds how many entries of one directory are
// evaluated in parallel.
const DefaultMaxConcurrency = 8

// Scanner traverses a directory tree applying filter rules.
// The engine and its compiled patterns are immutable; a Scanner may be
// reused for subsequent Parse calls, which reset the result collection and
// the diagnostic log.
type Scanner struct {
	engine         *filter.Engine
	log            *trace.Log
	maxConcurrency int

	mu      sync.Mutex
	absRoot string
	files   []string
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithSink forwards every diagnostic record to the given sink as it is
// produced, in addition to accumulating it in the scan log.
func WithSink(sink trace.Sink) Option {
	return func(s *Scanner) {
		s.log = trace.NewLog(sink)
	}
}

// WithMaxConcurrency overrides the per-directory parallelism bound.
// Values below 1 are ignored.
func WithMaxConcurrency(n int) Option {
	return func(s *Scanner) {
		if n >= 1 {
			s.maxConcurrency = n
		}
	}
}

// WithRoot sets the root used to resolve root-relative paths before any
// Parse call, for callers that only use CheckFile.
func WithRoot(root string) Option {
	return func(s *Scanner) {
		if abs, err := filepath.Abs(root); err == nil {
			s.absRoot = abs
		}
	}
}

// New compiles the filter configuration and returns a ready Scanner.
// A malformed rule list fails here, before any traversal begins.
func New(cfg filter.Config, opts ...Option) (*Scanner, error) {
	engine, err := filter.NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	s := &Scanner{
		engine:         engine,
		log:            trace.NewLog(nil),
		maxConcurrency: DefaultMaxConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Log returns the diagnostic log of the most recent scan.
func (s *Scanner) Log() *trace.Log {
	return s.log
}

// Parse walks the tree rooted at root and returns the sorted absolute paths
// of all files accepted by the filter rules. The result collection and the
// diagnostic log are reset at the start of every call.
//
// An unreadable root is a hard failure. Unreadable or vanished entries
// deeper in the tree are skipped with a diagnostic record and never abort
// the walk. When ctx is cancelled, Parse stops issuing filesystem calls and
// returns the partial result accumulated so far together with ErrAborted.
func (s *Scanner) Parse(ctx context.Context, root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve scan root: %w", err)
	}

	s.mu.Lock()
	s.absRoot = abs
	s.files = s.files[:0]
	s.mu.Unlock()
	s.log.Reset()

	aborted := s.walkDir(ctx, abs)

	s.mu.Lock()
	files := make([]string, len(s.files))
	copy(files, s.files)
	s.mu.Unlock()
	sort.Strings(files)

	if aborted {
		return files, fmt.Errorf("%w: %v", ErrAborted, context.Cause(ctx))
	}
	return files, nil
}

// walkDir lists dir and evaluates its entries concurrently, recursing into
// allowed subdirectories. It returns true if cancellation was observed.
// Every spawned entry evaluation, including subtree recursion, is joined
// before walkDir returns, so a parent directory is never complete while a
// child walk is still running.
func (s *Scanner) walkDir(ctx context.Context, dir string) bool {
	if ctx.Err() != nil {
		return true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// Unreadable directory below the root: skip it, keep walking.
		s.log.Appendf("scan", "skip %s: %v", dir, err)
		return false
	}

	// Per-directory semaphore, in addition to the per-entry join below.
	// Each recursion level gets its own slots, so a parent waiting on its
	// children cannot starve them.
	semaphore := make(chan struct{}, s.maxConcurrency)
	var wg sync.WaitGroup
	var aborted atomic.Bool

	for _, entry := range entries {
		if ctx.Err() != nil {
			aborted.Store(true)
			break
		}

		wg.Add(1)
		semaphore <- struct{}{}
		go func(entry os.DirEntry) {
			defer wg.Done()
			defer func() { <-semaphore }()
			if s.walkEntry(ctx, dir, entry) {
				aborted.Store(true)
			}
		}(entry)
	}

	wg.Wait()
	return aborted.Load()
}

// walkEntry classifies one directory entry and applies the matching filter
// decision. Directories that pass are descended into; files that pass are
// appended to the result collection. Returns true if cancellation was
// observed in this subtree.
func (s *Scanner) walkEntry(ctx context.Context, dir string, entry os.DirEntry) bool {
	path := filepath.Join(dir, entry.Name())

	info, err := entry.Info()
	if err != nil {
		// Entry vanished between listing and stat; skip it.
		s.log.Appendf("scan", "skip %s: %v", path, err)
		return false
	}

	// Symlinks are never followed: Info reports the link itself, so a link
	// to a directory takes the file decision path here.
	if info.IsDir() {
		decision := s.engine.DirDecision(s.relPath(path), entry.Name())
		s.log.Appendf("dir", "%s: %s", path, decision.Message())
		if !decision.Allow {
			return false
		}
		return s.walkDir(ctx, path)
	}

	decision := s.engine.FileDecision(entry.Name())
	s.log.Appendf("file", "%s: %s", path, decision.Message())
	if decision.Allow {
		s.mu.Lock()
		s.files = append(s.files, path)
		s.mu.Unlock()
	}
	return false
}

// relPath returns path relative to the scan root, slash-separated with a
// leading separator, the form the path rule categories are compiled for.
func (s *Scanner) relPath(path string) string {
	s.mu.Lock()
	root := s.absRoot
	s.mu.Unlock()

	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return "/"
	}
	return "/" + filepath.ToSlash(rel)
}
