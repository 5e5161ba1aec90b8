package sizr

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/charmbracelet/log"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// newLogger builds the scan logger. Debug output is suppressed unless enabled.
func newLogger(debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}

	return log.NewWithOptions(os.Stderr, log.Options{Level: level, Prefix: "sizr"})
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done.
//
//nolint:varnamelen // c is idiomatic for collector
func startProgressReporter(ctx context.Context, c *collector, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.snapshot())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// displayer converts absolute scan paths to the form shown to the user:
// relative to the working directory when the root lies inside it,
// absolute otherwise.
type displayer struct {
	cwd      string
	absolute bool
}

func newDisplayer(cwd, root string) displayer {
	rel, err := filepath.Rel(cwd, root)

	return displayer{
		cwd:      cwd,
		absolute: err != nil || strings.HasPrefix(rel, ".."),
	}
}

func (d displayer) display(path string) string {
	if d.absolute {
		return path
	}

	rel, err := filepath.Rel(d.cwd, path)
	if err != nil {
		return path
	}

	return rel
}

// Run scans the tree at opt.Path and returns the files and directories that
// pass the inclusion and size filters, sorted by size descending.
//
// Directory sizes are accumulated during a first pass over all files,
// crediting each file's bytes to every ancestor directory up to the scan
// root. Directories are emitted in a second pass once all totals are
// complete, so a directory's reported size always equals the sum of the
// files beneath it. The root itself is never emitted.
//
// Entries that fail during traversal are skipped and counted. A metadata
// read failure on a file the traversal just reported aborts the scan.
//
// The walk can be cancelled via ctx. Progress updates are sent to
// progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Result, error) {
	logger := newLogger(opt.Debug)

	if opt.Path == "" {
		opt.Path = "."
	}

	// Normalize to native format to handle both C:/Path and C:\Path inputs
	opt.Path = filepath.Clean(opt.Path)

	// Determine if target is outside cwd (to decide between relative/absolute display)
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	root, err := filepath.Abs(opt.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	// validate path exists and is accessible
	if statInfo, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", opt.Path, err)
	} else if !statInfo.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", opt.Path)
	}

	disp := newDisplayer(cwd, root)
	collector := newCollector(root, opt.IncludeFiles, opt.MinSize)

	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Start progress reporter goroutine
	startProgressReporter(ctx, collector, progressHook, opt.ProgressInterval)

	start := time.Now()

	// Configure fastwalk
	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	// File pass: read every regular file's size and credit it to the
	// ancestor chain. Directory totals are complete once this walk returns.
	//
	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Debug("skipping entry", "path", path, "err", err)
			collector.addSkipped()

			return nil // Silently skip traversal errors
		}

		// Check cancellation periodically
		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			// The traversal just confirmed the file exists, so a failed
			// size read is a hard error rather than a skip.
			return fmt.Errorf("reading metadata for %q: %w", path, err)
		}

		collector.addFile(path, disp.display(path), info.Size())

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	// Directory pass: emit directories strictly below the root from the
	// accumulated totals. Runs only after the file pass has finished.
	if opt.IncludeDirs {
		walkErr = fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.Debug("skipping entry", "path", path, "err", err)
				collector.addSkipped()

				return nil // Silently skip traversal errors
			}

			select {
			case <-ctx.Done():
				return context.Canceled
			default:
			}

			if !d.IsDir() || path == root {
				return nil
			}

			collector.addDir(path, disp.display(path))

			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}

	result := collector.finalize()

	result.Elapsed = time.Since(start)

	return result, nil
}
