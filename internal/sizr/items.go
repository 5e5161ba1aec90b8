package sizr

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Item is a single sized result, either a file or a directory.
type Item struct {
	// Path is the file or directory path as displayed.
	Path string `json:"path"`
	// Size is the size in bytes. For directories this is the cumulative
	// size of all files beneath them.
	Size int64 `json:"size"`
	// IsDir reports whether the item is a directory.
	IsDir bool `json:"is_dir"`
}

// Result holds the outcome of a scan.
type Result struct {
	// Items contains every file and directory that passed the filters,
	// sorted by size descending.
	Items []Item `json:"items"`
	// TotalBytes is the cumulative size of all regular files under the
	// root, each counted exactly once. Directories never contribute,
	// since their bytes are already counted through their files.
	TotalBytes int64 `json:"total_bytes"`
	// FileCount is the number of regular files visited.
	FileCount int64 `json:"file_count"`
	// DirCount is the number of directories visited below the root.
	DirCount int64 `json:"dir_count"`
	// SkippedCount is the number of entries dropped due to traversal errors.
	SkippedCount int64 `json:"skipped_count"`
	// Elapsed is the total time taken by the scan.
	Elapsed time.Duration `json:"elapsed"`
}

// Options configures a scan.
type Options struct {
	// Path is the directory to analyze. Defaults to the current directory.
	Path string
	// IncludeFiles indicates whether files appear in the results.
	IncludeFiles bool
	// IncludeDirs indicates whether directories appear in the results.
	IncludeDirs bool
	// MinSize is the inclusive lower bound in bytes for an item to appear.
	MinSize int64
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug indicates whether debug output is enabled.
	Debug bool
}

// collector aggregates scan state from concurrent fastwalk callbacks using a mutex.
type collector struct {
	mu sync.Mutex // Protect concurrent access

	root         string // absolute scan root; ancestor accumulation stops here
	includeFiles bool
	minSize      int64

	dirSizes   map[string]int64
	items      []Item
	fileCount  int64
	dirCount   int64
	totalBytes int64
	skipped    int64
}

// newCollector creates a collector for the given absolute root.
func newCollector(root string, includeFiles bool, minSize int64) *collector {
	return &collector{
		root:         root,
		includeFiles: includeFiles,
		minSize:      minSize,
		dirSizes:     make(map[string]int64),
		items:        make([]Item, 0),
	}
}

// addSkipped counts an entry dropped due to a traversal error. This operation
// is protected by a mutex since fastwalk calls the callback from multiple
// goroutines concurrently.
func (c *collector) addSkipped() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skipped++
}

// addFile records a regular file. The file's size is credited to every
// ancestor directory from its parent up to and including the scan root;
// the root's own parent is never touched. Map keys are absolute paths so
// one directory's total never splits across two entries.
func (c *collector) addFile(path, display string, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fileCount++
	c.totalBytes += size

	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		c.dirSizes[dir] += size

		if dir == c.root || dir == filepath.Dir(dir) {
			break
		}
	}

	if c.includeFiles && size >= c.minSize {
		c.items = append(c.items, Item{Path: display, Size: size})
	}
}

// addDir records a directory visited in the second pass, emitting it when
// its accumulated size passes the threshold. Directories that contained no
// files have size 0.
func (c *collector) addDir(path, display string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dirCount++

	if size := c.dirSizes[path]; size >= c.minSize {
		c.items = append(c.items, Item{Path: display, Size: size, IsDir: true})
	}
}

// snapshot returns the current file count and byte total for progress reporting.
func (c *collector) snapshot() (files, bytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.fileCount, c.totalBytes
}

// finalize produces the final Result. Items are sorted by size descending;
// equal sizes order by path ascending so output is stable across runs.
// Paths are converted to slash format for cross-platform consistency.
func (c *collector) finalize() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	sort.SliceStable(c.items, func(i, j int) bool {
		if c.items[i].Size != c.items[j].Size {
			return c.items[i].Size > c.items[j].Size
		}

		return c.items[i].Path < c.items[j].Path
	})

	for i := range c.items {
		c.items[i].Path = filepath.ToSlash(c.items[i].Path)
		// Remove leading "./" prefix
		c.items[i].Path = strings.TrimPrefix(c.items[i].Path, "./")
	}

	return &Result{
		Items:        c.items,
		TotalBytes:   c.totalBytes,
		FileCount:    c.fileCount,
		DirCount:     c.dirCount,
		SkippedCount: c.skipped,
	}
}
