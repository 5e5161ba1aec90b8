package sizr_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/sizr/internal/sizr"
)

// writeFile creates a file of the given size under root, creating parent
// directories as needed. Returns the absolute path.
func writeFile(t *testing.T, root, rel string, size int) string {
	t.Helper()

	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))

	return path
}

// display converts path elements to the slash form items carry.
func display(elem ...string) string {
	return filepath.ToSlash(filepath.Join(elem...))
}

// itemSizes maps item paths to sizes for either files or directories.
func itemSizes(items []sizr.Item, dirs bool) map[string]int64 {
	out := make(map[string]int64)

	for _, item := range items {
		if item.IsDir == dirs {
			out[item.Path] = item.Size
		}
	}

	return out
}

func run(t *testing.T, opt sizr.Options) *sizr.Result {
	t.Helper()

	result, err := sizr.Run(context.Background(), opt, nil)
	require.NoError(t, err)

	return result
}

func TestRunDirectorySizes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", 100)
	writeFile(t, root, "sub/b.txt", 200)
	writeFile(t, root, "sub/nested/deep/c.txt", 50)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	result := run(t, sizr.Options{Path: root, IncludeFiles: true, IncludeDirs: true})

	// Every directory's size equals the sum of all files beneath it.
	dirs := itemSizes(result.Items, true)
	require.Len(t, dirs, 4, "root itself must not be emitted")
	assert.Equal(t, int64(250), dirs[display(root, "sub")])
	assert.Equal(t, int64(50), dirs[display(root, "sub", "nested")])
	assert.Equal(t, int64(50), dirs[display(root, "sub", "nested", "deep")])
	assert.Contains(t, dirs, display(root, "empty"))
	assert.Equal(t, int64(0), dirs[display(root, "empty")])

	files := itemSizes(result.Items, false)
	require.Len(t, files, 3)
	assert.Equal(t, int64(100), files[display(root, "a.txt")])
	assert.Equal(t, int64(200), files[display(root, "sub", "b.txt")])

	assert.Equal(t, int64(350), result.TotalBytes)
	assert.Equal(t, int64(3), result.FileCount)
	assert.Equal(t, int64(4), result.DirCount)
}

func TestRunFilesOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", 100)
	writeFile(t, root, "sub/b.txt", 200)

	result := run(t, sizr.Options{Path: root, IncludeFiles: true})

	require.Len(t, result.Items, 2)

	for _, item := range result.Items {
		assert.False(t, item.IsDir)
	}

	assert.Equal(t, int64(300), result.TotalBytes)
}

func TestRunDirsOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", 100)
	writeFile(t, root, "sub/b.txt", 200)

	result := run(t, sizr.Options{Path: root, IncludeDirs: true})

	require.Len(t, result.Items, 1)
	assert.True(t, result.Items[0].IsDir)
	assert.Equal(t, int64(200), result.Items[0].Size)

	// The total still counts file bytes, not the displayed directories.
	assert.Equal(t, int64(300), result.TotalBytes)
}

func TestRunMinSize(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "big/huge.bin", 4096)
	writeFile(t, root, "small/tiny.bin", 10)
	writeFile(t, root, "small/also.bin", 20)

	result := run(t, sizr.Options{
		Path:         root,
		IncludeFiles: true,
		IncludeDirs:  true,
		MinSize:      1024,
	})

	for _, item := range result.Items {
		assert.GreaterOrEqual(t, item.Size, int64(1024))
	}

	files := itemSizes(result.Items, false)
	require.Len(t, files, 1)
	assert.Equal(t, int64(4096), files[display(root, "big", "huge.bin")])

	dirs := itemSizes(result.Items, true)
	require.Len(t, dirs, 1)
	assert.Equal(t, int64(4096), dirs[display(root, "big")])

	// Below-threshold files still count toward the total.
	assert.Equal(t, int64(4126), result.TotalBytes)
	assert.Equal(t, int64(3), result.FileCount)
}

func TestRunOrdering(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.bin", 300)
	writeFile(t, root, "a.bin", 300)
	writeFile(t, root, "c.bin", 500)

	result := run(t, sizr.Options{Path: root, IncludeFiles: true})

	require.Len(t, result.Items, 3)

	for i := 1; i < len(result.Items); i++ {
		assert.GreaterOrEqual(t, result.Items[i-1].Size, result.Items[i].Size)
	}

	// Equal sizes order by path ascending.
	assert.Equal(t, int64(500), result.Items[0].Size)
	assert.Equal(t, display(root, "a.bin"), result.Items[1].Path)
	assert.Equal(t, display(root, "b.bin"), result.Items[2].Path)
}

func TestRunTotalCountsFilesOnce(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", 100)
	writeFile(t, root, "sub/b.txt", 200)

	result := run(t, sizr.Options{Path: root, IncludeFiles: true, IncludeDirs: true})

	// Three items displayed (two files, one directory), but the total is
	// 300 rather than the 500 a sum over the displayed list would give.
	require.Len(t, result.Items, 3)
	assert.Equal(t, int64(300), result.TotalBytes)
}

func TestRunEmptyFilters(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", 100)

	result := run(t, sizr.Options{Path: root})

	assert.Empty(t, result.Items)
	assert.Equal(t, int64(100), result.TotalBytes)
	assert.Equal(t, int64(1), result.FileCount)
}

func TestRunDefaultsToCwd(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", 100)
	// t.Chdir requires Go 1.24; do the equivalent manually.
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	result := run(t, sizr.Options{IncludeFiles: true})

	require.Len(t, result.Items, 1)
	assert.Equal(t, "a.txt", result.Items[0].Path)
	assert.Equal(t, int64(100), result.Items[0].Size)
}

func TestRunMissingRoot(t *testing.T) {
	_, err := sizr.Run(context.Background(), sizr.Options{
		Path:         filepath.Join(t.TempDir(), "missing"),
		IncludeFiles: true,
	}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunRootNotDirectory(t *testing.T) {
	path := writeFile(t, t.TempDir(), "plain.txt", 1)

	_, err := sizr.Run(context.Background(), sizr.Options{Path: path, IncludeFiles: true}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestRunCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sizr.Run(ctx, sizr.Options{Path: root, IncludeFiles: true}, nil)

	require.ErrorIs(t, err, context.Canceled)
}
