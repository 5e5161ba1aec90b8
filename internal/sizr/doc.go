// Package sizr explores a directory tree and reports the largest files
// and directories by size.
//
// It walks the tree with fastwalk, accumulates every file's size into all
// of its ancestor directories up to the scan root, and emits the files and
// directories that pass the configured filters, largest first.
package sizr
