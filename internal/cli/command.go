// Package cli wires the command-line surface: flag parsing, scan
// invocation and result rendering.
package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/idelchi/sizr/internal/size"
	"github.com/idelchi/sizr/internal/sizr"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// flags holds the raw flag values before resolution into scan options.
type flags struct {
	limit     int
	files     bool
	dirs      bool
	filesOnly bool
	dirsOnly  bool
	minSize   string
	output    string
	debug     bool
}

// resolveInclusion applies the shorthand flags: --files-only and
// --dirs-only override the independent --files/--directories toggles.
func resolveInclusion(f flags) (includeFiles, includeDirs bool) {
	switch {
	case f.dirsOnly:
		return false, true
	case f.filesOnly:
		return true, false
	default:
		return f.files, f.dirs
	}
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute() error {
	var f flags

	allowedOutputs := []string{"table", "json"}

	cmd := &cobra.Command{
		Use:     "sizr [flags] [path]",
		Short:   "Explore and list files and folders by size",
		Version: c.version,
		Long: heredoc.Doc(`
			sizr scans a directory tree and lists the largest files and directories.

			A directory's size is the cumulative size of all files beneath it, so a
			directory always reports at least as much as any single file it contains.
			The reported total counts each file's bytes exactly once, even when both
			files and their parent directories are displayed.

			Defaults to the current directory if no path is given.
		`),
		Example: heredoc.Doc(`
			sizr                  # Largest files and directories under the current directory
			sizr -l 20 /var/log   # Top 20 items under /var/log
			sizr -d               # Directories only
			sizr -f -s 100MB      # Files of at least 100 MiB
		`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			if f.limit <= 0 {
				return errors.New("limit must be positive")
			}

			if !slices.Contains(allowedOutputs, f.output) {
				return fmt.Errorf("invalid output format %q: must be one of %v", f.output, allowedOutputs)
			}

			// Parse min-size string to bytes before any scanning
			minSize, err := size.Parse(f.minSize)
			if err != nil {
				return fmt.Errorf("invalid min-size: %w", err)
			}

			options := sizr.Options{
				MinSize: minSize,
				Debug:   f.debug,
			}
			options.IncludeFiles, options.IncludeDirs = resolveInclusion(f)

			if len(args) > 0 {
				options.Path = args[0]
			}

			return logic(options, f.limit, f.output)
		},
	}

	cmd.Flags().IntVarP(&f.limit, "limit", "l", 10, "Number of items to display")
	cmd.Flags().BoolVar(&f.files, "files", true, "Include files in the listing")
	cmd.Flags().BoolVar(&f.dirs, "directories", true, "Include directories in the listing")
	cmd.Flags().BoolVarP(&f.filesOnly, "files-only", "f", false, "Show only files")
	cmd.Flags().BoolVarP(&f.dirsOnly, "dirs-only", "d", false, "Show only directories")
	cmd.Flags().StringVarP(&f.minSize, "min-size", "s", "0", "Minimum size to display (e.g. 500KB, 2GB)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "table", "Output format: table or json")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Enable debug output")
	cmd.Flags().SortFlags = false

	cmd.MarkFlagsMutuallyExclusive("files-only", "dirs-only")

	return cmd.Execute()
}
