package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/sizr/internal/sizr"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintJSON outputs the full scan result in JSON format. The display limit
// does not apply; callers get every item that passed the filters.
func PrintJSON(result *sizr.Result, writer io.Writer) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs up to limit items in human-readable table format,
// followed by a summary. The total counts each file's bytes exactly once;
// displayed directories never inflate it.
func PrintTable(result *sizr.Result, limit int, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	shown := min(len(result.Items), limit)

	if shown == 0 {
		fmt.Fprintln(w, "No items found matching the criteria.")
	} else {
		fmt.Fprintf(w, "Top %d largest items:\t\t\n", shown)

		for i, item := range result.Items[:shown] {
			kind := "FILE"
			if item.IsDir {
				kind = "DIR"
			}

			fmt.Fprintf(w, "  %d) '%s'\t%s\t%s\n",
				i+1, item.Path, humanize.IBytes(uint64(item.Size)), kind) //nolint:gosec // Sizes are never negative
		}

		if remaining := len(result.Items) - shown; remaining > 0 {
			fmt.Fprintf(w, "\n... and %d more items\n", remaining)
		}
	}

	// Stats summary
	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Total files:\t%d\n", result.FileCount)
	fmt.Fprintf(w, "Total directories:\t%d\n", result.DirCount)

	if result.SkippedCount > 0 {
		fmt.Fprintf(w, "Skipped entries:\t%d\n", result.SkippedCount)
	}

	fmt.Fprintf(w, "Total size analyzed:\t%s (%d bytes)\n",
		humanize.IBytes(uint64(result.TotalBytes)), result.TotalBytes) //nolint:gosec // Sizes are never negative

	fmt.Fprintf(w, "\nElapsed:\t%v\n", result.Elapsed)

	return w.Flush()
}
