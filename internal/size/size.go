// Package size parses human-readable size specifications into byte counts.
package size

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Binary multipliers for the recognized unit suffixes.
const (
	KB int64 = 1024
	MB int64 = 1024 * KB
	GB int64 = 1024 * MB
	TB int64 = 1024 * GB
)

// ErrInvalidSize indicates that the size string could not be parsed.
var ErrInvalidSize = errors.New("invalid size format")

// ErrNegativeSize indicates that a negative size was provided.
var ErrNegativeSize = errors.New("size cannot be negative")

// pattern matches size strings like "500KB", "2gb", "10".
var pattern = regexp.MustCompile(`^\s*([0-9]+(?:\.[0-9]+)?)\s*([A-Za-z]*)\s*$`)

// Parse parses a size specification and returns the size in bytes.
//
// The magnitude may carry a case-insensitive unit suffix from B, KB, MB,
// GB or TB, using binary multiples (1 KB = 1024 bytes). A bare number is
// taken as bytes. Fractional magnitudes are truncated to whole bytes.
//
// Returns ErrInvalidSize for an unparseable magnitude or unrecognized
// suffix, and ErrNegativeSize for negative values.
func Parse(s string) (int64, error) {
	if strings.HasPrefix(strings.TrimSpace(s), "-") {
		return 0, ErrNegativeSize
	}

	matches := pattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}

	var multiplier int64

	switch strings.ToUpper(matches[2]) {
	case "", "B":
		multiplier = 1
	case "KB":
		multiplier = KB
	case "MB":
		multiplier = MB
	case "GB":
		multiplier = GB
	case "TB":
		multiplier = TB
	default:
		return 0, fmt.Errorf("%w: unknown suffix %q", ErrInvalidSize, matches[2])
	}

	return int64(value * float64(multiplier)), nil
}
