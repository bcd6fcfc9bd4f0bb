package cleanup

import (
	"fmt"
	"strings"
)

// Format names the layout of an event's raw result export.
type Format string

// Supported layouts.
const (
	// FormatPlain is a single header row followed by one row per finisher.
	FormatPlain Format = "plain"
	// FormatSplitOverall is separate men and women exports with title rows,
	// subtitles, marker rows and footers.
	FormatSplitOverall Format = "split-overall"
	// FormatCategoryBlocks is one combined export grouped into category blocks.
	FormatCategoryBlocks Format = "category-blocks"
	// FormatPending is a known event without a cleanup rule yet.
	FormatPending Format = "pending"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatPlain, FormatSplitOverall, FormatCategoryBlocks, FormatPending}
}

// ParseFormat converts a manifest value into a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: format %q", ErrUnsupportedInput, s)
}

func (f Format) String() string { return string(f) }
