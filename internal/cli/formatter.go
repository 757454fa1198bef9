package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/extstat/internal/extstat"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
	// BannerWidth is the width of section banners.
	BannerWidth = 40
)

// PrintJSON outputs statistics in JSON format.
func PrintJSON(stats *extstat.Stats, writer io.Writer) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// banner writes a centered section title framed by '=' rules.
func banner(w io.Writer, title string) {
	rule := strings.Repeat("=", BannerWidth)

	pad := (BannerWidth - len(title)) / 2
	if pad < 0 {
		pad = 0
	}

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", pad), title)
	fmt.Fprintf(w, "%s\n\n", rule)
}

// PrintText outputs statistics in human-readable text format: the overall
// per-extension summary followed by one section per folder bucket in
// discovery order.
func PrintText(stats *extstat.Stats, writer io.Writer) error {
	banner(writer, "Overall File Type Summary")

	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, "File Type\tCount\tTotal Size")

	for _, total := range stats.Overall {
		fmt.Fprintf(w, "%s\t%d\t%s\n",
			total.Extension, total.Count, humanize.Bytes(uint64(total.Size))) //nolint:gosec // Sizes are non-negative
	}

	if err := w.Flush(); err != nil {
		return err
	}

	banner(writer, "File Type Statistics")

	for _, folder := range stats.Folders {
		fmt.Fprintf(writer, "\nFolder (up to depth %d): %s\n", stats.Depth, folder.Path)
		fmt.Fprintln(writer, strings.Repeat("-", BannerWidth))

		w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

		fmt.Fprintln(w, "File Type\tCount\tTotal Size")

		for _, ext := range folder.Extensions {
			fmt.Fprintf(w, "%s\t%d\t%s\n",
				ext.Extension, ext.Count, humanize.Bytes(uint64(ext.Size))) //nolint:gosec // Sizes are non-negative

			// Lines without tabs pass through the tabwriter unaligned.
			fmt.Fprintf(w, "    Largest %d files:\n", len(ext.LargestFiles))

			for _, file := range ext.LargestFiles {
				fmt.Fprintf(w, "      %s - %s\n",
					file.Path, humanize.Bytes(uint64(file.Size))) //nolint:gosec // Sizes are non-negative
			}
		}

		if err := w.Flush(); err != nil {
			return err
		}
	}

	if stats.SkippedDirs > 0 {
		fmt.Fprintf(writer, "\nSkipped %d unreadable directories.\n", stats.SkippedDirs)
	}

	return nil
}
