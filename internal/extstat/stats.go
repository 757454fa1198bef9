package extstat

import (
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/elliotchance/orderedmap/v2"
)

// DefaultDepth is the default number of leading path segments forming
// bucket keys.
const DefaultDepth = 2

// DefaultTopN is the default number of largest files tracked per extension
// per bucket.
const DefaultTopN = 5

// FileStat represents a single file path and size.
type FileStat struct {
	// Path is the full file path.
	Path string `json:"path"`
	// Size is the size in bytes.
	Size int64 `json:"size"`
}

// ExtTotal holds the overall statistics for one extension.
type ExtTotal struct {
	// Extension is the extension key (last dot-separated segment of the
	// filename, or the whole filename when it contains no dot).
	Extension string `json:"extension"`
	// Count is the number of files with this extension.
	Count int `json:"count"`
	// Size is the cumulative size in bytes.
	Size int64 `json:"size"`
}

// ExtSummary holds one extension's statistics within a folder bucket.
type ExtSummary struct {
	// Extension is the extension key.
	Extension string `json:"extension"`
	// Count is the number of files with this extension in the bucket.
	Count int `json:"count"`
	// Size is the cumulative size in bytes.
	Size int64 `json:"size"`
	// LargestFiles holds up to TopN largest files, largest first.
	LargestFiles []FileStat `json:"largest_files"`
}

// FolderStat holds the statistics for one depth-limited folder bucket.
type FolderStat struct {
	// Path is the bucket key: the folder path relative to the scan root,
	// truncated to the report depth. Files directly under the root land
	// in the "." bucket.
	Path string `json:"path"`
	// Extensions lists the bucket's extensions in first-seen order.
	Extensions []ExtSummary `json:"extensions"`
}

// Stats holds the aggregated result of one scan.
type Stats struct {
	// Root is the scanned directory.
	Root string `json:"root"`
	// Depth is the report depth used to form bucket keys.
	Depth int `json:"depth"`
	// TopN is the number of largest files tracked per extension per bucket.
	TopN int `json:"top_n"`
	// FileCount is the total number of files visited.
	FileCount int64 `json:"file_count"`
	// TotalBytes is the cumulative size of all visited files.
	TotalBytes int64 `json:"total_bytes"`
	// SkippedDirs is the number of directories skipped due to permission
	// errors.
	SkippedDirs int64 `json:"skipped_dirs"`
	// Overall lists per-extension totals across all buckets, sorted by
	// count descending then size descending.
	Overall []ExtTotal `json:"overall"`
	// Folders lists the buckets in discovery order.
	Folders []FolderStat `json:"folders"`
	// Elapsed is the total scan duration.
	Elapsed time.Duration `json:"elapsed"`
}

// Options configures a scan.
type Options struct {
	// Path is the root directory to scan.
	Path string
	// Depth is the number of leading path segments forming bucket keys.
	Depth int
	// TopN is the number of largest files tracked per extension per bucket.
	// Non-positive values fall back to DefaultTopN.
	TopN int
	// Excludes contains directory names to skip in addition to the
	// version-control metadata directory.
	Excludes []string
	// Warnings receives non-fatal scan warnings. Defaults to os.Stdout.
	Warnings io.Writer
	// Debug indicates whether per-directory trace output is enabled.
	Debug bool
	// Output represents the output format (text or json).
	Output string
	// Version indicates whether to show version and exit.
	Version bool
}

// extAgg accumulates one extension's statistics within a bucket.
type extAgg struct {
	count   int
	size    int64
	largest *topFiles
}

// bucket accumulates statistics for one depth-limited folder path, keyed by
// extension in first-seen order.
type bucket struct {
	exts *orderedmap.OrderedMap[string, *extAgg]
}

// aggregator owns all buckets for a scan. It is created once per run and
// never accessed concurrently; the walk is single-threaded.
type aggregator struct {
	topN    int
	buckets *orderedmap.OrderedMap[string, *bucket]
}

// newAggregator creates an aggregator tracking topN largest files per
// extension per bucket.
func newAggregator(topN int) *aggregator {
	return &aggregator{
		topN:    topN,
		buckets: orderedmap.NewOrderedMap[string, *bucket](),
	}
}

// add records one file under the given bucket key and extension.
func (a *aggregator) add(key, ext, path string, size int64) {
	b, ok := a.buckets.Get(key)
	if !ok {
		b = &bucket{exts: orderedmap.NewOrderedMap[string, *extAgg]()}
		a.buckets.Set(key, b)
	}

	agg, ok := b.exts.Get(ext)
	if !ok {
		agg = &extAgg{largest: newTopFiles(a.topN)}
		b.exts.Set(ext, agg)
	}

	agg.count++
	agg.size += size
	agg.largest.tryInsert(path, size)
}

// overallTotals folds all buckets into one (count, size) pair per extension,
// sorted by count descending, then size descending, then extension.
// Largest-file tracking is intentionally bucket-scoped and not merged here.
func (a *aggregator) overallTotals() []ExtTotal {
	totals := make(map[string]*ExtTotal)

	for el := a.buckets.Front(); el != nil; el = el.Next() {
		for ext := el.Value.exts.Front(); ext != nil; ext = ext.Next() {
			total, ok := totals[ext.Key]
			if !ok {
				total = &ExtTotal{Extension: ext.Key}
				totals[ext.Key] = total
			}

			total.Count += ext.Value.count
			total.Size += ext.Value.size
		}
	}

	out := make([]ExtTotal, 0, len(totals))
	for _, total := range totals {
		out = append(out, *total)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}

		if out[i].Size != out[j].Size {
			return out[i].Size > out[j].Size
		}

		return out[i].Extension < out[j].Extension
	})

	return out
}

// finalize produces the final Stats from the collected data, converting
// paths to slash format for cross-platform consistency.
func (a *aggregator) finalize() *Stats {
	folders := make([]FolderStat, 0, a.buckets.Len())

	for el := a.buckets.Front(); el != nil; el = el.Next() {
		folder := FolderStat{
			Path:       filepath.ToSlash(el.Key),
			Extensions: make([]ExtSummary, 0, el.Value.exts.Len()),
		}

		for ext := el.Value.exts.Front(); ext != nil; ext = ext.Next() {
			largest := ext.Value.largest.sorted()
			for i := range largest {
				largest[i].Path = filepath.ToSlash(largest[i].Path)
			}

			folder.Extensions = append(folder.Extensions, ExtSummary{
				Extension:    ext.Key,
				Count:        ext.Value.count,
				Size:         ext.Value.size,
				LargestFiles: largest,
			})
		}

		folders = append(folders, folder)
	}

	return &Stats{
		TopN:    a.topN,
		Overall: a.overallTotals(),
		Folders: folders,
	}
}

// extensionOf derives the extension key from a filename: the segment after
// the final '.', or the whole filename when no '.' is present. A file named
// "README" therefore keys under extension "README".
func extensionOf(name string) string {
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		return name[idx+1:]
	}

	return name
}

// bucketKey truncates dir, relative to root, to at most depth leading path
// segments. The root itself maps to ".", as does any dir when depth <= 0.
func bucketKey(root, dir string, depth int) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		rel = dir
	}

	if rel == "." || depth <= 0 {
		return "."
	}

	segments := strings.Split(rel, string(filepath.Separator))
	if len(segments) > depth {
		segments = segments[:depth]
	}

	return filepath.Join(segments...)
}
