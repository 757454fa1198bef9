package extstat

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// VCSMetaDir is the version-control metadata directory name that is always
// skipped, without listing its contents.
const VCSMetaDir = ".git"

// progressStride is the number of files between progress hook invocations.
const progressStride = 512

// logger provides conditional debug output.
type logger struct {
	enabled bool
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		//nolint:forbidigo // Debug output to console
		fmt.Printf(format, args...)
	}
}

// frame is one pending directory on the traversal stack.
type frame struct {
	path  string
	depth int
}

// Run scans the directory tree at opt.Path and returns aggregated
// statistics. Files are bucketed by their containing directory's path
// truncated to opt.Depth segments, and by extension within each bucket.
//
// The walk is an iterative depth-first traversal over an explicit stack,
// listing each directory exactly once. Directories named VCSMetaDir (or any
// name in opt.Excludes) are skipped without being listed. A directory that
// cannot be listed due to a permission error is reported on opt.Warnings and
// its subtree skipped; any other listing error aborts the run. Symlinks are
// not followed and there is no cycle detection.
//
// progressHook, if non-nil, is invoked synchronously from the walk loop
// every progressStride files with the running (files, bytes) totals, and
// once more at the end of the walk.
func Run(opt Options, progressHook func(files, bytes int64)) (*Stats, error) {
	log := logger{enabled: opt.Debug}

	if opt.Path == "" {
		opt.Path = "."
	}

	// Normalize to native format to handle both C:/Path and C:\Path inputs.
	opt.Path = filepath.Clean(opt.Path)

	if statInfo, err := os.Stat(opt.Path); err != nil {
		return nil, fmt.Errorf("the specified path %q is not a directory: %w", opt.Path, err)
	} else if !statInfo.IsDir() {
		return nil, fmt.Errorf("the specified path %q is not a directory", opt.Path)
	}

	if opt.TopN <= 0 {
		opt.TopN = DefaultTopN
	}

	warnings := opt.Warnings
	if warnings == nil {
		warnings = os.Stdout
	}

	skip := make(map[string]struct{}, len(opt.Excludes)+1)
	skip[VCSMetaDir] = struct{}{}

	for _, name := range opt.Excludes {
		skip[name] = struct{}{}
	}

	agg := newAggregator(opt.TopN)

	var (
		fileCount   int64
		totalBytes  int64
		skippedDirs int64
	)

	start := time.Now()

	stack := []frame{{path: opt.Path, depth: 0}}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, excluded := skip[filepath.Base(current.path)]; excluded {
			log.printf("[debug]: skipping excluded directory: %s\n", current.path)

			continue
		}

		entries, err := os.ReadDir(current.path)
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				fmt.Fprintf(warnings, "Skipping %s due to permission error.\n", current.path)

				skippedDirs++

				continue
			}

			return nil, fmt.Errorf("listing %s: %w", current.path, err)
		}

		log.printf("[debug]: listing %s (depth %d, %d entries)\n",
			current.path, current.depth, len(entries))

		key := bucketKey(opt.Path, current.path, opt.Depth)

		for _, entry := range entries {
			path := filepath.Join(current.path, entry.Name())

			if entry.IsDir() {
				stack = append(stack, frame{path: path, depth: current.depth + 1})

				continue
			}

			if !entry.Type().IsRegular() {
				continue
			}

			info, err := entry.Info()
			if err != nil {
				fmt.Fprintf(warnings, "Skipping %s due to stat error: %v.\n", path, err)

				continue
			}

			agg.add(key, extensionOf(entry.Name()), path, info.Size())

			fileCount++
			totalBytes += info.Size()

			if progressHook != nil && fileCount%progressStride == 0 {
				progressHook(fileCount, totalBytes)
			}
		}
	}

	// Final report, unless the stride already reported this exact total.
	if progressHook != nil && (fileCount%progressStride != 0 || fileCount == 0) {
		progressHook(fileCount, totalBytes)
	}

	stats := agg.finalize()

	stats.Root = filepath.ToSlash(opt.Path)
	stats.Depth = opt.Depth
	stats.FileCount = fileCount
	stats.TotalBytes = totalBytes
	stats.SkippedDirs = skippedDirs
	stats.Elapsed = time.Since(start)

	return stats, nil
}
