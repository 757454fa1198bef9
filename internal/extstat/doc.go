// Package extstat provides per-extension file statistics for a directory tree.
//
// It walks the tree with an explicit stack (single-threaded, one ReadDir per
// directory), aggregates file counts and sizes by extension within
// depth-limited folder buckets, and tracks the N largest files per extension
// per bucket.
package extstat
