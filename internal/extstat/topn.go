package extstat

import (
	"container/heap"
	"sort"
)

// fileHeap is a min-heap of FileStat ordered by size, so the smallest
// tracked file is always at the root and can be evicted in O(log n).
type fileHeap []FileStat

func (h fileHeap) Len() int           { return len(h) }
func (h fileHeap) Less(i, j int) bool { return h[i].Size < h[j].Size }
func (h fileHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *fileHeap) Push(x any) {
	*h = append(*h, x.(FileStat)) //nolint:forcetypeassert // Heap only ever holds FileStat
}

func (h *fileHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}

// topFiles tracks the capacity largest files offered to it.
type topFiles struct {
	capacity int
	entries  fileHeap
}

// newTopFiles creates a tracker holding at most capacity entries.
func newTopFiles(capacity int) *topFiles {
	return &topFiles{
		capacity: capacity,
		entries:  make(fileHeap, 0, capacity),
	}
}

// tryInsert offers a file to the tracker. While under capacity the file is
// kept unconditionally; at capacity it replaces the current minimum only if
// strictly larger, so the first-seen file wins on exact size ties.
func (t *topFiles) tryInsert(path string, size int64) {
	if t.capacity <= 0 {
		return
	}

	if len(t.entries) < t.capacity {
		heap.Push(&t.entries, FileStat{Path: path, Size: size})

		return
	}

	if size > t.entries[0].Size {
		t.entries[0] = FileStat{Path: path, Size: size}
		heap.Fix(&t.entries, 0)
	}
}

// sorted returns the tracked files largest first. Equal sizes order by path
// so output is stable regardless of traversal order.
func (t *topFiles) sorted() []FileStat {
	out := make([]FileStat, len(t.entries))
	copy(out, t.entries)

	sort.Slice(out, func(i, j int) bool {
		if out[i].Size != out[j].Size {
			return out[i].Size > out[j].Size
		}

		return out[i].Path < out[j].Path
	})

	return out
}
