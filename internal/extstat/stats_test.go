package extstat

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionOf(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"main.go", "go"},
		{"archive.tar.gz", "gz"},
		// A filename with no '.' keys under the whole filename.
		{"README", "README"},
		{"LICENSE", "LICENSE"},
		{".gitignore", "gitignore"},
		{"trailing.", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extensionOf(tt.name), "extensionOf(%q)", tt.name)
	}
}

func TestBucketKey(t *testing.T) {
	root := filepath.Join("some", "root")

	tests := []struct {
		dir   string
		depth int
		want  string
	}{
		{root, 2, "."},
		{filepath.Join(root, "a"), 2, "a"},
		{filepath.Join(root, "a", "b"), 2, filepath.Join("a", "b")},
		{filepath.Join(root, "a", "b", "c"), 2, filepath.Join("a", "b")},
		{filepath.Join(root, "a", "b"), 1, "a"},
		{filepath.Join(root, "a", "b"), 0, "."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, bucketKey(root, tt.dir, tt.depth),
			"bucketKey(%q, %q, %d)", root, tt.dir, tt.depth)
	}
}

func TestAggregator_BucketAndExtensionOrder(t *testing.T) {
	agg := newAggregator(5)

	agg.add("b", "txt", "b/one.txt", 1)
	agg.add("a", "go", "a/main.go", 2)
	agg.add("b", "md", "b/doc.md", 3)
	agg.add("a", "txt", "a/two.txt", 4)

	stats := agg.finalize()

	require.Len(t, stats.Folders, 2)

	// Buckets in discovery order, extensions in first-seen order.
	assert.Equal(t, "b", stats.Folders[0].Path)
	assert.Equal(t, "a", stats.Folders[1].Path)

	require.Len(t, stats.Folders[0].Extensions, 2)
	assert.Equal(t, "txt", stats.Folders[0].Extensions[0].Extension)
	assert.Equal(t, "md", stats.Folders[0].Extensions[1].Extension)
}

func TestAggregator_OverallMatchesBucketSums(t *testing.T) {
	agg := newAggregator(3)

	agg.add(".", "txt", "x.txt", 10)
	agg.add("a", "txt", "a/y.txt", 20)
	agg.add(filepath.Join("a", "b"), "txt", "a/b/z.txt", 5)
	agg.add("a", "md", "a/doc.md", 7)

	stats := agg.finalize()

	bucketCount := map[string]int{}
	bucketSize := map[string]int64{}

	for _, folder := range stats.Folders {
		for _, ext := range folder.Extensions {
			bucketCount[ext.Extension] += ext.Count
			bucketSize[ext.Extension] += ext.Size
		}
	}

	require.Len(t, stats.Overall, 2)

	for _, total := range stats.Overall {
		assert.Equal(t, bucketCount[total.Extension], total.Count)
		assert.Equal(t, bucketSize[total.Extension], total.Size)
	}
}

func TestAggregator_OverallSortedByCountThenSize(t *testing.T) {
	agg := newAggregator(1)

	agg.add(".", "md", "a.md", 100)
	agg.add(".", "txt", "a.txt", 1)
	agg.add(".", "txt", "b.txt", 1)
	agg.add(".", "go", "a.go", 500)

	overall := agg.finalize().Overall

	require.Len(t, overall, 3)
	assert.Equal(t, "txt", overall[0].Extension) // highest count
	assert.Equal(t, "go", overall[1].Extension)  // count tie, larger size
	assert.Equal(t, "md", overall[2].Extension)
}

func TestAggregator_LargestFilesAreBucketScoped(t *testing.T) {
	agg := newAggregator(1)

	agg.add("a", "txt", "a/huge.txt", 1000)
	agg.add("b", "txt", "b/tiny.txt", 1)

	stats := agg.finalize()

	require.Len(t, stats.Folders, 2)
	require.Len(t, stats.Folders[1].Extensions[0].LargestFiles, 1)

	// The tiny file is still the largest within its own bucket.
	assert.Equal(t, "b/tiny.txt", stats.Folders[1].Extensions[0].LargestFiles[0].Path)
}
