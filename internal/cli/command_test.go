package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/extstat/internal/extstat"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns what
// was written alongside fn's error.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	old := os.Stdout

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w

	defer func() { os.Stdout = old }()

	fnErr := fn()

	require.NoError(t, w.Close())

	data, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(data), fnErr
}

func TestCLI_VersionSkipsScan(t *testing.T) {
	cli := New("1.2.3")

	// The bogus path would fail any scan, so a nil error proves the
	// version flag short-circuits before scanning.
	out, err := captureStdout(t, func() error {
		return cli.run(
			extstat.Options{Version: true, Output: "text"},
			[]string{filepath.Join(t.TempDir(), "missing")},
		)
	})

	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)
}

func TestCLI_InvalidOutputFormat(t *testing.T) {
	err := New("dev").run(extstat.Options{Output: "yaml"}, []string{"."})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestCLI_NegativeDepth(t *testing.T) {
	err := New("dev").run(extstat.Options{Output: "text", Depth: -1}, []string{"."})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "depth cannot be negative")
}

func TestCLI_MissingPath(t *testing.T) {
	err := New("dev").run(extstat.Options{Output: "text"}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required argument")
}

func TestCLI_ScansAndPrintsJSON(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0o644))

	out, err := captureStdout(t, func() error {
		return New("dev").run(
			extstat.Options{Output: "json", Depth: extstat.DefaultDepth},
			[]string{root},
		)
	})

	require.NoError(t, err)
	assert.Contains(t, out, `"file_count": 1`)
	assert.Contains(t, out, `"extension": "txt"`)
}
