package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func relPaths(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestScanDepth(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "top.py"), "")
	writeFile(t, filepath.Join(root, "notes.txt"), "")
	writeFile(t, filepath.Join(root, "one", "mid.py"), "")
	writeFile(t, filepath.Join(root, "one", "two", "deep.py"), "")

	tests := []struct {
		name     string
		maxDepth int
		want     []string
	}{
		{"unbounded", NoDepthLimit, []string{"one/mid.py", "one/two/deep.py", "top.py"}},
		{"root only", 0, []string{"top.py"}},
		{"one level", 1, []string{"one/mid.py", "top.py"}},
		{"beyond tree", 5, []string{"one/mid.py", "one/two/deep.py", "top.py"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := Scan(context.Background(), root, Options{Suffix: ".py", MaxDepth: tt.maxDepth})
			require.NoError(t, err)
			assert.Equal(t, tt.want, relPaths(t, root, files))
		})
	}
}

func TestScanGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "build/\ngenerated_*.py\n")
	writeFile(t, filepath.Join(root, "keep.py"), "")
	writeFile(t, filepath.Join(root, "generated_api.py"), "")
	writeFile(t, filepath.Join(root, "build", "out.py"), "")

	files, err := Scan(context.Background(), root, Options{Suffix: ".py", MaxDepth: NoDepthLimit, Gitignore: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.py"}, relPaths(t, root, files))

	files, err = Scan(context.Background(), root, Options{Suffix: ".py", MaxDepth: NoDepthLimit})
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestScanGitignoreMissingFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.py"), "")

	files, err := Scan(context.Background(), root, Options{Suffix: ".py", MaxDepth: NoDepthLimit, Gitignore: true})
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{Suffix: ".py", MaxDepth: NoDepthLimit})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestScanCanceled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.py"), "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Scan(ctx, root, Options{Suffix: ".py", MaxDepth: NoDepthLimit})
	assert.ErrorIs(t, err, context.Canceled)
}
