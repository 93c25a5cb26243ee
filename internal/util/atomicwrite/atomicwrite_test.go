package atomicwrite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteFile_CreatesAndReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "favorites.json")

	require.NoError(t, WriteFile(path, []byte("one"), 0o644))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "one", string(b))

	require.NoError(t, WriteFile(path, []byte("two"), 0o644))
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "two", string(b))

	// no quedan temporales
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestWriteJSON_PrettyPrints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")

	require.NoError(t, WriteJSON(path, []string{"beagle", "pug"}, 0o644))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[\n  \"beagle\",\n  \"pug\"\n]\n", string(b))
}

func TestWriteFile_FailsWhenTargetIsNonEmptyDir(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "favorites.json")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "child"), 0o755))

	err := WriteFile(target, []byte("x"), 0o644)
	require.Error(t, err)
}
