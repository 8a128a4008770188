package materials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func materialsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := []string{
		"anatomy/upper/shoulder.pdf",
		"anatomy/lower/knee.pdf",
		"physiology/muscle.md",
		"notes.txt",
	}
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
	return dir
}

func TestResolve(t *testing.T) {
	dir := materialsDir(t)

	ids, err := Resolve(dir, []string{"anatomy/**/*.pdf"})
	require.NoError(t, err)
	assert.Equal(t, []string{"anatomy/lower/knee.pdf", "anatomy/upper/shoulder.pdf"}, ids)
}

func TestResolveDeduplicates(t *testing.T) {
	dir := materialsDir(t)

	ids, err := Resolve(dir, []string{"**/*.pdf", "anatomy/**"})
	require.NoError(t, err)
	assert.Equal(t, []string{"anatomy/lower/knee.pdf", "anatomy/upper/shoulder.pdf"}, ids)
}

func TestResolveNoMatchIsEmpty(t *testing.T) {
	dir := materialsDir(t)

	ids, err := Resolve(dir, []string{"histology/**"})
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestResolveNoPatterns(t *testing.T) {
	ids, err := Resolve("/nonexistent", nil)
	require.NoError(t, err)
	assert.Nil(t, ids)
}

func TestResolveInvalidPattern(t *testing.T) {
	dir := materialsDir(t)

	_, err := Resolve(dir, []string{"[broken"})
	assert.Error(t, err)
}

func TestResolveMissingDir(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "missing"), []string{"**"})
	assert.Error(t, err)
}
