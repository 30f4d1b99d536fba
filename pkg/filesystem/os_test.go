package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")

	require.NoError(t, fs.WriteFile(testFile, []byte("hello world"), 0644))

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(content))

	require.NoError(t, fs.MkdirAll(filepath.Join(tmpDir, "sub", "dir"), 0755))

	entries, err := fs.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	moved := filepath.Join(tmpDir, "sub", "moved.txt")
	require.NoError(t, fs.Rename(testFile, moved))
	_, err = fs.Stat(testFile)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, fs.RemoveAll(filepath.Join(tmpDir, "sub")))
	_, err = fs.Stat(moved)
	assert.True(t, os.IsNotExist(err))
}

func TestSymlinkOperations(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "target")
	link := filepath.Join(tmpDir, "link")

	require.NoError(t, fs.WriteFile(target, []byte("x"), 0644))
	require.NoError(t, fs.Symlink(target, link))

	info, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.True(t, IsSymlink(info))

	dest, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, dest)

	resolved, err := fs.EvalSymlinks(link)
	require.NoError(t, err)
	canonicalTarget, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, canonicalTarget, resolved)

	require.NoError(t, fs.Remove(link))
	_, err = fs.Lstat(link)
	assert.True(t, os.IsNotExist(err))
}
