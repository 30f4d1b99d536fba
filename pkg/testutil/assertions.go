package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// AssertSymlinkTo fails unless link is a symlink whose text is dest.
func AssertSymlinkTo(t *testing.T, link, dest string) {
	t.Helper()

	info, err := os.Lstat(link)
	if err != nil {
		t.Errorf("expected symlink at %s: %v", link, err)
		return
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Errorf("expected %s to be a symlink, got mode %v", link, info.Mode())
		return
	}
	got, err := os.Readlink(link)
	if err != nil {
		t.Errorf("failed to read link %s: %v", link, err)
		return
	}
	if filepath.Clean(got) != filepath.Clean(dest) {
		t.Errorf("symlink %s points to %s, want %s", link, got, dest)
	}
}

// AssertRegularFile fails unless path is a regular file holding content.
func AssertRegularFile(t *testing.T, path, content string) {
	t.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		t.Errorf("expected regular file at %s: %v", path, err)
		return
	}
	if !info.Mode().IsRegular() {
		t.Errorf("expected %s to be a regular file, got mode %v", path, info.Mode())
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("failed to read %s: %v", path, err)
		return
	}
	if string(data) != content {
		t.Errorf("%s holds %q, want %q", path, data, content)
	}
}

// AssertNotExists fails if anything, including a dangling link, is at path.
func AssertNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected nothing at %s", path)
	}
}
