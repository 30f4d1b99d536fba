// Package testutil builds isolated dotlink environments for tests.
//
// NewTestEnvironment lays out a source tree, a home directory and a fake
// filesystem root inside t.TempDir(), points HOME, DOTFILES_ROOT and the XDG
// variables at them, and returns a Layout wired to the real OS filesystem.
// Symlinks are the subject under test, so there is no in-memory variant.
package testutil
