// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Isolated source tree / home / filesystem root for engine tests

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/paths"
)

// TestEnvironment is a complete sandbox for one test.
type TestEnvironment struct {
	SourceRoot string
	HomeDir    string
	FSRoot     string

	FS     filesystem.FS
	Layout *paths.Layout

	t *testing.T
}

// NewTestEnvironment creates the sandbox with empty Configs, Hooks and Secrets
// directories. The layout always reports linux so platform groups are stable.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	tempDir := t.TempDir()
	env := &TestEnvironment{
		SourceRoot: filepath.Join(tempDir, "dotfiles"),
		HomeDir:    filepath.Join(tempDir, "home"),
		FSRoot:     filepath.Join(tempDir, "rootfs"),
		FS:         filesystem.NewOS(),
		t:          t,
	}

	for _, dir := range []string{
		filepath.Join(env.SourceRoot, string(paths.Configs)),
		filepath.Join(env.SourceRoot, string(paths.Hooks)),
		filepath.Join(env.SourceRoot, string(paths.Secrets)),
		env.HomeDir,
		env.FSRoot,
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv(paths.EnvDotfilesRoot, env.SourceRoot)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(env.HomeDir, ".config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tempDir, "state"))

	env.Layout = &paths.Layout{
		SourceRoot: env.SourceRoot,
		Home:       env.HomeDir,
		FSRoot:     env.FSRoot,
		GOOS:       "linux",
	}
	return env
}

// AddConfig writes a file into Configs/<group>/<rel> and returns its path.
func (env *TestEnvironment) AddConfig(group, rel, content string) string {
	env.t.Helper()
	path := filepath.Join(env.Layout.GroupDir(paths.Configs, group), rel)
	env.write(path, content, 0644)
	return path
}

// AddHook writes an executable script into Hooks/<group>/<name>.
func (env *TestEnvironment) AddHook(group, name, script string) string {
	env.t.Helper()
	path := filepath.Join(env.Layout.GroupDir(paths.Hooks, group), name)
	env.write(path, script, 0755)
	return path
}

// WriteHome writes a real file at $HOME/<rel>.
func (env *TestEnvironment) WriteHome(rel, content string) string {
	env.t.Helper()
	path := filepath.Join(env.HomeDir, rel)
	env.write(path, content, 0644)
	return path
}

// HomePath joins rel onto the sandbox home.
func (env *TestEnvironment) HomePath(rel string) string {
	return filepath.Join(env.HomeDir, rel)
}

func (env *TestEnvironment) write(path, content string, mode os.FileMode) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("failed to create parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		env.t.Fatalf("failed to write %s: %v", path, err)
	}
}
