// pkg/hooks/runner_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem in temp directory (testutil), /bin/sh
// PURPOSE: Hook discovery, ordering, environment and failure isolation

package hooks_test

import (
	"bytes"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/hooks"
	"github.com/arthur-debert/dotlink/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("hook scripts in these tests are POSIX shell")
	}
}

func TestRunner_Discovery(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.AddHook("zsh", "pre-02-second.sh", "true")
	env.AddHook("zsh", "pre-01-first.sh", "true")
	env.AddHook("zsh", "post.sh", "true")
	env.AddHook("zsh", "README", "not a hook")
	env.AddHook("git", "pre.sh", "true")

	r := hooks.NewRunner(env.FS, env.Layout, hooks.Options{})

	pre := r.Scripts("zsh", hooks.Pre)
	require.Len(t, pre, 2)
	assert.Equal(t, "pre-01-first.sh", filepath.Base(pre[0]))
	assert.Equal(t, "pre-02-second.sh", filepath.Base(pre[1]))

	post := r.Scripts("zsh", hooks.Post)
	require.Len(t, post, 1)

	assert.Equal(t, []string{"git", "zsh"}, r.Groups())
	assert.True(t, r.HasHooks("zsh"))
	assert.False(t, r.HasHooks("vim"))
	assert.Empty(t, r.Scripts("vim", hooks.Pre))
}

func TestRunner_RunsInOrderWithEnvironment(t *testing.T) {
	skipOnWindows(t)
	env := testutil.NewTestEnvironment(t)
	env.AddHook("zsh", "pre-01.sh", `echo "one $DOTLINK_GROUP $DOTLINK_PHASE"`)
	env.AddHook("zsh", "pre-02.sh", `echo "two"`)

	var out bytes.Buffer
	r := hooks.NewRunner(env.FS, env.Layout, hooks.Options{Stdout: &out})
	results := r.Run("zsh", hooks.Pre)

	require.Len(t, results, 2)
	for _, res := range results {
		assert.False(t, res.Failed())
		assert.Equal(t, 0, res.ExitCode)
	}
	assert.Equal(t, "one zsh pre\n", results[0].Stdout)
	assert.Equal(t, "one zsh pre\ntwo\n", out.String())
}

func TestRunner_FailureDoesNotStopOtherHooks(t *testing.T) {
	skipOnWindows(t)
	env := testutil.NewTestEnvironment(t)
	env.AddHook("zsh", "post-01.sh", "echo broken >&2; exit 3")
	env.AddHook("zsh", "post-02.sh", "echo fine")

	r := hooks.NewRunner(env.FS, env.Layout, hooks.Options{})
	results := r.Run("zsh", hooks.Post)

	require.Len(t, results, 2)
	assert.True(t, results[0].Failed())
	assert.Equal(t, 3, results[0].ExitCode)
	assert.Equal(t, "broken\n", results[0].Stderr)
	assert.True(t, errors.IsErrorCode(results[0].Err, errors.ErrHookExecution))

	assert.False(t, results[1].Failed())
	assert.Equal(t, "fine\n", results[1].Stdout)
}

func TestRunner_NoHooks(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	r := hooks.NewRunner(env.FS, env.Layout, hooks.Options{})
	assert.Empty(t, r.Run("zsh", hooks.Pre))
}
