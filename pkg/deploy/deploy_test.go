// pkg/deploy/deploy_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem in temp directory (testutil), /bin/sh
// PURPOSE: Hook and link sequencing of a group deployment

package deploy_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/deploy"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/hooks"
	"github.com/arthur-debert/dotlink/pkg/linker"
	"github.com/arthur-debert/dotlink/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeployer(env *testutil.TestEnvironment) *deploy.Deployer {
	return deploy.New(
		env.FS,
		env.Layout,
		linker.New(env.FS, env.Layout, nil),
		hooks.NewRunner(env.FS, env.Layout, hooks.Options{}),
	)
}

func TestDeploy_RunsHooksAroundLinking(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hook scripts in these tests are POSIX shell")
	}
	env := testutil.NewTestEnvironment(t)
	zshrc := env.AddConfig("zsh", ".zshrc", "zsh")
	trace := filepath.Join(env.HomeDir, "trace")

	// pre sees no link yet, post sees it
	env.AddHook("zsh", "pre.sh", `test -L "$HOME/.zshrc" && echo pre-linked >> `+trace+` || echo pre-unlinked >> `+trace)
	env.AddHook("zsh", "post.sh", `test -L "$HOME/.zshrc" && echo post-linked >> `+trace+` || echo post-unlinked >> `+trace)

	report := newDeployer(env).Deploy([]string{"zsh"}, deploy.Options{})
	require.NoError(t, report.Err())

	g := report.Group("zsh")
	require.NotNil(t, g)
	assert.Equal(t, deploy.PostHook, g.Reached)
	assert.Len(t, g.PreHook, 1)
	assert.Len(t, g.PostHook, 1)
	require.NotNil(t, g.Link)

	testutil.AssertSymlinkTo(t, env.HomePath(".zshrc"), zshrc)
	data, err := os.ReadFile(trace)
	require.NoError(t, err)
	assert.Equal(t, "pre-unlinked\npost-linked\n", string(data))
}

func TestDeploy_HookFailureDoesNotAbort(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hook scripts in these tests are POSIX shell")
	}
	env := testutil.NewTestEnvironment(t)
	zshrc := env.AddConfig("zsh", ".zshrc", "zsh")
	env.AddHook("zsh", "pre.sh", "exit 1")
	env.AddHook("zsh", "post.sh", "true")

	report := newDeployer(env).Deploy([]string{"zsh"}, deploy.Options{})

	g := report.Group("zsh")
	require.NotNil(t, g)
	assert.Equal(t, deploy.PostHook, g.Reached)
	require.Len(t, g.PreHook, 1)
	assert.True(t, errors.IsErrorCode(g.PreHook[0].Err, errors.ErrHookExecution))
	require.Len(t, g.PostHook, 1)
	assert.False(t, g.PostHook[0].Failed())

	testutil.AssertSymlinkTo(t, env.HomePath(".zshrc"), zshrc)
	assert.Error(t, report.Err())
}

func TestDeploy_GroupWithoutConfigs(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.AddHook("brew", "post.sh", "true")

	report := newDeployer(env).Deploy([]string{"brew"}, deploy.Options{})

	g := report.Group("brew")
	require.NotNil(t, g)
	assert.Nil(t, g.Link)
	assert.Contains(t, g.Notes, "no Configs directory, linking skipped")
	assert.Equal(t, deploy.PostHook, g.Reached)
}

func TestDeploy_WildcardSelectsGroupsWithHooks(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.AddConfig("zsh", ".zshrc", "zsh")
	env.AddConfig("git", ".gitconfig", "git")
	env.AddHook("zsh", "README", "no hooks here")
	env.AddHook("brew", "README", "no hooks here")
	env.AddHook("apt", "README", "no hooks here")

	report := newDeployer(env).Deploy([]string{linker.Wildcard}, deploy.Options{Exclude: []string{"apt"}})

	var groups []string
	for _, g := range report.Groups {
		groups = append(groups, g.Group)
	}
	assert.Equal(t, []string{"brew", "zsh"}, groups)
	testutil.AssertNotExists(t, env.HomePath(".gitconfig"))
}

func TestDeploy_ForeignPlatformGroupRunsNoHooks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hook scripts in these tests are POSIX shell")
	}
	env := testutil.NewTestEnvironment(t)
	marker := filepath.Join(env.HomeDir, "ran")
	env.AddConfig("shell_windows", "profile.ps1", "windows")
	env.AddHook("shell_windows", "pre.sh", "touch "+marker)
	env.AddHook("shell_windows", "post.sh", "touch "+marker)
	env.AddHook("zsh", "README", "no hooks here")

	t.Run("wildcard_drops_group", func(t *testing.T) {
		report := newDeployer(env).Deploy([]string{linker.Wildcard}, deploy.Options{})
		require.NoError(t, report.Err())
		assert.Nil(t, report.Group("shell_windows"))
		assert.NotNil(t, report.Group("zsh"))
		testutil.AssertNotExists(t, marker)
	})

	t.Run("named_group_stops_at_initialize", func(t *testing.T) {
		report := newDeployer(env).Deploy([]string{"shell_windows"}, deploy.Options{})
		require.NoError(t, report.Err())

		g := report.Group("shell_windows")
		require.NotNil(t, g)
		assert.Equal(t, deploy.Initialize, g.Reached)
		assert.Empty(t, g.PreHook)
		assert.Nil(t, g.Link)
		assert.Empty(t, g.PostHook)
		assert.Contains(t, g.Notes, "group targets another platform, skipped")
		testutil.AssertNotExists(t, marker)
		testutil.AssertNotExists(t, env.HomePath("profile.ps1"))
	})
}

func TestDeploy_UnknownGroupFails(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.AddConfig("zsh", ".zshrc", "zsh")
	env.AddHook("brew", "post.sh", "true")

	report := newDeployer(env).Deploy([]string{"zhs"}, deploy.Options{})

	g := report.Group("zhs")
	require.NotNil(t, g)
	assert.Equal(t, deploy.Initialize, g.Reached)
	assert.Empty(t, g.PreHook)
	assert.Nil(t, g.Link)
	assert.True(t, errors.IsErrorCode(g.GroupErr, errors.ErrGroupNotFound))
	assert.Contains(t, g.GroupErr.Error(), "zsh")

	err := report.Err()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrGroupNotFound))
}
