// pkg/ui/output/renderer_test.go
// TEST TYPE: Output Rendering Test
// DEPENDENCIES: Real filesystem in temp directory (testutil)
// PURPOSE: Text, JSON and YAML rendering of engine results

package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/deploy"
	"github.com/arthur-debert/dotlink/pkg/hooks"
	"github.com/arthur-debert/dotlink/pkg/linker"
	"github.com/arthur-debert/dotlink/pkg/reconcile"
	"github.com/arthur-debert/dotlink/pkg/testutil"
	"github.com/arthur-debert/dotlink/pkg/ui/output"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport(t *testing.T) *reconcile.Report {
	t.Helper()
	env := testutil.NewTestEnvironment(t)
	env.AddConfig("zsh", ".zshrc", "zsh")
	env.AddConfig("git", ".gitconfig", "git")
	env.AddConfig("tools_darwin", ".brewrc", "brew")
	env.WriteHome(".gitconfig", "user's own")

	_, err := linker.New(env.FS, env.Layout, nil).Link([]string{"zsh"}, linker.Options{})
	require.NoError(t, err)

	report, err := reconcile.New(env.FS, env.Layout).Reconcile()
	require.NoError(t, err)
	return report
}

func TestRenderer_TextStatus(t *testing.T) {
	report := sampleReport(t)

	var buf bytes.Buffer
	r, err := output.New(&buf, "text", "never")
	require.NoError(t, err)
	require.NoError(t, r.RenderResult(report))

	out := buf.String()
	assert.Contains(t, out, "zsh [linked]")
	assert.Contains(t, out, "git [unlinked]")
	assert.Contains(t, out, "unowned-conflict")
	assert.Contains(t, out, "other platforms: tools_darwin")
	assert.NotContains(t, out, "\x1b[", "no escape codes without color")
}

func TestRenderer_JSONStatus(t *testing.T) {
	report := sampleReport(t)

	var buf bytes.Buffer
	r, err := output.New(&buf, "json", "auto")
	require.NoError(t, err)
	require.NoError(t, r.RenderResult(report))

	var view output.StatusView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &view))
	require.Len(t, view.Groups, 2)
	assert.Equal(t, "git", view.Groups[0].Group)
	assert.Equal(t, "unlinked", view.Groups[0].State)
	assert.Equal(t, "unowned-conflict", view.Groups[0].Files[0].State)
	assert.Equal(t, []string{"tools_darwin"}, view.Unsupported)
}

func TestRenderer_YAMLLinkResult(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.AddConfig("zsh", ".zshrc", "zsh")
	env.WriteHome(".zshrc", "mine")

	result, err := linker.New(env.FS, env.Layout, nil).Link([]string{"zsh", "nope"}, linker.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	r, err := output.New(&buf, "yaml", "auto")
	require.NoError(t, err)
	require.NoError(t, r.RenderResult(result))

	var view output.ResultView
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &view))
	require.Len(t, view.Groups, 2)
	assert.Equal(t, "nope", view.Groups[0].Group)
	assert.Contains(t, view.Groups[0].Error, "GROUP_NOT_FOUND")
	assert.Equal(t, "conflict", view.Groups[1].Files[0].Action)
	assert.Contains(t, view.Groups[1].Files[0].Error, "TARGET_CONFLICT")
}

func TestRenderer_Messages(t *testing.T) {
	var buf bytes.Buffer
	r, err := output.New(&buf, "json", "never")
	require.NoError(t, err)
	require.NoError(t, r.RenderMessage("done"))
	assert.JSONEq(t, `{"message":"done"}`, buf.String())

	_, err = output.New(&buf, "xml", "never")
	assert.Error(t, err)
}

func TestColorProfile(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, termenv.Ascii, output.ColorProfile(&buf, "never"))
	assert.Equal(t, termenv.Ascii, output.ColorProfile(&buf, "auto"), "buffers are not terminals")
	assert.Equal(t, termenv.ANSI256, output.ColorProfile(&buf, "always"))
}

func TestStyles_Parse(t *testing.T) {
	cfg, err := output.ParseStyles([]byte("colors:\n  red:\n    light: \"#f00\"\n    dark: \"#f00\"\nstyles:\n  Error:\n    foreground: red\n    bold: true\n"))
	require.NoError(t, err)
	assert.Equal(t, "red", cfg.Styles["Error"].Foreground)
	assert.True(t, cfg.Styles["Error"].Bold)
}

func TestRenderer_TextDeployUnknownGroup(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.AddConfig("zsh", ".zshrc", "zsh")
	d := deploy.New(env.FS, env.Layout,
		linker.New(env.FS, env.Layout, nil),
		hooks.NewRunner(env.FS, env.Layout, hooks.Options{}))
	report := d.Deploy([]string{"zhs"}, deploy.Options{})

	var buf bytes.Buffer
	r, err := output.New(&buf, "text", "never")
	require.NoError(t, err)
	require.NoError(t, r.RenderResult(report))

	out := buf.String()
	assert.Contains(t, out, "zhs (initialize)")
	assert.Contains(t, out, `group "zhs" not found (did you mean zsh?)`)
}
