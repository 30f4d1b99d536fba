package hooks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/rs/zerolog"
)

// Phase selects which hooks of a group run.
type Phase string

const (
	Pre  Phase = "pre"
	Post Phase = "post"
)

// DefaultTimeout bounds a single hook execution.
const DefaultTimeout = 5 * time.Minute

// Result is the outcome of one hook script.
type Result struct {
	Group    string `json:"group" yaml:"group"`
	Phase    Phase  `json:"phase" yaml:"phase"`
	Script   string `json:"script" yaml:"script"`
	ExitCode int    `json:"exit_code" yaml:"exit_code"`
	Stdout   string `json:"stdout,omitempty" yaml:"stdout,omitempty"`
	Stderr   string `json:"stderr,omitempty" yaml:"stderr,omitempty"`
	Err      error  `json:"-" yaml:"-"`
}

// Failed reports whether the hook did not exit cleanly.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Options configures a Runner.
type Options struct {
	Shell     string
	ShellFlag string
	Timeout   time.Duration
	// Stdout and Stderr, when set, receive hook output as it is produced in
	// addition to the captured copy kept in Result.
	Stdout io.Writer
	Stderr io.Writer
}

// Runner executes group hooks.
type Runner struct {
	fs     filesystem.FS
	layout *paths.Layout
	opts   Options
	logger zerolog.Logger
}

// DefaultShell returns the platform shell and its command flag.
func DefaultShell() (string, string) {
	if runtime.GOOS == "windows" {
		return "cmd", "/C"
	}
	return "sh", "-c"
}

// NewRunner creates a Runner. Empty shell settings fall back to DefaultShell.
func NewRunner(fs filesystem.FS, layout *paths.Layout, opts Options) *Runner {
	if opts.Shell == "" {
		opts.Shell, opts.ShellFlag = DefaultShell()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Runner{
		fs:     fs,
		layout: layout,
		opts:   opts,
		logger: logging.GetLogger("hooks"),
	}
}

// HasHooks reports whether group has a hook directory.
func (r *Runner) HasHooks(group string) bool {
	info, err := r.fs.Stat(r.layout.GroupDir(paths.Hooks, group))
	return err == nil && info.IsDir()
}

// Groups lists every group with a hook directory, sorted. A missing Hooks
// category yields no groups.
func (r *Runner) Groups() []string {
	entries, err := r.fs.ReadDir(r.layout.HooksDir())
	if err != nil {
		return nil
	}
	var groups []string
	for _, entry := range entries {
		if entry.IsDir() {
			groups = append(groups, entry.Name())
		}
	}
	slices.Sort(groups)
	return groups
}

// Scripts returns the hook files of group for phase, in execution order.
func (r *Runner) Scripts(group string, phase Phase) []string {
	dir := r.layout.GroupDir(paths.Hooks, group)
	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		return nil
	}
	var scripts []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), string(phase)) {
			continue
		}
		scripts = append(scripts, filepath.Join(dir, entry.Name()))
	}
	slices.Sort(scripts)
	return scripts
}

// Run executes every hook of group for phase. Failures are recorded in the
// results and never stop the remaining hooks.
func (r *Runner) Run(group string, phase Phase) []Result {
	scripts := r.Scripts(group, phase)
	if len(scripts) == 0 {
		r.logger.Debug().Str("group", group).Str("phase", string(phase)).Msg("No hooks to run")
		return nil
	}

	results := make([]Result, 0, len(scripts))
	for _, script := range scripts {
		results = append(results, r.runScript(group, phase, script))
	}
	return results
}

func (r *Runner) runScript(group string, phase Phase, script string) Result {
	result := Result{Group: group, Phase: phase, Script: script}

	r.logger.Info().
		Str("group", group).
		Str("phase", string(phase)).
		Str("script", script).
		Msg("Running hook")

	ctx, cancel := context.WithTimeout(context.Background(), r.opts.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.opts.Shell, r.opts.ShellFlag, script)
	cmd.Dir = filepath.Dir(script)

	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env,
		fmt.Sprintf("DOTLINK_GROUP=%s", group),
		fmt.Sprintf("DOTLINK_PHASE=%s", phase),
		fmt.Sprintf("DOTLINK_ROOT=%s", r.layout.SourceRoot),
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = tee(&stdout, r.opts.Stdout)
	cmd.Stderr = tee(&stderr, r.opts.Stderr)

	err := cmd.Run()
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("timed out after %s: %w", r.opts.Timeout, err)
		}
		result.Err = errors.Wrapf(err, errors.ErrHookExecution, "hook %s failed", filepath.Base(script)).
			WithDetail("group", group).
			WithDetail("phase", string(phase)).
			WithDetail("script", script).
			WithDetail("exit_code", result.ExitCode)
		r.logger.Error().
			Err(err).
			Str("group", group).
			Str("script", script).
			Int("exit_code", result.ExitCode).
			Str("stderr", result.Stderr).
			Msg("Hook failed")
		return result
	}

	r.logger.Debug().Str("script", script).Msg("Hook finished")
	return result
}

func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}
