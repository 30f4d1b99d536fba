package cli

import (
	"os"

	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/hooks"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/ui/output"
	"github.com/spf13/cobra"
)

// app is everything a command needs once the source tree is known.
type app struct {
	fs       filesystem.FS
	layout   *paths.Layout
	cfg      *config.Config
	renderer output.Renderer
}

// newApp locates the source tree, loads configuration and builds the renderer.
// overrides are flattened config keys set from command flags.
func newApp(cmd *cobra.Command, flags *globalFlags, overrides map[string]interface{}) (*app, error) {
	root := flags.dotfilesRoot
	if root != "" {
		root = paths.ExpandHome(root)
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			return nil, errors.Newf(errors.ErrSourceNotFound, "dotfiles root %s does not exist", root).
				WithDetail("path", root)
		}
	} else {
		var err error
		if root, err = paths.LocateSourceRoot(); err != nil {
			return nil, err
		}
	}

	home, err := paths.GetHomeDirectory()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot determine home directory")
	}
	layout, err := paths.New(root, home)
	if err != nil {
		return nil, err
	}

	if overrides == nil {
		overrides = make(map[string]interface{})
	}
	if flags.format != "" {
		overrides["output.format"] = flags.format
	}
	if flags.color != "" {
		overrides["output.color"] = flags.color
	}
	cfg, err := config.Load(layout.SourceRoot, overrides)
	if err != nil {
		return nil, err
	}
	if cfg.Logging.Verbosity > flags.verbosity {
		logging.SetupLogger(cfg.Logging.Verbosity)
	}

	renderer, err := output.New(cmd.OutOrStdout(), cfg.Output.Format, cfg.Output.Color)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid output settings")
	}

	return &app{
		fs:       filesystem.NewOS(),
		layout:   layout,
		cfg:      cfg,
		renderer: renderer,
	}, nil
}

func (a *app) hookRunner(cmd *cobra.Command) *hooks.Runner {
	return hooks.NewRunner(a.fs, a.layout, hooks.Options{
		Shell:     a.cfg.Hooks.Shell,
		ShellFlag: a.cfg.Hooks.ShellFlag,
		Timeout:   a.cfg.Hooks.Timeout,
		Stdout:    cmd.ErrOrStderr(),
		Stderr:    cmd.ErrOrStderr(),
	})
}
