package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/deploy"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/linker"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/reconcile"
	"github.com/arthur-debert/dotlink/pkg/ui/confirmations"
	"github.com/spf13/cobra"
)

func newStatusCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags, nil)
			if err != nil {
				return err
			}
			if err := a.layout.RequireCategories(a.fs, paths.Configs); err != nil {
				return err
			}
			report, err := reconcile.New(a.fs, a.layout).Reconcile()
			if err != nil {
				return err
			}
			return a.renderer.RenderResult(report)
		},
	}
}

// linkFlags are shared by link, unlink and deploy.
type linkFlags struct {
	force   bool
	adopt   bool
	yes     bool
	exclude []string
}

func (lf *linkFlags) register(cmd *cobra.Command, policies bool) {
	if policies {
		cmd.Flags().BoolVarP(&lf.force, "force", "f", false, MsgFlagForce)
		cmd.Flags().BoolVarP(&lf.adopt, "adopt", "a", false, MsgFlagAdopt)
		cmd.Flags().BoolVarP(&lf.yes, "yes", "y", false, MsgFlagYes)
	}
	cmd.Flags().StringSliceVarP(&lf.exclude, "exclude", "x", nil, MsgFlagExclude)
}

// overrides maps explicitly set policy flags onto config keys.
func (lf *linkFlags) overrides(cmd *cobra.Command) map[string]interface{} {
	out := make(map[string]interface{})
	if cmd.Flags().Changed("force") {
		out["link.force"] = lf.force
	}
	if cmd.Flags().Changed("adopt") {
		out["link.adopt"] = lf.adopt
	}
	if cmd.Flags().Changed("exclude") {
		out["exclude"] = lf.exclude
	}
	return out
}

func (lf *linkFlags) confirmer() confirmations.Confirmer {
	if lf.yes {
		return &confirmations.Static{Answer: true}
	}
	return confirmations.NewConsoleDialog()
}

func linkOptions(cfg *config.Config) linker.Options {
	return linker.Options{
		Force:   cfg.Link.Force,
		Adopt:   cfg.Link.Adopt,
		Exclude: cfg.Exclude,
	}
}

func newLinkCmd(flags *globalFlags) *cobra.Command {
	lf := &linkFlags{}
	cmd := &cobra.Command{
		Use:     "link <group>...",
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		Example: MsgLinkExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags, lf.overrides(cmd))
			if err != nil {
				return err
			}
			l := linker.New(a.fs, a.layout, lf.confirmer())
			result, err := l.Link(args, linkOptions(a.cfg))
			if err != nil {
				return err
			}
			if err := a.renderer.RenderResult(result); err != nil {
				return err
			}
			return result.Err()
		},
	}
	lf.register(cmd, true)
	return cmd
}

func newUnlinkCmd(flags *globalFlags) *cobra.Command {
	lf := &linkFlags{}
	cmd := &cobra.Command{
		Use:     "unlink <group>...",
		Short:   MsgUnlinkShort,
		Long:    MsgUnlinkLong,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags, lf.overrides(cmd))
			if err != nil {
				return err
			}
			l := linker.New(a.fs, a.layout, nil)
			result, err := l.Unlink(args, linker.Options{Exclude: a.cfg.Exclude})
			if err != nil {
				return err
			}
			if err := a.renderer.RenderResult(result); err != nil {
				return err
			}
			return result.Err()
		},
	}
	lf.register(cmd, false)
	return cmd
}

func newDeployCmd(flags *globalFlags) *cobra.Command {
	lf := &linkFlags{}
	cmd := &cobra.Command{
		Use:     "deploy <group>...",
		Short:   MsgDeployShort,
		Long:    MsgDeployLong,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags, lf.overrides(cmd))
			if err != nil {
				return err
			}
			if err := a.layout.RequireCategories(a.fs, paths.Configs, paths.Hooks); err != nil {
				return err
			}
			d := deploy.New(a.fs, a.layout, linker.New(a.fs, a.layout, lf.confirmer()), a.hookRunner(cmd))
			report := d.Deploy(args, deploy.Options{Link: linkOptions(a.cfg), Exclude: a.cfg.Exclude})
			if err := a.renderer.RenderResult(report); err != nil {
				return err
			}
			return report.Err()
		},
	}
	lf.register(cmd, true)
	return cmd
}

func newGenConfigCmd(flags *globalFlags) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Example: MsgGenConfigExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := config.Generate()
			if err != nil {
				return err
			}
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			a, err := newApp(cmd, flags, nil)
			if err != nil {
				return err
			}
			path := filepath.Join(a.layout.SourceRoot, config.FileNames[0])
			if _, err := os.Stat(path); err == nil {
				return errors.Newf(errors.ErrInvalidInput, MsgConfigExists, path)
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrInternal, "failed to write %s", path)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, path)
			return err
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}
