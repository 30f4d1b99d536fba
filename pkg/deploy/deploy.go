package deploy

import (
	stderrors "errors"
	"slices"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/hooks"
	"github.com/arthur-debert/dotlink/pkg/linker"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/reconcile"
	"github.com/rs/zerolog"
)

// Options controls a deployment.
type Options struct {
	Link    linker.Options
	Exclude []string
}

// GroupReport is the outcome of deploying one group. Reached is the last
// state entered.
type GroupReport struct {
	Group    string              `json:"group" yaml:"group"`
	Reached  State               `json:"reached" yaml:"reached"`
	PreHook  []hooks.Result      `json:"pre_hooks,omitempty" yaml:"pre_hooks,omitempty"`
	Link     *linker.GroupResult `json:"link,omitempty" yaml:"link,omitempty"`
	PostHook []hooks.Result      `json:"post_hooks,omitempty" yaml:"post_hooks,omitempty"`
	Notes    []string            `json:"notes,omitempty" yaml:"notes,omitempty"`

	// GroupErr stops the group before any hook runs, as for an unknown group.
	GroupErr error `json:"-" yaml:"-"`
}

// Err joins group, hook and link failures of the group, nil if none.
func (g *GroupReport) Err() error {
	errs := []error{g.GroupErr}
	for _, h := range g.PreHook {
		errs = append(errs, h.Err)
	}
	if g.Link != nil {
		errs = append(errs, g.Link.Err())
	}
	for _, h := range g.PostHook {
		errs = append(errs, h.Err)
	}
	return stderrors.Join(errs...)
}

// Report is the outcome of one Deploy call.
type Report struct {
	Groups []*GroupReport `json:"groups" yaml:"groups"`
}

// Group returns the report for name, or nil.
func (r *Report) Group(name string) *GroupReport {
	for _, g := range r.Groups {
		if g.Group == name {
			return g
		}
	}
	return nil
}

// Err joins the failures of every group, nil if none.
func (r *Report) Err() error {
	var errs []error
	for _, g := range r.Groups {
		errs = append(errs, g.Err())
	}
	return stderrors.Join(errs...)
}

// Deployer runs the deployment state machine for groups.
type Deployer struct {
	fs     filesystem.FS
	layout *paths.Layout
	linker *linker.Linker
	hooks  *hooks.Runner
	logger zerolog.Logger
}

// New creates a Deployer from its collaborators.
func New(fs filesystem.FS, layout *paths.Layout, l *linker.Linker, runner *hooks.Runner) *Deployer {
	return &Deployer{
		fs:     fs,
		layout: layout,
		linker: l,
		hooks:  runner,
		logger: logging.GetLogger("deploy"),
	}
}

// Deploy runs every requested group through the state machine. The wildcard
// selects each group that has a hook directory.
func (d *Deployer) Deploy(groups []string, opts Options) *Report {
	done := logging.LogOperationStart(d.logger, "deploy")
	defer done()

	report := &Report{}
	for _, group := range d.expand(groups, opts.Exclude) {
		report.Groups = append(report.Groups, d.deployGroup(group, opts))
	}
	return report
}

func (d *Deployer) expand(requested, exclude []string) []string {
	var out []string
	for _, name := range requested {
		name = strings.TrimRight(name, "/")
		candidates := []string{name}
		if name == linker.Wildcard {
			candidates = nil
			for _, g := range d.hooks.Groups() {
				if !slices.Contains(exclude, g) && d.layout.IsPlatformApplicable(g) {
					candidates = append(candidates, g)
				}
			}
		}
		for _, g := range candidates {
			if !slices.Contains(out, g) {
				out = append(out, g)
			}
		}
	}
	return out
}

func (d *Deployer) deployGroup(group string, opts Options) *GroupReport {
	gr := &GroupReport{Group: group}
	logger := d.logger.With().Str("group", group).Logger()

	for state := Initialize; ; {
		gr.Reached = state
		logger.Debug().Stringer("state", state).Msg("Entering deployment state")

		if state == Initialize && !d.initialize(gr) {
			break
		}

		switch state {
		case PreHook:
			gr.PreHook = d.hooks.Run(group, hooks.Pre)
		case Symlink:
			d.link(gr, opts)
		case PostHook:
			gr.PostHook = d.hooks.Run(group, hooks.Post)
		}

		next, err := state.Next()
		if err != nil {
			break
		}
		state = next
	}

	if err := gr.Err(); err != nil {
		logger.Warn().Err(err).Msg("Group deployed with errors")
	} else {
		logger.Info().Msg("Group deployed")
	}
	return gr
}

// initialize reports whether the group may proceed past Initialize. Unknown
// groups fail; groups for another platform stop without running hooks.
func (d *Deployer) initialize(gr *GroupReport) bool {
	if !d.hasConfigs(gr.Group) && !d.hooks.HasHooks(gr.Group) {
		gr.GroupErr = reconcile.GroupNotFound(gr.Group, d.knownGroups())
		d.logger.Warn().Err(gr.GroupErr).Str("group", gr.Group).Msg("Skipping unknown group")
		return false
	}
	if !d.layout.IsPlatformApplicable(gr.Group) {
		gr.Notes = append(gr.Notes, "group targets another platform, skipped")
		return false
	}
	return true
}

func (d *Deployer) hasConfigs(group string) bool {
	info, err := d.fs.Stat(d.layout.GroupDir(paths.Configs, group))
	return err == nil && info.IsDir()
}

// knownGroups lists every group with a Configs or Hooks directory, sorted.
func (d *Deployer) knownGroups() []string {
	known := d.hooks.Groups()
	if entries, err := d.fs.ReadDir(d.layout.ConfigsDir()); err == nil {
		for _, entry := range entries {
			if entry.IsDir() && !slices.Contains(known, entry.Name()) {
				known = append(known, entry.Name())
			}
		}
	}
	slices.Sort(known)
	return known
}

func (d *Deployer) link(gr *GroupReport, opts Options) {
	if !d.hasConfigs(gr.Group) {
		gr.Notes = append(gr.Notes, "no Configs directory, linking skipped")
		return
	}

	result, err := d.linker.Link([]string{gr.Group}, opts.Link)
	if err != nil {
		gr.Link = &linker.GroupResult{Group: gr.Group, GroupErr: err}
		return
	}
	gr.Link = result.Group(gr.Group)
}
