package linker

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/grouptree"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/reconcile"
	"github.com/arthur-debert/dotlink/pkg/ui/confirmations"
	"github.com/rs/zerolog"
)

// Linker performs the filesystem mutations for link and unlink.
type Linker struct {
	fs         filesystem.FS
	layout     *paths.Layout
	reconciler *reconcile.Reconciler
	confirmer  confirmations.Confirmer
	logger     zerolog.Logger
}

// New creates a Linker. confirmer is consulted for the force policy; a nil
// confirmer declines every force request.
func New(fs filesystem.FS, layout *paths.Layout, confirmer confirmations.Confirmer) *Linker {
	return &Linker{
		fs:         fs,
		layout:     layout,
		reconciler: reconcile.New(fs, layout),
		confirmer:  confirmer,
		logger:     logging.GetLogger("linker"),
	}
}

// Link brings the requested groups to the linked state. The returned error is
// reserved for failures that prevent any work, such as a missing Configs
// directory; per-group and per-file problems are recorded in the Result.
func (l *Linker) Link(groups []string, opts Options) (*Result, error) {
	done := logging.LogOperationStart(l.logger, "link")
	defer done()

	tree, err := l.reconciler.Tree()
	if err != nil {
		return nil, err
	}
	report := l.reconciler.ReconcileTree(tree)

	result := &Result{}
	selected := l.expand(groups, tree, report, true, opts.Exclude, result)

	force := l.forceDecision(report, selected, opts)

	for _, group := range selected {
		result.Groups = append(result.Groups, l.linkGroup(tree, group, opts, force))
	}
	return result, nil
}

// LinkGroup links a single group.
func (l *Linker) LinkGroup(group string, opts Options) (*GroupResult, error) {
	result, err := l.Link([]string{group}, opts)
	if err != nil {
		return nil, err
	}
	if g := result.Group(group); g != nil {
		return g, nil
	}
	return &GroupResult{
		Group:    group,
		GroupErr: errors.Newf(errors.ErrGroupUnsupported, "group %q does not apply to %s", group, l.layout.GOOS),
	}, nil
}

// Unlink brings the requested groups to the unlinked state.
func (l *Linker) Unlink(groups []string, opts Options) (*Result, error) {
	done := logging.LogOperationStart(l.logger, "unlink")
	defer done()

	tree, err := l.reconciler.Tree()
	if err != nil {
		return nil, err
	}
	report := l.reconciler.ReconcileTree(tree)

	result := &Result{}
	for _, group := range l.expand(groups, tree, report, false, opts.Exclude, result) {
		result.Groups = append(result.Groups, l.unlinkGroup(tree, group))
	}
	return result, nil
}

// UnlinkGroup unlinks a single group.
func (l *Linker) UnlinkGroup(group string) (*GroupResult, error) {
	result, err := l.Unlink([]string{group}, Options{})
	if err != nil {
		return nil, err
	}
	return result.Group(group), nil
}

// expand resolves wildcards and platform variants into an ordered, duplicate
// free group list. Unknown groups are recorded as failed group results.
func (l *Linker) expand(requested []string, tree *grouptree.Tree, report *reconcile.Report, linking bool, exclude []string, result *Result) []string {
	var selected []string
	seen := make(map[string]bool)
	add := func(group string) {
		if !seen[group] {
			seen[group] = true
			selected = append(selected, group)
		}
	}
	excluded := func(group string) bool {
		return slices.Contains(exclude, group)
	}

	for _, name := range requested {
		name = strings.TrimRight(name, "/")

		if name == Wildcard {
			var candidates []string
			if linking {
				candidates = report.UnlinkedGroups()
			} else {
				candidates = groupsWithLinks(report)
			}
			for _, g := range candidates {
				if !excluded(g) {
					add(g)
				}
			}
			continue
		}

		if !tree.ContainsGroup(name) {
			err := reconcile.GroupNotFound(name, tree.Groups())
			l.logger.Warn().Err(err).Str("group", name).Msg("Skipping unknown group")
			result.Groups = append(result.Groups, &GroupResult{Group: name, GroupErr: err})
			continue
		}

		if linking && !l.layout.IsPlatformApplicable(name) {
			l.logger.Warn().Str("group", name).Msg("Group targets another platform, skipping")
			result.Skipped = append(result.Skipped, name)
			continue
		}
		add(name)

		for _, g := range tree.Groups() {
			if paths.IsVariantOf(name, g) && l.layout.IsPlatformApplicable(g) && !excluded(g) {
				add(g)
			}
		}
	}
	return selected
}

// groupsWithLinks returns groups with at least one linked file, so a
// partially linked group is still cleaned up by a wildcard unlink.
func groupsWithLinks(report *reconcile.Report) []string {
	seen := make(map[string]bool)
	var out []string
	for _, st := range report.Linked {
		if !seen[st.Group] {
			seen[st.Group] = true
			out = append(out, st.Group)
		}
	}
	slices.Sort(out)
	return out
}

// forceDecision asks once for every conflict the force policy would remove.
func (l *Linker) forceDecision(report *reconcile.Report, selected []string, opts Options) bool {
	if !opts.Force {
		return false
	}

	var items []string
	for _, group := range selected {
		for _, st := range report.ConflictsFor(group) {
			if opts.Adopt && l.isRegularFile(st.Target) {
				continue
			}
			items = append(items, st.Target)
		}
	}
	if len(items) == 0 {
		return false
	}
	if l.confirmer == nil {
		l.logger.Warn().Msg("No confirmer available, force declined")
		return false
	}

	ok, err := l.confirmer.Confirm("Remove these files and replace them with links?", items)
	if err != nil {
		l.logger.Error().Err(err).Msg("Confirmation failed, force declined")
		return false
	}
	l.logger.Info().Bool("approved", ok).Int("items", len(items)).Msg("Force confirmation answered")
	return ok
}

func (l *Linker) linkGroup(tree *grouptree.Tree, group string, opts Options, force bool) *GroupResult {
	gr := &GroupResult{Group: group}

	statuses, err := l.reconciler.ClassifyGroup(tree, group)
	if err != nil {
		gr.GroupErr = err
		return gr
	}

	for _, st := range statuses {
		fr := FileResult{Source: st.Source, Target: st.Target}
		switch st.State {
		case reconcile.Linked:
			fr.Action = ActionAlreadyLinked
		case reconcile.Unlinked:
			fr.Action, fr.Err = l.createLink(st.Source, st.Target)
		case reconcile.Conflict:
			fr.Action, fr.Err = l.resolveConflict(st, opts, force)
		}
		l.logResult(group, fr)
		gr.Files = append(gr.Files, fr)
	}
	return gr
}

// createLink links target to source, replacing a foreign or broken symlink.
func (l *Linker) createLink(source, target string) (Action, error) {
	action := ActionLinked

	if err := l.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return ActionFailed, linkError(err, source, target, "failed to create parent directory")
	}

	if info, err := l.fs.Lstat(target); err == nil {
		if !filesystem.IsSymlink(info) {
			return ActionConflict, conflictError(source, target)
		}
		if err := l.fs.Remove(target); err != nil {
			return ActionFailed, linkError(err, source, target, "failed to remove foreign symlink")
		}
		action = ActionRelinked
	}

	if err := l.fs.Symlink(source, target); err != nil {
		return ActionFailed, linkError(err, source, target, "failed to create symlink")
	}
	return action, nil
}

func (l *Linker) resolveConflict(st reconcile.FileStatus, opts Options, force bool) (Action, error) {
	if l.resolvesToSource(st.Source, st.Target) {
		return ActionAlreadyLinked, nil
	}

	if opts.Adopt && l.isRegularFile(st.Target) {
		return l.adopt(st.Source, st.Target)
	}

	if force {
		if err := l.fs.RemoveAll(st.Target); err != nil {
			return ActionFailed, linkError(err, st.Source, st.Target, "failed to remove conflicting target")
		}
		if _, err := l.createLink(st.Source, st.Target); err != nil {
			return ActionFailed, err
		}
		return ActionForced, nil
	}

	return ActionConflict, conflictError(st.Source, st.Target)
}

// resolvesToSource reports whether target and source are the same file once
// every link is resolved. Removing or moving target would destroy source.
func (l *Linker) resolvesToSource(source, target string) bool {
	resolvedTarget, err := l.fs.EvalSymlinks(target)
	if err != nil {
		return false
	}
	resolvedSource, err := l.fs.EvalSymlinks(source)
	if err != nil {
		return false
	}
	return resolvedTarget == resolvedSource
}

// adopt moves the real file at target over source and links it back. The move
// is reverted when the link cannot be created.
func (l *Linker) adopt(source, target string) (Action, error) {
	if err := l.fs.MkdirAll(filepath.Dir(source), 0755); err != nil {
		return ActionFailed, adoptError(err, source, target, "failed to create source directory")
	}

	if err := l.fs.Rename(target, source); err != nil {
		return ActionFailed, adoptError(err, source, target, "failed to move target into the source tree")
	}

	if err := l.fs.Symlink(source, target); err != nil {
		l.logger.Error().
			Err(err).
			Str("source", source).
			Str("target", target).
			Msg("Failed to create symlink, attempting to roll back move")
		if rollbackErr := l.fs.Rename(source, target); rollbackErr != nil {
			l.logger.Error().Err(rollbackErr).Msg("Failed to roll back move operation")
		}
		return ActionFailed, adoptError(err, source, target, "failed to create symlink after adopting")
	}
	return ActionAdopted, nil
}

func (l *Linker) unlinkGroup(tree *grouptree.Tree, group string) *GroupResult {
	gr := &GroupResult{Group: group}

	statuses, err := l.reconciler.ClassifyGroup(tree, group)
	if err != nil {
		gr.GroupErr = err
		return gr
	}

	for _, st := range statuses {
		fr := FileResult{Source: st.Source, Target: st.Target, Action: ActionSkipped}
		if st.State == reconcile.Linked && l.isSymlink(st.Target) {
			if err := l.fs.Remove(st.Target); err != nil {
				fr.Action = ActionFailed
				fr.Err = errors.Wrapf(err, errors.ErrUnlinkIO, "failed to remove %s", st.Target).
					WithDetail("source", st.Source).
					WithDetail("target", st.Target)
			} else {
				fr.Action = ActionUnlinked
			}
		}
		l.logResult(group, fr)
		gr.Files = append(gr.Files, fr)
	}
	return gr
}

// isSymlink guards removals: a linked target that is not itself a symlink is
// reached through a linked parent directory and is the source file.
func (l *Linker) isSymlink(path string) bool {
	info, err := l.fs.Lstat(path)
	return err == nil && filesystem.IsSymlink(info)
}

func (l *Linker) isRegularFile(path string) bool {
	info, err := l.fs.Lstat(path)
	return err == nil && info.Mode().IsRegular()
}

func (l *Linker) logResult(group string, fr FileResult) {
	event := l.logger.Info()
	switch {
	case fr.Err != nil:
		event = l.logger.Warn().Err(fr.Err)
	case fr.Action == ActionAlreadyLinked || fr.Action == ActionSkipped:
		event = l.logger.Debug()
	}
	event.
		Str("group", group).
		Str("source", fr.Source).
		Str("target", fr.Target).
		Str("action", string(fr.Action)).
		Msg("Processed file")
}

func linkError(err error, source, target, msg string) error {
	return errors.Wrap(err, errors.ErrLinkIO, msg).
		WithDetail("source", source).
		WithDetail("target", target)
}

func adoptError(err error, source, target, msg string) error {
	return errors.Wrap(err, errors.ErrAdopt, msg).
		WithDetail("source", source).
		WithDetail("target", target)
}

func conflictError(source, target string) error {
	return errors.Newf(errors.ErrTargetConflict, "%s exists and is not managed by dotlink", target).
		WithDetail("source", source).
		WithDetail("target", target)
}
