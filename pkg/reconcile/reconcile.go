package reconcile

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"syscall"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/grouptree"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog"
)

// Reconciler compares the Configs category of a source tree with the deployed files.
type Reconciler struct {
	fs     filesystem.FS
	layout *paths.Layout
	logger zerolog.Logger
}

// New creates a Reconciler.
func New(fs filesystem.FS, layout *paths.Layout) *Reconciler {
	return &Reconciler{
		fs:     fs,
		layout: layout,
		logger: logging.GetLogger("reconcile"),
	}
}

// Layout returns the layout the reconciler was built with.
func (r *Reconciler) Layout() *paths.Layout {
	return r.layout
}

// Tree builds the group tree of the Configs category.
func (r *Reconciler) Tree() (*grouptree.Tree, error) {
	return grouptree.Build(r.fs, r.layout, paths.Configs)
}

// Reconcile classifies every file of every platform-applicable group.
func (r *Reconciler) Reconcile() (*Report, error) {
	tree, err := r.Tree()
	if err != nil {
		return nil, err
	}
	return r.ReconcileTree(tree), nil
}

// ReconcileTree classifies the files of an already built tree.
func (r *Reconciler) ReconcileTree(tree *grouptree.Tree) *Report {
	done := logging.LogOperationStart(r.logger, "reconcile")
	defer done()

	report := newReport()
	for _, group := range tree.Groups() {
		if !r.layout.IsPlatformApplicable(group) {
			report.Unsupported = append(report.Unsupported, group)
			continue
		}
		report.groups[group] = struct{}{}
		statuses, _ := r.classifyGroup(tree, group)
		for _, st := range statuses {
			report.add(st)
		}
	}
	report.sort()

	r.logger.Debug().
		Int("linked", len(report.Linked)).
		Int("unlinked", len(report.Unlinked)).
		Int("conflicts", len(report.Conflicts)).
		Msg("Reconciliation finished")
	return report
}

// ClassifyGroup classifies the files of one group. It fails with
// ErrGroupNotFound when the group has no Configs directory.
func (r *Reconciler) ClassifyGroup(tree *grouptree.Tree, group string) ([]FileStatus, error) {
	return r.classifyGroup(tree, group)
}

func (r *Reconciler) classifyGroup(tree *grouptree.Tree, group string) ([]FileStatus, error) {
	files, ok := grouptree.Files(r.fs, tree, group)
	if !ok {
		return nil, GroupNotFound(group, tree.Groups())
	}

	statuses := make([]FileStatus, 0, len(files))
	for _, file := range files {
		unit, err := r.layout.Classify(file)
		if err != nil {
			r.logger.Warn().Err(err).Str("path", file).Msg("Skipping path outside the source tree")
			continue
		}
		target := r.layout.ToTargetPath(unit)
		state, err := r.ClassifyTarget(unit, target)
		if err != nil {
			r.logger.Warn().Err(err).Str("target", target).Msg("Cannot inspect target, treating as unlinked")
		}
		r.logger.Trace().
			Str("group", group).
			Str("source", file).
			Str("target", target).
			Stringer("state", state).
			Msg("Classified file")
		statuses = append(statuses, FileStatus{
			Group:  group,
			Source: file,
			Target: target,
			State:  state,
		})
	}
	return statuses, nil
}

// ClassifyTarget inspects target, the deployment location of unit.
func (r *Reconciler) ClassifyTarget(unit paths.SourceUnit, target string) (State, error) {
	info, err := r.fs.Lstat(target)
	if err != nil {
		if isAbsent(err) {
			return Unlinked, nil
		}
		return Unlinked, err
	}

	if filesystem.IsSymlink(info) {
		if r.Owns(unit, target) {
			return Linked, nil
		}
		return Unlinked, nil
	}

	// A real file reached through a linked parent directory is the source
	// file itself.
	if r.Owns(unit, target) {
		return Linked, nil
	}
	return Conflict, nil
}

// Owns reports whether target resolves inside the group directory of unit.
// Broken links are never owned.
func (r *Reconciler) Owns(unit paths.SourceUnit, target string) bool {
	resolved, err := r.fs.EvalSymlinks(target)
	if err != nil {
		return false
	}
	groupDir, err := r.fs.EvalSymlinks(unit.GroupPath)
	if err != nil {
		groupDir = unit.GroupPath
	}
	return paths.IsWithin(groupDir, resolved)
}

// isAbsent treats a missing target and a target whose parent is a regular
// file alike: nothing is deployed there.
func isAbsent(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist) || stderrors.Is(err, syscall.ENOTDIR)
}

// GroupNotFound builds the error for an unknown group, suggesting close names.
func GroupNotFound(group string, known []string) *errors.Error {
	suggestions := Suggest(group, known)
	msg := fmt.Sprintf("group %q not found", group)
	if len(suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
	}
	return errors.New(errors.ErrGroupNotFound, msg).
		WithDetail("group", group).
		WithDetail("suggestions", suggestions)
}

// Suggest returns known group names close to group: fuzzy subsequence matches
// first, then names within a small edit distance.
func Suggest(group string, known []string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if name != group && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(group, known)
	sort.Sort(ranks)
	for _, rank := range ranks {
		add(rank.Target)
	}
	for _, name := range known {
		if fuzzy.LevenshteinDistance(strings.ToLower(group), strings.ToLower(name)) <= 2 {
			add(name)
		}
	}
	return out
}
