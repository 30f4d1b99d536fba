package linker

import (
	stderrors "errors"
)

// Wildcard selects every group currently in the opposite state.
const Wildcard = "*"

// Options controls a link or unlink call.
type Options struct {
	// Force removes conflicting targets after confirmation.
	Force bool
	// Adopt moves conflicting regular files into the source tree.
	Adopt bool
	// Exclude removes groups from wildcard and platform-variant expansion.
	Exclude []string
}

// Action is what happened to a single file.
type Action string

const (
	ActionLinked        Action = "linked"
	ActionRelinked      Action = "relinked"
	ActionAlreadyLinked Action = "already-linked"
	ActionAdopted       Action = "adopted"
	ActionForced        Action = "forced"
	ActionConflict      Action = "conflict"
	ActionUnlinked      Action = "unlinked"
	ActionSkipped       Action = "skipped"
	ActionFailed        Action = "failed"
)

// FileResult is the outcome for one source file.
type FileResult struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Action Action `json:"action" yaml:"action"`
	Err    error  `json:"-" yaml:"-"`
}

// GroupResult collects the file outcomes of one group.
type GroupResult struct {
	Group string       `json:"group" yaml:"group"`
	Files []FileResult `json:"files" yaml:"files"`

	// GroupErr is a group-level failure such as an unknown group.
	GroupErr error `json:"-" yaml:"-"`
}

// Failed returns the files that ended in a conflict or an error.
func (g *GroupResult) Failed() []FileResult {
	var out []FileResult
	for _, f := range g.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}

// Err joins the group-level error with every file error, nil if none.
func (g *GroupResult) Err() error {
	errs := []error{g.GroupErr}
	for _, f := range g.Files {
		errs = append(errs, f.Err)
	}
	return stderrors.Join(errs...)
}

// Result is the outcome of one Link or Unlink call.
type Result struct {
	Groups []*GroupResult `json:"groups" yaml:"groups"`
	// Skipped lists requested groups that target another platform.
	Skipped []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Group returns the result for name, or nil.
func (r *Result) Group(name string) *GroupResult {
	for _, g := range r.Groups {
		if g.Group == name {
			return g
		}
	}
	return nil
}

// Err joins the errors of every group, nil if all succeeded.
func (r *Result) Err() error {
	errs := make([]error, 0, len(r.Groups))
	for _, g := range r.Groups {
		errs = append(errs, g.Err())
	}
	return stderrors.Join(errs...)
}
