package reconcile

import (
	"slices"
)

// State is the per-file classification.
type State int

const (
	Unlinked State = iota
	Linked
	Conflict
)

func (s State) String() string {
	switch s {
	case Linked:
		return "linked"
	case Unlinked:
		return "unlinked"
	case Conflict:
		return "unowned-conflict"
	default:
		return "unknown"
	}
}

// MarshalText renders the state name in structured output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// FileStatus is the classification of one source file.
type FileStatus struct {
	Group  string `json:"group" yaml:"group"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	State  State  `json:"state" yaml:"state"`
}

// Report holds the three classification sets of one reconciliation pass.
type Report struct {
	Linked    []FileStatus `json:"linked" yaml:"linked"`
	Unlinked  []FileStatus `json:"unlinked" yaml:"unlinked"`
	Conflicts []FileStatus `json:"conflicts" yaml:"conflicts"`
	// Unsupported lists groups skipped because they target another platform.
	Unsupported []string `json:"unsupported,omitempty" yaml:"unsupported,omitempty"`

	groups map[string]struct{}
}

func newReport() *Report {
	return &Report{groups: make(map[string]struct{})}
}

func (r *Report) add(st FileStatus) {
	switch st.State {
	case Linked:
		r.Linked = append(r.Linked, st)
	case Conflict:
		r.Conflicts = append(r.Conflicts, st)
	default:
		r.Unlinked = append(r.Unlinked, st)
	}
}

func (r *Report) sort() {
	byTarget := func(a, b FileStatus) int {
		if a.Target < b.Target {
			return -1
		}
		if a.Target > b.Target {
			return 1
		}
		return 0
	}
	slices.SortFunc(r.Linked, byTarget)
	slices.SortFunc(r.Unlinked, byTarget)
	slices.SortFunc(r.Conflicts, byTarget)
	slices.Sort(r.Unsupported)
}

// Groups returns every classified group, sorted.
func (r *Report) Groups() []string {
	out := make([]string, 0, len(r.groups))
	for g := range r.groups {
		out = append(out, g)
	}
	slices.Sort(out)
	return out
}

// GroupState is Linked only when every file of the group is linked; a single
// unlinked or conflicting file demotes the whole group to Unlinked.
func (r *Report) GroupState(group string) State {
	for _, st := range r.Unlinked {
		if st.Group == group {
			return Unlinked
		}
	}
	for _, st := range r.Conflicts {
		if st.Group == group {
			return Unlinked
		}
	}
	return Linked
}

// LinkedGroups returns groups whose aggregate state is Linked.
func (r *Report) LinkedGroups() []string {
	return r.groupsIn(Linked)
}

// UnlinkedGroups returns groups whose aggregate state is Unlinked.
func (r *Report) UnlinkedGroups() []string {
	return r.groupsIn(Unlinked)
}

func (r *Report) groupsIn(state State) []string {
	var out []string
	for _, g := range r.Groups() {
		if r.GroupState(g) == state {
			out = append(out, g)
		}
	}
	return out
}

// ConflictsFor returns the conflicting files of group.
func (r *Report) ConflictsFor(group string) []FileStatus {
	var out []FileStatus
	for _, st := range r.Conflicts {
		if st.Group == group {
			out = append(out, st)
		}
	}
	return out
}
