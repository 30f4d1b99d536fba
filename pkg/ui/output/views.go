package output

import (
	"github.com/arthur-debert/dotlink/pkg/deploy"
	"github.com/arthur-debert/dotlink/pkg/hooks"
	"github.com/arthur-debert/dotlink/pkg/linker"
	"github.com/arthur-debert/dotlink/pkg/reconcile"
)

// StatusView is the structured form of a reconcile report, grouped.
type StatusView struct {
	Groups      []GroupStatusView `json:"groups" yaml:"groups"`
	Unsupported []string          `json:"unsupported,omitempty" yaml:"unsupported,omitempty"`
}

type GroupStatusView struct {
	Group string           `json:"group" yaml:"group"`
	State string           `json:"state" yaml:"state"`
	Files []FileStatusView `json:"files" yaml:"files"`
}

type FileStatusView struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	State  string `json:"state" yaml:"state"`
}

// ResultView is the structured form of a link or unlink result.
type ResultView struct {
	Groups  []GroupResultView `json:"groups" yaml:"groups"`
	Skipped []string          `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

type GroupResultView struct {
	Group string           `json:"group" yaml:"group"`
	Error string           `json:"error,omitempty" yaml:"error,omitempty"`
	Files []FileResultView `json:"files,omitempty" yaml:"files,omitempty"`
}

type FileResultView struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Action string `json:"action" yaml:"action"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// DeployView is the structured form of a deploy report.
type DeployView struct {
	Groups []DeployGroupView `json:"groups" yaml:"groups"`
}

type DeployGroupView struct {
	Group     string           `json:"group" yaml:"group"`
	Reached   string           `json:"reached" yaml:"reached"`
	PreHooks  []HookView       `json:"pre_hooks,omitempty" yaml:"pre_hooks,omitempty"`
	Link      *GroupResultView `json:"link,omitempty" yaml:"link,omitempty"`
	PostHooks []HookView       `json:"post_hooks,omitempty" yaml:"post_hooks,omitempty"`
	Notes     []string         `json:"notes,omitempty" yaml:"notes,omitempty"`
	Error     string           `json:"error,omitempty" yaml:"error,omitempty"`
}

type HookView struct {
	Script   string `json:"script" yaml:"script"`
	ExitCode int    `json:"exit_code" yaml:"exit_code"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewStatusView groups the classification sets of report by group.
func NewStatusView(report *reconcile.Report) StatusView {
	byGroup := make(map[string][]FileStatusView)
	for _, set := range [][]reconcile.FileStatus{report.Linked, report.Unlinked, report.Conflicts} {
		for _, st := range set {
			byGroup[st.Group] = append(byGroup[st.Group], FileStatusView{
				Source: st.Source,
				Target: st.Target,
				State:  st.State.String(),
			})
		}
	}

	view := StatusView{Unsupported: report.Unsupported}
	for _, group := range report.Groups() {
		view.Groups = append(view.Groups, GroupStatusView{
			Group: group,
			State: report.GroupState(group).String(),
			Files: byGroup[group],
		})
	}
	return view
}

// NewResultView flattens errors of a link or unlink result to strings.
func NewResultView(result *linker.Result) ResultView {
	view := ResultView{Skipped: result.Skipped}
	for _, g := range result.Groups {
		view.Groups = append(view.Groups, newGroupResultView(g))
	}
	return view
}

func newGroupResultView(g *linker.GroupResult) GroupResultView {
	view := GroupResultView{Group: g.Group, Error: errString(g.GroupErr)}
	for _, f := range g.Files {
		view.Files = append(view.Files, FileResultView{
			Source: f.Source,
			Target: f.Target,
			Action: string(f.Action),
			Error:  errString(f.Err),
		})
	}
	return view
}

// NewDeployView converts a deploy report.
func NewDeployView(report *deploy.Report) DeployView {
	var view DeployView
	for _, g := range report.Groups {
		gv := DeployGroupView{
			Group:     g.Group,
			Reached:   g.Reached.String(),
			PreHooks:  hookViews(g.PreHook),
			PostHooks: hookViews(g.PostHook),
			Notes:     g.Notes,
			Error:     errString(g.GroupErr),
		}
		if g.Link != nil {
			link := newGroupResultView(g.Link)
			gv.Link = &link
		}
		view.Groups = append(view.Groups, gv)
	}
	return view
}

func hookViews(results []hooks.Result) []HookView {
	var out []HookView
	for _, r := range results {
		out = append(out, HookView{Script: r.Script, ExitCode: r.ExitCode, Error: errString(r.Err)})
	}
	return out
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// toView converts the known result types; anything else passes through.
func toView(result interface{}) interface{} {
	switch v := result.(type) {
	case *reconcile.Report:
		return NewStatusView(v)
	case *linker.Result:
		return NewResultView(v)
	case *deploy.Report:
		return NewDeployView(v)
	default:
		return result
	}
}
