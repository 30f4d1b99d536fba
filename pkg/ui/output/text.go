package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/linker"
)

type textRenderer struct {
	output io.Writer
	styles Styles
}

var stateStyle = map[string]string{
	"linked":           "Success",
	"unlinked":         "Muted",
	"unowned-conflict": "Warning",
}

var actionStyle = map[string]string{
	string(linker.ActionLinked):        "Success",
	string(linker.ActionRelinked):      "Success",
	string(linker.ActionAdopted):       "Success",
	string(linker.ActionForced):        "Warning",
	string(linker.ActionUnlinked):      "Success",
	string(linker.ActionAlreadyLinked): "Muted",
	string(linker.ActionSkipped):       "Muted",
	string(linker.ActionConflict):      "Warning",
	string(linker.ActionFailed):        "Error",
}

func (r *textRenderer) RenderResult(result interface{}) error {
	var b strings.Builder
	switch v := toView(result).(type) {
	case StatusView:
		r.writeStatus(&b, v)
	case ResultView:
		r.writeResult(&b, v)
	case DeployView:
		r.writeDeploy(&b, v)
	default:
		fmt.Fprintf(&b, "%+v\n", v)
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *textRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "%s %v\n", r.styles.Render("Error", "Error:"), err)
	return werr
}

func (r *textRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *textRenderer) writeStatus(b *strings.Builder, v StatusView) {
	if len(v.Groups) == 0 {
		b.WriteString(r.styles.Render("Muted", "No groups found") + "\n")
	}
	for _, g := range v.Groups {
		fmt.Fprintf(b, "%s %s\n", r.styles.Render("Group", g.Group), r.styles.Render(stateStyle[g.State], "["+g.State+"]"))
		for _, f := range g.Files {
			fmt.Fprintf(b, "  %-16s %s\n", r.styles.Render(stateStyle[f.State], f.State), r.styles.Render("FilePath", f.Target))
		}
	}
	if len(v.Unsupported) > 0 {
		fmt.Fprintf(b, "%s %s\n", r.styles.Render("Muted", "other platforms:"), strings.Join(v.Unsupported, ", "))
	}
}

func (r *textRenderer) writeResult(b *strings.Builder, v ResultView) {
	for _, g := range v.Groups {
		r.writeGroupResult(b, g, "")
	}
	if len(v.Skipped) > 0 {
		fmt.Fprintf(b, "%s %s\n", r.styles.Render("Muted", "skipped for this platform:"), strings.Join(v.Skipped, ", "))
	}
}

func (r *textRenderer) writeGroupResult(b *strings.Builder, g GroupResultView, indent string) {
	fmt.Fprintf(b, "%s%s\n", indent, r.styles.Render("Group", g.Group))
	if g.Error != "" {
		fmt.Fprintf(b, "%s  %s\n", indent, r.styles.Render("Error", g.Error))
	}
	for _, f := range g.Files {
		fmt.Fprintf(b, "%s  %-16s %s\n", indent, r.styles.Render(actionStyle[f.Action], f.Action), r.styles.Render("FilePath", f.Target))
		if f.Error != "" {
			fmt.Fprintf(b, "%s    %s\n", indent, r.styles.Render("Error", f.Error))
		}
	}
}

func (r *textRenderer) writeDeploy(b *strings.Builder, v DeployView) {
	for _, g := range v.Groups {
		fmt.Fprintf(b, "%s %s\n", r.styles.Render("Header", g.Group), r.styles.Render("Muted", "("+g.Reached+")"))
		if g.Error != "" {
			fmt.Fprintf(b, "  %s\n", r.styles.Render("Error", g.Error))
		}
		r.writeHooks(b, "pre", g.PreHooks)
		if g.Link != nil {
			r.writeGroupResult(b, *g.Link, "  ")
		}
		r.writeHooks(b, "post", g.PostHooks)
		for _, note := range g.Notes {
			fmt.Fprintf(b, "  %s\n", r.styles.Render("Muted", note))
		}
	}
}

func (r *textRenderer) writeHooks(b *strings.Builder, phase string, hooks []HookView) {
	for _, h := range hooks {
		if h.Error != "" {
			fmt.Fprintf(b, "  %s %s %s\n", phase, r.styles.Render("Error", "failed"), h.Script)
			fmt.Fprintf(b, "    %s\n", r.styles.Render("Error", h.Error))
			continue
		}
		fmt.Fprintf(b, "  %s %s %s\n", phase, r.styles.Render("Success", "ok"), h.Script)
	}
}
