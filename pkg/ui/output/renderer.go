package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// Renderer writes command results in one format.
type Renderer interface {
	RenderResult(result interface{}) error
	RenderError(err error) error
	RenderMessage(msg string) error
}

// New returns the renderer for format ("text", "json" or "yaml"). color is
// one of "auto", "always" or "never" and only affects text.
func New(w io.Writer, format, color string) (Renderer, error) {
	switch format {
	case config.FormatText, "":
		return newTextRenderer(w, ColorProfile(w, color))
	case config.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return &jsonRenderer{encoder: encoder}, nil
	case config.FormatYAML:
		return &yamlRenderer{output: w}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// ColorProfile picks the termenv profile for w. Auto disables color when
// NO_COLOR is set or w is not a terminal.
func ColorProfile(w io.Writer, color string) termenv.Profile {
	switch color {
	case config.ColorNever:
		return termenv.Ascii
	case config.ColorAlways:
		return termenv.ANSI256
	}

	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	f, ok := w.(*os.File)
	if !ok || (!isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())) {
		return termenv.Ascii
	}
	return termenv.NewOutput(f).EnvColorProfile()
}

type jsonRenderer struct {
	encoder *json.Encoder
}

func (r *jsonRenderer) RenderResult(result interface{}) error {
	return r.encoder.Encode(toView(result))
}

func (r *jsonRenderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]string{"error": err.Error()})
}

func (r *jsonRenderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}

type yamlRenderer struct {
	output io.Writer
}

func (r *yamlRenderer) encode(v interface{}) error {
	encoder := yaml.NewEncoder(r.output)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

func (r *yamlRenderer) RenderResult(result interface{}) error {
	return r.encode(toView(result))
}

func (r *yamlRenderer) RenderError(err error) error {
	return r.encode(map[string]string{"error": err.Error()})
}

func (r *yamlRenderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": msg})
}

// textRenderer needs a lipgloss renderer bound to w so the color profile
// follows the destination rather than the process stdout.
func newTextRenderer(w io.Writer, profile termenv.Profile) (*textRenderer, error) {
	cfg, err := ParseStyles(embeddedStyles)
	if err != nil {
		return nil, err
	}
	lr := lipgloss.NewRenderer(w)
	lr.SetColorProfile(profile)
	return &textRenderer{output: w, styles: cfg.Build(lr)}, nil
}
