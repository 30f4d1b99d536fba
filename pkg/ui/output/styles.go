package output

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var embeddedStyles []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
}

// StyleConfig is the parsed styles.yaml.
type StyleConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Styles maps semantic names to lipgloss styles bound to one renderer.
type Styles map[string]lipgloss.Style

// ParseStyles decodes a style configuration.
func ParseStyles(data []byte) (*StyleConfig, error) {
	var cfg StyleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse styles data: %w", err)
	}
	return &cfg, nil
}

// Build binds every style to r. Unknown color names leave the foreground unset.
func (c *StyleConfig) Build(r *lipgloss.Renderer) Styles {
	styles := make(Styles, len(c.Styles))
	for name, def := range c.Styles {
		style := r.NewStyle()
		if def.Bold {
			style = style.Bold(true)
		}
		if def.Italic {
			style = style.Italic(true)
		}
		if color, ok := c.Colors[def.Foreground]; ok {
			style = style.Foreground(lipgloss.AdaptiveColor{Light: color.Light, Dark: color.Dark})
		}
		styles[name] = style
	}
	return styles
}

// Render applies the named style, or returns s unchanged for unknown names.
func (s Styles) Render(name, text string) string {
	if style, ok := s[name]; ok {
		return style.Render(text)
	}
	return text
}
