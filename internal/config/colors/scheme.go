// Package colors holds the board color presets and their overrides.
package colors

import (
	"fmt"
	"regexp"
	"slices"
)

// ColorScheme defines all configurable board colors
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset"`

	// Primary accent color (stage headers)
	Accent string `yaml:"accent"`

	// Text colors
	Title  string `yaml:"title"`  // header text drawn on the accent
	Normal string `yaml:"normal"` // card text
	Subtle string `yaml:"subtle"` // placeholders and empty columns

	ColumnBorder string `yaml:"column_border"`

	// Cards whose stored index disagrees with their position
	Warning string `yaml:"warning"`
	Error   string `yaml:"error"`
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Presets lists the built-in scheme names
func Presets() []string {
	return []string{"default", "monochrome", "wave", "dragon", "lotus"}
}

// GetPreset returns a preset color scheme by name; unknown names get the default
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	case "wave":
		return Wave()
	case "dragon":
		return Dragon()
	case "lotus":
		return Lotus()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values from the preset.
// Values set explicitly win over the preset.
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)
	if c.Preset == "" {
		c.Preset = preset.Preset
	}

	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&c.Accent, preset.Accent)
	fill(&c.Title, preset.Title)
	fill(&c.Normal, preset.Normal)
	fill(&c.Subtle, preset.Subtle)
	fill(&c.ColumnBorder, preset.ColumnBorder)
	fill(&c.Warning, preset.Warning)
	fill(&c.Error, preset.Error)
}

// Validate checks the preset name and that every color is #RRGGBB
func (c *ColorScheme) Validate() error {
	if c.Preset != "" && !slices.Contains(Presets(), c.Preset) {
		return fmt.Errorf("unknown color preset %q", c.Preset)
	}

	for name, v := range map[string]string{
		"accent":        c.Accent,
		"title":         c.Title,
		"normal":        c.Normal,
		"subtle":        c.Subtle,
		"column_border": c.ColumnBorder,
		"warning":       c.Warning,
		"error":         c.Error,
	} {
		if v != "" && !hexColor.MatchString(v) {
			return fmt.Errorf("colors.%s: %q is not a #RRGGBB color", name, v)
		}
	}
	return nil
}
