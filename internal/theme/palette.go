// Package theme downloads base16 colour schemes and stores them as local
// palette files. It runs alongside the document model and never touches it.
package theme

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Palette holds the sixteen base16 colour slots as hex strings.
type Palette struct {
	Base00 string `yaml:"base00"`
	Base01 string `yaml:"base01"`
	Base02 string `yaml:"base02"`
	Base03 string `yaml:"base03"`
	Base04 string `yaml:"base04"`
	Base05 string `yaml:"base05"`
	Base06 string `yaml:"base06"`
	Base07 string `yaml:"base07"`
	Base08 string `yaml:"base08"`
	Base09 string `yaml:"base09"`
	Base0A string `yaml:"base0A"`
	Base0B string `yaml:"base0B"`
	Base0C string `yaml:"base0C"`
	Base0D string `yaml:"base0D"`
	Base0E string `yaml:"base0E"`
	Base0F string `yaml:"base0F"`
}

// Slots returns the palette entries in base00..base0F order.
func (p Palette) Slots() [16]string {
	return [16]string{
		p.Base00, p.Base01, p.Base02, p.Base03, p.Base04, p.Base05, p.Base06, p.Base07,
		p.Base08, p.Base09, p.Base0A, p.Base0B, p.Base0C, p.Base0D, p.Base0E, p.Base0F,
	}
}

// Variant is the brightness of a scheme.
type Variant string

const (
	// VariantDark is a scheme with a dark background.
	VariantDark Variant = "dark"
	// VariantLight is a scheme with a light background.
	VariantLight Variant = "light"
)

// UnmarshalYAML accepts only the known variants.
func (v *Variant) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	switch Variant(s) {
	case VariantDark, VariantLight:
		*v = Variant(s)
		return nil
	}
	return fmt.Errorf("line %d: unknown variant %q", node.Line, s)
}

// Theme is one base16 scheme file.
type Theme struct {
	System  string  `yaml:"system"`
	Name    string  `yaml:"name"`
	Author  string  `yaml:"author"`
	Variant Variant `yaml:"variant"`
	Palette Palette `yaml:"palette"`
}

// ParseTheme decodes a scheme file. Every palette slot must be present.
func ParseTheme(data []byte) (Theme, error) {
	var t Theme
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("parse theme: %w", err)
	}
	for i, slot := range t.Palette.Slots() {
		if slot == "" {
			return Theme{}, fmt.Errorf("parse theme %q: palette slot base0%X is missing", t.Name, i)
		}
	}
	return t, nil
}

// MarshalTheme encodes t in the scheme file format.
func MarshalTheme(t Theme) ([]byte, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("marshal theme %q: %w", t.Name, err)
	}
	return data, nil
}
