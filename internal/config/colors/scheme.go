package colors

// ColorScheme defines the colors used by human-readable CLI output
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset" mapstructure:"preset"`

	// Primary accent color (used for titles and field labels)
	Accent string `yaml:"accent" mapstructure:"accent"`

	// Text colors
	Title  string `yaml:"title" mapstructure:"title"`
	Subtle string `yaml:"subtle" mapstructure:"subtle"` // Muted text such as order indexes
	Normal string `yaml:"normal" mapstructure:"normal"`

	// Outcome colors
	Success string `yaml:"success" mapstructure:"success"`
	Error   string `yaml:"error" mapstructure:"error"`
}

const (
	PresetDefault    = "default"
	PresetMonochrome = "monochrome"
)

var presets = map[string]ColorScheme{
	PresetDefault: {
		Preset:  PresetDefault,
		Accent:  "#874BFD",
		Title:   "#D75FD7",
		Subtle:  "#585858",
		Normal:  "#D0D0D0",
		Success: "#5FD75F",
		Error:   "#FF0000",
	},
	PresetMonochrome: {
		Preset:  PresetMonochrome,
		Accent:  "#FFFFFF",
		Title:   "#FFFFFF",
		Subtle:  "#808080",
		Normal:  "#D0D0D0",
		Success: "#FFFFFF",
		Error:   "#FFFFFF",
	},
}

// Preset returns a copy of the named scheme; unknown names get the default.
func Preset(name string) ColorScheme {
	if scheme, ok := presets[name]; ok {
		return scheme
	}
	return presets[PresetDefault]
}

// ApplyDefaults fills empty colors from the scheme's preset
func (c *ColorScheme) ApplyDefaults() {
	base := Preset(c.Preset)
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&c.Preset, base.Preset},
		{&c.Accent, base.Accent},
		{&c.Title, base.Title},
		{&c.Subtle, base.Subtle},
		{&c.Normal, base.Normal},
		{&c.Success, base.Success},
		{&c.Error, base.Error},
	} {
		if *f.dst == "" {
			*f.dst = f.src
		}
	}
}
