package config

// GameConfig holds all loaded configurations
type GameConfig struct {
	Display DisplayConfig `yaml:"display"`
	UI      UIConfig      `yaml:"ui"`
}

// DisplayConfig holds screen and frame settings
type DisplayConfig struct {
	ScreenWidth  int `yaml:"screen_width"`
	ScreenHeight int `yaml:"screen_height"`
	Scale        int `yaml:"scale"`
	Framerate    int `yaml:"framerate"`
}

// UIConfig holds window-system settings
type UIConfig struct {
	PoolCapacity    int    `yaml:"pool_capacity"`
	DefaultLanguage string `yaml:"default_language"`
}

// WindowsConfig holds the window content descriptors keyed by window
// name, plus the name of the root screen opened at startup.
type WindowsConfig struct {
	Root    string                `yaml:"root"`
	Windows map[string]WindowDesc `yaml:"windows"`
}

// WindowDesc describes one facility screen. Label and text fields hold
// localization keys resolved against the active catalog when the
// window is built.
type WindowDesc struct {
	Kind     string      `yaml:"kind"`
	TitleKey string      `yaml:"title_key"`
	TextKey  string      `yaml:"text_key"`
	Modal    bool        `yaml:"modal"`
	Poolable bool        `yaml:"poolable"`
	Items    []ItemDesc  `yaml:"items"`
	Fields   []FieldDesc `yaml:"fields"`
}

// ItemDesc describes one interactive entry of a menu, list, or battle
// action row.
type ItemDesc struct {
	ID       string `yaml:"id"`
	LabelKey string `yaml:"label_key"`
	Disabled bool   `yaml:"disabled"`
	SubKind  string `yaml:"sub_kind"`

	// Opens names the window descriptor this entry navigates to when
	// selected, empty for entries the owner handles itself.
	Opens string `yaml:"opens"`
}

// FieldDesc describes one input field of a form window.
type FieldDesc struct {
	ID       string `yaml:"id"`
	LabelKey string `yaml:"label_key"`
	Required bool   `yaml:"required"`
}
