// Package config loads game and window configuration from YAML files.
package config

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader loads game configuration from YAML files using fs.FS interface
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{fsys: os.DirFS(basePath)}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadGame loads game.yaml
func (l *Loader) LoadGame() (*GameConfig, error) {
	data, err := fs.ReadFile(l.fsys, "game.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read game.yaml: %w", err)
	}

	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game.yaml: %w", err)
	}

	return &cfg, nil
}

// LoadWindows loads windows.yaml
func (l *Loader) LoadWindows() (*WindowsConfig, error) {
	data, err := fs.ReadFile(l.fsys, "windows.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read windows.yaml: %w", err)
	}

	var cfg WindowsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse windows.yaml: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid windows.yaml: %w", err)
	}

	return &cfg, nil
}

// validate checks cross-references between descriptors so broken
// navigation fails at load time instead of on first click.
func (c *WindowsConfig) validate() error {
	if c.Root == "" {
		return fmt.Errorf("root window is not set")
	}
	if _, ok := c.Windows[c.Root]; !ok {
		return fmt.Errorf("root window %q has no descriptor", c.Root)
	}
	for name, desc := range c.Windows {
		switch desc.Kind {
		case "menu", "dialog", "form", "list", "battle":
		default:
			return fmt.Errorf("window %q has unknown kind %q", name, desc.Kind)
		}
		for _, item := range desc.Items {
			if item.Opens == "" {
				continue
			}
			if _, ok := c.Windows[item.Opens]; !ok {
				return fmt.Errorf("window %q item %q opens unknown window %q", name, item.ID, item.Opens)
			}
		}
	}
	return nil
}
