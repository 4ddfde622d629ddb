// Package i18n loads YAML message catalogs and resolves localization
// keys for the active language.
package i18n

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog holds the message tables for every loaded language.
type Catalog struct {
	messages map[string]map[string]string
	lang     string
	fallback string
}

// Load reads every *.yaml file in dir of fsys as one language table;
// the file stem is the language code (en.yaml -> "en").
func Load(fsys fs.FS, dir, defaultLang string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale dir %s: %w", dir, err)
	}

	c := &Catalog{messages: make(map[string]map[string]string)}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		data, err := fs.ReadFile(fsys, dir+"/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", name, err)
		}
		var table map[string]string
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", name, err)
		}
		c.messages[strings.TrimSuffix(name, ".yaml")] = table
	}

	if len(c.messages) == 0 {
		return nil, fmt.Errorf("no locale files in %s", dir)
	}
	if _, ok := c.messages[defaultLang]; !ok {
		return nil, fmt.Errorf("default language %q has no locale file", defaultLang)
	}
	c.lang = defaultLang
	c.fallback = defaultLang
	return c, nil
}

// Language returns the active language code.
func (c *Catalog) Language() string { return c.lang }

// Languages returns the loaded language codes, sorted.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.messages))
	for lang := range c.messages {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// SetLanguage switches the active language.
func (c *Catalog) SetLanguage(lang string) error {
	if _, ok := c.messages[lang]; !ok {
		return fmt.Errorf("language %q is not loaded", lang)
	}
	c.lang = lang
	return nil
}

// Text resolves key in the active language, then the fallback
// language; an unresolved key is returned as-is so a missing entry is
// visible instead of blank.
func (c *Catalog) Text(key string) string {
	if key == "" {
		return ""
	}
	if msg, ok := c.messages[c.lang][key]; ok {
		return msg
	}
	if msg, ok := c.messages[c.fallback][key]; ok {
		return msg
	}
	return key
}
