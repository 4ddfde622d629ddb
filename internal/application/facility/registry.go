// Package facility turns window content descriptors into live windows
// and drives navigation between the game's facility screens (guild,
// shop, temple, and the rest).
package facility

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/endo5501/mirundal/internal/infrastructure/config"
	"github.com/endo5501/mirundal/internal/infrastructure/i18n"
	"github.com/endo5501/mirundal/internal/ui/windowing"
)

var kinds = map[string]windowing.Kind{
	"menu":   windowing.KindMenu,
	"dialog": windowing.KindDialog,
	"form":   windowing.KindForm,
	"list":   windowing.KindList,
	"battle": windowing.KindBattle,
}

// Registry owns the window descriptors and acts as the message handler
// for every window it opens. Selections navigate through the "opens"
// links of the descriptors; a few item ids (quit, language switches)
// are handled here directly.
type Registry struct {
	mgr     *windowing.Manager
	cfg     *config.WindowsConfig
	catalog *i18n.Catalog
	log     *slog.Logger

	// opens maps "window/item" to the descriptor name the selection
	// navigates to, resolved once at construction.
	opens map[string]string
}

// New creates a facility registry over the given manager and catalog
func New(mgr *windowing.Manager, cfg *config.WindowsConfig, catalog *i18n.Catalog, log *slog.Logger) *Registry {
	r := &Registry{
		mgr:     mgr,
		cfg:     cfg,
		catalog: catalog,
		log:     log,
		opens:   make(map[string]string),
	}
	for name, desc := range cfg.Windows {
		for _, item := range desc.Items {
			if item.Opens != "" {
				r.opens[name+"/"+item.ID] = item.Opens
			}
		}
	}
	return r
}

// OpenRoot opens the root screen named by the configuration.
func (r *Registry) OpenRoot() error {
	return r.Open(r.cfg.Root)
}

// Open creates and shows the named facility screen on top of the
// stack. The window id is the descriptor name, so each screen is open
// at most once.
func (r *Registry) Open(name string) error {
	desc, ok := r.cfg.Windows[name]
	if !ok {
		return fmt.Errorf("no window descriptor named %q", name)
	}
	kind, ok := kinds[desc.Kind]
	if !ok {
		return fmt.Errorf("window %q has unknown kind %q", name, desc.Kind)
	}

	w, err := r.mgr.Create(kind, name, r.buildConfig(&desc))
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", name, err)
	}
	if err := r.mgr.Show(w, true); err != nil {
		return fmt.Errorf("failed to show %q: %w", name, err)
	}
	return nil
}

// buildConfig resolves a descriptor's localization keys against the
// active catalog.
func (r *Registry) buildConfig(desc *config.WindowDesc) *windowing.Config {
	cfg := &windowing.Config{
		Title:    r.catalog.Text(desc.TitleKey),
		Text:     r.catalog.Text(desc.TextKey),
		Modal:    desc.Modal,
		Poolable: desc.Poolable,
		Handler:  r,
	}
	for _, item := range desc.Items {
		cfg.Items = append(cfg.Items, windowing.Item{
			ID:       item.ID,
			Label:    r.catalog.Text(item.LabelKey),
			Disabled: item.Disabled,
			SubKind:  item.SubKind,
		})
	}
	for _, field := range desc.Fields {
		cfg.Fields = append(cfg.Fields, windowing.Field{
			ID:       field.ID,
			Label:    r.catalog.Text(field.LabelKey),
			Required: field.Required,
		})
	}
	return cfg
}

// OnMessage routes window notifications back into navigation.
func (r *Registry) OnMessage(msgType string, data map[string]any) {
	windowID, _ := data["window"].(string)

	switch msgType {
	case windowing.MsgItemSelected, windowing.MsgListPicked:
		itemID, _ := data["item"].(string)
		r.onSelected(windowID, itemID)
	case windowing.MsgDialogResult:
		button, _ := data["button"].(string)
		r.log.Info("dialog closed", "window", windowID, "button", button)
		if button == "quit" {
			// Confirmed quit: closing the last screen ends the session.
			r.closeAll()
			return
		}
		r.close(windowID)
	case windowing.MsgFormSubmitted:
		r.log.Info("form submitted", "window", windowID)
		r.close(windowID)
	case windowing.MsgBattleAction:
		action, _ := data["action"].(string)
		r.log.Info("battle action chosen", "window", windowID, "action", action)
	case windowing.MsgCloseRequest:
		r.close(windowID)
	}
}

func (r *Registry) onSelected(windowID, itemID string) {
	// Language items switch the locale and rebuild the open screens.
	if lang, ok := strings.CutPrefix(itemID, "lang_"); ok && lang != "" {
		r.switchLanguage(lang)
		return
	}
	if itemID == "quit" {
		r.closeAll()
		return
	}
	if next, ok := r.opens[windowID+"/"+itemID]; ok {
		if err := r.Open(next); err != nil {
			r.log.Error("screen transition failed", "from", windowID, "to", next, "error", err)
		}
		return
	}
	r.log.Info("selection has no handler", "window", windowID, "item", itemID)
}

// switchLanguage changes the catalog language, notifies every shown
// window, and rebuilds the open screens so their labels pick up the
// new locale.
func (r *Registry) switchLanguage(lang string) {
	if err := r.catalog.SetLanguage(lang); err != nil {
		r.log.Error("language switch failed", "lang", lang, "error", err)
		return
	}
	r.mgr.Broadcast(windowing.MsgLanguageChanged, map[string]any{"lang": lang})

	var names []string
	for _, w := range r.mgr.VisibleWindows() {
		names = append(names, w.ID())
	}
	for _, name := range names {
		r.close(name)
	}
	for _, name := range names {
		if _, ok := r.cfg.Windows[name]; !ok {
			continue
		}
		if err := r.Open(name); err != nil {
			r.log.Error("screen rebuild failed", "window", name, "error", err)
		}
	}
}

func (r *Registry) close(windowID string) {
	w, ok := r.mgr.Get(windowID)
	if !ok {
		return
	}
	if err := r.mgr.Destroy(w); err != nil {
		r.log.Error("window close failed", "window", windowID, "error", err)
	}
}

func (r *Registry) closeAll() {
	for _, w := range r.mgr.VisibleWindows() {
		if err := r.mgr.Destroy(w); err != nil {
			r.log.Error("window close failed", "window", w.ID(), "error", err)
		}
	}
}
