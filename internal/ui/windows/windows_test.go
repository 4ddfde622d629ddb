package windows

import (
	"io"
	"log/slog"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/require"

	"github.com/endo5501/mirundal/internal/ui/windowing"
)

// captureHandler records every message a window emits to its owner.
type captureHandler struct {
	types []string
	data  []map[string]any
}

func (h *captureHandler) OnMessage(msgType string, data map[string]any) {
	h.types = append(h.types, msgType)
	h.data = append(h.data, data)
}

func newTestManager() *windowing.Manager {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := windowing.NewManager(windowing.WithLogger(log))
	RegisterAll(m)
	return m
}

func create(t *testing.T, m *windowing.Manager, kind windowing.Kind, cfg *windowing.Config) windowing.Window {
	t.Helper()
	w, err := m.Create(kind, "", cfg)
	require.NoError(t, err)
	return w
}

func keyDown(key ebiten.Key) windowing.Event {
	return windowing.Event{Type: windowing.EventKeyDown, Key: key}
}

func runeEvent(r rune) windowing.Event {
	return windowing.Event{Type: windowing.EventRune, Rune: r}
}

func items(ids ...string) []windowing.Item {
	out := make([]windowing.Item, len(ids))
	for i, id := range ids {
		out[i] = windowing.Item{ID: id, Label: id}
	}
	return out
}
