package windows

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/endo5501/mirundal/internal/ui/windowing"
)

// Menu is a titled list of selectable items. Selecting an item emits
// MsgItemSelected to the owner; the menu itself decides nothing about
// what the selection means.
type Menu struct {
	windowing.Base
	title  string
	items  []windowing.Item
	cursor int
	x, y   int
	w, h   int
}

// Create builds the menu from its configuration
func (m *Menu) Create(cfg *windowing.Config) error {
	if m.Built() {
		return &windowing.CreationError{ID: m.ID(), Kind: m.Kind(), Reason: "window is already built"}
	}
	if len(cfg.Items) == 0 {
		return &windowing.CreationError{ID: m.ID(), Kind: m.Kind(), Reason: "menu requires at least one item"}
	}
	m.title = cfg.Title
	m.items = append([]windowing.Item(nil), cfg.Items...)
	m.cursor = firstEnabled(m.items)
	m.x, m.y, m.w, m.h = rect(cfg, 48, 48, 200, 24+len(cfg.Items)*lineHeight)
	m.MarkBuilt()
	return nil
}

// Reset rebinds pooled instances onto fresh content.
func (m *Menu) Reset(cfg *windowing.Config) error {
	m.clear()
	return m.Create(cfg)
}

// HandleEvent moves the cursor and fires selection.
func (m *Menu) HandleEvent(ev windowing.Event) bool {
	switch {
	case isKeyDown(ev, ebiten.KeyArrowUp, ebiten.KeyW):
		m.moveCursor(-1)
		return true
	case isKeyDown(ev, ebiten.KeyArrowDown, ebiten.KeyS):
		m.moveCursor(1)
		return true
	case isKeyDown(ev, ebiten.KeyEnter, ebiten.KeySpace):
		m.selectCurrent()
		return true
	}
	return false
}

func (m *Menu) moveCursor(dir int) {
	if len(m.items) == 0 {
		return
	}
	next := m.cursor
	for i := 0; i < len(m.items); i++ {
		next = (next + dir + len(m.items)) % len(m.items)
		if !m.items[next].Disabled {
			m.cursor = next
			return
		}
	}
}

func (m *Menu) selectCurrent() {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return
	}
	item := m.items[m.cursor]
	if item.Disabled {
		return
	}
	m.Emit(windowing.MsgItemSelected, map[string]any{
		"window":   m.ID(),
		"item":     item.ID,
		"sub_kind": item.SubKind,
	})
}

// Update is a no-op; the open transition is advanced by the manager.
func (m *Menu) Update(dt float64) {}

// Draw renders the menu panel
func (m *Menu) Draw(screen *ebiten.Image) {
	p := m.Progress()
	drawPanel(screen, m.x, m.y, m.w, m.h, p)
	if m.title != "" {
		ebitenutil.DebugPrintAt(screen, m.title, m.x+6, m.y+4)
	}
	for i, item := range m.items {
		rowY := m.y + 20 + i*lineHeight
		if i == m.cursor {
			drawCursorRow(screen, m.x+2, rowY, m.w-4, p)
		}
		label := item.Label
		if item.Disabled {
			label = fmt.Sprintf("- %s", label)
		}
		ebitenutil.DebugPrintAt(screen, label, m.x+10, rowY)
	}
}

// Destroy releases the menu content
func (m *Menu) Destroy() {
	m.clear()
}

func (m *Menu) clear() {
	m.title = ""
	m.items = nil
	m.cursor = 0
}

// Cursor returns the index of the currently highlighted item.
func (m *Menu) Cursor() int { return m.cursor }

func firstEnabled(items []windowing.Item) int {
	for i, item := range items {
		if !item.Disabled {
			return i
		}
	}
	return 0
}
