package windows

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/endo5501/mirundal/internal/ui/windowing"
)

// List is a scrollable selection list with paging. Confirming an entry
// emits MsgListPicked. Lists are the most frequently recycled screens
// (inventories, rosters, shop stock), so they are poolable.
type List struct {
	windowing.Base
	title    string
	items    []windowing.Item
	cursor   int
	offset   int
	pageSize int
	x, y     int
	w, h     int
}

// Create builds the list from its configuration
func (l *List) Create(cfg *windowing.Config) error {
	if l.Built() {
		return &windowing.CreationError{ID: l.ID(), Kind: l.Kind(), Reason: "window is already built"}
	}
	if len(cfg.Items) == 0 {
		return &windowing.CreationError{ID: l.ID(), Kind: l.Kind(), Reason: "list requires at least one item"}
	}
	l.title = cfg.Title
	l.items = append([]windowing.Item(nil), cfg.Items...)
	l.cursor = 0
	l.offset = 0
	l.x, l.y, l.w, l.h = rect(cfg, 40, 30, 220, 24+8*lineHeight)
	l.pageSize = (l.h - 24) / lineHeight
	if l.pageSize < 1 {
		l.pageSize = 1
	}
	l.MarkBuilt()
	return nil
}

// Reset rebinds pooled instances onto fresh content.
func (l *List) Reset(cfg *windowing.Config) error {
	l.clear()
	return l.Create(cfg)
}

// HandleEvent scrolls the selection and fires the pick.
func (l *List) HandleEvent(ev windowing.Event) bool {
	switch {
	case isKeyDown(ev, ebiten.KeyArrowUp, ebiten.KeyW):
		l.moveCursor(-1)
		return true
	case isKeyDown(ev, ebiten.KeyArrowDown, ebiten.KeyS):
		l.moveCursor(1)
		return true
	case isKeyDown(ev, ebiten.KeyPageUp):
		l.moveCursor(-l.pageSize)
		return true
	case isKeyDown(ev, ebiten.KeyPageDown):
		l.moveCursor(l.pageSize)
		return true
	case isKeyDown(ev, ebiten.KeyHome):
		l.moveCursor(-len(l.items))
		return true
	case isKeyDown(ev, ebiten.KeyEnd):
		l.moveCursor(len(l.items))
		return true
	case isKeyDown(ev, ebiten.KeyEnter, ebiten.KeySpace):
		l.pickCurrent()
		return true
	}
	return false
}

func (l *List) moveCursor(delta int) {
	l.cursor += delta
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.cursor > len(l.items)-1 {
		l.cursor = len(l.items) - 1
	}
	// Keep the cursor inside the visible page.
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.pageSize {
		l.offset = l.cursor - l.pageSize + 1
	}
}

func (l *List) pickCurrent() {
	item := l.items[l.cursor]
	if item.Disabled {
		return
	}
	l.Emit(windowing.MsgListPicked, map[string]any{
		"window": l.ID(),
		"item":   item.ID,
	})
}

// Update is a no-op; the open transition is advanced by the manager.
func (l *List) Update(dt float64) {}

// Draw renders the list panel
func (l *List) Draw(screen *ebiten.Image) {
	p := l.Progress()
	drawPanel(screen, l.x, l.y, l.w, l.h, p)
	if l.title != "" {
		ebitenutil.DebugPrintAt(screen, l.title, l.x+6, l.y+4)
	}
	end := l.offset + l.pageSize
	if end > len(l.items) {
		end = len(l.items)
	}
	for i := l.offset; i < end; i++ {
		rowY := l.y + 20 + (i-l.offset)*lineHeight
		if i == l.cursor {
			drawCursorRow(screen, l.x+2, rowY, l.w-4, p)
		}
		ebitenutil.DebugPrintAt(screen, l.items[i].Label, l.x+10, rowY)
	}
}

// Destroy releases the list content
func (l *List) Destroy() {
	l.clear()
}

func (l *List) clear() {
	l.title = ""
	l.items = nil
	l.cursor = 0
	l.offset = 0
}

// Cursor returns the index of the highlighted entry.
func (l *List) Cursor() int { return l.cursor }

// Offset returns the index of the first visible entry.
func (l *List) Offset() int { return l.offset }
