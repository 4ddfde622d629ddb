package windows

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/endo5501/mirundal/internal/ui/windowing"
)

// Dialog is a text panel with a button row, typically shown modal so
// the focus lock shuts out every window below it. Confirming a button
// emits MsgDialogResult; the owner decides whether to close it.
type Dialog struct {
	windowing.Base
	title   string
	text    string
	buttons []windowing.Item
	cursor  int
	x, y    int
	w, h    int
}

// Create builds the dialog from its configuration
func (d *Dialog) Create(cfg *windowing.Config) error {
	if d.Built() {
		return &windowing.CreationError{ID: d.ID(), Kind: d.Kind(), Reason: "window is already built"}
	}
	if cfg.Text == "" {
		return &windowing.CreationError{ID: d.ID(), Kind: d.Kind(), Reason: "dialog requires text"}
	}
	d.title = cfg.Title
	d.text = cfg.Text
	if len(cfg.Items) > 0 {
		d.buttons = append([]windowing.Item(nil), cfg.Items...)
	} else {
		d.buttons = []windowing.Item{{ID: "ok", Label: "OK"}}
	}
	lines := strings.Count(cfg.Text, "\n") + 1
	d.x, d.y, d.w, d.h = rect(cfg, 80, 70, 220, 48+lines*lineHeight)
	d.cursor = 0
	d.MarkBuilt()
	return nil
}

// Reset rebinds pooled instances onto fresh content.
func (d *Dialog) Reset(cfg *windowing.Config) error {
	d.clear()
	return d.Create(cfg)
}

// HandleEvent moves between buttons and confirms.
func (d *Dialog) HandleEvent(ev windowing.Event) bool {
	switch {
	case isKeyDown(ev, ebiten.KeyArrowLeft, ebiten.KeyA):
		if d.cursor > 0 {
			d.cursor--
		}
		return true
	case isKeyDown(ev, ebiten.KeyArrowRight, ebiten.KeyD):
		if d.cursor < len(d.buttons)-1 {
			d.cursor++
		}
		return true
	case isKeyDown(ev, ebiten.KeyEnter, ebiten.KeySpace):
		d.Emit(windowing.MsgDialogResult, map[string]any{
			"window": d.ID(),
			"button": d.buttons[d.cursor].ID,
		})
		return true
	}
	return false
}

// Update is a no-op; the open transition is advanced by the manager.
func (d *Dialog) Update(dt float64) {}

// Draw renders the dialog panel
func (d *Dialog) Draw(screen *ebiten.Image) {
	p := d.Progress()
	drawPanel(screen, d.x, d.y, d.w, d.h, p)
	textY := d.y + 4
	if d.title != "" {
		ebitenutil.DebugPrintAt(screen, d.title, d.x+6, textY)
		textY += lineHeight + 2
	}
	for _, line := range strings.Split(d.text, "\n") {
		ebitenutil.DebugPrintAt(screen, line, d.x+8, textY)
		textY += lineHeight
	}
	btnY := d.y + d.h - lineHeight - 6
	btnX := d.x + 10
	for i, btn := range d.buttons {
		label := "  " + btn.Label + "  "
		if i == d.cursor {
			label = "[ " + btn.Label + " ]"
		}
		ebitenutil.DebugPrintAt(screen, label, btnX, btnY)
		btnX += (len(label) + 2) * 6
	}
}

// Destroy releases the dialog content
func (d *Dialog) Destroy() {
	d.clear()
}

func (d *Dialog) clear() {
	d.title = ""
	d.text = ""
	d.buttons = nil
	d.cursor = 0
}

// Cursor returns the index of the highlighted button.
func (d *Dialog) Cursor() int { return d.cursor }
