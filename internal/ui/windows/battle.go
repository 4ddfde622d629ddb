package windows

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/endo5501/mirundal/internal/ui/windowing"
)

// battleLogCap bounds the visible battle message log.
const battleLogCap = 8

// Battle is the combat panel: an action row plus a message log fed by
// "battle_log" broadcasts from the combat resolver.
type Battle struct {
	windowing.Base
	title   string
	actions []windowing.Item
	cursor  int
	log     []string
	x, y    int
	w, h    int
}

// Create builds the battle panel from its configuration
func (b *Battle) Create(cfg *windowing.Config) error {
	if b.Built() {
		return &windowing.CreationError{ID: b.ID(), Kind: b.Kind(), Reason: "window is already built"}
	}
	if len(cfg.Items) == 0 {
		return &windowing.CreationError{ID: b.ID(), Kind: b.Kind(), Reason: "battle panel requires at least one action"}
	}
	b.title = cfg.Title
	b.actions = append([]windowing.Item(nil), cfg.Items...)
	b.cursor = 0
	b.x, b.y, b.w, b.h = rect(cfg, 10, 120, 300, 40+battleLogCap*lineHeight)
	b.MarkBuilt()
	return nil
}

// HandleEvent moves between actions and confirms one.
func (b *Battle) HandleEvent(ev windowing.Event) bool {
	switch {
	case isKeyDown(ev, ebiten.KeyArrowLeft, ebiten.KeyA):
		if b.cursor > 0 {
			b.cursor--
		}
		return true
	case isKeyDown(ev, ebiten.KeyArrowRight, ebiten.KeyD):
		if b.cursor < len(b.actions)-1 {
			b.cursor++
		}
		return true
	case isKeyDown(ev, ebiten.KeyEnter, ebiten.KeySpace):
		action := b.actions[b.cursor]
		if action.Disabled {
			return true
		}
		b.Emit(windowing.MsgBattleAction, map[string]any{
			"window": b.ID(),
			"action": action.ID,
		})
		return true
	}
	return false
}

// OnMessage appends broadcast battle log lines.
func (b *Battle) OnMessage(msgType string, data map[string]any) {
	if msgType != "battle_log" {
		return
	}
	line, ok := data["line"].(string)
	if !ok {
		return
	}
	b.log = append(b.log, line)
	if len(b.log) > battleLogCap {
		b.log = b.log[len(b.log)-battleLogCap:]
	}
}

// Update is a no-op; the open transition is advanced by the manager.
func (b *Battle) Update(dt float64) {}

// Draw renders the battle panel
func (b *Battle) Draw(screen *ebiten.Image) {
	p := b.Progress()
	drawPanel(screen, b.x, b.y, b.w, b.h, p)
	if b.title != "" {
		ebitenutil.DebugPrintAt(screen, b.title, b.x+6, b.y+4)
	}
	for i, line := range b.log {
		ebitenutil.DebugPrintAt(screen, line, b.x+8, b.y+20+i*lineHeight)
	}
	btnX := b.x + 8
	btnY := b.y + b.h - lineHeight - 4
	for i, action := range b.actions {
		label := "  " + action.Label + "  "
		if i == b.cursor {
			label = "[ " + action.Label + " ]"
		}
		ebitenutil.DebugPrintAt(screen, label, btnX, btnY)
		btnX += (len(label) + 2) * 6
	}
}

// Destroy releases the battle panel content
func (b *Battle) Destroy() {
	b.title = ""
	b.actions = nil
	b.cursor = 0
	b.log = nil
}

// Log returns the current message log, oldest first.
func (b *Battle) Log() []string { return b.log }
