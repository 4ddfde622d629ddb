// Package input translates raw ebiten input into window-system events.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/endo5501/mirundal/internal/ui/windowing"
)

// Source produces the input events of one frame. The game loop depends
// on this interface so tests can inject synthetic events instead of
// polling real devices.
type Source interface {
	Poll() []windowing.Event
}

// Keyboard polls ebiten's keyboard and mouse state once per frame.
type Keyboard struct {
	keys  []ebiten.Key
	runes []rune
	lastX int
	lastY int
}

// NewKeyboard creates a device-polling event source
func NewKeyboard() *Keyboard {
	return &Keyboard{lastX: -1, lastY: -1}
}

// Poll reads the current device state and returns this frame's events.
// Key transitions come first, then text input, then pointer events, so
// navigation keys are routed before the characters they may produce.
func (k *Keyboard) Poll() []windowing.Event {
	var events []windowing.Event

	k.keys = inpututil.AppendJustPressedKeys(k.keys[:0])
	for _, key := range k.keys {
		events = append(events, windowing.Event{Type: windowing.EventKeyDown, Key: key})
	}
	k.keys = inpututil.AppendJustReleasedKeys(k.keys[:0])
	for _, key := range k.keys {
		events = append(events, windowing.Event{Type: windowing.EventKeyUp, Key: key})
	}

	k.runes = ebiten.AppendInputChars(k.runes[:0])
	for _, r := range k.runes {
		events = append(events, windowing.Event{Type: windowing.EventRune, Rune: r})
	}

	mx, my := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		events = append(events, windowing.Event{Type: windowing.EventPointerDown, X: mx, Y: my})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		events = append(events, windowing.Event{Type: windowing.EventPointerUp, X: mx, Y: my})
	}
	if mx != k.lastX || my != k.lastY {
		if k.lastX >= 0 {
			events = append(events, windowing.Event{Type: windowing.EventPointerMove, X: mx, Y: my})
		}
		k.lastX, k.lastY = mx, my
	}

	return events
}
