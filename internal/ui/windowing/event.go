package windowing

import "github.com/hajimehoshi/ebiten/v2"

// EventType classifies a raw input event fed in by the host loop.
type EventType int

const (
	EventKeyDown EventType = iota
	EventKeyUp
	EventRune
	EventPointerDown
	EventPointerUp
	EventPointerMove
)

// Event is a single input event. Key is set for key events, Rune for
// text input, X/Y for pointer events.
type Event struct {
	Type EventType
	Key  ebiten.Key
	Rune rune
	X    int
	Y    int
}

// MessageHandler receives notifications a window emits to its owner,
// e.g. "user picked guild" or "form submitted". The owner holds the
// window; the window holds only this non-owning handle back.
type MessageHandler interface {
	OnMessage(msgType string, data map[string]any)
}

// Message types emitted by the built-in window variants.
const (
	MsgItemSelected  = "item_selected"
	MsgDialogResult  = "dialog_result"
	MsgFormSubmitted = "form_submitted"
	MsgListPicked    = "list_picked"
	MsgBattleAction  = "battle_action"
	MsgCloseRequest  = "close_request"
)

// MsgLanguageChanged is broadcast to every shown window when the
// active locale changes.
const MsgLanguageChanged = "language_changed"
