// Package windowing implements the UI window kernel: window lifecycle,
// Z-ordered stacking, exclusive focus, event routing, and object
// pooling for the game's screens.
//
// The Manager is the only entry point that mutates shared structures
// (registry, stack, focus, pool). Everything else reads or requests
// mutation through it; the model is strictly single-threaded and
// frame-driven.
package windowing

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// openDuration is the length of the show transition in seconds.
const openDuration = 0.18

// Window is the contract every concrete screen variant implements.
//
// HandleEvent returns true iff the event was consumed, which stops
// further propagation down the stack. HandleEscape is offered to the
// focused window before the generic back-navigation fires.
//
// The interface is sealed: implementations must embed Base.
type Window interface {
	ID() string
	Kind() Kind
	State() WindowState
	Modal() bool
	Poolable() bool

	// Create builds the window content from its configuration. Calling
	// it twice without an intervening Destroy is an error, and a failed
	// Create leaves no partially built content behind.
	Create(cfg *Config) error
	HandleEvent(ev Event) bool
	HandleEscape() bool
	OnMessage(msgType string, data map[string]any)
	Update(dt float64)
	Draw(screen *ebiten.Image)
	Destroy()

	base() *Base
}

// Resettable is the capability required of any poolable window
// variant: rebind fresh content onto an already constructed instance.
// It is checked when the variant's kind is registered, not at reuse
// time.
type Resettable interface {
	Reset(cfg *Config) error
}

// Base carries the identity and lifecycle plumbing shared by all
// window variants. Variants embed it by value; the Manager owns every
// field in here.
type Base struct {
	id       string
	kind     Kind
	state    WindowState
	modal    bool
	poolable bool
	poolKey  string
	parentID string
	handler  MessageHandler

	built  bool
	router *EventRouter

	opening  *gween.Tween
	progress float32
}

func (b *Base) ID() string         { return b.id }
func (b *Base) Kind() Kind         { return b.kind }
func (b *Base) State() WindowState { return b.state }
func (b *Base) Modal() bool        { return b.modal }
func (b *Base) Poolable() bool     { return b.poolable }
func (b *Base) ParentID() string   { return b.parentID }

// Built reports whether the variant has constructed its content.
// Variants use it to reject a second Create without a Destroy.
func (b *Base) Built() bool { return b.built }

// MarkBuilt records that the variant finished constructing content.
func (b *Base) MarkBuilt() { b.built = true }

// Progress is the show-transition progress in [0, 1], for draw-time
// fade/scale effects.
func (b *Base) Progress() float32 { return b.progress }

// Emit queues a message for the window's owner. Delivery is deferred
// to the end of the current dispatch so a handler may freely mutate
// window structure.
func (b *Base) Emit(msgType string, data map[string]any) {
	if b.handler == nil {
		return
	}
	h := b.handler
	if b.router == nil {
		h.OnMessage(msgType, data)
		return
	}
	b.router.enqueue(func() { h.OnMessage(msgType, data) })
}

// OnMessage is the default broadcast receiver; variants override it
// when they care about cross-cutting notices.
func (b *Base) OnMessage(msgType string, data map[string]any) {}

// HandleEscape is the default ESC override: decline, letting the
// Manager run back-navigation.
func (b *Base) HandleEscape() bool { return false }

func (b *Base) base() *Base { return b }

// rebind resets identity and ownership for a fresh or pooled instance.
func (b *Base) rebind(kind Kind, id string, cfg *Config, router *EventRouter) {
	b.id = id
	b.kind = kind
	b.state = StateCreated
	b.modal = cfg.Modal
	b.poolable = cfg.Poolable
	b.poolKey = cfg.PoolKey
	b.parentID = cfg.Parent
	b.handler = cfg.Handler
	b.built = false
	b.router = router
	b.opening = nil
	b.progress = 0
}

func (b *Base) setState(s WindowState) { b.state = s }

// beginOpen starts the show transition.
func (b *Base) beginOpen() {
	b.progress = 0
	b.opening = gween.New(0, 1, openDuration, ease.OutQuad)
}

// advance steps the show transition; called by the Manager before the
// variant's own Update.
func (b *Base) advance(dt float64) {
	if b.opening == nil {
		return
	}
	v, done := b.opening.Update(float32(dt))
	b.progress = v
	if done {
		b.opening = nil
	}
}
