package windowing

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Manager is the façade that owns the registry, stack, focus, router,
// and pool, and exposes the only operations that mutate them. One
// Manager is constructed per game session and passed by reference to
// whoever needs it; there is no hidden global.
type Manager struct {
	log   *slog.Logger
	stack *Stack
	focus *FocusManager

	router *EventRouter
	pool   *Pool
	stats  Statistics

	registry map[string]Window
	order    []string
	children map[string][]string

	factories  map[Kind]func() Window
	resettable map[Kind]bool

	nextID   uint64
	deferred []func()
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for recovered panics and degraded
// operations.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithPoolCapacity bounds each pool free list. Zero disables pooling.
func WithPoolCapacity(capacity int) Option {
	return func(m *Manager) { m.pool = NewPool(capacity) }
}

// NewManager creates a window manager with an empty registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		log:        slog.Default(),
		stack:      NewStack(),
		focus:      NewFocusManager(),
		pool:       NewPool(DefaultPoolCapacity),
		registry:   make(map[string]Window),
		children:   make(map[string][]string),
		factories:  make(map[Kind]func() Window),
		resettable: make(map[Kind]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.router = NewEventRouter(m.stack, m.focus, m.log)
	return m
}

// RegisterKind installs the factory for a window variant. Whether the
// variant can be pooled is probed here, once, so a poolable config on
// a non-resettable kind fails at creation instead of at reuse.
func (m *Manager) RegisterKind(kind Kind, factory func() Window) {
	m.factories[kind] = factory
	_, ok := factory().(Resettable)
	m.resettable[kind] = ok
}

// Create builds (or reuses from the pool) a window of the given kind.
// An empty id gets a generated one. Fails with DuplicateIDError on id
// collision and CreationError on invalid configuration; a failure
// leaves the registry exactly as it was.
func (m *Manager) Create(kind Kind, id string, cfg *Config) (Window, error) {
	start := time.Now()

	if cfg == nil {
		return nil, &CreationError{ID: id, Kind: kind, Reason: "nil config"}
	}
	factory, ok := m.factories[kind]
	if !ok {
		return nil, &CreationError{ID: id, Kind: kind, Reason: "kind is not registered"}
	}
	if id == "" {
		m.nextID++
		id = fmt.Sprintf("%s-%d", kind, m.nextID)
	}
	if _, exists := m.registry[id]; exists {
		return nil, &DuplicateIDError{ID: id}
	}
	if cfg.Poolable && !m.resettable[kind] {
		return nil, &CreationError{ID: id, Kind: kind, Reason: "kind does not implement Resettable; cannot pool"}
	}
	if cfg.Parent != "" {
		if _, ok := m.registry[cfg.Parent]; !ok {
			return nil, &CreationError{ID: id, Kind: kind, Reason: fmt.Sprintf("parent %q is not registered", cfg.Parent)}
		}
	}

	var w Window
	if cfg.Poolable {
		if pooled := m.pool.Get(kind, cfg.PoolKey); pooled != nil {
			pooled.base().rebind(kind, id, cfg, m.router)
			if err := pooled.(Resettable).Reset(cfg); err != nil {
				// The instance stays out of the pool; a half-reset
				// window must never be reused.
				return nil, err
			}
			w = pooled
			m.stats.recordPoolHit()
		} else {
			m.stats.recordPoolMiss()
		}
	}
	if w == nil {
		w = factory()
		w.base().rebind(kind, id, cfg, m.router)
		if err := w.Create(cfg); err != nil {
			return nil, err
		}
	}

	m.registry[id] = w
	m.order = append(m.order, id)
	if cfg.Parent != "" {
		m.children[cfg.Parent] = append(m.children[cfg.Parent], id)
	}
	m.stats.recordCreate(time.Since(start))
	return w, nil
}

// Show transitions w from Created or Hidden to Shown. With push it
// joins the top of the stack; focus transfers unless a modal lock is
// held elsewhere, and a modal window takes the lock itself.
func (m *Manager) Show(w Window, push bool) error {
	if err := m.mustOwn(w); err != nil {
		return err
	}
	switch w.State() {
	case StateCreated, StateHidden:
	default:
		return &StateError{ID: w.ID(), State: w.State(), Op: "show"}
	}

	w.base().setState(StateShown)
	w.base().beginOpen()
	if push {
		m.stack.Push(w)
	}
	if w.Modal() {
		m.focus.Unlock()
		m.focus.Set(w)
		m.focus.Lock()
	} else if !m.focus.Locked() {
		m.focus.Set(w)
	}
	return nil
}

// Hide transitions w from Shown to Hidden, popping it from the stack
// when pop is set. If w held focus it is cleared, falling back to the
// new topmost shown window.
func (m *Manager) Hide(w Window, pop bool) error {
	if err := m.mustOwn(w); err != nil {
		return err
	}
	if w.State() != StateShown {
		return &StateError{ID: w.ID(), State: w.State(), Op: "hide"}
	}

	if pop {
		m.stack.Remove(w)
	}
	w.base().setState(StateHidden)
	if m.focus.ClearFor(w) {
		m.fallbackFocus()
	}
	return nil
}

// Destroy releases w: children first, then removal from stack and
// focus, then the variant's own teardown. Poolable windows retire to
// the pool instead of being dropped.
//
// Called during event dispatch, the destruction is deferred to the end
// of the dispatch so the stack is never mutated mid-iteration.
func (m *Manager) Destroy(w Window) error {
	if err := m.mustOwn(w); err != nil {
		return err
	}
	if m.router.Dispatching() {
		m.deferred = append(m.deferred, func() {
			if err := m.destroyNow(w); err != nil {
				m.log.Warn("deferred destroy failed", "window", w.ID(), "error", err)
			}
		})
		return nil
	}
	return m.destroyNow(w)
}

func (m *Manager) destroyNow(w Window) error {
	if err := m.mustOwn(w); err != nil {
		return err
	}

	for _, childID := range append([]string(nil), m.children[w.ID()]...) {
		if child, ok := m.registry[childID]; ok {
			if err := m.destroyNow(child); err != nil {
				m.log.Warn("child destroy failed", "window", childID, "error", err)
			}
		}
	}
	delete(m.children, w.ID())

	m.stack.Remove(w)
	wasFocused := m.focus.ClearFor(w)

	m.safeDestroy(w)
	w.base().setState(StateDestroyed)
	w.base().router = nil
	w.base().handler = nil
	m.unregister(w.ID())
	m.stats.recordDestroy()

	if w.Poolable() {
		if accepted, evicted := m.pool.Put(w); accepted {
			m.stats.recordPoolReturn(evicted != nil)
		}
	}

	if wasFocused {
		m.fallbackFocus()
	}
	return nil
}

// Get returns the registered, not yet destroyed window with the given
// id. O(1).
func (m *Manager) Get(id string) (Window, bool) {
	w, ok := m.registry[id]
	return w, ok
}

// VisibleWindows returns every Shown window, stacked windows first in
// Z-order bottom to top, then shown unstacked windows in creation
// order. A window hidden in place keeps its stack slot but is skipped
// here, so it neither renders nor receives broadcasts.
func (m *Manager) VisibleWindows() []Window {
	var out []Window
	stacked := make(map[Window]bool)
	for _, w := range m.stack.Windows() {
		if w.State() != StateShown {
			continue
		}
		out = append(out, w)
		stacked[w] = true
	}
	for _, id := range m.order {
		if w, ok := m.registry[id]; ok && !stacked[w] && w.State() == StateShown {
			out = append(out, w)
		}
	}
	return out
}

// RouteEvent feeds one input event through the router and reports
// whether any window consumed it. ESC is special-cased: the focused
// window's own HandleEscape is offered first, then the generic
// back-navigation fires.
func (m *Manager) RouteEvent(ev Event) bool {
	handled := m.routeEvent(ev)
	m.stats.recordRoute(handled)
	m.flush()
	return handled
}

func (m *Manager) routeEvent(ev Event) bool {
	if ev.Type == EventKeyDown && ev.Key == ebiten.KeyEscape {
		if w := m.focus.Current(); w != nil && m.safeEscape(w) {
			return true
		}
		return m.GoBack()
	}
	return m.router.Route(ev)
}

// Broadcast delivers a message to every Shown window regardless of
// focus, in stack order. Mid-dispatch broadcasts are deferred to the
// end of the dispatch.
func (m *Manager) Broadcast(msgType string, data map[string]any) {
	if m.router.Dispatching() {
		m.router.enqueue(func() { m.Broadcast(msgType, data) })
		return
	}
	for _, w := range m.VisibleWindows() {
		m.safeMessage(w, msgType, data)
	}
}

// GoBack pops and destroys the topmost window and restores focus to
// the new top. On a stack of one (or zero) it returns false and leaves
// everything unchanged; what "no more back" means is the caller's
// decision.
func (m *Manager) GoBack() bool {
	if m.stack.Len() <= 1 {
		return false
	}
	top := m.stack.Peek()
	if err := m.Destroy(top); err != nil {
		m.log.Warn("go-back destroy failed", "window", top.ID(), "error", err)
		return false
	}
	if m.focus.Current() == nil {
		m.fallbackFocus()
	}
	return true
}

// Update advances every Shown window by dt, open transitions first.
func (m *Manager) Update(dt float64) {
	for _, w := range m.VisibleWindows() {
		w.base().advance(dt)
		m.safeUpdate(w, dt)
	}
}

// Draw renders the Shown windows bottom to top.
func (m *Manager) Draw(screen *ebiten.Image) {
	for _, w := range m.VisibleWindows() {
		m.safeDraw(w, screen)
	}
}

// EndFrame resolves work deferred during event dispatch: queued
// destroys first, then pending cross-window messages. The host loop
// calls this once per frame after routing and updating.
func (m *Manager) EndFrame() {
	m.flush()
}

// OptimizePool trims pool entries retired longer than maxAge ago and
// returns how many were released.
func (m *Manager) OptimizePool(maxAge time.Duration) int {
	return len(m.pool.Optimize(maxAge))
}

// Stats returns a snapshot of the diagnostic counters.
func (m *Manager) Stats() Stats {
	return m.stats.snapshot(len(m.registry), m.pool.Total())
}

// Focus exposes the focus state for read access and explicit focus
// moves by collaborators.
func (m *Manager) Focus() *FocusManager { return m.focus }

// StackDepth returns the number of stacked windows.
func (m *Manager) StackDepth() int { return m.stack.Len() }

// Shutdown destroys every remaining window, newest first, and drops
// pooled instances. The Manager is reusable afterwards.
func (m *Manager) Shutdown() {
	for i := len(m.order) - 1; i >= 0; i-- {
		if w, ok := m.registry[m.order[i]]; ok {
			if err := m.destroyNow(w); err != nil {
				m.log.Warn("shutdown destroy failed", "window", m.order[i], "error", err)
			}
		}
	}
	m.pool.Drain()
	m.deferred = nil
	m.router.pending = nil
}

func (m *Manager) mustOwn(w Window) error {
	if w == nil {
		return &NotFoundError{}
	}
	if cur, ok := m.registry[w.ID()]; !ok || cur != w {
		return &NotFoundError{ID: w.ID()}
	}
	return nil
}

func (m *Manager) unregister(id string) {
	w := m.registry[id]
	delete(m.registry, id)
	for i, cur := range m.order {
		if cur == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if w != nil && w.base().parentID != "" {
		siblings := m.children[w.base().parentID]
		for i, cur := range siblings {
			if cur == id {
				m.children[w.base().parentID] = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
}

// fallbackFocus moves focus to the topmost Shown stacked window,
// restoring the lock when that window is modal. Hidden windows keeping
// a stack slot are skipped; they cannot take focus.
func (m *Manager) fallbackFocus() {
	wins := m.stack.Windows()
	for i := len(wins) - 1; i >= 0; i-- {
		w := wins[i]
		if w.State() != StateShown {
			continue
		}
		m.focus.Set(w)
		if w.Modal() {
			m.focus.Lock()
		}
		return
	}
}

func (m *Manager) safeEscape(w Window) (handled bool) {
	defer func() {
		if p := recover(); p != nil {
			m.log.Error("window escape handler panicked", "window", w.ID(), "panic", p)
			handled = false
		}
	}()
	return w.HandleEscape()
}

func (m *Manager) safeUpdate(w Window, dt float64) {
	defer func() {
		if p := recover(); p != nil {
			m.log.Error("window update panicked", "window", w.ID(), "panic", p)
		}
	}()
	w.Update(dt)
}

func (m *Manager) safeDraw(w Window, screen *ebiten.Image) {
	defer func() {
		if p := recover(); p != nil {
			m.log.Error("window draw panicked, frame skipped", "window", w.ID(), "panic", p)
		}
	}()
	w.Draw(screen)
}

func (m *Manager) safeDestroy(w Window) {
	defer func() {
		if p := recover(); p != nil {
			m.log.Error("window destroy panicked", "window", w.ID(), "panic", p)
		}
	}()
	w.Destroy()
}

func (m *Manager) safeMessage(w Window, msgType string, data map[string]any) {
	defer func() {
		if p := recover(); p != nil {
			m.log.Error("window message handler panicked", "window", w.ID(), "panic", p)
		}
	}()
	w.OnMessage(msgType, data)
}

func (m *Manager) flush() {
	for len(m.deferred) > 0 {
		batch := m.deferred
		m.deferred = nil
		for _, fn := range batch {
			fn()
		}
	}
	m.router.Flush()
}
