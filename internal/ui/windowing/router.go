package windowing

import "log/slog"

// EventRouter dispatches input events according to stack order and the
// focus lock, and carries the deferred message queue that keeps
// cross-window communication out of the dispatch path.
//
// A panic inside a window's HandleEvent is recovered here, logged, and
// treated as "event not handled"; a misbehaving screen must never stop
// the frame loop.
type EventRouter struct {
	stack *Stack
	focus *FocusManager
	log   *slog.Logger

	pending     []func()
	dispatching bool
}

// NewEventRouter creates a router over the given stack and focus state
func NewEventRouter(stack *Stack, focus *FocusManager, log *slog.Logger) *EventRouter {
	return &EventRouter{stack: stack, focus: focus, log: log}
}

// Route delivers ev to the eligible windows and reports whether any of
// them consumed it.
//
// With the focus lock held, the event goes exclusively to the focused
// window and Z-order is ignored entirely. Otherwise the stack is
// walked top to bottom and dispatch stops at the first consumer.
func (r *EventRouter) Route(ev Event) bool {
	r.dispatching = true
	defer func() {
		r.dispatching = false
	}()

	if r.focus.Locked() {
		return r.deliver(r.focus.Current(), ev)
	}

	wins := r.stack.Windows()
	for i := len(wins) - 1; i >= 0; i-- {
		w := wins[i]
		if w.State() != StateShown {
			continue
		}
		if r.deliver(w, ev) {
			return true
		}
	}
	return false
}

// deliver calls w.HandleEvent behind a recover barrier.
func (r *EventRouter) deliver(w Window, ev Event) (handled bool) {
	if w == nil {
		return false
	}
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("window event handler panicked",
				"window", w.ID(), "kind", w.Kind().String(), "panic", p)
			handled = false
		}
	}()
	return w.HandleEvent(ev)
}

// enqueue defers fn until the current dispatch (or frame) completes.
// Structure-mutating messages go through here so a delivery never
// recurses into the manager mid-iteration.
func (r *EventRouter) enqueue(fn func()) {
	r.pending = append(r.pending, fn)
}

// Flush drains the deferred queue. Deliveries may enqueue further
// messages; those are drained in the same call.
func (r *EventRouter) Flush() {
	for len(r.pending) > 0 {
		batch := r.pending
		r.pending = nil
		for _, fn := range batch {
			fn()
		}
	}
}

// Dispatching reports whether an event is currently being routed.
func (r *EventRouter) Dispatching() bool { return r.dispatching }
