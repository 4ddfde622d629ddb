package windowing

// FocusManager holds at most one focused window and the modal focus
// lock. While locked, the focused window is the only one that may
// receive input, regardless of stack position; the router enforces
// this centrally rather than trusting individual windows.
type FocusManager struct {
	current Window
	locked  bool
}

// NewFocusManager creates a focus manager with no focus held
func NewFocusManager() *FocusManager {
	return &FocusManager{}
}

// Current returns the focused window, or nil.
func (f *FocusManager) Current() Window { return f.current }

// Locked reports whether focus is modally locked.
func (f *FocusManager) Locked() bool { return f.locked }

// Set moves focus to w. It fails silently (returns false) if w is nil,
// not Shown, or if focus is locked to a different window.
func (f *FocusManager) Set(w Window) bool {
	if w == nil || w.State() != StateShown {
		return false
	}
	if f.locked && f.current != w {
		return false
	}
	f.current = w
	return true
}

// Lock makes the current focus exclusive. Fails if nothing Shown holds
// focus; the invariant is that a locked focus always points at a Shown
// window.
func (f *FocusManager) Lock() bool {
	if f.current == nil || f.current.State() != StateShown {
		return false
	}
	f.locked = true
	return true
}

// Unlock releases the modal focus lock.
func (f *FocusManager) Unlock() { f.locked = false }

// Clear drops focus unless it is locked.
func (f *FocusManager) Clear() bool {
	if f.locked {
		return false
	}
	f.current = nil
	return true
}

// ClearFor force-drops focus held by w, releasing the lock with it.
// Used when w is hidden or destroyed so no dangling reference remains.
func (f *FocusManager) ClearFor(w Window) bool {
	if f.current != w {
		return false
	}
	f.locked = false
	f.current = nil
	return true
}
