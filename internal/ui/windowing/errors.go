package windowing

import "fmt"

// CreationError reports a window that could not be built from its
// configuration. A failed creation leaves no trace in the registry.
type CreationError struct {
	ID     string
	Kind   Kind
	Reason string
	Err    error
}

func (e *CreationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("create window %q (%s): %s: %v", e.ID, e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("create window %q (%s): %s", e.ID, e.Kind, e.Reason)
}

func (e *CreationError) Unwrap() error { return e.Err }

// DuplicateIDError reports an id collision at creation time.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("window id %q is already registered", e.ID)
}

// NotFoundError reports an operation on an unregistered window id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("window %q is not registered", e.ID)
}

// StateError reports an operation that is invalid for the window's
// current lifecycle state, e.g. showing a Destroyed window.
type StateError struct {
	ID    string
	State WindowState
	Op    string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s window %q in state %s", e.Op, e.ID, e.State)
}
