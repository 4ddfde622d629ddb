package windowing

// WindowState represents the lifecycle state of a window.
//
// Transitions are driven only by the Manager:
// Created -> Shown <-> Hidden -> Destroyed.
type WindowState int

const (
	StateCreated WindowState = iota
	StateShown
	StateHidden
	StateDestroyed
)

// String returns the string representation of the window state
func (s WindowState) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateShown:
		return "Shown"
	case StateHidden:
		return "Hidden"
	case StateDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// Kind identifies the concrete window variant.
type Kind int

const (
	KindMenu Kind = iota
	KindDialog
	KindForm
	KindList
	KindBattle
)

// String returns the string representation of the window kind
func (k Kind) String() string {
	switch k {
	case KindMenu:
		return "menu"
	case KindDialog:
		return "dialog"
	case KindForm:
		return "form"
	case KindList:
		return "list"
	case KindBattle:
		return "battle"
	default:
		return "unknown"
	}
}
