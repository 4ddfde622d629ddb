package windowing

// Stack is the LIFO ordering of stacked windows. The last element is
// the topmost (frontmost) window for Z-order and event priority.
// Every entry is Shown, and a window appears at most once.
type Stack struct {
	wins []Window
}

// NewStack creates an empty window stack
func NewStack() *Stack {
	return &Stack{}
}

// Push appends w as the new topmost window. Returns false if w is
// already stacked.
func (s *Stack) Push(w Window) bool {
	if s.Contains(w) {
		return false
	}
	s.wins = append(s.wins, w)
	return true
}

// Pop removes and returns the topmost window, or nil when empty.
func (s *Stack) Pop() Window {
	if len(s.wins) == 0 {
		return nil
	}
	w := s.wins[len(s.wins)-1]
	s.wins[len(s.wins)-1] = nil
	s.wins = s.wins[:len(s.wins)-1]
	return w
}

// Peek returns the topmost window without removing it, or nil.
func (s *Stack) Peek() Window {
	if len(s.wins) == 0 {
		return nil
	}
	return s.wins[len(s.wins)-1]
}

// Remove takes w out of the stack wherever it sits. Returns false if
// w was not stacked.
func (s *Stack) Remove(w Window) bool {
	for i, cur := range s.wins {
		if cur == w {
			s.wins = append(s.wins[:i], s.wins[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether w is stacked.
func (s *Stack) Contains(w Window) bool {
	for _, cur := range s.wins {
		if cur == w {
			return true
		}
	}
	return false
}

// Len returns the number of stacked windows.
func (s *Stack) Len() int { return len(s.wins) }

// Windows returns a copy of the stack, bottom to top. The copy is safe
// to iterate while the stack mutates.
func (s *Stack) Windows() []Window {
	out := make([]Window, len(s.wins))
	copy(out, s.wins)
	return out
}
