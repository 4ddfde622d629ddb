// Package replay records and plays back per-frame UI input events for
// deterministic session reproduction.
package replay

// FrameEvent records one input event with the frame it occurred on
type FrameEvent struct {
	F int  `json:"f"`           // Frame number
	T int  `json:"t"`           // Event type
	K int  `json:"k,omitempty"` // Key code
	R rune `json:"r,omitempty"` // Input character
	X int  `json:"x,omitempty"` // Pointer X
	Y int  `json:"y,omitempty"` // Pointer Y
}

// ReplayData contains all data needed to replay a UI session
type ReplayData struct {
	Version   string       `json:"version"`
	StartTime string       `json:"startTime"`
	Events    []FrameEvent `json:"events"`
}
