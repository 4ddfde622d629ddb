package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/endo5501/mirundal/internal/ui/windowing"
)

// Replayer plays a recorded session back as an input source. Each Poll
// returns the events recorded for the current frame and advances.
type Replayer struct {
	data  ReplayData
	frame int
	pos   int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// Poll returns the events recorded for the current frame and advances.
// After the recording runs out it returns nil forever.
func (r *Replayer) Poll() []windowing.Event {
	var events []windowing.Event
	for r.pos < len(r.data.Events) && r.data.Events[r.pos].F == r.frame {
		rec := r.data.Events[r.pos]
		events = append(events, windowing.Event{
			Type: windowing.EventType(rec.T),
			Key:  ebiten.Key(rec.K),
			Rune: rec.R,
			X:    rec.X,
			Y:    rec.Y,
		})
		r.pos++
	}
	r.frame++
	return events
}

// Finished reports whether the recording has been fully consumed.
func (r *Replayer) Finished() bool {
	return r.pos >= len(r.data.Events)
}

// EventCount returns the number of recorded events
func (r *Replayer) EventCount() int {
	return len(r.data.Events)
}
