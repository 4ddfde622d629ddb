package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/endo5501/mirundal/internal/application/input"
	"github.com/endo5501/mirundal/internal/ui/windowing"
)

// Recorder wraps an input source and records every event it produces,
// tagged with the frame number. Drop it in where the plain source
// would go; the game loop never notices.
type Recorder struct {
	source    input.Source
	data      ReplayData
	recording bool
	frame     int
}

// NewRecorder creates a recording wrapper around source
func NewRecorder(source input.Source) *Recorder {
	return &Recorder{
		source: source,
		data: ReplayData{
			Version:   "1.0",
			StartTime: time.Now().Format(time.RFC3339),
			Events:    make([]FrameEvent, 0, 256),
		},
		recording: true,
	}
}

// Poll forwards to the wrapped source and records the result.
func (r *Recorder) Poll() []windowing.Event {
	events := r.source.Poll()
	if r.recording {
		for _, ev := range events {
			r.data.Events = append(r.data.Events, FrameEvent{
				F: r.frame,
				T: int(ev.Type),
				K: int(ev.Key),
				R: ev.Rune,
				X: ev.X,
				Y: ev.Y,
			})
		}
	}
	r.frame++
	return events
}

// Save writes the recorded events to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Events) == 0 {
		return fmt.Errorf("no events to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// EventCount returns the number of recorded events
func (r *Recorder) EventCount() int {
	return len(r.data.Events)
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
