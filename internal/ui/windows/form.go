package windows

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/endo5501/mirundal/internal/ui/windowing"
)

// Form is a set of labelled text fields with a submit row. While a
// field edit is active the form captures all key input, and ESC
// cancels the edit before the generic back-navigation can fire.
//
// Forms are deliberately not poolable: edit state does not reset
// cheaply enough to be worth it.
type Form struct {
	windowing.Base
	title   string
	fields  []formField
	cursor  int // len(fields) is the submit row
	editing bool
	backup  []rune
	x, y    int
	w, h    int
}

type formField struct {
	def   windowing.Field
	value []rune
}

// Create builds the form from its configuration
func (f *Form) Create(cfg *windowing.Config) error {
	if f.Built() {
		return &windowing.CreationError{ID: f.ID(), Kind: f.Kind(), Reason: "window is already built"}
	}
	if len(cfg.Fields) == 0 {
		return &windowing.CreationError{ID: f.ID(), Kind: f.Kind(), Reason: "form requires at least one field"}
	}
	f.title = cfg.Title
	f.fields = make([]formField, len(cfg.Fields))
	for i, def := range cfg.Fields {
		f.fields[i] = formField{def: def, value: []rune(def.Value)}
	}
	f.cursor = 0
	f.x, f.y, f.w, f.h = rect(cfg, 60, 50, 240, 44+(len(cfg.Fields)+1)*lineHeight)
	f.MarkBuilt()
	return nil
}

// HandleEvent edits the focused field or moves between rows.
func (f *Form) HandleEvent(ev windowing.Event) bool {
	if f.editing {
		return f.handleEditing(ev)
	}
	switch {
	case isKeyDown(ev, ebiten.KeyArrowUp, ebiten.KeyW):
		if f.cursor > 0 {
			f.cursor--
		}
		return true
	case isKeyDown(ev, ebiten.KeyArrowDown, ebiten.KeyS, ebiten.KeyTab):
		if f.cursor < len(f.fields) {
			f.cursor++
		}
		return true
	case isKeyDown(ev, ebiten.KeyEnter, ebiten.KeySpace):
		if f.cursor < len(f.fields) {
			f.beginEdit()
		} else {
			f.submit()
		}
		return true
	}
	return false
}

func (f *Form) handleEditing(ev windowing.Event) bool {
	switch ev.Type {
	case windowing.EventRune:
		field := &f.fields[f.cursor]
		field.value = append(field.value, ev.Rune)
		return true
	case windowing.EventKeyDown:
		switch ev.Key {
		case ebiten.KeyBackspace:
			field := &f.fields[f.cursor]
			if len(field.value) > 0 {
				field.value = field.value[:len(field.value)-1]
			}
		case ebiten.KeyEnter:
			f.editing = false
			f.backup = nil
		}
		// Swallow every key while editing so nothing leaks below.
		return true
	case windowing.EventKeyUp:
		return true
	}
	return false
}

func (f *Form) beginEdit() {
	f.editing = true
	f.backup = append([]rune(nil), f.fields[f.cursor].value...)
}

// HandleEscape cancels an active edit, restoring the field. Declined
// otherwise so the manager runs back-navigation.
func (f *Form) HandleEscape() bool {
	if !f.editing {
		return false
	}
	f.fields[f.cursor].value = f.backup
	f.backup = nil
	f.editing = false
	return true
}

func (f *Form) submit() {
	for i, field := range f.fields {
		if field.def.Required && len(field.value) == 0 {
			f.cursor = i
			return
		}
	}
	values := make(map[string]string, len(f.fields))
	for _, field := range f.fields {
		values[field.def.ID] = string(field.value)
	}
	f.Emit(windowing.MsgFormSubmitted, map[string]any{
		"window": f.ID(),
		"values": values,
	})
}

// Update is a no-op; the open transition is advanced by the manager.
func (f *Form) Update(dt float64) {}

// Draw renders the form panel
func (f *Form) Draw(screen *ebiten.Image) {
	p := f.Progress()
	drawPanel(screen, f.x, f.y, f.w, f.h, p)
	if f.title != "" {
		ebitenutil.DebugPrintAt(screen, f.title, f.x+6, f.y+4)
	}
	for i, field := range f.fields {
		rowY := f.y + 22 + i*lineHeight
		if i == f.cursor {
			drawCursorRow(screen, f.x+2, rowY, f.w-4, p)
		}
		line := field.def.Label + ": " + string(field.value)
		if f.editing && i == f.cursor {
			line += "_"
		}
		ebitenutil.DebugPrintAt(screen, line, f.x+10, rowY)
	}
	submitY := f.y + 22 + len(f.fields)*lineHeight
	if f.cursor == len(f.fields) {
		drawCursorRow(screen, f.x+2, submitY, f.w-4, p)
	}
	ebitenutil.DebugPrintAt(screen, "[ Submit ]", f.x+10, submitY)
}

// Destroy releases the form content
func (f *Form) Destroy() {
	f.title = ""
	f.fields = nil
	f.cursor = 0
	f.editing = false
	f.backup = nil
}

// Editing reports whether a field edit is active.
func (f *Form) Editing() bool { return f.editing }

// Value returns the current text of the field with the given id.
func (f *Form) Value(id string) string {
	for _, field := range f.fields {
		if field.def.ID == id {
			return string(field.value)
		}
	}
	return ""
}
