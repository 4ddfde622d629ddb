package windows

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/endo5501/mirundal/internal/ui/windowing"
)

func TestDialog_CreateRequiresText(t *testing.T) {
	m := newTestManager()

	_, err := m.Create(windowing.KindDialog, "confirm", &windowing.Config{})

	var creation *windowing.CreationError
	require.ErrorAs(t, err, &creation)
}

func TestDialog_DefaultsToOKButton(t *testing.T) {
	m := newTestManager()
	h := &captureHandler{}
	d := create(t, m, windowing.KindDialog, &windowing.Config{
		Text:    "Welcome back.",
		Handler: h,
	}).(*Dialog)

	d.HandleEvent(keyDown(ebiten.KeyEnter))
	m.EndFrame()

	require.Equal(t, []string{windowing.MsgDialogResult}, h.types)
	assert.Equal(t, "ok", h.data[0]["button"])
}

func TestDialog_ButtonNavigation(t *testing.T) {
	m := newTestManager()
	h := &captureHandler{}
	d := create(t, m, windowing.KindDialog, &windowing.Config{
		Text: "Quit the game?",
		Items: []windowing.Item{
			{ID: "quit", Label: "Quit"},
			{ID: "cancel", Label: "Cancel"},
		},
		Handler: h,
	}).(*Dialog)

	// The cursor clamps at both ends.
	d.HandleEvent(keyDown(ebiten.KeyArrowLeft))
	assert.Equal(t, 0, d.Cursor())
	d.HandleEvent(keyDown(ebiten.KeyArrowRight))
	d.HandleEvent(keyDown(ebiten.KeyArrowRight))
	assert.Equal(t, 1, d.Cursor())

	d.HandleEvent(keyDown(ebiten.KeyEnter))
	m.EndFrame()

	require.Len(t, h.data, 1)
	assert.Equal(t, "cancel", h.data[0]["button"])
	assert.Equal(t, d.ID(), h.data[0]["window"])
}

func TestDialog_IgnoresUnboundKeys(t *testing.T) {
	m := newTestManager()
	d := create(t, m, windowing.KindDialog, &windowing.Config{Text: "hi"}).(*Dialog)

	assert.False(t, d.HandleEvent(keyDown(ebiten.KeyArrowUp)))
	assert.False(t, d.HandleEvent(runeEvent('x')))
}
