// Package game provides the main loop that drives the window system:
// input routing, per-frame updates, and bottom-to-top drawing.
package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/endo5501/mirundal/internal/application/input"
	"github.com/endo5501/mirundal/internal/ui/windowing"
)

var colorBG = color.RGBA{26, 26, 46, 255}

// Game implements ebiten.Game on top of a window manager.
//
// Each frame it pumps the input source through the manager's router,
// applies the default behavior for unhandled events, advances the
// shown windows, and resolves deferred work at the frame boundary.
type Game struct {
	ui      *windowing.Manager
	source  input.Source
	screenW int
	screenH int
	dt      float64
}

// New creates a new Game over the given manager and input source
func New(ui *windowing.Manager, source input.Source, screenW, screenH int) *Game {
	return &Game{
		ui:      ui,
		source:  source,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0, // Default to 60 FPS
	}
}

// Update routes this frame's events and advances the window system.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	for _, ev := range g.source.Poll() {
		if g.ui.RouteEvent(ev) {
			continue
		}
		// Default behavior for unhandled events: global quit shortcut.
		if ev.Type == windowing.EventKeyDown && ev.Key == ebiten.KeyQ {
			return ebiten.Termination
		}
	}

	g.ui.Update(g.dt)
	g.ui.EndFrame()

	// The last screen closing ends the session.
	if len(g.ui.VisibleWindows()) == 0 {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the window stack bottom to top.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)
	g.ui.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the delta time used for updates.
// Useful for testing or custom frame rates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}
