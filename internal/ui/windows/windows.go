// Package windows provides the concrete window variants (menu, dialog,
// form, list, battle) built on the windowing kernel.
package windows

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/endo5501/mirundal/internal/ui/windowing"
)

// Colors for rendering
var (
	colorPanelBG  = color.RGBA{30, 30, 50, 230}
	colorBorder   = color.RGBA{120, 120, 160, 255}
	colorCursorBG = color.RGBA{60, 60, 110, 230}
)

const lineHeight = 14

// RegisterAll installs the factories for every built-in variant.
func RegisterAll(m *windowing.Manager) {
	m.RegisterKind(windowing.KindMenu, func() windowing.Window { return &Menu{} })
	m.RegisterKind(windowing.KindDialog, func() windowing.Window { return &Dialog{} })
	m.RegisterKind(windowing.KindForm, func() windowing.Window { return &Form{} })
	m.RegisterKind(windowing.KindList, func() windowing.Window { return &List{} })
	m.RegisterKind(windowing.KindBattle, func() windowing.Window { return &Battle{} })
}

// rect resolves the window geometry, falling back to variant defaults
// for zero values.
func rect(cfg *windowing.Config, defX, defY, defW, defH int) (x, y, w, h int) {
	x, y, w, h = cfg.X, cfg.Y, cfg.Width, cfg.Height
	if x == 0 {
		x = defX
	}
	if y == 0 {
		y = defY
	}
	if w == 0 {
		w = defW
	}
	if h == 0 {
		h = defH
	}
	return x, y, w, h
}

// fade scales a color by the open-transition progress (pre-multiplied
// alpha, as elsewhere in the renderer).
func fade(c color.RGBA, progress float32) color.RGBA {
	p := float64(progress)
	return color.RGBA{
		uint8(float64(c.R) * p),
		uint8(float64(c.G) * p),
		uint8(float64(c.B) * p),
		uint8(float64(c.A) * p),
	}
}

// drawPanel draws the window background and border.
func drawPanel(screen *ebiten.Image, x, y, w, h int, progress float32) {
	fx, fy := float64(x), float64(y)
	fw, fh := float64(w), float64(h)
	ebitenutil.DrawRect(screen, fx, fy, fw, fh, fade(colorPanelBG, progress))
	border := fade(colorBorder, progress)
	ebitenutil.DrawRect(screen, fx, fy, fw, 1, border)
	ebitenutil.DrawRect(screen, fx, fy+fh-1, fw, 1, border)
	ebitenutil.DrawRect(screen, fx, fy, 1, fh, border)
	ebitenutil.DrawRect(screen, fx+fw-1, fy, 1, fh, border)
}

// drawCursorRow highlights the line under the selection cursor.
func drawCursorRow(screen *ebiten.Image, x, y, w int, progress float32) {
	ebitenutil.DrawRect(screen, float64(x), float64(y), float64(w), lineHeight, fade(colorCursorBG, progress))
}

func isKeyDown(ev windowing.Event, keys ...ebiten.Key) bool {
	if ev.Type != windowing.EventKeyDown {
		return false
	}
	for _, k := range keys {
		if ev.Key == k {
			return true
		}
	}
	return false
}
