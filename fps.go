package bento

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefreshTicks is how often the FPS text is redrawn.
const fpsRefreshTicks = 30

// fpsText renders ebiten's measured FPS and TPS into a small image.
type fpsText struct {
	Base

	img   *ebiten.Image
	ticks int
}

func (f *fpsText) Update(data *Data) {
	f.ticks++
	if f.ticks < fpsRefreshTicks && f.img != nil {
		return
	}
	f.ticks = 0
	if f.img == nil {
		// 100x32 fits "FPS: 60.0\nTPS: 60.0".
		f.img = ebiten.NewImage(100, 32)
	}
	f.img.Clear()
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (f *fpsText) Draw(data *Data) {
	if f.img == nil {
		return
	}
	data.Renderer.DrawImage(f.img, 0, 0, 100, 32, 0, 0, 100, 32)
}

// NewFPSWidget returns a floating global entity showing the frame rate in the
// top-left corner above everything else. It keeps updating while paused.
func NewFPSWidget() *Entity {
	text := &fpsText{}
	text.Name = "fps_text"
	text.rootIndex = -1
	return NewEntity(EntityConfig{
		Name:             "fps_widget",
		Z:                1 << 20,
		Float:            true,
		Global:           true,
		UpdateWhenPaused: 1 << 20,
		Components:       []Component{text},
	})
}
