package bento

import "github.com/hajimehoshi/ebiten/v2"

// Renderer is the drawing contract used by transforms and components. All
// coordinates are in the current transform's space. A backend that cannot
// support a primitive implements it as a no-op.
type Renderer interface {
	// Save pushes the transform and opacity; Restore pops them.
	Save()
	Restore()
	SetTransform(a, b, c, d, tx, ty float64)
	Translate(x, y float64)
	Scale(x, y float64)
	Rotate(angle float64)

	FillRect(c Color, x, y, w, h float64)
	FillCircle(c Color, x, y, radius float64)
	StrokeRect(c Color, x, y, w, h, lineWidth float64)
	DrawLine(c Color, ax, ay, bx, by, width float64)
	// DrawImage draws the source rectangle of img into the destination rectangle.
	DrawImage(img *ebiten.Image, sx, sy, sw, sh, x, y, w, h float64)

	// Begin starts a frame and Flush ends it.
	Begin()
	Flush()

	Opacity() float64
	SetOpacity(alpha float64)
}

// NopRenderer satisfies Renderer without drawing. Its opacity is always 1.
type NopRenderer struct{}

func (NopRenderer) Save() {}
func (NopRenderer) Restore() {}
func (NopRenderer) SetTransform(a, b, c, d, tx, ty float64) {}
func (NopRenderer) Translate(x, y float64) {}
func (NopRenderer) Scale(x, y float64) {}
func (NopRenderer) Rotate(angle float64) {}
func (NopRenderer) FillRect(c Color, x, y, w, h float64) {}
func (NopRenderer) FillCircle(c Color, x, y, radius float64) {}
func (NopRenderer) StrokeRect(c Color, x, y, w, h, lineWidth float64) {}
func (NopRenderer) DrawLine(c Color, ax, ay, bx, by, width float64) {}
func (NopRenderer) DrawImage(img *ebiten.Image, sx, sy, sw, sh, x, y, w, h float64) {}
func (NopRenderer) Begin() {}
func (NopRenderer) Flush() {}
func (NopRenderer) Opacity() float64 { return 1 }
func (NopRenderer) SetOpacity(alpha float64) {}
