package bento

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// circleSegments is the triangle fan resolution for FillCircle.
const circleSegments = 32

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Solid shapes are drawn by tinting it.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

type rendererState struct {
	matrix Matrix
	alpha  float64
}

// EbitenRenderer draws onto an ebiten image with a canvas-style transform
// and opacity stack.
type EbitenRenderer struct {
	target *ebiten.Image
	matrix Matrix
	alpha  float64
	stack  []rendererState

	verts []ebiten.Vertex
	inds  []uint16
}

// NewEbitenRenderer creates a renderer drawing onto target. The target may
// be nil and set later with SetTarget.
func NewEbitenRenderer(target *ebiten.Image) *EbitenRenderer {
	return &EbitenRenderer{target: target, matrix: Identity(), alpha: 1}
}

// SetTarget replaces the destination image.
func (r *EbitenRenderer) SetTarget(img *ebiten.Image) { r.target = img }

// Target returns the destination image.
func (r *EbitenRenderer) Target() *ebiten.Image { return r.target }

// Matrix returns the current transform.
func (r *EbitenRenderer) Matrix() Matrix { return r.matrix }

// Depth returns the number of unmatched Save calls.
func (r *EbitenRenderer) Depth() int { return len(r.stack) }

// --- State ---

func (r *EbitenRenderer) Save() {
	r.stack = append(r.stack, rendererState{matrix: r.matrix, alpha: r.alpha})
}

func (r *EbitenRenderer) Restore() {
	if len(r.stack) == 0 {
		misuse("EbitenRenderer.Restore", "restore without a matching save")
		return
	}
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.matrix = top.matrix
	r.alpha = top.alpha
}

func (r *EbitenRenderer) SetTransform(a, b, c, d, tx, ty float64) {
	r.matrix = Matrix{A: a, B: b, C: c, D: d, Tx: tx, Ty: ty}
}

func (r *EbitenRenderer) Translate(x, y float64) { r.matrix.Translate(x, y) }

func (r *EbitenRenderer) Scale(x, y float64) { r.matrix.Scale(x, y) }

func (r *EbitenRenderer) Rotate(angle float64) { r.matrix.Rotate(angle) }

// RotateSinCos rotates with precomputed trig values.
func (r *EbitenRenderer) RotateSinCos(angle, sin, cos float64) {
	r.matrix.MultiplyWith(rotationMatrix(sin, cos))
}

func (r *EbitenRenderer) Opacity() float64 { return r.alpha }

func (r *EbitenRenderer) SetOpacity(alpha float64) { r.alpha = alpha }

// Begin resets the transform and opacity for a new frame.
func (r *EbitenRenderer) Begin() {
	r.matrix = Identity()
	r.alpha = 1
	r.stack = r.stack[:0]
}

// Flush ends the frame. Drawing is immediate, so it only checks pairing.
func (r *EbitenRenderer) Flush() {
	if len(r.stack) != 0 {
		misuse("EbitenRenderer.Flush", "unbalanced save/restore at end of frame", zap.Int("depth", len(r.stack)))
		r.stack = r.stack[:0]
	}
}

// --- Primitives ---

func (r *EbitenRenderer) FillRect(c Color, x, y, w, h float64) {
	if r.target == nil || w == 0 || h == 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(r.geoM())
	r.tint(&op.ColorScale, c)
	r.target.DrawImage(ensureWhitePixel(), &op)
}

// StrokeRect draws the outline centered on the rectangle edges.
func (r *EbitenRenderer) StrokeRect(c Color, x, y, w, h, lineWidth float64) {
	half := lineWidth / 2
	r.FillRect(c, x-half, y-half, w+lineWidth, lineWidth)
	r.FillRect(c, x-half, y+h-half, w+lineWidth, lineWidth)
	r.FillRect(c, x-half, y+half, lineWidth, h-lineWidth)
	r.FillRect(c, x+w-half, y+half, lineWidth, h-lineWidth)
}

func (r *EbitenRenderer) FillCircle(c Color, x, y, radius float64) {
	if r.target == nil || radius <= 0 {
		return
	}
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	r.appendVertex(x, y, c)
	for i := 0; i < circleSegments; i++ {
		sin, cos := math.Sincos(float64(i) * twoPi / circleSegments)
		r.appendVertex(x+cos*radius, y+sin*radius, c)
	}
	for i := 0; i < circleSegments; i++ {
		next := (i+1)%circleSegments + 1
		r.inds = append(r.inds, 0, uint16(i+1), uint16(next))
	}
	r.drawTriangles()
}

func (r *EbitenRenderer) DrawLine(c Color, ax, ay, bx, by, width float64) {
	if r.target == nil || width <= 0 {
		return
	}
	dir := Vector2{bx - ax, by - ay}
	if dir.SqrMagnitude() == 0 {
		return
	}
	n := dir.Perpendicular().Normalize().ScalarMultiply(width / 2)
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	r.appendVertex(ax+n.X, ay+n.Y, c)
	r.appendVertex(bx+n.X, by+n.Y, c)
	r.appendVertex(bx-n.X, by-n.Y, c)
	r.appendVertex(ax-n.X, ay-n.Y, c)
	r.inds = append(r.inds, 0, 1, 2, 0, 2, 3)
	r.drawTriangles()
}

func (r *EbitenRenderer) DrawImage(img *ebiten.Image, sx, sy, sw, sh, x, y, w, h float64) {
	if r.target == nil || img == nil || sw <= 0 || sh <= 0 {
		return
	}
	rect := image.Rect(int(sx), int(sy), int(sx+sw), int(sy+sh))
	sub := img.SubImage(rect).(*ebiten.Image)
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w/sw, h/sh)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(r.geoM())
	r.tint(&op.ColorScale, ColorWhite)
	op.Filter = ebiten.FilterNearest
	r.target.DrawImage(sub, &op)
}

// geoM converts the current matrix into an ebiten.GeoM.
func (r *EbitenRenderer) geoM() ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, r.matrix.A)
	m.SetElement(1, 0, r.matrix.B)
	m.SetElement(0, 1, r.matrix.C)
	m.SetElement(1, 1, r.matrix.D)
	m.SetElement(0, 2, r.matrix.Tx)
	m.SetElement(1, 2, r.matrix.Ty)
	return m
}

// tint applies c and the current opacity as a premultiplied color scale.
func (r *EbitenRenderer) tint(cs *ebiten.ColorScale, c Color) {
	a := float32(c.A * r.alpha)
	cs.Reset()
	cs.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
}

func (r *EbitenRenderer) appendVertex(x, y float64, c Color) {
	p := r.matrix.Apply(Vector2{x, y})
	a := float32(c.A * r.alpha)
	r.verts = append(r.verts, ebiten.Vertex{
		DstX:   float32(p.X),
		DstY:   float32(p.Y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(c.R) * a,
		ColorG: float32(c.G) * a,
		ColorB: float32(c.B) * a,
		ColorA: a,
	})
}

func (r *EbitenRenderer) drawTriangles() {
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	r.target.DrawTriangles(r.verts, r.inds, ensureWhitePixel(), &op)
}
