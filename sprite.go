package bento

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Animation is a named frame sequence of a sprite sheet.
type Animation struct {
	Frames []int
	// Speed is frames advanced per tick. Defaults to 1 when zero.
	Speed float64
	// Loop restarts the sequence at BackTo after the last frame.
	Loop   bool
	BackTo int
	// OnComplete runs once when a non-looping animation reaches its end.
	OnComplete func()
}

// SpriteConfig configures NewSprite. Either Image or Assets with ImageName
// supplies the sheet; an image that is missing at draw time is skipped.
type SpriteConfig struct {
	Name      string
	Image     *ebiten.Image
	Assets    *Assets
	ImageName string

	// FrameWidth and FrameHeight select a cell of the sheet. Zero means the
	// whole image divided by FrameCountX and FrameCountY (default 1).
	FrameWidth, FrameHeight int
	FrameCountX, FrameCountY int
	Padding                  int

	Origin Vector2
	// OriginRelative, when set, overrides Origin as a fraction of the frame size.
	OriginRelative *Vector2

	Animations map[string]Animation
	// Animation is started on attach. "default" when empty and present.
	Animation string
}

// Sprite draws one frame of a sprite sheet at the entity origin.
type Sprite struct {
	Base

	cfg     SpriteConfig
	frameW  float64
	frameH  float64
	origin  Vector2
	current string
	anim    *Animation
	frame   float64
	done    bool
}

// NewSprite creates a sprite component.
func NewSprite(cfg SpriteConfig) *Sprite {
	s := &Sprite{cfg: cfg}
	s.Name = cfg.Name
	if s.Name == "" {
		s.Name = "sprite"
	}
	s.rootIndex = -1
	if s.cfg.FrameCountX < 1 {
		s.cfg.FrameCountX = 1
	}
	if s.cfg.FrameCountY < 1 {
		s.cfg.FrameCountY = 1
	}
	s.measure()
	start := cfg.Animation
	if start == "" {
		start = "default"
	}
	if _, ok := cfg.Animations[start]; ok {
		s.SetAnimation(start)
	}
	return s
}

func (s *Sprite) image() *ebiten.Image {
	if s.cfg.Image != nil {
		return s.cfg.Image
	}
	if s.cfg.Assets != nil && s.cfg.ImageName != "" {
		return s.cfg.Assets.GetImage(s.cfg.ImageName)
	}
	return nil
}

// measure derives the frame size and origin from the config and the image
// when one is available.
func (s *Sprite) measure() {
	fw, fh := float64(s.cfg.FrameWidth), float64(s.cfg.FrameHeight)
	if fw == 0 || fh == 0 {
		if img := s.image(); img != nil {
			b := img.Bounds()
			fw = float64(b.Dx()) / float64(s.cfg.FrameCountX)
			fh = float64(b.Dy()) / float64(s.cfg.FrameCountY)
		}
	}
	s.frameW, s.frameH = fw, fh
	s.origin = s.cfg.Origin
	if r := s.cfg.OriginRelative; r != nil {
		s.origin = Vector2{r.X * fw, r.Y * fh}
	}
}

// FrameSize returns the size of one frame.
func (s *Sprite) FrameSize() Vector2 { return Vector2{s.frameW, s.frameH} }

// Origin returns the point of the frame placed at the entity position.
func (s *Sprite) Origin() Vector2 { return s.origin }

// Attached sizes the parent's Dimension to one frame around the origin.
func (s *Sprite) Attached(data *Data) {
	s.measure()
	if e := s.parent; e != nil && s.frameW > 0 {
		e.Dimension = Rectangle{X: -s.origin.X, Y: -s.origin.Y, Width: s.frameW, Height: s.frameH}
	}
}

// SetAnimation switches to a named animation and rewinds it. Switching to
// the running animation does nothing.
func (s *Sprite) SetAnimation(name string) {
	if name == s.current && s.anim != nil {
		return
	}
	a, ok := s.cfg.Animations[name]
	if !ok {
		misuse("Sprite.SetAnimation", "unknown animation", zap.String("sprite", s.Name), zap.String("animation", name))
		return
	}
	if a.Speed == 0 {
		a.Speed = 1
	}
	if a.BackTo < 0 || (len(a.Frames) > 0 && a.BackTo >= len(a.Frames)) {
		misuse("Sprite.SetAnimation", "loop target out of range, looping from the start",
			zap.String("sprite", s.Name), zap.String("animation", name), zap.Int("back_to", a.BackTo))
		a.BackTo = 0
	}
	s.current = name
	s.anim = &a
	s.frame = 0
	s.done = false
}

// Animation returns the name of the running animation.
func (s *Sprite) Animation() string { return s.current }

// SetFrame jumps to a frame index of the running animation, clamped to range.
func (s *Sprite) SetFrame(i int) {
	if s.anim == nil || len(s.anim.Frames) == 0 {
		return
	}
	s.frame = float64(clampInt(i, 0, len(s.anim.Frames)-1))
	s.done = false
}

// Frame returns the index into the running animation's frame list.
func (s *Sprite) Frame() int { return int(s.frame) }

// Update advances the running animation by its speed scaled by the game speed.
func (s *Sprite) Update(data *Data) {
	a := s.anim
	if a == nil || s.done || len(a.Frames) == 0 {
		return
	}
	s.frame += a.Speed * data.Speed
	n := float64(len(a.Frames))
	if s.frame < n {
		return
	}
	if a.Loop {
		span := n - float64(a.BackTo)
		s.frame = float64(a.BackTo) + math.Mod(s.frame-n, span)
		return
	}
	s.frame = n - 1
	s.done = true
	if a.OnComplete != nil {
		a.OnComplete()
	}
}

// sheetIndex returns the sheet cell of the current frame.
func (s *Sprite) sheetIndex() int {
	if s.anim == nil || len(s.anim.Frames) == 0 {
		return 0
	}
	i := clampInt(int(s.frame), 0, len(s.anim.Frames)-1)
	cells := s.cfg.FrameCountX * s.cfg.FrameCountY
	return clampInt(s.anim.Frames[i], 0, cells-1)
}

// Draw draws the current frame. Nothing is drawn without an image.
func (s *Sprite) Draw(data *Data) {
	img := s.image()
	if img == nil {
		return
	}
	if s.frameW == 0 {
		s.measure()
	}
	cell := s.sheetIndex()
	col := cell % s.cfg.FrameCountX
	row := cell / s.cfg.FrameCountX
	pad := float64(s.cfg.Padding)
	sx := float64(col) * (s.frameW + pad)
	sy := float64(row) * (s.frameH + pad)
	data.Renderer.DrawImage(img, sx, sy, s.frameW, s.frameH, -s.origin.X, -s.origin.Y, s.frameW, s.frameH)
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
