package bento

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for the camera center.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera moves a viewport rectangle: following an entity, scrolling to a
// point and clamping to world bounds. Attach it to the ObjectManager that
// shares the viewport; it runs every update like any other object.
type Camera struct {
	Base

	viewport *Rectangle

	followTarget *Entity
	followOffset Vector2
	followLerp   float64

	// BoundsEnabled clamps the viewport inside Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the viewport is clamped to.
	Bounds Rectangle

	updateWhenPaused int
	scrollTween      *scrollAnim
}

// NewCamera creates a camera driving viewport.
func NewCamera(viewport *Rectangle) *Camera {
	c := &Camera{viewport: viewport}
	c.Name = "camera"
	c.rootIndex = -1
	return c
}

// Viewport returns the rectangle the camera drives.
func (c *Camera) Viewport() *Rectangle { return c.viewport }

// Center returns the world-space center of the viewport.
func (c *Camera) Center() Vector2 { return c.viewport.GetCenter() }

// CenterOn moves the viewport so its center is at p.
func (c *Camera) CenterOn(p Vector2) {
	c.viewport.X = p.X - c.viewport.Width/2
	c.viewport.Y = p.Y - c.viewport.Height/2
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// Follow makes the camera track e with the given offset and lerp factor.
// A lerp of 1 snaps immediately; lower values give smoother following.
func (c *Camera) Follow(e *Entity, offset Vector2, lerp float64) {
	c.followTarget = e
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking the current target.
func (c *Camera) Unfollow() { c.followTarget = nil }

// ScrollTo animates the viewport center to p over the given ticks.
func (c *Camera) ScrollTo(p Vector2, in float64, fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.Linear
	}
	if in < 1 {
		in = 1
	}
	center := c.Center()
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(center.X), float32(p.X), float32(in), fn),
		tweenY: gween.New(float32(center.Y), float32(p.Y), float32(in), fn),
	}
}

// IsScrolling reports whether a ScrollTo animation is running.
func (c *Camera) IsScrolling() bool { return c.scrollTween != nil }

// SetBounds enables bounds clamping.
func (c *Camera) SetBounds(bounds Rectangle) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables bounds clamping.
func (c *Camera) ClearBounds() { c.BoundsEnabled = false }

// SetUpdateWhenPaused lets the camera keep moving while the game is paused.
func (c *Camera) SetUpdateWhenPaused(level int) { c.updateWhenPaused = level }

// UpdateWhenPaused returns the pause bypass level.
func (c *Camera) UpdateWhenPaused() int { return c.updateWhenPaused }

// IsGlobal keeps the camera registered across screen changes.
func (c *Camera) IsGlobal() bool { return true }

// Update advances follow, scroll, and bounds clamping.
func (c *Camera) Update(data *Data) {
	if c.viewport == nil {
		return
	}
	center := c.Center()

	if t := c.followTarget; t != nil {
		if !t.IsAdded() {
			c.followTarget = nil
		} else {
			target := t.ToWorldPosition(Vector2{}).Add(c.followOffset)
			center.AddTo(target.Subtract(center).ScalarMultiply(c.followLerp))
		}
	}

	if s := c.scrollTween; s != nil {
		dt := float32(data.Speed)
		if !s.doneX {
			v, done := s.tweenX.Update(dt)
			center.X = float64(v)
			s.doneX = done
		}
		if !s.doneY {
			v, done := s.tweenY.Update(dt)
			center.Y = float64(v)
			s.doneY = done
		}
		if s.doneX && s.doneY {
			c.scrollTween = nil
		}
	}

	c.CenterOn(center)
}

// clampToBounds keeps the viewport within Bounds. An axis on which the
// viewport is larger than the bounds is centered instead.
func (c *Camera) clampToBounds() {
	v, b := c.viewport, c.Bounds
	if v.Width >= b.Width {
		v.X = b.X + (b.Width-v.Width)/2
	} else {
		v.X = min(max(v.X, b.X), b.Right()-v.Width)
	}
	if v.Height >= b.Height {
		v.Y = b.Y + (b.Height-v.Height)/2
	} else {
		v.Y = min(max(v.Y, b.Y), b.Bottom()-v.Height)
	}
}
