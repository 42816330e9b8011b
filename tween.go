package bento

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenConfig configures NewTween. Durations are in update ticks and are
// scaled by the game speed.
type TweenConfig struct {
	Name     string
	From, To float64
	// In is the duration in ticks. Values below 1 complete on the first update.
	In    float64
	Ease  ease.TweenFunc // ease.Linear when nil
	Delay float64        // ticks to wait before the first step

	// OnUpdate receives the current value and the elapsed ticks.
	OnUpdate   func(value, elapsed float64)
	OnComplete func()

	// Stay keeps the tween registered after it completes.
	Stay             bool
	UpdateWhenPaused int
}

// Tween interpolates a value over a number of update ticks. It is a
// top-level object: attach it to an ObjectManager to run it.
type Tween struct {
	Base

	tween            *gween.Tween
	onUpdate         func(value, elapsed float64)
	onComplete       func()
	delay            float64
	elapsed          float64
	stay             bool
	updateWhenPaused int

	running bool
	done    bool
	value   float64
}

// NewTween creates a running tween. It does nothing until attached.
func NewTween(cfg TweenConfig) *Tween {
	fn := cfg.Ease
	if fn == nil {
		fn = ease.Linear
	}
	in := cfg.In
	if in < 1 {
		in = 1
	}
	t := &Tween{
		tween:            gween.New(float32(cfg.From), float32(cfg.To), float32(in), fn),
		onUpdate:         cfg.OnUpdate,
		onComplete:       cfg.OnComplete,
		delay:            cfg.Delay,
		stay:             cfg.Stay,
		updateWhenPaused: cfg.UpdateWhenPaused,
		running:          true,
		value:            cfg.From,
	}
	t.Name = cfg.Name
	t.rootIndex = -1
	return t
}

// Update advances the tween by data.Speed ticks.
func (t *Tween) Update(data *Data) {
	if !t.running || t.done {
		return
	}
	step := data.Speed
	if t.delay > 0 {
		t.delay -= step
		if t.delay > 0 {
			return
		}
		// Carry the part of the step left over after the delay.
		step = -t.delay
		t.delay = 0
	}
	t.elapsed += step
	v, finished := t.tween.Update(float32(step))
	t.value = float64(v)
	if t.onUpdate != nil {
		t.onUpdate(t.value, t.elapsed)
	}
	if !finished {
		return
	}
	t.done = true
	t.running = false
	if t.onComplete != nil {
		t.onComplete()
	}
	if !t.stay && t.manager != nil {
		t.manager.Remove(t)
	}
}

// Value returns the most recent interpolated value.
func (t *Tween) Value() float64 { return t.value }

// Elapsed returns the ticks advanced so far, excluding the delay.
func (t *Tween) Elapsed() float64 { return t.elapsed }

// IsDone reports whether the tween has completed.
func (t *Tween) IsDone() bool { return t.done }

// IsRunning reports whether the tween advances on update.
func (t *Tween) IsRunning() bool { return t.running }

// Pause stops the tween from advancing.
func (t *Tween) Pause() { t.running = false }

// Resume continues a paused tween.
func (t *Tween) Resume() {
	if !t.done {
		t.running = true
	}
}

// Stop halts the tween without completing it and unregisters it.
func (t *Tween) Stop() {
	t.running = false
	if t.manager != nil {
		t.manager.Remove(t)
	}
}

// UpdateWhenPaused returns the pause bypass level.
func (t *Tween) UpdateWhenPaused() int { return t.updateWhenPaused }

// --- Convenience constructors ---

// TweenPosition moves e to the given position and attaches the tween to m.
func TweenPosition(m *ObjectManager, e *Entity, to Vector2, in float64, fn ease.TweenFunc) *Tween {
	from := e.Position
	t := NewTween(TweenConfig{
		From: 0,
		To:   1,
		In:   in,
		Ease: fn,
		OnUpdate: func(v, _ float64) {
			e.Position = from.Lerp(to, v)
		},
	})
	m.Attach(t)
	return t
}

// TweenAlpha fades e to the given alpha and attaches the tween to m.
func TweenAlpha(m *ObjectManager, e *Entity, to float64, in float64, fn ease.TweenFunc) *Tween {
	t := NewTween(TweenConfig{
		From: e.Alpha,
		To:   to,
		In:   in,
		Ease: fn,
		OnUpdate: func(v, _ float64) {
			e.Alpha = v
		},
	})
	m.Attach(t)
	return t
}

// TweenRotation rotates e to the given angle and attaches the tween to m.
func TweenRotation(m *ObjectManager, e *Entity, to float64, in float64, fn ease.TweenFunc) *Tween {
	t := NewTween(TweenConfig{
		From: e.Rotation(),
		To:   to,
		In:   in,
		Ease: fn,
		OnUpdate: func(v, _ float64) {
			e.SetRotation(v)
		},
	})
	m.Attach(t)
	return t
}
