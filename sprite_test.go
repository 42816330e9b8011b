package bento

import "testing"

func newTestSprite(anims map[string]Animation) *Sprite {
	return NewSprite(SpriteConfig{
		FrameWidth:     16,
		FrameHeight:    8,
		FrameCountX:    4,
		FrameCountY:    2,
		OriginRelative: &Vector2{0.5, 1},
		Animations:     anims,
	})
}

func advance(s *Sprite, n int) {
	data := &Data{Speed: 1}
	for i := 0; i < n; i++ {
		s.Update(data)
	}
}

func TestSpriteLoopsBackTo(t *testing.T) {
	s := newTestSprite(map[string]Animation{
		"default": {Frames: []int{0, 1, 2}, Loop: true, BackTo: 1},
	})
	if s.Animation() != "default" {
		t.Fatalf("start animation = %q", s.Animation())
	}

	var frames []int
	for i := 0; i < 5; i++ {
		advance(s, 1)
		frames = append(frames, s.Frame())
	}
	want := []int{1, 2, 1, 2, 1}
	for i := range want {
		if frames[i] != want[i] {
			t.Fatalf("frames = %v, want %v", frames, want)
		}
	}
}

func TestSpriteCompletes(t *testing.T) {
	var completed int
	s := newTestSprite(map[string]Animation{
		"die": {Frames: []int{5, 6}, Speed: 0.5, OnComplete: func() { completed++ }},
	})
	if s.Animation() != "" {
		t.Errorf("started %q without a default", s.Animation())
	}
	s.SetAnimation("die")

	advance(s, 3)
	if completed != 0 || s.Frame() != 1 {
		t.Fatalf("completed = %d frame = %d", completed, s.Frame())
	}
	advance(s, 1)
	advance(s, 5)
	if completed != 1 || s.Frame() != 1 {
		t.Errorf("completed = %d frame = %d", completed, s.Frame())
	}
	if got := s.sheetIndex(); got != 6 {
		t.Errorf("sheet index = %d, want 6", got)
	}

	// Re-selecting the running animation does not rewind it.
	s.SetAnimation("die")
	if s.Frame() != 1 {
		t.Errorf("frame after reselect = %d", s.Frame())
	}
}

func TestSpriteSetFrame(t *testing.T) {
	s := newTestSprite(map[string]Animation{"default": {Frames: []int{0, 1, 2}}})
	s.SetFrame(10)
	if s.Frame() != 2 {
		t.Errorf("SetFrame(10) = %d, want 2", s.Frame())
	}
	s.SetFrame(-3)
	if s.Frame() != 0 {
		t.Errorf("SetFrame(-3) = %d, want 0", s.Frame())
	}
}

func TestSpriteMisuse(t *testing.T) {
	logs := observeLogs(t)
	s := newTestSprite(map[string]Animation{
		"default": {Frames: []int{0}},
		"bad":     {Frames: []int{0, 1}, Loop: true, BackTo: 5},
	})
	s.SetAnimation("missing")
	if s.Animation() != "default" {
		t.Errorf("unknown animation replaced %q", s.Animation())
	}
	s.SetAnimation("bad")
	if s.anim.BackTo != 0 {
		t.Errorf("BackTo = %d, want 0", s.anim.BackTo)
	}
	if logs.Len() != 2 {
		t.Errorf("warnings = %d, want 2", logs.Len())
	}
}

func TestSpriteSizesEntity(t *testing.T) {
	s := newTestSprite(nil)
	assertVec(t, "frame size", s.FrameSize(), Vector2{16, 8})
	assertVec(t, "origin", s.Origin(), Vector2{8, 8})

	e := NewEntity(EntityConfig{Position: Vector2{100, 100}})
	e.Attach(s)
	if e.Dimension != NewRectangle(-8, -8, 16, 8) {
		t.Errorf("Dimension = %v", e.Dimension)
	}
	if got := e.GetBoundingBox(); got != NewRectangle(92, 92, 16, 8) {
		t.Errorf("bounding box = %v", got)
	}
}
