package bento

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// pointerLog records pointer events in the order they fire.
type pointerLog struct {
	got []*PointerEvent
	ops []string
}

func watchPointers(es *EventSystem) *pointerLog {
	pl := &pointerLog{}
	for _, name := range []string{EventPointerDown, EventPointerMove, EventPointerUp} {
		es.On(name, func(data any) {
			pl.ops = append(pl.ops, name)
			pl.got = append(pl.got, data.(*PointerEvent))
		}, nil)
	}
	return pl
}

func TestPointerStateMachine(t *testing.T) {
	es := NewEventSystem()
	pl := watchPointers(es)
	viewport := &Rectangle{X: 100, Y: 50, Width: 320, Height: 240}
	in := NewInput(es, nil, func() *Rectangle { return viewport })

	in.Pointer(0, Vector2{10, 10}, false, ebiten.MouseButtonLeft)
	in.Pointer(0, Vector2{10, 10}, false, ebiten.MouseButtonLeft)
	in.Pointer(0, Vector2{10, 10}, true, ebiten.MouseButtonRight)
	in.Pointer(0, Vector2{12, 10}, true, ebiten.MouseButtonLeft)
	in.Pointer(0, Vector2{12, 10}, false, ebiten.MouseButtonLeft)

	assertCalls(t, "events", pl.ops, EventPointerMove, EventPointerDown, EventPointerMove, EventPointerUp)
	down := pl.got[1]
	assertVec(t, "world", down.World, Vector2{110, 60})
	assertVec(t, "screen", down.Screen, Vector2{10, 10})
	if down.Button != ebiten.MouseButtonRight || pl.got[3].Button != ebiten.MouseButtonRight {
		t.Errorf("press button not kept: %v / %v", down.Button, pl.got[3].Button)
	}
	if in.IsDown(0) || in.Position(0) != (Vector2{12, 10}) {
		t.Errorf("down = %v position = %v", in.IsDown(0), in.Position(0))
	}
}

func TestPointerOutOfRange(t *testing.T) {
	es := NewEventSystem()
	pl := watchPointers(es)
	in := NewInput(es, nil, nil)
	in.Pointer(maxPointers, Vector2{}, true, ebiten.MouseButtonLeft)
	in.Pointer(-1, Vector2{}, true, ebiten.MouseButtonLeft)
	if len(pl.ops) != 0 || in.IsDown(-1) || in.Position(maxPointers) != (Vector2{}) {
		t.Errorf("out of range pointer fired %v", pl.ops)
	}
}

func TestPointerFiresSortedToo(t *testing.T) {
	sorted := NewSortedEventSystem()
	var got []Vector2
	sorted.On(EventPointerDown, newTag("t"), func(data any) {
		got = append(got, data.(*PointerEvent).World)
	})
	in := NewInput(nil, sorted, func() *Rectangle { return nil })
	in.Pointer(2, Vector2{5, 6}, true, ebiten.MouseButtonLeft)
	if len(got) != 1 || got[0] != (Vector2{5, 6}) {
		t.Errorf("sorted events = %v", got)
	}
}

func TestInjectedClick(t *testing.T) {
	es := NewEventSystem()
	pl := watchPointers(es)
	in := NewInput(es, nil, nil)

	in.InjectClick(30, 40)
	if in.Injected() != 2 {
		t.Fatalf("queued = %d, want 2", in.Injected())
	}
	for in.pollInjected() {
	}
	assertCalls(t, "click", pl.ops, EventPointerDown, EventPointerUp)
	assertVec(t, "position", pl.got[0].Screen, Vector2{30, 40})
	if in.pollInjected() {
		t.Error("empty queue reported a sample")
	}
}

func TestInjectedDrag(t *testing.T) {
	es := NewEventSystem()
	pl := watchPointers(es)
	in := NewInput(es, nil, nil)

	in.InjectDrag(Vector2{0, 0}, Vector2{30, 0}, 4)
	if in.Injected() != 4 {
		t.Fatalf("queued = %d, want 4", in.Injected())
	}
	for in.pollInjected() {
	}
	assertCalls(t, "drag", pl.ops, EventPointerDown, EventPointerMove, EventPointerMove, EventPointerUp)
	assertVec(t, "first move", pl.got[1].Screen, Vector2{10, 0})
	assertVec(t, "second move", pl.got[2].Screen, Vector2{20, 0})

	in.InjectDrag(Vector2{}, Vector2{1, 1}, 0)
	if in.Injected() != 2 {
		t.Errorf("short drag queued %d, want 2", in.Injected())
	}
}
