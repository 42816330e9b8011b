package bento

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// Pointer events fired on both the EventSystem and the SortedEventSystem.
// The event data is a *PointerEvent.
const (
	EventPointerDown = "pointerDown"
	EventPointerMove = "pointerMove"
	EventPointerUp   = "pointerUp"
)

// PointerEvent describes one pointer transition.
type PointerEvent struct {
	// ID is 0 for the mouse and 1-9 for touches.
	ID int
	// Screen is the canvas position; World adds the viewport scroll.
	Screen Vector2
	World  Vector2
	Button ebiten.MouseButton
}

// --- Per-pointer state ---

type pointerState struct {
	down   bool
	seen   bool
	last   Vector2
	button ebiten.MouseButton
}

// Input turns ebiten mouse and touch state into pointer events.
type Input struct {
	events   *EventSystem
	sorted   *SortedEventSystem
	viewport func() *Rectangle

	pointers  [maxPointers]pointerState
	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool
	touchIDs  []ebiten.TouchID

	injectQueue []injectedPointer
}

// NewInput creates an input bridge firing on events and sorted. viewport
// returns the current camera rectangle and may return nil.
func NewInput(events *EventSystem, sorted *SortedEventSystem, viewport func() *Rectangle) *Input {
	return &Input{events: events, sorted: sorted, viewport: viewport}
}

// Poll reads the mouse and touch state. Call it once per ebiten update.
// A queued injected sample takes the place of the mouse.
func (in *Input) Poll() {
	if !in.pollInjected() {
		in.pollMouse()
	}
	in.pollTouches()
}

// IsDown reports whether pointer id is pressed.
func (in *Input) IsDown(id int) bool {
	if id < 0 || id >= maxPointers {
		return false
	}
	return in.pointers[id].down
}

// Position returns the last canvas position of pointer id.
func (in *Input) Position(id int) Vector2 {
	if id < 0 || id >= maxPointers {
		return Vector2{}
	}
	return in.pointers[id].last
}

func (in *Input) pollMouse() {
	mx, my := ebiten.CursorPosition()
	pressed := false
	button := in.pointers[0].button
	if !in.pointers[0].down {
		switch {
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
			pressed, button = true, ebiten.MouseButtonLeft
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
			pressed, button = true, ebiten.MouseButtonRight
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
			pressed, button = true, ebiten.MouseButtonMiddle
		}
	} else {
		// Keep the button that started the press.
		pressed = ebiten.IsMouseButtonPressed(button)
	}
	in.Pointer(0, Vector2{float64(mx), float64(my)}, pressed, button)
}

func (in *Input) pollTouches() {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])

	var active [maxPointers]bool
	for _, tid := range in.touchIDs {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		in.Pointer(slot, Vector2{float64(tx), float64(ty)}, true, ebiten.MouseButtonLeft)
	}

	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !active[i] {
			in.Pointer(i, in.pointers[i].last, false, ebiten.MouseButtonLeft)
			in.touchUsed[i] = false
			in.touchMap[i] = 0
			in.pointers[i].seen = false
		}
	}
}

// touchSlot maps a touch id to a pointer slot, allocating one if needed.
// Returns -1 when every slot is taken.
func (in *Input) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// Pointer runs the state machine for a single pointer and fires the
// resulting events. Poll feeds it from ebiten; tests call it directly.
func (in *Input) Pointer(id int, screen Vector2, pressed bool, button ebiten.MouseButton) {
	if id < 0 || id >= maxPointers {
		return
	}
	ps := &in.pointers[id]
	moved := !ps.seen || !ps.last.Equals(screen)
	ps.seen = true
	ps.last = screen

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		in.fire(EventPointerDown, id, screen, button)
	case !pressed && ps.down:
		ps.down = false
		in.fire(EventPointerUp, id, screen, ps.button)
	case moved:
		in.fire(EventPointerMove, id, screen, ps.button)
	}
}

func (in *Input) fire(name string, id int, screen Vector2, button ebiten.MouseButton) {
	ev := &PointerEvent{ID: id, Screen: screen, World: screen, Button: button}
	if in.viewport != nil {
		if v := in.viewport(); v != nil {
			ev.World = screen.Add(v.GetCorner(CornerTopLeft))
		}
	}
	if in.events != nil {
		in.events.Fire(name, ev)
	}
	if in.sorted != nil {
		in.sorted.Fire(name, ev)
	}
}
