package bento

import "github.com/hajimehoshi/ebiten/v2"

// injectedPointer is one synthetic mouse sample. Positions are canvas
// coordinates, converted to world space the same way real input is.
type injectedPointer struct {
	screen  Vector2
	pressed bool
}

// InjectPress queues a left-button press at the given canvas position. The
// sample replaces real mouse input on the next Poll.
func (in *Input) InjectPress(x, y float64) {
	in.injectQueue = append(in.injectQueue, injectedPointer{screen: Vector2{x, y}, pressed: true})
}

// InjectMove queues a move with the button held. Use it between InjectPress
// and InjectRelease to drag.
func (in *Input) InjectMove(x, y float64) {
	in.injectQueue = append(in.injectQueue, injectedPointer{screen: Vector2{x, y}, pressed: true})
}

// InjectRelease queues a release at the given canvas position.
func (in *Input) InjectRelease(x, y float64) {
	in.injectQueue = append(in.injectQueue, injectedPointer{screen: Vector2{x, y}})
}

// InjectClick queues a press and a release at the same position. Consumes
// two polls.
func (in *Input) InjectClick(x, y float64) {
	in.InjectPress(x, y)
	in.InjectRelease(x, y)
}

// InjectDrag queues a press at from, frames-2 evenly spaced moves and a
// release at to. The sequence consumes frames polls, at least two.
func (in *Input) InjectDrag(from, to Vector2, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectPress(from.X, from.Y)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		p := from.Lerp(to, float64(i)/float64(steps+1))
		in.InjectMove(p.X, p.Y)
	}
	in.InjectRelease(to.X, to.Y)
}

// Injected returns the number of synthetic samples still queued.
func (in *Input) Injected() int { return len(in.injectQueue) }

// pollInjected feeds one queued sample to pointer 0. Returns false when the
// queue is empty and the real mouse should be read.
func (in *Input) pollInjected() bool {
	if len(in.injectQueue) == 0 {
		return false
	}
	ev := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]
	in.Pointer(0, ev.screen, ev.pressed, ebiten.MouseButtonLeft)
	return true
}
