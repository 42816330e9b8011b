package bento

import (
	"testing"
	"time"
)

// fakeHost queues frame requests until the test delivers them.
type fakeHost struct {
	now     time.Time
	pending []func(time.Time)
}

func newFakeHost() *fakeHost {
	return &fakeHost{now: time.Unix(1000, 0)}
}

func (h *fakeHost) Now() time.Time { return h.now }

func (h *fakeHost) RequestFrame(fn func(time.Time)) { h.pending = append(h.pending, fn) }

// advance moves the clock by d and runs every queued frame.
func (h *fakeHost) advance(d time.Duration) {
	h.now = h.now.Add(d)
	frames := h.pending
	h.pending = nil
	for _, fn := range frames {
		fn(h.now)
	}
}

// tickCounter counts updates and records the speed it saw.
type tickCounter struct {
	Base
	ticks  int
	speeds []float64
}

func (c *tickCounter) Update(data *Data) {
	c.ticks++
	c.speeds = append(c.speeds, data.Speed)
}

func newLoop(cfg ManagerConfig) (*ObjectManager, *fakeHost, *tickCounter) {
	host := newFakeHost()
	cfg.Host = host
	m := NewObjectManager(cfg)
	c := &tickCounter{}
	m.Attach(c)
	return m, host, c
}

func TestRunWithoutHostPanics(t *testing.T) {
	m := NewObjectManager(ManagerConfig{})
	defer func() {
		if recover() == nil {
			t.Error("Run without a host did not panic")
		}
	}()
	m.Run()
}

func TestFixedStepDeterminism(t *testing.T) {
	m, host, c := newLoop(ManagerConfig{})
	m.Run()
	if !m.IsRunning() || len(host.pending) != 1 {
		t.Fatalf("running = %v, pending = %d", m.IsRunning(), len(host.pending))
	}

	host.advance(2 * FixedStep)
	if c.ticks != 2 {
		t.Errorf("ticks after two steps = %d, want 2", c.ticks)
	}

	// Half steps accumulate.
	host.advance(FixedStep / 2)
	if c.ticks != 2 {
		t.Errorf("ticks after half a step = %d, want 2", c.ticks)
	}
	host.advance(FixedStep / 2)
	if c.ticks != 3 {
		t.Errorf("ticks after the other half = %d, want 3", c.ticks)
	}
	if len(host.pending) != 1 {
		t.Errorf("pending frames = %d, want 1", len(host.pending))
	}
	for _, s := range c.speeds {
		if s != 1 {
			t.Errorf("speed = %v, want 1", s)
		}
	}
}

func TestStallDropsTime(t *testing.T) {
	m, host, c := newLoop(ManagerConfig{})
	m.Run()

	// Ten steps is far beyond 1/30s: the backlog is dropped after one update.
	host.advance(10 * FixedStep)
	if c.ticks != 1 {
		t.Errorf("ticks after stall = %d, want 1", c.ticks)
	}
	if m.cumulative != 0 {
		t.Errorf("cumulative = %v, want 0", m.cumulative)
	}

	// Two steps stays within the cap.
	host.advance(2 * FixedStep)
	if c.ticks != 3 {
		t.Errorf("ticks after recovery = %d, want 3", c.ticks)
	}
}

func TestMinimumFPSRaisesCap(t *testing.T) {
	m, host, c := newLoop(ManagerConfig{MinimumFPS: 1})
	m.Run()
	host.advance(10 * FixedStep)
	if c.ticks != 10 {
		t.Errorf("ticks = %d, want 10", c.ticks)
	}
}

func TestUseDeltaT(t *testing.T) {
	m, host, c := newLoop(ManagerConfig{UseDeltaT: true})
	m.SetGameSpeed(2)
	m.Run()

	host.advance(3 * FixedStep)
	if c.ticks != 1 {
		t.Fatalf("ticks = %d, want 1", c.ticks)
	}
	assertNear(t, "speed", c.speeds[0], 6)
}

func TestStop(t *testing.T) {
	m, host, c := newLoop(ManagerConfig{})
	m.Run()
	host.advance(FixedStep)

	m.Stop()
	host.advance(FixedStep)
	if c.ticks != 1 {
		t.Errorf("ticks after Stop = %d, want 1", c.ticks)
	}
	if m.IsRunning() || len(host.pending) != 0 {
		t.Errorf("running = %v, pending = %d", m.IsRunning(), len(host.pending))
	}
}

func TestRunTwiceIsIgnored(t *testing.T) {
	m, host, _ := newLoop(ManagerConfig{})
	m.Run()
	m.Run()
	if len(host.pending) != 1 {
		t.Errorf("pending frames = %d, want 1", len(host.pending))
	}
}

func TestForcedRunRestartsClock(t *testing.T) {
	m, host, c := newLoop(ManagerConfig{})
	m.Run()
	host.now = host.now.Add(5 * time.Second)

	m.Run(true)
	// The stale frame from the first run is ignored; the new one sees a
	// single step from the restarted clock.
	host.advance(FixedStep)
	if c.ticks != 1 {
		t.Errorf("ticks after forced run = %d, want 1", c.ticks)
	}
	if len(host.pending) != 1 {
		t.Errorf("pending frames = %d, want 1", len(host.pending))
	}
}

func TestMainLoopCompactsAndSorts(t *testing.T) {
	m, host, _ := newLoop(ManagerConfig{})
	a := NewEntity(EntityConfig{Name: "a", Z: 3, AddNow: m})
	NewEntity(EntityConfig{Name: "b", Z: 1, AddNow: m})
	m.Run()
	m.Remove(a)
	host.advance(FixedStep)

	if len(m.objects) != 2 {
		t.Fatalf("slots = %d, want 2", len(m.objects))
	}
	if nameOf(m.objects[0]) != "" || nameOf(m.objects[1]) != "b" {
		t.Errorf("order = %v", names(m.objects))
	}
}

func TestMainLoopNegativeDelta(t *testing.T) {
	m, _, c := newLoop(ManagerConfig{})
	m.lastTime = time.Unix(2000, 0)
	m.MainLoop(time.Unix(1000, 0))
	if c.ticks != 0 || m.cumulative != 0 {
		t.Errorf("ticks = %d cumulative = %v", c.ticks, m.cumulative)
	}
}
