package bento

import "time"

// FixedStep is the simulated duration of one update tick.
const FixedStep = time.Second / 60

// DefaultMinimumFPS is the frame rate below which catch-up drops time.
const DefaultMinimumFPS = 30

// FrameHost is the animation-frame primitive the main loop is scheduled on.
// RequestFrame must call fn once, later, from the game goroutine.
type FrameHost interface {
	Now() time.Time
	RequestFrame(fn func(now time.Time))
}

// Run starts the main loop on the configured FrameHost. Calling Run on a
// running manager does nothing unless force is set, in which case the loop
// restarts with a fresh clock. Panics when no host is configured.
func (m *ObjectManager) Run(force ...bool) {
	if m.running && !(len(force) > 0 && force[0]) {
		return
	}
	if m.host == nil {
		panic("bento: ObjectManager.Run without a FrameHost")
	}
	m.running = true
	// A new id orphans any frame requested by a previous run.
	m.loopID++
	m.lastTime = m.host.Now()
	m.cumulative = 0
	m.schedule(m.loopID)
}

// Stop halts the loop before its next scheduled frame.
func (m *ObjectManager) Stop() { m.running = false }

// IsRunning reports whether the loop is scheduled.
func (m *ObjectManager) IsRunning() bool { return m.running }

func (m *ObjectManager) schedule(id int) {
	m.host.RequestFrame(func(now time.Time) {
		if !m.running || id != m.loopID {
			return
		}
		m.MainLoop(now)
		if m.running && id == m.loopID {
			m.schedule(id)
		}
	})
}

// MainLoop advances the simulation to now and draws one frame. Updates run
// in FixedStep increments; leftover time carries over to the next call.
// When the backlog exceeds 1/MinimumFPS it is dropped after one update.
func (m *ObjectManager) MainLoop(now time.Time) {
	deltaT := now.Sub(m.lastTime)
	if deltaT < 0 {
		deltaT = 0
	}
	m.lastTime = now

	data := m.newData()
	data.DeltaT = deltaT

	if m.useDeltaT {
		m.cumulative = 0
		data.Speed = m.gameSpeed * float64(deltaT) / float64(FixedStep)
		m.Update(data)
	} else {
		m.cumulative += deltaT
		limit := time.Second / time.Duration(m.minimumFPS)
		for m.cumulative >= FixedStep {
			m.cumulative -= FixedStep
			if m.cumulative > limit {
				dropped := m.cumulative - m.cumulative%FixedStep
				m.cumulative %= FixedStep
				m.metrics.drop(dropped)
			}
			data.Speed = m.gameSpeed
			m.Update(data)
		}
	}

	m.cleanObjects()
	if m.sortMode == SortAlways {
		m.Sort()
	}
	m.Draw(data)
}
