package bento

import (
	"time"

	"go.uber.org/zap"
)

// DefaultStatsInterval is the number of frames FrameStats aggregates.
const DefaultStatsInterval = 60

// FrameStats times the update and draw passes of an ObjectManager through
// its lifecycle events and logs the averages at debug level.
type FrameStats struct {
	objects   *ObjectManager
	every     int
	listeners []*Listener

	frames      int
	ticks       int
	updateStart time.Time
	drawStart   time.Time
	updateTime  time.Duration
	drawTime    time.Duration

	// report receives each aggregate; logs when nil.
	report func(s FrameReport)
}

// FrameReport is one aggregate produced by FrameStats.
type FrameReport struct {
	Frames     int
	Ticks      int
	UpdateTime time.Duration // mean per tick
	DrawTime   time.Duration // mean per frame
	Objects    int
}

// NewFrameStats starts collecting stats for m, reporting every `every`
// frames (DefaultStatsInterval when below 1).
func NewFrameStats(m *ObjectManager, every int) *FrameStats {
	if every < 1 {
		every = DefaultStatsInterval
	}
	s := &FrameStats{objects: m, every: every}
	es := m.Events()
	s.listeners = []*Listener{
		es.On(EventPreUpdate, func(any) { s.updateStart = time.Now() }, s),
		es.On(EventPostUpdate, func(any) {
			s.updateTime += time.Since(s.updateStart)
			s.ticks++
		}, s),
		es.On(EventPreDraw, func(any) { s.drawStart = time.Now() }, s),
		es.On(EventPostDraw, func(any) {
			s.drawTime += time.Since(s.drawStart)
			s.frames++
			if s.frames >= s.every {
				s.flush()
			}
		}, s),
	}
	return s
}

// Stop removes the stats listeners.
func (s *FrameStats) Stop() {
	for _, l := range s.listeners {
		l.Off()
	}
	s.listeners = nil
}

func (s *FrameStats) flush() {
	r := FrameReport{
		Frames:   s.frames,
		Ticks:    s.ticks,
		DrawTime: s.drawTime / time.Duration(s.frames),
		Objects:  s.objects.liveCount(),
	}
	if s.ticks > 0 {
		r.UpdateTime = s.updateTime / time.Duration(s.ticks)
	}
	s.frames, s.ticks = 0, 0
	s.updateTime, s.drawTime = 0, 0

	if s.report != nil {
		s.report(r)
		return
	}
	logger.Debug("frame stats",
		zap.Int("frames", r.Frames),
		zap.Int("ticks", r.Ticks),
		zap.Duration("update", r.UpdateTime),
		zap.Duration("draw", r.DrawTime),
		zap.Int("objects", r.Objects),
	)
}
