package bento

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// scriptStep is one action of an input script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `yaml:"steps"`
}

// Script plays injected pointer input and screenshots across frames, for
// automated visual checks. Attach it with Game.SetScript.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// errEmptyScript is returned for a script without steps.
var errEmptyScript = errors.New("no steps")

// LoadScript parses a YAML (or JSON) script of the form
//
//	steps:
//	  - {action: click, x: 100, y: 200}
//	  - {action: wait, frames: 3}
//	  - {action: screenshot, label: after-click}
//
// Actions are click, drag (fromX, fromY, toX, toY, frames), wait (frames)
// and screenshot (label).
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", errEmptyScript)
	}
	return &Script{steps: f.Steps}, nil
}

// Done reports whether every step has run.
func (s *Script) Done() bool { return s.done }

// step advances the script by one frame. It waits for injected input to
// drain before running the next action.
func (s *Script) step(in *Input, screenshot func(label string)) {
	if s.done || in.Injected() > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "screenshot":
		if screenshot != nil {
			screenshot(st.Label)
		}
	case "click":
		in.InjectClick(st.X, st.Y)
	case "drag":
		in.InjectDrag(Vector2{st.FromX, st.FromY}, Vector2{st.ToX, st.ToY}, st.Frames)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		misuse("Script.step", "unknown script action", zap.String("action", st.Action), zap.Int("step", s.cursor-1))
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && in.Injected() == 0 {
		s.done = true
	}
}
