package bento

import "go.uber.org/zap"

// Screen is one state of the game, such as a title or a level.
type Screen interface {
	// OnShow populates the ObjectManager. data is the value passed to Show.
	OnShow(data any)
	// OnHide runs before the screen's objects are removed.
	OnHide(data any)
}

// ScreenFuncs adapts plain functions to Screen. Nil functions are skipped.
type ScreenFuncs struct {
	Show func(data any)
	Hide func(data any)
}

func (s ScreenFuncs) OnShow(data any) {
	if s.Show != nil {
		s.Show(data)
	}
}

func (s ScreenFuncs) OnHide(data any) {
	if s.Hide != nil {
		s.Hide(data)
	}
}

// Screens switches between registered screens. Showing a screen removes
// every non-global object first.
type Screens struct {
	objects *ObjectManager
	screens map[string]Screen

	current     string
	currentData any
}

// NewScreens creates a screen switcher over objects.
func NewScreens(objects *ObjectManager) *Screens {
	return &Screens{objects: objects, screens: make(map[string]Screen)}
}

// Register adds a screen under name, replacing any previous one.
func (s *Screens) Register(name string, screen Screen) {
	if screen == nil {
		misuse("Screens.Register", "trying to register a nil screen", zap.String("screen", name))
		return
	}
	s.screens[name] = screen
}

// Current returns the name of the shown screen, or "".
func (s *Screens) Current() string { return s.current }

// Show hides the current screen, clears the non-global objects and shows
// the named one. Unknown names are logged and ignored.
func (s *Screens) Show(name string, data any) {
	screen, ok := s.screens[name]
	if !ok {
		misuse("Screens.Show", "unknown screen", zap.String("screen", name))
		return
	}
	s.Hide(data)
	s.current = name
	s.currentData = data
	logger.Debug("show screen", zap.String("screen", name))
	screen.OnShow(data)
}

// Hide hides the current screen and removes every non-global object.
func (s *Screens) Hide(data any) {
	if s.current == "" {
		return
	}
	s.screens[s.current].OnHide(data)
	s.objects.RemoveAll(false)
	s.current = ""
	s.currentData = nil
}

// Reload shows the current screen again with the data it was shown with.
// Panics when no screen has been shown.
func (s *Screens) Reload() {
	if s.current == "" {
		panic("bento: Screens.Reload before any screen was shown")
	}
	name, data := s.current, s.currentData
	s.Show(name, data)
}
