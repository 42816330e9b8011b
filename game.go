package bento

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Game is the process-wide context: it owns every subsystem and implements
// ebiten.Game. Construct one with NewGame and start it with Run.
type Game struct {
	Settings Settings
	Logger   *zap.Logger

	Events   *EventSystem
	Input    *SortedEventSystem
	Pointers *Input
	Objects  *ObjectManager
	Viewport *Rectangle
	Renderer *EbitenRenderer
	Assets   *Assets
	Screens  *Screens
	Metrics  *Metrics
	Camera   *Camera

	host  *ebitenHost
	stats *FrameStats

	script          *Script
	screenshotQueue []string
}

// GameOption customizes NewGame.
type GameOption func(*gameOptions)

type gameOptions struct {
	assets   fs.FS
	logger   *zap.Logger
	registry prometheus.Registerer
}

// WithAssets makes Assets read from fsys.
func WithAssets(fsys fs.FS) GameOption {
	return func(o *gameOptions) { o.assets = fsys }
}

// WithLogger replaces the logger built from Settings.LogLevel.
func WithLogger(l *zap.Logger) GameOption {
	return func(o *gameOptions) { o.logger = l }
}

// WithMetrics registers the main loop metrics with reg.
func WithMetrics(reg prometheus.Registerer) GameOption {
	return func(o *gameOptions) { o.registry = reg }
}

// NewGame validates s and wires the subsystems together. The package logger
// is replaced with the game's logger.
func NewGame(s Settings, opts ...GameOption) (*Game, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	var o gameOptions
	for _, opt := range opts {
		opt(&o)
	}

	l := o.logger
	if l == nil {
		var err error
		if l, err = NewLogger(s.LogLevel); err != nil {
			return nil, fmt.Errorf("new game: %w", err)
		}
	}
	SetLogger(l)

	g := &Game{
		Settings: s,
		Logger:   l,
		Events:   NewEventSystem(),
		Input:    NewSortedEventSystem(),
		Viewport: &Rectangle{Width: float64(s.Width), Height: float64(s.Height)},
		Renderer: NewEbitenRenderer(nil),
		Assets:   NewAssets(o.assets),
		host:     newEbitenHost(),
	}
	if o.registry != nil {
		m, err := NewMetrics(o.registry)
		if err != nil {
			return nil, fmt.Errorf("new game: %w", err)
		}
		g.Metrics = m
	}

	cfg := s.ManagerConfig()
	cfg.Events = g.Events
	cfg.Renderer = g.Renderer
	cfg.Viewport = g.Viewport
	cfg.Host = g.host
	cfg.Metrics = g.Metrics
	g.Objects = NewObjectManager(cfg)
	g.Pointers = NewInput(g.Events, g.Input, g.Objects.Viewport)
	g.Screens = NewScreens(g.Objects)
	g.Camera = NewCamera(g.Viewport)
	g.Objects.Attach(g.Camera)

	if s.DebugStats {
		g.stats = NewFrameStats(g.Objects, DefaultStatsInterval)
	}
	if s.ShowFPS {
		g.Objects.Attach(NewFPSWidget())
	}
	return g, nil
}

// SetScript plays script from the next Update. nil stops the current one.
func (g *Game) SetScript(script *Script) { g.script = script }

// Update implements ebiten.Game. Simulation runs from Draw, driven by the
// frame host; Update only polls input.
func (g *Game) Update() error {
	if g.script != nil {
		g.script.step(g.Pointers, g.Screenshot)
	}
	g.Pointers.Poll()
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.Renderer.SetTarget(screen)
	g.Objects.SetCanvas(screen)
	g.host.frame(time.Now())
	g.flushScreenshots(screen)
}

// Layout implements ebiten.Game with a fixed logical canvas.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.Settings.Width, g.Settings.Height
}

// Run opens the window and blocks until it closes. The main loop starts
// before the first frame.
func Run(g *Game) error {
	ebiten.SetWindowTitle(g.Settings.Title)
	ebiten.SetWindowSize(int(float64(g.Settings.Width)*g.Settings.PixelSize), int(float64(g.Settings.Height)*g.Settings.PixelSize))
	g.Objects.Run()
	defer g.Objects.Stop()
	g.Logger.Info("starting game",
		zap.String("title", g.Settings.Title),
		zap.Int("width", g.Settings.Width),
		zap.Int("height", g.Settings.Height))
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// --- Frame host ---

// ebitenHost is a FrameHost driven by ebiten's Draw callback. A requested
// frame runs on the next Draw.
type ebitenHost struct {
	pending func(now time.Time)
}

func newEbitenHost() *ebitenHost { return &ebitenHost{} }

func (h *ebitenHost) Now() time.Time { return time.Now() }

func (h *ebitenHost) RequestFrame(fn func(now time.Time)) { h.pending = fn }

func (h *ebitenHost) frame(now time.Time) {
	fn := h.pending
	h.pending = nil
	if fn != nil {
		fn(now)
	}
}
