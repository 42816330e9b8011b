package bento

import (
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// SortMode controls when the top-level registry is re-sorted by z.
type SortMode int

const (
	SortAlways SortMode = iota // re-sort after every update
	SortNever                  // never re-sort automatically
	SortOnAdd                  // re-sort whenever an object is attached
)

// String returns the settings-file name of the mode.
func (s SortMode) String() string {
	switch s {
	case SortAlways:
		return "always"
	case SortNever:
		return "never"
	case SortOnAdd:
		return "sort_on_add"
	default:
		return "unknown"
	}
}

// Lifecycle events fired on the manager's EventSystem. The event data is the
// frame *Data.
const (
	EventPreUpdate    = "preUpdate"
	EventPostUpdate   = "postUpdate"
	EventPreDraw      = "preDraw"
	EventPreDrawLoop  = "preDrawLoop"
	EventPostDrawLoop = "postDrawLoop"
	EventPostDraw     = "postDraw"
)

// ManagerConfig configures NewObjectManager. Zero values select defaults.
type ManagerConfig struct {
	// Events receives the lifecycle events. A fresh EventSystem when nil.
	Events *EventSystem
	// Renderer is handed to draw hooks. NopRenderer when nil.
	Renderer Renderer
	// Viewport is the camera rectangle. It is read, never written.
	Viewport *Rectangle
	// Host schedules frames for Run. Required only by Run.
	Host FrameHost
	// Canvas and CanvasScale are copied into every frame Data.
	Canvas      *ebiten.Image
	CanvasScale Vector2

	// MinimumFPS bounds catch-up; a stall longer than 1/MinimumFPS drops
	// simulation time. Defaults to DefaultMinimumFPS.
	MinimumFPS int
	// UseDeltaT runs one update per frame with a delta-scaled speed instead
	// of fixed steps.
	UseDeltaT    bool
	SortMode     SortMode
	UnstableSort bool
	SubPixel     bool

	Metrics *Metrics
	// IsolateFaults recovers panics raised by a top-level update or draw
	// hook, logs them and continues with the next object.
	IsolateFaults bool
}

// ObjectManager owns the flat registry of top-level objects, the family
// index and the main loop.
type ObjectManager struct {
	events        *EventSystem
	renderer      Renderer
	viewport      *Rectangle
	host          FrameHost
	canvas        *ebiten.Image
	canvasScale   Vector2
	minimumFPS    int
	useDeltaT     bool
	sortMode      SortMode
	unstableSort  bool
	subPixel      bool
	metrics       *Metrics
	isolateFaults bool

	objects  []Component
	families map[string]*Family

	paused    int
	gameSpeed float64

	// loop state
	running    bool
	loopID     int
	lastTime   time.Time
	cumulative time.Duration

	updating    bool
	sortPending bool
}

// NewObjectManager creates a manager from cfg.
func NewObjectManager(cfg ManagerConfig) *ObjectManager {
	m := &ObjectManager{
		events:        cfg.Events,
		renderer:      cfg.Renderer,
		viewport:      cfg.Viewport,
		host:          cfg.Host,
		canvas:        cfg.Canvas,
		canvasScale:   cfg.CanvasScale,
		minimumFPS:    cfg.MinimumFPS,
		useDeltaT:     cfg.UseDeltaT,
		sortMode:      cfg.SortMode,
		unstableSort:  cfg.UnstableSort,
		subPixel:      cfg.SubPixel,
		metrics:       cfg.Metrics,
		isolateFaults: cfg.IsolateFaults,
		families:      make(map[string]*Family),
		gameSpeed:     1,
	}
	if m.events == nil {
		m.events = NewEventSystem()
	}
	if m.renderer == nil {
		m.renderer = NopRenderer{}
	}
	if m.minimumFPS <= 0 {
		m.minimumFPS = DefaultMinimumFPS
	}
	if m.canvasScale == (Vector2{}) {
		m.canvasScale = Vector2{1, 1}
	}
	return m
}

// --- Accessors ---

// Events returns the EventSystem lifecycle events are fired on.
func (m *ObjectManager) Events() *EventSystem { return m.events }

// Renderer returns the renderer handed to draw hooks.
func (m *ObjectManager) Renderer() Renderer { return m.renderer }

// SetRenderer replaces the renderer. nil installs NopRenderer.
func (m *ObjectManager) SetRenderer(r Renderer) {
	if r == nil {
		r = NopRenderer{}
	}
	m.renderer = r
}

// Viewport returns the camera rectangle, or nil.
func (m *ObjectManager) Viewport() *Rectangle { return m.viewport }

// SetViewport replaces the camera rectangle.
func (m *ObjectManager) SetViewport(v *Rectangle) { m.viewport = v }

// SetCanvas sets the image copied into Data.Canvas.
func (m *ObjectManager) SetCanvas(img *ebiten.Image) { m.canvas = img }

// SetHost replaces the frame host. Takes effect at the next Run.
func (m *ObjectManager) SetHost(h FrameHost) { m.host = h }

// newData returns a frame context for the current settings.
func (m *ObjectManager) newData() *Data {
	return &Data{
		Canvas:      m.canvas,
		Renderer:    m.renderer,
		CanvasScale: m.canvasScale,
		Viewport:    m.viewport,
		Speed:       m.gameSpeed,
		SubPixel:    m.subPixel,
	}
}

// NewData returns a fresh frame context carrying the manager's canvas,
// renderer, viewport and game speed.
func (m *ObjectManager) NewData() *Data { return m.newData() }

// --- Registry ---

// Attach registers a top-level object. Objects already attached anywhere are
// rejected. Hooks run in the order Init, Start, Attached.
func (m *ObjectManager) Attach(obj Component) {
	if isNil(obj) {
		misuse("ObjectManager.Attach", "trying to attach a nil object")
		return
	}
	b := obj.base()
	if b.added || b.parent != nil {
		misuse("ObjectManager.Attach", "object is already attached", componentFields("object", obj)...)
		return
	}

	b.rootIndex = len(m.objects)
	b.added = true
	b.manager = m
	m.objects = append(m.objects, obj)
	graphVersion++

	data := m.newData()
	if e, ok := obj.(*Entity); ok {
		data.Entity = e
	}
	if h, ok := obj.(Initializer); ok {
		h.Init(data)
	}
	if h, ok := obj.(Starter); ok {
		h.Start(data)
	}
	if h, ok := obj.(Attacher); ok {
		h.Attached(data)
	}

	for _, f := range familiesOf(obj) {
		m.addObjectToFamily(obj, f)
	}
	if m.sortMode == SortOnAdd {
		m.Sort()
	}
	m.metrics.setObjects(m.liveCount())
}

// Remove unregisters a top-level object. Its registry slot is compacted at
// the end of the next frame's updates. Hooks run in the order Destroy, Removed.
func (m *ObjectManager) Remove(obj Component) {
	if isNil(obj) {
		return
	}
	index := m.indexOf(obj)
	if index < 0 {
		return
	}
	for _, f := range familiesOf(obj) {
		m.removeObjectFromFamily(obj, f)
	}
	m.objects[index] = nil
	graphVersion++

	data := m.newData()
	if e, ok := obj.(*Entity); ok {
		data.Entity = e
	}
	if h, ok := obj.(Destroyer); ok {
		h.Destroy(data)
	}
	if h, ok := obj.(Remover); ok {
		h.Removed(data)
	}

	b := obj.base()
	b.added = false
	b.manager = nil
	b.rootIndex = -1
	m.metrics.setObjects(m.liveCount())
}

// RemoveAll removes every top-level object. Global objects are kept unless
// removeGlobal is set.
func (m *ObjectManager) RemoveAll(removeGlobal bool) {
	for i := 0; i < len(m.objects); i++ {
		obj := m.objects[i]
		if obj == nil {
			continue
		}
		if !removeGlobal && isGlobal(obj) {
			continue
		}
		m.Remove(obj)
	}
	if !m.updating {
		m.cleanObjects()
	}
}

// GetObjects returns a snapshot of the live top-level objects in registry order.
func (m *ObjectManager) GetObjects() []Component {
	out := make([]Component, 0, len(m.objects))
	for _, obj := range m.objects {
		if obj != nil {
			out = append(out, obj)
		}
	}
	return out
}

// GetByName returns every top-level object with the given name.
func (m *ObjectManager) GetByName(name string) []Component {
	var out []Component
	for _, obj := range m.objects {
		if obj != nil && nameOf(obj) == name {
			out = append(out, obj)
		}
	}
	return out
}

// Get returns the first top-level object with the given name, or nil.
func (m *ObjectManager) Get(name string) Component {
	for _, obj := range m.objects {
		if obj != nil && nameOf(obj) == name {
			return obj
		}
	}
	return nil
}

// GetByFamily returns the live bucket for a family, creating it on first use.
func (m *ObjectManager) GetByFamily(name string) *Family {
	f, ok := m.families[name]
	if !ok {
		f = newFamily(name)
		m.families[name] = f
	}
	return f
}

func (m *ObjectManager) addObjectToFamily(obj Component, name string) {
	m.GetByFamily(name).add(obj)
}

func (m *ObjectManager) removeObjectFromFamily(obj Component, name string) {
	if f, ok := m.families[name]; ok {
		f.remove(obj)
	}
}

func (m *ObjectManager) indexOf(obj Component) int {
	for i, o := range m.objects {
		if o == obj {
			return i
		}
	}
	return -1
}

func (m *ObjectManager) liveCount() int {
	n := 0
	for _, obj := range m.objects {
		if obj != nil {
			n++
		}
	}
	return n
}

// cleanObjects drops the nil holes left by Remove and resyncs indices.
func (m *ObjectManager) cleanObjects() {
	n := 0
	for _, obj := range m.objects {
		if obj == nil {
			continue
		}
		obj.base().rootIndex = n
		m.objects[n] = obj
		n++
	}
	if n == len(m.objects) {
		return
	}
	for i := n; i < len(m.objects); i++ {
		m.objects[i] = nil
	}
	m.objects = m.objects[:n]
	graphVersion++
}

// --- Sorting ---

// SortMode returns the current sort policy.
func (m *ObjectManager) SortMode() SortMode { return m.sortMode }

// SetSortMode changes the sort policy.
func (m *ObjectManager) SetSortMode(mode SortMode) { m.sortMode = mode }

// Sort orders the registry by z ascending. Objects with equal z keep their
// relative order unless UnstableSort is configured. A sort requested during
// the update traversal runs when the traversal ends.
func (m *ObjectManager) Sort() {
	if m.updating {
		m.sortPending = true
		return
	}
	m.cleanObjects()
	less := func(i, j int) bool {
		return zOf(m.objects[i]) < zOf(m.objects[j])
	}
	if m.unstableSort {
		sort.Slice(m.objects, less)
	} else {
		sort.SliceStable(m.objects, less)
	}
	for i, obj := range m.objects {
		obj.base().rootIndex = i
	}
}

// --- Pause and speed ---

// Pause sets the pause level. Objects whose UpdateWhenPaused is below the
// level stop updating; drawing continues. Levels below 1 become 1.
func (m *ObjectManager) Pause(level int) {
	if level < 1 {
		level = 1
	}
	m.paused = level
}

// Resume clears the pause level.
func (m *ObjectManager) Resume() { m.paused = 0 }

// IsPaused returns the pause level, 0 when running.
func (m *ObjectManager) IsPaused() int { return m.paused }

// SetGameSpeed sets the multiplier copied into Data.Speed.
func (m *ObjectManager) SetGameSpeed(speed float64) {
	if speed < 0 {
		misuse("ObjectManager.SetGameSpeed", "negative game speed", zap.Float64("speed", speed))
		return
	}
	m.gameSpeed = speed
}

// GameSpeed returns the game speed multiplier.
func (m *ObjectManager) GameSpeed() float64 { return m.gameSpeed }

// --- Traversal ---

// Update fires preUpdate, updates every live object whose UpdateWhenPaused
// is at least the pause level, then fires postUpdate.
func (m *ObjectManager) Update(data *Data) {
	m.events.Fire(EventPreUpdate, data)

	m.updating = true
	func() {
		defer func() { m.updating = false }()
		for i := 0; i < len(m.objects); i++ {
			obj := m.objects[i]
			if obj == nil {
				continue
			}
			obj.base().rootIndex = i
			if updateWhenPausedOf(obj) < m.paused {
				continue
			}
			u, ok := obj.(Updater)
			if !ok {
				continue
			}
			data.Entity = nil
			m.invoke("update", obj, func() { u.Update(data) })
		}
	}()
	if m.sortPending {
		m.sortPending = false
		m.Sort()
	}

	m.events.Fire(EventPostUpdate, data)
	m.metrics.tick()
}

// Draw fires the draw events around the renderer frame and draws every live
// object. Drawing ignores the pause level.
func (m *ObjectManager) Draw(data *Data) {
	start := time.Now()
	m.events.Fire(EventPreDraw, data)
	data.Renderer.Begin()
	m.events.Fire(EventPreDrawLoop, data)
	for i := 0; i < len(m.objects); i++ {
		obj := m.objects[i]
		if obj == nil {
			continue
		}
		d, ok := obj.(Drawer)
		if !ok {
			continue
		}
		data.Entity = nil
		m.invoke("draw", obj, func() { d.Draw(data) })
	}
	m.events.Fire(EventPostDrawLoop, data)
	data.Renderer.Flush()
	m.events.Fire(EventPostDraw, data)
	m.metrics.frame(time.Since(start))
}

// invoke runs a top-level hook, recovering a panic when faults are isolated.
func (m *ObjectManager) invoke(op string, obj Component, fn func()) {
	if !m.isolateFaults {
		fn()
		return
	}
	defer func() {
		if r := recover(); r != nil {
			fields := append(componentFields("object", obj), zap.String("op", op), zap.Any("panic", r))
			logger.Error("recovered panic in hook", fields...)
		}
	}()
	fn()
}
