package bento

import (
	"sort"

	"go.uber.org/zap"
)

// entityIDCounter is a plain counter (no atomic, bento is single-threaded).
var entityIDCounter uint64

func nextEntityID() uint64 {
	entityIDCounter++
	return entityIDCounter
}

// graphVersion increments on every attach, removal or compaction anywhere in
// the scene graph. Cached scene graph snapshots compare against it to detect
// reparenting and index shifts.
var graphVersion uint64

// EntityConfig configures NewEntity. Zero values and nil pointers leave the
// corresponding field at its default.
type EntityConfig struct {
	Name string
	// Init runs last, after components are attached.
	Init func(e *Entity)
	// Components are attached in order after every other field is set.
	Components []Component
	Family     []string

	Position    Vector2
	Dimension   *Rectangle
	BoundingBox *Rectangle
	Z           float64
	Alpha       *float64 // default 1
	Rotation    float64
	Scale       *Vector2 // default (1, 1)
	Visible     *bool    // default true

	UpdateWhenPaused int
	Global           bool
	Float            bool

	// AddNow attaches the entity to this manager once construction finishes.
	AddNow *ObjectManager
}

// Entity is a scene graph node: spatial state plus an ordered list of
// components. Entities are themselves components, so they nest.
type Entity struct {
	Base

	ID uint64

	Position    Vector2
	Scale       Vector2
	Dimension   Rectangle
	BoundingBox *Rectangle
	Alpha       float64
	Visible     bool

	// Float makes a top-level entity ignore the viewport scroll.
	Float bool
	// Global entities survive ObjectManager.RemoveAll(false).
	Global bool

	// Timer advances by Data.Speed every update; Ticker by one.
	Timer  float64
	Ticker int

	rotation         float64
	z                float64
	updateWhenPaused int
	family           map[string]struct{}
	components       []Component
	transform        *Transform
}

// NewEntity creates an entity from cfg.
func NewEntity(cfg EntityConfig) *Entity {
	e := &Entity{
		ID:      nextEntityID(),
		Scale:   Vector2{1, 1},
		Alpha:   1,
		Visible: true,
		family:  make(map[string]struct{}),
	}
	e.rootIndex = -1
	e.transform = newTransform(e)

	e.Name = cfg.Name
	e.Position = cfg.Position
	if cfg.Dimension != nil {
		e.Dimension = *cfg.Dimension
	}
	if cfg.BoundingBox != nil {
		bb := *cfg.BoundingBox
		e.BoundingBox = &bb
	}
	e.z = cfg.Z
	if cfg.Alpha != nil {
		e.Alpha = *cfg.Alpha
	}
	e.rotation = cfg.Rotation
	if cfg.Scale != nil {
		e.Scale = *cfg.Scale
	}
	if cfg.Visible != nil {
		e.Visible = *cfg.Visible
	}
	e.updateWhenPaused = cfg.UpdateWhenPaused
	e.Global = cfg.Global
	e.Float = cfg.Float
	for _, f := range cfg.Family {
		e.family[f] = struct{}{}
	}

	for _, c := range cfg.Components {
		e.Attach(c)
	}
	if cfg.Init != nil {
		cfg.Init(e)
	}
	if cfg.AddNow != nil {
		cfg.AddNow.Attach(e)
	}
	return e
}

// --- Accessors ---

// Transform returns the entity's transform.
func (e *Entity) Transform() *Transform { return e.transform }

// Z returns the draw/update sort key. Higher values draw later.
func (e *Entity) Z() float64 { return e.z }

// SetZ sets the sort key. Takes effect at the next registry sort.
func (e *Entity) SetZ(z float64) { e.z = z }

// Rotation returns the rotation in radians.
func (e *Entity) Rotation() float64 { return e.rotation }

// SetRotation sets the rotation in radians and invalidates the cached trig values.
func (e *Entity) SetRotation(r float64) {
	if e.rotation == r {
		return
	}
	e.rotation = r
	e.transform.markRotationDirty()
}

// UpdateWhenPaused returns the highest pause level at which the entity
// still updates.
func (e *Entity) UpdateWhenPaused() int { return e.updateWhenPaused }

// SetUpdateWhenPaused sets the pause bypass threshold.
func (e *Entity) SetUpdateWhenPaused(level int) { e.updateWhenPaused = level }

// IsGlobal reports whether the entity survives screen teardown.
func (e *Entity) IsGlobal() bool { return e.Global }

// SetPosition sets the position.
func (e *Entity) SetPosition(p Vector2) { e.Position = p }

// Components returns the component list, which may contain nil holes left by
// Remove until the next Update. The returned slice MUST NOT be mutated.
func (e *Entity) Components() []Component { return e.components }

// --- Families ---

// Families returns the entity's family tags in sorted order.
func (e *Entity) Families() []string {
	out := make([]string, 0, len(e.family))
	for f := range e.family {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// HasFamily reports whether the entity carries the family tag.
func (e *Entity) HasFamily(name string) bool {
	_, ok := e.family[name]
	return ok
}

// AddToFamily adds a family tag. A registered top-level entity is also added
// to the manager's family index.
func (e *Entity) AddToFamily(name string) {
	if e.HasFamily(name) {
		return
	}
	e.family[name] = struct{}{}
	if e.manager != nil {
		e.manager.addObjectToFamily(e, name)
	}
}

// RemoveFromFamily removes a family tag, keeping the manager's index in sync.
func (e *Entity) RemoveFromFamily(name string) {
	if !e.HasFamily(name) {
		return
	}
	delete(e.family, name)
	if e.manager != nil {
		e.manager.removeObjectFromFamily(e, name)
	}
}

// --- Scene graph ---

// Attach appends child to the component list and runs its attached and,
// when this entity is reachable from the registry, start hooks. A child that
// is already attached is rejected unless force is set, in which case it is
// removed from its current parent or registry first. Returns e.
func (e *Entity) Attach(child Component, force ...bool) *Entity {
	if isNil(child) {
		misuse("Entity.Attach", "trying to attach a nil component", zap.Uint64("entity_id", e.ID))
		return e
	}
	b := child.base()
	forced := len(force) > 0 && force[0]
	if (b.added || b.parent != nil) && !forced {
		misuse("Entity.Attach", "component is already attached",
			append(componentFields("child", child), zap.Uint64("entity_id", e.ID))...)
		return e
	}
	if c, ok := child.(*Entity); ok && isAncestorOf(c, e) {
		misuse("Entity.Attach", "attaching would create a cycle",
			zap.Uint64("entity_id", e.ID), zap.Uint64("child_id", c.ID))
		return e
	}
	// A forced attach moves the child: its previous owner lets go first.
	switch {
	case b.parent != nil:
		b.parent.Remove(child)
	case b.manager != nil:
		b.manager.Remove(child)
	}

	b.parent = e
	b.rootIndex = len(e.components)
	e.components = append(e.components, child)
	graphVersion++

	data := e.frameData()
	if a, ok := child.(Attacher); ok {
		a.Attached(data)
	}
	if s, ok := child.(Starter); ok && reachable(e) {
		data.Entity = e
		s.Start(data)
	}
	return e
}

// Remove detaches child. Its slot becomes a nil hole that is compacted at the
// end of the next Update, so sibling RootIndex values stay stale until then.
func (e *Entity) Remove(child Component) *Entity {
	if isNil(child) {
		return e
	}
	index := -1
	for i, c := range e.components {
		if c == child {
			index = i
			break
		}
	}
	if index < 0 {
		return e
	}
	e.components[index] = nil
	graphVersion++

	data := e.frameData()
	if d, ok := child.(Destroyer); ok && reachable(e) {
		d.Destroy(data)
	}
	if r, ok := child.(Remover); ok {
		data.Entity = e
		r.Removed(data)
	}
	b := child.base()
	b.parent = nil
	b.rootIndex = -1
	return e
}

// RemoveSelf removes the entity from its parent, or from its ObjectManager
// when it is a top-level entity.
func (e *Entity) RemoveSelf() {
	switch {
	case e.parent != nil:
		e.parent.Remove(e)
	case e.manager != nil:
		e.manager.Remove(e)
	}
}

// MoveComponentTo moves an attached component to a new index, shifting the
// others. Nil holes are compacted first.
func (e *Entity) MoveComponentTo(child Component, index int) {
	e.cleanComponents()
	from := -1
	for i, c := range e.components {
		if c == child {
			from = i
			break
		}
	}
	if from < 0 {
		misuse("Entity.MoveComponentTo", "component is not attached to this entity",
			append(componentFields("child", child), zap.Uint64("entity_id", e.ID))...)
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(e.components) {
		index = len(e.components) - 1
	}
	if from == index {
		return
	}
	if from < index {
		copy(e.components[from:], e.components[from+1:index+1])
	} else {
		copy(e.components[index+1:], e.components[index:from])
	}
	e.components[index] = child
	for i, c := range e.components {
		c.base().rootIndex = i
	}
	graphVersion++
}

// GetComponent returns the first attached component with the given name, or nil.
func (e *Entity) GetComponent(name string) Component {
	for _, c := range e.components {
		if c != nil && nameOf(c) == name {
			return c
		}
	}
	return nil
}

// ComponentOf returns the first component of e with type T.
func ComponentOf[T Component](e *Entity) (T, bool) {
	for _, c := range e.components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// cleanComponents drops the nil holes left by Remove and resyncs indices.
func (e *Entity) cleanComponents() {
	n := 0
	for _, c := range e.components {
		if c == nil {
			continue
		}
		c.base().rootIndex = n
		e.components[n] = c
		n++
	}
	if n == len(e.components) {
		return
	}
	for i := n; i < len(e.components); i++ {
		e.components[i] = nil
	}
	e.components = e.components[:n]
	graphVersion++
}

// root returns the outermost ancestor of e, or e itself.
func (e *Entity) root() *Entity {
	r := e
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// frameData returns a fresh Data from the owning manager or a bare one.
func (e *Entity) frameData() *Data {
	var data *Data
	if root := e.root(); root.manager != nil {
		data = root.manager.newData()
	} else {
		data = &Data{Speed: 1}
	}
	data.Entity = e
	return data
}

// isAncestorOf reports whether candidate is node or one of its ancestors.
func isAncestorOf(candidate, node *Entity) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// --- Lifecycle hooks ---

// Start marks the entity as added and starts its components.
func (e *Entity) Start(data *Data) {
	e.added = true
	for i := 0; i < len(e.components); i++ {
		c := e.components[i]
		if c == nil {
			continue
		}
		if s, ok := c.(Starter); ok {
			data.Entity = e
			s.Start(data)
		}
	}
}

// Destroy destroys the components and clears the added flag.
func (e *Entity) Destroy(data *Data) {
	for i := 0; i < len(e.components); i++ {
		c := e.components[i]
		if c == nil {
			continue
		}
		if d, ok := c.(Destroyer); ok {
			data.Entity = e
			d.Destroy(data)
		}
	}
	e.added = false
}

// Attached notifies components that their entity was attached.
func (e *Entity) Attached(data *Data) {
	for i := 0; i < len(e.components); i++ {
		c := e.components[i]
		if c == nil {
			continue
		}
		if h, ok := c.(ParentAttachedHandler); ok {
			data.Entity = e
			h.OnParentAttached(data)
		}
	}
}

// Removed notifies components that their entity was removed.
func (e *Entity) Removed(data *Data) {
	for i := 0; i < len(e.components); i++ {
		c := e.components[i]
		if c == nil {
			continue
		}
		if h, ok := c.(ParentRemovedHandler); ok {
			data.Entity = e
			h.OnParentRemoved(data)
		}
	}
}

// Update updates the components in order, advances Timer and Ticker and
// compacts the component list. Removing a component during its own update
// is safe.
func (e *Entity) Update(data *Data) {
	for i := 0; i < len(e.components); i++ {
		c := e.components[i]
		if c == nil {
			continue
		}
		c.base().rootIndex = i
		if u, ok := c.(Updater); ok {
			data.Entity = e
			u.Update(data)
		}
	}
	e.Timer += data.Speed
	e.Ticker++
	e.cleanComponents()
}

// Draw applies the transform, draws the components forward and post-draws
// them backward. The transform is released even if a component panics.
func (e *Entity) Draw(data *Data) {
	if !e.Visible || !e.transform.Visible() {
		return
	}
	e.transform.Draw(data)
	defer e.transform.PostDraw(data)

	for i := 0; i < len(e.components); i++ {
		c := e.components[i]
		if c == nil {
			continue
		}
		if d, ok := c.(Drawer); ok {
			data.Entity = e
			d.Draw(data)
		}
	}
	for i := len(e.components) - 1; i >= 0; i-- {
		c := e.components[i]
		if c == nil {
			continue
		}
		if d, ok := c.(PostDrawer); ok {
			data.Entity = e
			d.PostDraw(data)
		}
	}
}

// --- Coordinate conversion ---

// ToWorldPosition converts a local position to world space.
func (e *Entity) ToWorldPosition(local Vector2) Vector2 {
	return e.transform.ToWorldPosition(local)
}

// ToLocalPosition converts a world position to local space.
func (e *Entity) ToLocalPosition(world Vector2) Vector2 {
	return e.transform.ToLocalPosition(world)
}

// ToComparablePosition converts a world position to the entity's parent space.
func (e *Entity) ToComparablePosition(world Vector2) Vector2 {
	return e.transform.ToComparablePosition(world)
}
