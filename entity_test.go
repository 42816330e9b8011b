package bento

import (
	"testing"
)

// recorder is a component recording its lifecycle hooks.
type recorder struct {
	Base
	calls    []string
	onUpdate func(data *Data)
}

func newRecorder(name string) *recorder {
	p := &recorder{}
	p.Name = name
	p.rootIndex = -1
	return p
}

func (p *recorder) Init(*Data)     { p.calls = append(p.calls, "init") }
func (p *recorder) Start(*Data)    { p.calls = append(p.calls, "start") }
func (p *recorder) Destroy(*Data)  { p.calls = append(p.calls, "destroy") }
func (p *recorder) Attached(*Data) { p.calls = append(p.calls, "attached") }
func (p *recorder) Removed(*Data)  { p.calls = append(p.calls, "removed") }

func (p *recorder) Update(data *Data) {
	p.calls = append(p.calls, "update")
	if p.onUpdate != nil {
		p.onUpdate(data)
	}
}

func (p *recorder) Draw(*Data)     { p.calls = append(p.calls, "draw") }
func (p *recorder) PostDraw(*Data) { p.calls = append(p.calls, "postDraw") }

func (p *recorder) OnParentAttached(*Data) { p.calls = append(p.calls, "parentAttached") }
func (p *recorder) OnParentRemoved(*Data)  { p.calls = append(p.calls, "parentRemoved") }

func (p *recorder) reset() { p.calls = nil }

func assertCalls(t *testing.T, name string, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s calls = %v, want %v", name, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("%s calls = %v, want %v", name, got, want)
		}
	}
}

func TestNewEntityDefaults(t *testing.T) {
	e := NewEntity(EntityConfig{})
	if e.Scale != (Vector2{1, 1}) {
		t.Errorf("Scale = %v, want (1,1)", e.Scale)
	}
	if e.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", e.Alpha)
	}
	if !e.Visible {
		t.Error("Visible = false, want true")
	}
	if e.RootIndex() != -1 {
		t.Errorf("RootIndex = %d, want -1", e.RootIndex())
	}
	if e.Transform() == nil {
		t.Error("Transform is nil")
	}
	other := NewEntity(EntityConfig{})
	if other.ID <= e.ID {
		t.Errorf("IDs not increasing: %d then %d", e.ID, other.ID)
	}
}

func TestNewEntityConfig(t *testing.T) {
	var initRan bool
	p := newRecorder("p")
	e := NewEntity(EntityConfig{
		Name:        "hero",
		Position:    Vector2{1, 2},
		Dimension:   &Rectangle{Width: 16, Height: 16},
		BoundingBox: &Rectangle{X: 2, Y: 2, Width: 12, Height: 12},
		Z:           3,
		Alpha:       Ptr(0.5),
		Rotation:    1,
		Scale:       &Vector2{2, 3},
		Visible:     Ptr(false),
		Family:      []string{"enemies", "actors"},
		Components:  []Component{p},
		Init: func(e *Entity) {
			initRan = len(e.Components()) == 1
		},
	})
	if e.Name != "hero" || e.Position != (Vector2{1, 2}) || e.Z() != 3 || e.Alpha != 0.5 {
		t.Errorf("fields not copied: %+v", e)
	}
	if e.Rotation() != 1 || e.Scale != (Vector2{2, 3}) || e.Visible {
		t.Errorf("transform fields not copied: %+v", e)
	}
	if e.BoundingBox == nil || e.BoundingBox.Width != 12 {
		t.Errorf("BoundingBox = %v", e.BoundingBox)
	}
	fams := e.Families()
	if len(fams) != 2 || fams[0] != "actors" || fams[1] != "enemies" {
		t.Errorf("Families = %v, want sorted [actors enemies]", fams)
	}
	if !initRan {
		t.Error("Init did not run after components were attached")
	}
	// Not reachable, so only the attached hook runs.
	assertCalls(t, "recorder", p.calls, "attached")
}

func TestAttachRemoveSymmetry(t *testing.T) {
	m := NewObjectManager(ManagerConfig{})
	parent := NewEntity(EntityConfig{Name: "parent", AddNow: m})
	p := newRecorder("p")

	parent.Attach(p)
	assertCalls(t, "attach", p.calls, "attached", "start")
	if p.Parent() != parent || p.RootIndex() != 0 {
		t.Errorf("parent = %v, rootIndex = %d", p.Parent(), p.RootIndex())
	}

	p.reset()
	parent.Remove(p)
	assertCalls(t, "remove", p.calls, "destroy", "removed")
	if p.Parent() != nil || p.RootIndex() != -1 {
		t.Errorf("after remove: parent = %v, rootIndex = %d", p.Parent(), p.RootIndex())
	}
	// Removing again does nothing.
	p.reset()
	parent.Remove(p)
	assertCalls(t, "second remove", p.calls)
}

func TestStartRunsWhenParentBecomesReachable(t *testing.T) {
	m := NewObjectManager(ManagerConfig{})
	p := newRecorder("p")
	e := NewEntity(EntityConfig{Components: []Component{p}})
	assertCalls(t, "detached", p.calls, "attached")

	p.reset()
	m.Attach(e)
	assertCalls(t, "registered", p.calls, "start", "parentAttached")
	if !e.IsAdded() {
		t.Error("entity not marked added")
	}

	p.reset()
	m.Remove(e)
	assertCalls(t, "unregistered", p.calls, "destroy", "parentRemoved")
	if e.IsAdded() {
		t.Error("entity still marked added")
	}
}

func TestNestedEntityStart(t *testing.T) {
	m := NewObjectManager(ManagerConfig{})
	root := NewEntity(EntityConfig{Name: "root", AddNow: m})
	p := newRecorder("p")
	mid := NewEntity(EntityConfig{Name: "mid", Components: []Component{p}})

	root.Attach(mid)
	if !mid.IsAdded() {
		t.Error("child entity not started")
	}
	assertCalls(t, "grandchild", p.calls, "attached", "parentAttached", "start")
}

func TestAttachDuplicateIsLogged(t *testing.T) {
	logs := observeLogs(t)
	a := NewEntity(EntityConfig{Name: "a"})
	b := NewEntity(EntityConfig{Name: "b"})
	p := newRecorder("p")

	a.Attach(p)
	b.Attach(p)
	if p.Parent() != a {
		t.Error("duplicate attach moved the component")
	}
	if len(b.Components()) != 0 {
		t.Errorf("b has %d components, want 0", len(b.Components()))
	}
	if n := logs.FilterMessage("component is already attached").Len(); n != 1 {
		t.Errorf("logged %d duplicate attach warnings, want 1", n)
	}

	// Forced attach bypasses the check.
	b.Attach(p, true)
	if p.Parent() != b {
		t.Error("forced attach did not reparent")
	}
}

func TestAttachNilAndCycle(t *testing.T) {
	logs := observeLogs(t)
	a := NewEntity(EntityConfig{Name: "a"})
	b := NewEntity(EntityConfig{Name: "b"})
	var nilRecorder *recorder

	a.Attach(nil)
	a.Attach(nilRecorder)
	a.Attach(b)
	b.Attach(a, true)

	if len(a.Components()) != 1 || len(b.Components()) != 0 {
		t.Errorf("components: a=%d b=%d", len(a.Components()), len(b.Components()))
	}
	if n := logs.FilterMessage("trying to attach a nil component").Len(); n != 2 {
		t.Errorf("nil attach warnings = %d, want 2", n)
	}
	if n := logs.FilterMessage("attaching would create a cycle").Len(); n != 1 {
		t.Errorf("cycle warnings = %d, want 1", n)
	}
}

func TestRemoveDuringUpdate(t *testing.T) {
	e := NewEntity(EntityConfig{})
	a, b, c := newRecorder("a"), newRecorder("b"), newRecorder("c")
	e.Attach(a).Attach(b).Attach(c)

	// a removes itself and b; c still updates.
	a.onUpdate = func(*Data) {
		e.Remove(a)
		e.Remove(b)
	}
	e.Update(&Data{Speed: 1})

	assertCalls(t, "a", a.calls, "attached", "update", "removed")
	assertCalls(t, "b", b.calls, "attached", "removed")
	assertCalls(t, "c", c.calls, "attached", "update")
	if len(e.Components()) != 1 || e.Components()[0] != c {
		t.Fatalf("components after update = %v", e.Components())
	}
	if c.RootIndex() != 0 {
		t.Errorf("c.RootIndex = %d, want 0", c.RootIndex())
	}
}

func TestUpdateAdvancesTimerAndTicker(t *testing.T) {
	e := NewEntity(EntityConfig{})
	e.Update(&Data{Speed: 0.5})
	e.Update(&Data{Speed: 0.5})
	assertNear(t, "Timer", e.Timer, 1)
	if e.Ticker != 2 {
		t.Errorf("Ticker = %d, want 2", e.Ticker)
	}
}

func TestDrawOrder(t *testing.T) {
	a, b := newRecorder("a"), newRecorder("b")
	e := NewEntity(EntityConfig{Components: []Component{a, b}})
	a.reset()
	b.reset()

	e.Draw(&Data{Renderer: NopRenderer{}, Speed: 1})
	assertCalls(t, "a", a.calls, "draw", "postDraw")
	assertCalls(t, "b", b.calls, "draw", "postDraw")

	e.Visible = false
	a.reset()
	e.Draw(&Data{Renderer: NopRenderer{}, Speed: 1})
	assertCalls(t, "hidden", a.calls)
}

// drawLogger appends its name to a shared log when drawn.
type drawLogger struct {
	Base
	log *[]string
}

func (o *drawLogger) Draw(*Data)     { *o.log = append(*o.log, o.Name+".draw") }
func (o *drawLogger) PostDraw(*Data) { *o.log = append(*o.log, o.Name+".post") }

func TestPostDrawRunsInReverse(t *testing.T) {
	var log []string
	a := &drawLogger{log: &log}
	a.Name = "a"
	b := &drawLogger{log: &log}
	b.Name = "b"
	e := NewEntity(EntityConfig{Components: []Component{a, b}})

	e.Draw(&Data{Renderer: NopRenderer{}, Speed: 1})
	assertCalls(t, "draw", log, "a.draw", "b.draw", "b.post", "a.post")
}

func TestDrawReleasesTransformOnPanic(t *testing.T) {
	r := NewEbitenRenderer(nil)
	boom := &panicker{}
	e := NewEntity(EntityConfig{Components: []Component{boom}})

	func() {
		defer func() { _ = recover() }()
		e.Draw(&Data{Renderer: r, Speed: 1})
	}()
	if r.Depth() != 0 {
		t.Errorf("renderer depth = %d after panic, want 0", r.Depth())
	}
}

type panicker struct{ Base }

func (*panicker) Draw(*Data)   { panic("boom") }
func (*panicker) Update(*Data) { panic("boom") }

func TestMoveComponentTo(t *testing.T) {
	e := NewEntity(EntityConfig{})
	a, b, c := newRecorder("a"), newRecorder("b"), newRecorder("c")
	e.Attach(a).Attach(b).Attach(c)

	e.MoveComponentTo(c, 0)
	got := e.Components()
	if got[0] != c || got[1] != a || got[2] != b {
		t.Fatalf("order after move = %v %v %v", nameOf(got[0]), nameOf(got[1]), nameOf(got[2]))
	}
	for i, comp := range got {
		if comp.base().rootIndex != i {
			t.Errorf("%s rootIndex = %d, want %d", nameOf(comp), comp.base().rootIndex, i)
		}
	}

	e.MoveComponentTo(c, 99)
	if e.Components()[2] != c {
		t.Error("index not clamped to the end")
	}

	logs := observeLogs(t)
	e.MoveComponentTo(newRecorder("stranger"), 0)
	if logs.Len() != 1 {
		t.Errorf("expected one warning for a foreign component, got %d", logs.Len())
	}
}

func TestGetComponentAndComponentOf(t *testing.T) {
	sprite := newRecorder("sprite")
	fill := NewFill(ColorWhite, nil)
	e := NewEntity(EntityConfig{Components: []Component{sprite, fill}})

	if e.GetComponent("sprite") != sprite {
		t.Error("GetComponent(sprite) failed")
	}
	if e.GetComponent("missing") != nil {
		t.Error("GetComponent(missing) not nil")
	}
	f, ok := ComponentOf[*Fill](e)
	if !ok || f != fill {
		t.Error("ComponentOf[*Fill] failed")
	}
	if _, ok := ComponentOf[*Sprite](e); ok {
		t.Error("ComponentOf[*Sprite] found a sprite")
	}
}

func TestRemoveSelf(t *testing.T) {
	m := NewObjectManager(ManagerConfig{})
	root := NewEntity(EntityConfig{AddNow: m})
	child := NewEntity(EntityConfig{})
	root.Attach(child)

	child.RemoveSelf()
	if child.Parent() != nil {
		t.Error("child still has a parent")
	}
	root.RemoveSelf()
	if len(m.GetObjects()) != 0 {
		t.Error("root still registered")
	}
}

func TestFamiliesSyncWithManager(t *testing.T) {
	m := NewObjectManager(ManagerConfig{})
	e := NewEntity(EntityConfig{AddNow: m})

	e.AddToFamily("enemies")
	if !m.GetByFamily("enemies").Contains(e) {
		t.Error("AddToFamily not reflected in the manager")
	}
	e.RemoveFromFamily("enemies")
	if m.GetByFamily("enemies").Contains(e) {
		t.Error("RemoveFromFamily not reflected in the manager")
	}
	if e.HasFamily("enemies") {
		t.Error("HasFamily still true")
	}
}

func TestForcedAttachMovesComponent(t *testing.T) {
	m := NewObjectManager(ManagerConfig{})
	from := NewEntity(EntityConfig{Name: "from", AddNow: m})
	to := NewEntity(EntityConfig{Name: "to", AddNow: m})
	p := newRecorder("p")
	from.Attach(p)
	p.reset()

	to.Attach(p, true)
	assertCalls(t, "move", p.calls, "destroy", "removed", "attached", "start")
	if p.Parent() != to {
		t.Fatal("forced attach did not reparent")
	}

	p.reset()
	m.Update(m.NewData())
	assertCalls(t, "update once", p.calls, "update")
	if len(from.Components()) != 0 {
		t.Errorf("old parent kept %d components", len(from.Components()))
	}
}

func TestForcedAttachTakesTopLevelObject(t *testing.T) {
	m := NewObjectManager(ManagerConfig{})
	root := NewEntity(EntityConfig{Name: "root", AddNow: m})
	top := NewEntity(EntityConfig{Name: "top", AddNow: m})

	root.Attach(top, true)
	assertNames(t, "registry", m.GetObjects(), "root")
	if top.Parent() != root || !top.IsAdded() {
		t.Errorf("parent = %v added = %v", top.Parent(), top.IsAdded())
	}
}
