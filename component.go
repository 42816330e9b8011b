package bento

import (
	"reflect"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color is an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// Ptr returns a pointer to v. Used for the optional fields of EntityConfig.
func Ptr[T any](v T) *T {
	return &v
}

// Data is the frame context threaded through every lifecycle hook.
// Entity is reassigned as traversal descends, so a component can find its
// owning entity without storing a back reference.
type Data struct {
	Canvas      *ebiten.Image
	Renderer    Renderer
	CanvasScale Vector2
	Viewport    *Rectangle
	Entity      *Entity
	Event       any
	DeltaT      time.Duration
	// Speed is the game speed multiplier (0 = frozen, 1 = normal). It scales
	// Entity.Timer but not Entity.Ticker.
	Speed float64
	// SubPixel disables integer rounding of entity translations.
	SubPixel bool
}

// --- Components ---

// Base carries the scene graph bookkeeping every component needs. Embed it
// in a struct to make that struct a Component.
type Base struct {
	Name string

	parent    *Entity
	rootIndex int
	added     bool
	manager   *ObjectManager // set only for top-level objects
}

func (b *Base) base() *Base { return b }

// Parent returns the entity this component is attached to, or nil.
// The pointer is a non-owning back reference.
func (b *Base) Parent() *Entity { return b.parent }

// RootIndex returns the component's index in its parent's component list,
// or its index in the ObjectManager registry for top-level objects.
// The value is refreshed every update tick and may be stale in between.
func (b *Base) RootIndex() int { return b.rootIndex }

// IsAdded reports whether the component is registered with an ObjectManager
// or sits below an entity that is.
func (b *Base) IsAdded() bool { return b.added }

// ComponentName returns Name. Used by Entity.GetComponent.
func (b *Base) ComponentName() string { return b.Name }

// Component is anything embedding Base. Behavior is added through the
// optional hook interfaces below, checked at call time.
type Component interface {
	base() *Base
}

// Starter is called when the component becomes reachable from the registry.
type Starter interface{ Start(data *Data) }

// Destroyer is called when the component stops being reachable from the registry.
type Destroyer interface{ Destroy(data *Data) }

// Updater is called once per fixed update tick.
type Updater interface{ Update(data *Data) }

// Drawer is called once per frame in component order.
type Drawer interface{ Draw(data *Data) }

// PostDrawer is called after all siblings have drawn, in reverse order.
type PostDrawer interface{ PostDraw(data *Data) }

// Attacher is called right after the component is attached to a parent.
type Attacher interface{ Attached(data *Data) }

// Remover is called right after the component is removed from its parent.
type Remover interface{ Removed(data *Data) }

// ParentAttachedHandler is called when the component's entity is attached somewhere.
type ParentAttachedHandler interface{ OnParentAttached(data *Data) }

// ParentRemovedHandler is called when the component's entity is removed from somewhere.
type ParentRemovedHandler interface{ OnParentRemoved(data *Data) }

// Initializer is called by the ObjectManager before Start when a top-level
// object is attached.
type Initializer interface{ Init(data *Data) }

// Optional capabilities read by the ObjectManager. Objects that do not
// implement them get z = 0, updateWhenPaused = 0 and no families.
type (
	zOrdered    interface{ Z() float64 }
	pauseAware  interface{ UpdateWhenPaused() int }
	familyOwner interface{ Families() []string }
	globalFlag  interface{ IsGlobal() bool }
	named       interface{ ComponentName() string }
)

func zOf(c Component) float64 {
	if z, ok := c.(zOrdered); ok {
		return z.Z()
	}
	return 0
}

func updateWhenPausedOf(c Component) int {
	if p, ok := c.(pauseAware); ok {
		return p.UpdateWhenPaused()
	}
	return 0
}

func familiesOf(c Component) []string {
	if f, ok := c.(familyOwner); ok {
		return f.Families()
	}
	return nil
}

func isGlobal(c Component) bool {
	if g, ok := c.(globalFlag); ok {
		return g.IsGlobal()
	}
	return false
}

func nameOf(c Component) string {
	if n, ok := c.(named); ok {
		return n.ComponentName()
	}
	return ""
}

// isNil also catches typed nil pointers stored in the interface.
func isNil(c Component) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// reachable reports whether e or one of its ancestors is registered.
func reachable(e *Entity) bool {
	for p := e; p != nil; p = p.parent {
		if p.added {
			return true
		}
	}
	return false
}
