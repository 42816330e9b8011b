package bento

import "math"

const twoPi = 2 * math.Pi

// Transform holds the per-entity affine state used for drawing and for
// converting positions between local and world space. Each Entity owns
// exactly one Transform, created with the entity.
type Transform struct {
	// X and Y are a local offset added to the entity position when drawing.
	X, Y float64

	entity *Entity

	matrix    Matrix // local matrix computed at the last Draw
	sin, cos  float64
	trigDirty bool
	oldAlpha  float64
	// drawnIn is the viewport a top-level entity was last drawn with.
	drawnIn *Rectangle
}

func newTransform(e *Entity) *Transform {
	return &Transform{
		entity:    e,
		matrix:    Identity(),
		cos:       1,
		trigDirty: true,
	}
}

// markRotationDirty is called by Entity.SetRotation.
func (t *Transform) markRotationDirty() {
	t.trigDirty = true
}

// Matrix returns the local matrix computed during the last Draw.
func (t *Transform) Matrix() Matrix {
	return t.matrix
}

// Visible reports whether drawing the entity can produce any output.
func (t *Transform) Visible() bool {
	e := t.entity
	return e.Alpha > 0 && e.Scale.X != 0 && e.Scale.Y != 0
}

// sincos returns the cached trig values of the entity rotation.
func (t *Transform) sincos() (float64, float64) {
	if t.trigDirty {
		t.sin, t.cos = math.Sincos(t.entity.rotation)
		t.trigDirty = false
	}
	return t.sin, t.cos
}

// sinCosRotator is implemented by renderers that can rotate with
// precomputed trig values.
type sinCosRotator interface {
	RotateSinCos(angle, sin, cos float64)
}

// Draw pushes renderer state and applies the entity transform and alpha.
// Every Draw must be paired with exactly one PostDraw.
func (t *Transform) Draw(data *Data) {
	e := t.entity
	r := data.Renderer
	sin, cos := t.sincos()

	r.Save()

	x := e.Position.X + t.X
	y := e.Position.Y + t.Y
	if !data.SubPixel {
		x = math.Round(x)
		y = math.Round(y)
	}
	r.Translate(x, y)
	m := TranslationMatrix(x, y)

	if e.parent == nil {
		t.drawnIn = data.Viewport
	}
	// Only top-level world content scrolls with the viewport.
	if e.parent == nil && !e.Float && data.Viewport != nil {
		r.Translate(-data.Viewport.X, -data.Viewport.Y)
		m.Translate(-data.Viewport.X, -data.Viewport.Y)
	}

	if math.Mod(e.rotation, twoPi) != 0 {
		if sr, ok := r.(sinCosRotator); ok {
			sr.RotateSinCos(e.rotation, sin, cos)
		} else {
			r.Rotate(e.rotation)
		}
		m.MultiplyWith(rotationMatrix(sin, cos))
	}

	r.Scale(e.Scale.X, e.Scale.Y)
	m.Scale(e.Scale.X, e.Scale.Y)
	t.matrix = m

	t.oldAlpha = r.Opacity()
	r.SetOpacity(t.oldAlpha * e.Alpha)
}

// PostDraw restores the opacity captured by Draw and pops renderer state.
func (t *Transform) PostDraw(data *Data) {
	r := data.Renderer
	r.SetOpacity(t.oldAlpha)
	r.Restore()
}

// --- Coordinate conversion ---

// ToWorldPosition converts a position in the entity's local space to world
// space, walking every ancestor.
func (t *Transform) ToWorldPosition(local Vector2) Vector2 {
	p := local
	var root *Entity
	for n := t.entity; n != nil; n = n.parent {
		p = localToParent(n, p)
		root = n
	}
	if root.Float {
		p = p.Add(t.viewportCorner(root))
	}
	return p
}

// ToLocalPosition converts a world position to the entity's local space.
func (t *Transform) ToLocalPosition(world Vector2) Vector2 {
	return parentToLocal(t.entity, t.ToComparablePosition(world))
}

// ToComparablePosition converts a world position into the space the entity's
// position and bounding box live in, which is its parent's local space (or
// world space for a top-level entity). The entity's own transform is not
// undone, so the result can be tested against GetBoundingBox.
func (t *Transform) ToComparablePosition(world Vector2) Vector2 {
	chain := ancestors(t.entity)
	p := world
	if len(chain) == 0 {
		if t.entity.Float {
			p = p.Subtract(t.viewportCorner(t.entity))
		}
		return p
	}
	if chain[0].Float {
		p = p.Subtract(t.viewportCorner(chain[0]))
	}
	for _, n := range chain {
		p = parentToLocal(n, p)
	}
	return p
}

// viewportCorner returns the top-left corner of the viewport the root is
// drawn with. A registered root uses its manager's viewport; an unregistered
// one uses the viewport of its last Draw. The origin is used when neither
// exists.
func (t *Transform) viewportCorner(root *Entity) Vector2 {
	view := root.transform.drawnIn
	if root.manager != nil {
		view = root.manager.viewport
	}
	if view == nil {
		return Vector2{}
	}
	return view.GetCorner(CornerTopLeft)
}

// ancestors returns the parents of e ordered from the outermost root inward.
func ancestors(e *Entity) []*Entity {
	var chain []*Entity
	for p := e.parent; p != nil; p = p.parent {
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// localToParent applies one hop: scale, then rotation, then translation.
func localToParent(n *Entity, p Vector2) Vector2 {
	p = ScaleMatrix(n.Scale.X, n.Scale.Y).Apply(p)
	if n.rotation != 0 {
		p = RotationMatrix(n.rotation).Apply(p)
	}
	return TranslationMatrix(n.Position.X+n.transform.X, n.Position.Y+n.transform.Y).Apply(p)
}

// parentToLocal undoes one hop: translation, then rotation, then scale.
func parentToLocal(n *Entity, p Vector2) Vector2 {
	p = TranslationMatrix(-n.Position.X-n.transform.X, -n.Position.Y-n.transform.Y).Apply(p)
	if n.rotation != 0 {
		p = RotationMatrix(-n.rotation).Apply(p)
	}
	sx, sy := n.Scale.X, n.Scale.Y
	if sx == 0 || sy == 0 {
		return p
	}
	return ScaleMatrix(1/sx, 1/sy).Apply(p)
}
