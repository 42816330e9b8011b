package bento

import (
	"math"

	"go.uber.org/zap"
)

// CollisionOptions configures Entity.CollidesWith. Exactly one of Entity,
// Entities, Name, Family or Rectangle supplies the candidates; when several
// are set the first in that order wins.
type CollisionOptions struct {
	Entity    *Entity
	Entities  []*Entity
	Name      string
	Family    string
	Rectangle *Rectangle

	// WithComponent compares against the bounding box of the named component
	// of each candidate instead of the candidate's own bounding box.
	WithComponent string
	// Offset moves this entity's bounding box before testing.
	Offset Vector2
	// All collects every hit. By default the first hit ends the query.
	All bool
	// OnCollide is called for every hit. For a Rectangle query it receives nil.
	OnCollide func(other *Entity)
}

// boundingBoxer is implemented by components usable with WithComponent.
type boundingBoxer interface {
	GetBoundingBox() Rectangle
}

// CollidesWith tests this entity's bounding box against a candidate set.
// It returns the entities hit and whether anything was hit; with All unset
// at most one entity is returned. Misuse is logged and reports no hit.
func (e *Entity) CollidesWith(opts CollisionOptions) ([]*Entity, bool) {
	box := e.GetBoundingBox().Offset(opts.Offset)

	var candidates []*Entity
	switch {
	case opts.Entity != nil:
		candidates = []*Entity{opts.Entity}
	case opts.Entities != nil:
		candidates = opts.Entities
	case opts.Name != "":
		m := e.root().manager
		if m == nil {
			misuse("Entity.CollidesWith", "name query on an entity that is not registered",
				zap.Uint64("entity_id", e.ID), zap.String("name", opts.Name))
			return nil, false
		}
		candidates = entitiesOf(m.GetByName(opts.Name))
	case opts.Family != "":
		m := e.root().manager
		if m == nil {
			misuse("Entity.CollidesWith", "family query on an entity that is not registered",
				zap.Uint64("entity_id", e.ID), zap.String("family", opts.Family))
			return nil, false
		}
		candidates = entitiesOf(m.GetByFamily(opts.Family).All())
	case opts.Rectangle != nil:
		if !box.Intersect(*opts.Rectangle) {
			return nil, false
		}
		if opts.OnCollide != nil {
			opts.OnCollide(nil)
		}
		return nil, true
	default:
		misuse("Entity.CollidesWith", "no collision candidates given", zap.Uint64("entity_id", e.ID))
		return nil, false
	}

	var hits []*Entity
	for _, other := range candidates {
		if other == nil || other.ID == e.ID {
			continue
		}
		otherBox := other.GetBoundingBox()
		if opts.WithComponent != "" {
			c := other.GetComponent(opts.WithComponent)
			bb, ok := c.(boundingBoxer)
			if c == nil || !ok {
				misuse("Entity.CollidesWith", "candidate has no component with a bounding box",
					zap.Uint64("entity_id", e.ID), zap.Uint64("other_id", other.ID),
					zap.String("component", opts.WithComponent))
				return nil, false
			}
			otherBox = bb.GetBoundingBox()
		}
		if !box.Intersect(otherBox) {
			continue
		}
		if opts.OnCollide != nil {
			opts.OnCollide(other)
		}
		if !opts.All {
			return []*Entity{other}, true
		}
		hits = append(hits, other)
	}
	return hits, len(hits) > 0
}

// Collides is the positional form of CollidesWith. target is an *Entity or a
// []*Entity; the first hit is returned, or nil.
func (e *Entity) Collides(target any, offset Vector2, onCollide func(other *Entity)) *Entity {
	opts := CollisionOptions{Offset: offset, OnCollide: onCollide}
	switch t := target.(type) {
	case *Entity:
		opts.Entity = t
	case []*Entity:
		opts.Entities = t
	default:
		misuse("Entity.Collides", "target must be an entity or a slice of entities", zap.Uint64("entity_id", e.ID))
		return nil
	}
	hits, _ := e.CollidesWith(opts)
	if len(hits) == 0 {
		return nil
	}
	return hits[0]
}

// GetBoundingBox returns BoundingBox (or Dimension when unset) scaled by the
// absolute entity scale and offset by the position. Rotation is ignored.
func (e *Entity) GetBoundingBox() Rectangle {
	box := e.Dimension
	if e.BoundingBox != nil {
		box = *e.BoundingBox
	}
	return e.correctBoundingBox(box)
}

// correctBoundingBox moves a local rectangle into the entity's parent space.
func (e *Entity) correctBoundingBox(r Rectangle) Rectangle {
	sx := math.Abs(e.Scale.X)
	sy := math.Abs(e.Scale.Y)
	return Rectangle{
		X:      r.X*sx + e.Position.X,
		Y:      r.Y*sy + e.Position.Y,
		Width:  r.Width * sx,
		Height: r.Height * sy,
	}
}

// entitiesOf keeps the entities among objects.
func entitiesOf(objects []Component) []*Entity {
	out := make([]*Entity, 0, len(objects))
	for _, o := range objects {
		if e, ok := o.(*Entity); ok {
			out = append(out, e)
		}
	}
	return out
}
