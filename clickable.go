package bento

// PointerHandler receives a pointer event for a Clickable. local is the
// event position in the entity's parent space, comparable to its bounding box.
type PointerHandler func(c *Clickable, ev *PointerEvent, local Vector2)

// ClickableConfig configures NewClickable.
type ClickableConfig struct {
	Name string
	// Events delivers the pointer events, ordered top-most first.
	Events *SortedEventSystem

	OnPointerDown PointerHandler
	OnPointerUp   PointerHandler
	OnPointerMove PointerHandler
	// OnClick fires when a pointer goes down and back up inside the entity.
	OnClick      PointerHandler
	OnHoverEnter PointerHandler
	OnHoverLeave PointerHandler

	// StopPropagation keeps entities underneath from seeing a pointer down
	// or up that hit this one.
	StopPropagation bool
}

// Clickable hit-tests pointer events against its entity's bounding box.
// Listeners are registered when the component starts and removed when it is
// destroyed.
type Clickable struct {
	Base

	cfg       ClickableConfig
	listeners []*Listener

	isPointerDown bool
	isHovering    bool
}

// NewClickable creates a clickable component.
func NewClickable(cfg ClickableConfig) *Clickable {
	c := &Clickable{cfg: cfg}
	c.Name = cfg.Name
	if c.Name == "" {
		c.Name = "clickable"
	}
	c.rootIndex = -1
	return c
}

// IsPointerDown reports whether a press that started on the entity is held.
func (c *Clickable) IsPointerDown() bool { return c.isPointerDown }

// IsHovering reports whether the last pointer position was over the entity.
func (c *Clickable) IsHovering() bool { return c.isHovering }

func (c *Clickable) Start(data *Data) {
	es := c.cfg.Events
	if es == nil {
		misuse("Clickable.Start", "clickable has no event system", componentFields("component", c)...)
		return
	}
	c.listeners = append(c.listeners,
		es.On(EventPointerDown, c, c.handler(c.pointerDown)),
		es.On(EventPointerUp, c, c.handler(c.pointerUp)),
		es.On(EventPointerMove, c, c.handler(c.pointerMove)),
	)
}

func (c *Clickable) Destroy(data *Data) {
	for _, l := range c.listeners {
		l.Off()
	}
	c.listeners = c.listeners[:0]
	c.isPointerDown = false
	c.isHovering = false
}

func (c *Clickable) handler(fn func(ev *PointerEvent)) func(data any) {
	return func(data any) {
		if ev, ok := data.(*PointerEvent); ok && c.parent != nil {
			fn(ev)
		}
	}
}

// hit returns the event position in parent space and whether it is inside
// the entity's bounding box.
func (c *Clickable) hit(ev *PointerEvent) (Vector2, bool) {
	e := c.parent
	local := e.ToComparablePosition(ev.World)
	return local, e.GetBoundingBox().HasPosition(local)
}

func (c *Clickable) pointerDown(ev *PointerEvent) {
	local, inside := c.hit(ev)
	if !inside {
		return
	}
	c.isPointerDown = true
	callPointer(c.cfg.OnPointerDown, c, ev, local)
	if c.cfg.StopPropagation {
		c.cfg.Events.StopPropagation()
	}
}

func (c *Clickable) pointerUp(ev *PointerEvent) {
	local, inside := c.hit(ev)
	wasDown := c.isPointerDown
	c.isPointerDown = false
	if !inside {
		return
	}
	callPointer(c.cfg.OnPointerUp, c, ev, local)
	if wasDown {
		callPointer(c.cfg.OnClick, c, ev, local)
	}
	if c.cfg.StopPropagation {
		c.cfg.Events.StopPropagation()
	}
}

func (c *Clickable) pointerMove(ev *PointerEvent) {
	local, inside := c.hit(ev)
	switch {
	case inside && !c.isHovering:
		c.isHovering = true
		callPointer(c.cfg.OnHoverEnter, c, ev, local)
	case !inside && c.isHovering:
		c.isHovering = false
		callPointer(c.cfg.OnHoverLeave, c, ev, local)
	}
	callPointer(c.cfg.OnPointerMove, c, ev, local)
}

func callPointer(fn PointerHandler, c *Clickable, ev *PointerEvent, local Vector2) {
	if fn != nil {
		fn(c, ev, local)
	}
}
