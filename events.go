package bento

// Listener is a registered event callback. It is returned by On so the
// caller can remove it later.
type Listener struct {
	name      string
	fn        func(data any)
	context   any
	component Component
	active    bool
	owner     *dispatcher
	sorting   sortingData
}

// Name returns the event name the listener is registered for.
func (l *Listener) Name() string { return l.name }

// Context returns the context value given to EventSystem.On.
func (l *Listener) Context() any { return l.context }

// Component returns the component given to SortedEventSystem.On.
func (l *Listener) Component() Component { return l.component }

// IsActive reports whether the listener will still be called.
func (l *Listener) IsActive() bool { return l.active }

// Off removes the listener from the system it was registered on.
func (l *Listener) Off() {
	if l.owner != nil {
		l.owner.off(l)
	}
}

// dispatcher is the listener table shared by EventSystem and
// SortedEventSystem. Removal during a dispatch deactivates the listener at
// once and queues the slice mutation until no dispatch is running.
type dispatcher struct {
	listeners map[string][]*Listener
	pending   []*Listener
	depth     int
	stopped   bool
}

func newDispatcher() dispatcher {
	return dispatcher{listeners: make(map[string][]*Listener)}
}

func (d *dispatcher) add(l *Listener) *Listener {
	l.active = true
	l.owner = d
	d.listeners[l.name] = append(d.listeners[l.name], l)
	return l
}

func (d *dispatcher) off(l *Listener) {
	if l == nil || !l.active || l.owner != d {
		return
	}
	l.active = false
	if d.depth > 0 {
		d.pending = append(d.pending, l)
		return
	}
	d.drop(l)
}

func (d *dispatcher) offWhere(name string, match func(l *Listener) bool) {
	var matched []*Listener
	for _, l := range d.listeners[name] {
		if l.active && match(l) {
			matched = append(matched, l)
		}
	}
	// off may shift the live slice when no dispatch is running.
	for _, l := range matched {
		d.off(l)
	}
}

// drop removes l from its slice, preserving order.
func (d *dispatcher) drop(l *Listener) {
	ls := d.listeners[l.name]
	for i, x := range ls {
		if x != l {
			continue
		}
		copy(ls[i:], ls[i+1:])
		ls[len(ls)-1] = nil
		ls = ls[:len(ls)-1]
		if len(ls) == 0 {
			delete(d.listeners, l.name)
		} else {
			d.listeners[l.name] = ls
		}
		return
	}
}

// flush applies removals queued during dispatch.
func (d *dispatcher) flush() {
	if d.depth > 0 || len(d.pending) == 0 {
		return
	}
	for _, l := range d.pending {
		d.drop(l)
	}
	clear(d.pending)
	d.pending = d.pending[:0]
}

// fire calls the active listeners registered before the call started.
func (d *dispatcher) fire(ls []*Listener, data any) {
	saved := d.stopped
	d.stopped = false
	d.depth++
	defer func() {
		d.depth--
		d.stopped = saved
		d.flush()
	}()
	for i, n := 0, len(ls); i < n; i++ {
		l := ls[i]
		if !l.active {
			continue
		}
		l.fn(data)
		if d.stopped {
			return
		}
	}
}

func (d *dispatcher) count(name string) int {
	n := 0
	for _, l := range d.listeners[name] {
		if l.active {
			n++
		}
	}
	return n
}

// EventSystem is a named publish/subscribe table. It is single-threaded;
// listeners may add or remove listeners while being called.
type EventSystem struct {
	dispatcher
}

// NewEventSystem creates an empty EventSystem.
func NewEventSystem() *EventSystem {
	return &EventSystem{dispatcher: newDispatcher()}
}

// On registers fn for name. context is an optional comparable value used
// by OffContext to remove groups of listeners.
func (es *EventSystem) On(name string, fn func(data any), context any) *Listener {
	if fn == nil {
		misuse("EventSystem.On", "trying to register a nil callback")
		return nil
	}
	return es.add(&Listener{name: name, fn: fn, context: context})
}

// Off removes a listener returned by On.
func (es *EventSystem) Off(name string, l *Listener) {
	if l == nil || l.name != name {
		return
	}
	es.off(l)
}

// OffContext removes every listener for name registered with context.
func (es *EventSystem) OffContext(name string, context any) {
	es.offWhere(name, func(l *Listener) bool { return l.context == context })
}

// RemoveAll removes every listener for name.
func (es *EventSystem) RemoveAll(name string) {
	es.offWhere(name, func(*Listener) bool { return true })
}

// Fire calls the listeners for name in registration order. Listeners added
// during the call are not invoked by it.
func (es *EventSystem) Fire(name string, data any) {
	es.flush()
	ls := es.listeners[name]
	if len(ls) == 0 {
		return
	}
	es.fire(ls, data)
}

// StopPropagation stops the running Fire after the current listener.
func (es *EventSystem) StopPropagation() { es.stopped = true }

// Count returns the number of active listeners for name.
func (es *EventSystem) Count(name string) int { return es.count(name) }
