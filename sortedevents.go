package bento

import (
	"slices"
	"sort"
)

// sortingData is a snapshot of where a listener's component sits in the
// scene graph. It is rebuilt when the root's z changes or the graph changes
// shape.
type sortingData struct {
	version uint64
	root    Component // outermost ancestor, or the component itself
	rooted  bool      // root is registered with an ObjectManager
	rootZ   float64
	// rootIndex is refreshed from the live root before every sort.
	rootIndex int
	parent    *Entity
	// thisIndex is the component's index in parent; parentIndex is the
	// parent's index in the grandparent, -1 when there is none.
	thisIndex   int
	parentIndex int
	// chain runs from the root down to the component; indices holds each
	// node's position in the node before it (chain[0] holds rootIndex).
	chain   []Component
	indices []int
}

func (s *sortingData) rebuild(c Component) {
	var chain []Component
	for n := c; n != nil; {
		chain = append(chain, n)
		p := n.base().parent
		if p == nil {
			break
		}
		n = p
	}
	slices.Reverse(chain)

	indices := make([]int, len(chain))
	for i, n := range chain {
		if i == 0 {
			indices[i] = n.base().rootIndex
			continue
		}
		indices[i] = componentIndex(chain[i-1].(*Entity), n)
	}

	root := chain[0]
	s.version = graphVersion
	s.root = root
	s.rooted = root.base().manager != nil
	s.rootZ = zOf(root)
	s.rootIndex = root.base().rootIndex
	s.parent = c.base().parent
	s.chain = chain
	s.indices = indices
	s.thisIndex = indices[len(indices)-1]
	s.parentIndex = -1
	if len(indices) >= 3 {
		s.parentIndex = indices[len(indices)-2]
	}
}

// refresh rebuilds a stale snapshot and picks up the live root index.
func (s *sortingData) refresh(c Component) {
	if s.root == nil || s.version != graphVersion || s.rootZ != zOf(s.root) {
		s.rebuild(c)
		return
	}
	s.rootIndex = s.root.base().rootIndex
}

// componentIndex returns the slot of c in e's component list, counting nil
// holes so the order matches the unsorted list.
func componentIndex(e *Entity, c Component) int {
	for i, x := range e.components {
		if x == c {
			return i
		}
	}
	return -1
}

func (s *sortingData) self() Component { return s.chain[len(s.chain)-1] }

func (s *sortingData) contains(c Component) bool {
	for _, n := range s.chain {
		if n == c {
			return true
		}
	}
	return false
}

// firesBefore reports whether a's listener is called before b's: top-most
// visuals first.
func firesBefore(a, b *sortingData) bool {
	if a.rooted != b.rooted {
		return a.rooted
	}
	if a.rootZ != b.rootZ {
		return a.rootZ > b.rootZ
	}
	if a.rootIndex != b.rootIndex {
		return a.rootIndex > b.rootIndex
	}
	if a.parent == b.parent {
		return a.thisIndex > b.thisIndex
	}
	if a.parent != nil && b.parent != nil && a.parent.parent == b.parent.parent {
		return a.parentIndex > b.parentIndex
	}
	// One listener sits inside the other's parent: the deeper one wins.
	if b.contains(a.self()) {
		return false
	}
	if a.contains(b.self()) {
		return true
	}
	if a.parent != nil && b.contains(a.parent) {
		return false
	}
	if b.parent != nil && a.contains(b.parent) {
		return true
	}
	n := min(len(a.chain), len(b.chain))
	for i := 0; i < n; i++ {
		if a.chain[i] != b.chain[i] {
			return a.indices[i] > b.indices[i]
		}
	}
	return len(a.chain) > len(b.chain)
}

// SortedEventSystem dispatches events to component-owned listeners ordered
// by draw order, so the visually top-most component hears an event first.
type SortedEventSystem struct {
	dispatcher
}

// NewSortedEventSystem creates an empty SortedEventSystem.
func NewSortedEventSystem() *SortedEventSystem {
	return &SortedEventSystem{dispatcher: newDispatcher()}
}

// On registers fn for name on behalf of component.
func (es *SortedEventSystem) On(name string, component Component, fn func(data any)) *Listener {
	if fn == nil || isNil(component) {
		misuse("SortedEventSystem.On", "listener needs a component and a callback")
		return nil
	}
	l := &Listener{name: name, fn: fn, component: component, context: component}
	l.sorting.rebuild(component)
	return es.add(l)
}

// Off removes a listener returned by On.
func (es *SortedEventSystem) Off(name string, l *Listener) {
	if l == nil || l.name != name {
		return
	}
	es.off(l)
}

// OffComponent removes every listener for name registered by component.
func (es *SortedEventSystem) OffComponent(name string, component Component) {
	es.offWhere(name, func(l *Listener) bool { return l.component == component })
}

// RemoveAll removes every listener for name.
func (es *SortedEventSystem) RemoveAll(name string) {
	es.offWhere(name, func(*Listener) bool { return true })
}

// Fire refreshes the listeners' scene graph snapshots, stable-sorts them by
// draw order and calls them.
func (es *SortedEventSystem) Fire(name string, data any) {
	es.flush()
	ls := es.listeners[name]
	if len(ls) == 0 {
		return
	}
	for _, l := range ls {
		l.sorting.refresh(l.component)
	}
	// A running dispatch may be iterating the current slice.
	if es.depth > 0 {
		ls = slices.Clone(ls)
	}
	sort.SliceStable(ls, func(i, j int) bool {
		return firesBefore(&ls[i].sorting, &ls[j].sorting)
	})
	es.listeners[name] = ls
	es.fire(ls, data)
}

// StopPropagation stops the running Fire after the current listener.
func (es *SortedEventSystem) StopPropagation() { es.stopped = true }

// Count returns the number of active listeners for name.
func (es *SortedEventSystem) Count(name string) int { return es.count(name) }
