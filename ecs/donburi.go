package ecs

import (
	"github.com/phanxgames/bento"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Event is a bento event republished into a Donburi world.
type Event struct {
	// Name is the bento event name, for example bento.EventPointerDown.
	Name string
	// Data is the value the event was fired with.
	Data any
}

// EventType is the Donburi event type for forwarded bento events.
// Events are queued; drain them with EventType.ProcessEvents.
var EventType = events.NewEventType[Event]()

// Forward publishes every firing of the named events on es to world. The
// returned listeners stop the forwarding when removed.
func Forward(es *bento.EventSystem, world donburi.World, names ...string) []*bento.Listener {
	listeners := make([]*bento.Listener, 0, len(names))
	for _, name := range names {
		listeners = append(listeners, es.On(name, func(data any) {
			EventType.Publish(world, Event{Name: name, Data: data})
		}, world))
	}
	return listeners
}

// Stop removes listeners returned by Forward.
func Stop(listeners []*bento.Listener) {
	for _, l := range listeners {
		l.Off()
	}
}

// PointerEvent extracts the pointer payload of a forwarded event.
func PointerEvent(e Event) (*bento.PointerEvent, bool) {
	p, ok := e.Data.(*bento.PointerEvent)
	return p, ok
}
