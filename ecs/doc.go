// Package ecs provides ECS adapters for bento's event system.
//
// The primary adapter is [Forward], which republishes named bento events
// (lifecycle, pointer, or game-defined) into a [Donburi] world as typed
// events. Subscribe to [EventType] in your ECS systems to receive them.
//
// Usage:
//
//	world := donburi.NewWorld()
//	ecs.Forward(game.Events, world, bento.EventPointerDown, bento.EventPointerUp)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
