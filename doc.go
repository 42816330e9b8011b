// Package bento is a 2D entity/component game engine core for [Ebitengine].
//
// Bento provides the scene graph, fixed-step main loop, z-sorted registry,
// event systems, hierarchical transforms and a canvas-style renderer that a
// small 2D game is built from.
//
// # Quick start
//
// Build a [Game] from [Settings] and hand it to [Run]:
//
//	settings, err := bento.LoadSettingsFile("settings.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	game, err := bento.NewGame(settings)
//	if err != nil {
//		log.Fatal(err)
//	}
//	game.Screens.Register("main", mainScreen{game})
//	game.Screens.Show("main", nil)
//	if err := bento.Run(game); err != nil {
//		log.Fatal(err)
//	}
//
// # Entities and components
//
// Every object in the scene is a [Component]: any struct embedding [Base].
// Behavior is attached by implementing optional hook interfaces such as
// [Updater], [Drawer] or [Starter]; the engine checks for each hook when it
// runs. An [Entity] is a component with a position, scale, rotation, alpha
// and an ordered list of child components, so entities nest:
//
//	player := bento.NewEntity(bento.EntityConfig{
//		Name:     "player",
//		Position: bento.Vector2{X: 40, Y: 60},
//		Z:        10,
//		Family:   []string{"actors"},
//		Components: []bento.Component{
//			bento.NewSprite(bento.SpriteConfig{Assets: game.Assets, ImageName: "images/player"}),
//		},
//		AddNow: game.Objects,
//	})
//
// Components are started when they become reachable from the
// [ObjectManager] registry and destroyed when they stop being reachable.
// Removing a component while its siblings are updating is safe: the slot is
// compacted after the update pass.
//
// # Main loop
//
// [ObjectManager.Run] schedules [ObjectManager.MainLoop] on a [FrameHost].
// Updates run in [FixedStep] increments, so entity behavior is independent of
// the display frame rate; a stall longer than 1/MinimumFPS drops simulation
// time instead of bursting updates. Drawing ignores the pause level.
//
// # Events
//
// [EventSystem] is a named publish/subscribe table. [SortedEventSystem]
// orders component listeners by draw order, so pointer events reach the
// top-most entity first; [Clickable] builds on it.
//
// Misuse such as attaching a component twice is logged through the package
// zap logger (see [SetLogger]) and the call returns without effect.
//
// [Ebitengine]: https://ebitengine.org
package bento
