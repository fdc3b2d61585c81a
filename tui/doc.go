// Package tui is a terminal front end for a single liar heads game.
//
// It drives a game engine in-process, with no server involved:
//
//	e, _ := engine.NewEngine(config, engine.WithSeed(42))
//	if err := tui.Run(ctx, e); err != nil {
//		log.Fatal(err)
//	}
//
// Space or enter draws a head. w, s, a and d force forward, backward, left
// and right; q and e force the up and down decoys. r restarts and esc quits.
package tui
