// Package engine provides the core game logic for the liar heads puzzle.
//
// The player starts on row 0 of a length x width grid and wins by reaching
// row length-1. Every turn a talking head is drawn and announces the
// direction the player just moved. Truth heads announce it, Lie heads
// announce its inverse, and Repeat heads are as honest as the head before
// them, however long the run of Repeats is.
//
// Core Types:
//
// Direction and HeadKind are closed enumerations. The Engine interface is
// implemented by GameEngine, which owns one GameState and advances it one
// turn at a time. GameConfig is the read-only snapshot a game is built from.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultGameConfig(), engine.WithSeed(42))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Let the engine draw the move
//	result, err := gameEngine.Advance(nil)
//
//	// Or force one
//	fwd := engine.Forward
//	result, err = gameEngine.Advance(&fwd)
//
// Turn Rules:
//
// Directions that would leave the grid are banned before the draw. When the
// head lies, the inverses of the banned directions are banned too, so the
// announcement never names a move that is impossible from where the player
// stood. Up and Down are decoys: they never move the player and are never
// banned. A forced move that is banned is rejected without touching the
// game.
package engine
