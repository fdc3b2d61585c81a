// Package choice provides a titled random-selection container used by the
// game engine for every draw it makes.
//
// A Choice holds either a set of distinct options drawn with equal
// probability, or an ordered list of options annotated with positive
// weights drawn proportionally to those weights. Each draw may exclude a
// set of options; when nothing is left the draw fails with
// ErrExhaustedOptions. Invalid weights are rejected when the Choice is
// built, never at draw time.
//
// Randomness is injected through the Source interface so tests can use a
// seeded generator:
//
//	src := rand.New(rand.NewPCG(1, 2))
//	dirs, err := choice.NewWeighted("direction", []choice.Weighted[string]{
//		{Value: "forward", Weight: 0.3},
//		{Value: "backward", Weight: 0.1},
//	}, choice.WithSource(src))
//	if err != nil {
//		log.Fatal(err)
//	}
//	d, err := dirs.Select("backward")
package choice
