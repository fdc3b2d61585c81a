// Package session provides in-memory session management for liar heads games.
//
// Each session owns its own engine, so games never share state or random
// draws. Sessions live for the lifetime of the process and can be expired
// after a period of inactivity.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference, generated with
// crypto/rand. Lookups are case-insensitive.
//
// Seeding:
//
// A Manager built with WithSeed gives every session a distinct, reproducible
// seed, which is reported on the session so a game can be replayed.
//
// Usage:
//
//	manager := session.NewManager(session.WithSeed(42))
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Remove sessions idle for an hour
//	manager.StartCleanup(ctx, time.Minute, time.Hour)
package session
