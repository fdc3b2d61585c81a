// Package service provides the business logic layer for liar heads.
//
// The service package implements:
//   - Multi-session game management
//   - Configuration loading and saving
//   - Turn processing, with optional forced directions
//   - Turn history with head statistics
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transports (HTTP, WebSocket, MCP and the
// terminal UI) and the game engine. Each session owns its own engine, and all
// engine calls are serialized by the service, so transports never touch an
// engine directly. States returned to callers are copies.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	// Create a new session
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Let the heads pick a direction
//	result, err := gameService.Advance(ctx, info.ID, nil, false)
//
//	// Force a direction
//	left := engine.Left
//	result, err = gameService.Advance(ctx, info.ID, &left, false)
package service
