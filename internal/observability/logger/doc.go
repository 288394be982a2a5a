// Package logger provides a singleton Zap logger with context-based scoping.
//
// Design:
//
//   - Singleton: one global instance initialized with Init().
//   - Context scoping: each request carries its own scoped logger with
//     request fields (request_id, user_id, ...) without building a new core.
//   - Environments: "dev" uses a colored console encoder, "prod" uses JSON.
//
// Initialization (once, in main):
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
//	defer logger.Sync()
//
// In handlers and services:
//
//	log := logger.From(ctx)
//	log.Info("post created", logger.PostID(id))
package logger
