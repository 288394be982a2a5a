// Package repository defines the domain repository contracts.
//
// These interfaces are storage-agnostic; the concrete implementations live
// in internal/store/pg (PostgreSQL) and internal/store/memory (in-process,
// used by tests and dev mode).
//
// Conventions:
//   - Context is always the first parameter
//   - Domain errors live in errors.go and are matched with errors.Is
package repository
