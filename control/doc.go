// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics and debug introspection layer for the parallel
// execution facade.
//
// Provides concurrent-safe observability primitives including:
//   - Counter and gauge telemetry with snapshot reads
//   - Debug hooks and probe registration
//   - A bounded call log for tracing recent parallel operations
package control
