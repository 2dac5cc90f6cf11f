// Package runner implements the request orchestration layer for GeminiMesh.
//
// The Runner bridges the normalized conversation input and the provider
// adapter: it assembles content blocks, builds the generation configuration
// from explicitly provided overrides, dispatches either the streaming or the
// single-shot call, and feeds whichever fragment sequence results into the
// envelope collector.
//
// # Responsibilities (abridged)
//   - Single-invocation execution with fresh per-call state
//   - Batch execution with continue-on-failure semantics
//   - The module's one error boundary (classification + message sanitization)
//   - Optional persistence of generated images into an artifact store
package runner
