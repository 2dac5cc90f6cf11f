// Package core provides the foundational domain types used by GeminiMesh. It
// defines the core abstractions for:
//
//   - Turns (role-tagged units of conversation input, text or image)
//   - Content blocks (ordered, typed part sequences sent to the provider)
//   - The closed Part sum (text and inline-image segments)
//   - The error taxonomy (validation, fetch, provider, unclassified) with
//     message sanitization and turn-position annotation
//
// The package intentionally keeps implementation concerns (HTTP transport,
// provider SDKs, orchestration) out of scope so that higher layers can be
// composed and tested independently.
package core
