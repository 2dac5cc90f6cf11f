// Package model defines the provider-agnostic abstractions for driving
// multimodal generation inside GeminiMesh.
//
// Core goals:
//   - Unify streaming + non-streaming generation behind a single interface
//   - Represent the response as a finite, non-restartable fragment sequence
//     so the reassembler has exactly one implementation for both call paths
//   - Keep request/response shapes minimal and transport independent
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (Gemini via the genai SDK) implement the Model interface from
// this package so higher layers remain decoupled from vendor SDKs.
package model
