// Package media implements image payload normalization for provider
// requests: MIME type detection (URL extension lookup and magic-byte
// sniffing), base64 sanitation with data-URL prefix stripping, and the
// resolver that turns heterogeneous image sources (remote URL, inline
// base64) into a uniform inline image payload.
package media
