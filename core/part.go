package core

// Part represents a polymorphic segment of role-based content. Concrete part
// types implement the unexported isPart marker enabling a closed set.
type Part interface{ isPart() }

// TextPart is a plain text content segment.
type TextPart struct {
	Text string // Plain UTF-8 text
}

// isPart implements the Part interface for TextPart.
func (TextPart) isPart() {}

// InlineImage holds image bytes embedded directly in a request or response
// as base64 plus a concrete MIME type. Once produced by the resolver,
// MIMEType is always an image/* value and Data decodes to at least one byte.
type InlineImage struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"` // Base64 encoded bytes
}

// InlineImagePart embeds an image as a content part.
type InlineImagePart struct {
	Image InlineImage
}

// isPart implements the Part interface for InlineImagePart.
func (InlineImagePart) isPart() {}

// Content holds role + ordered parts.
type Content struct {
	Role  string `json:"role,omitempty"` // Conversation role (user, model)
	Parts []Part `json:"parts"`          // Ordered heterogeneous parts
}
