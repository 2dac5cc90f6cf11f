package core

// Role identifies the author of a conversation turn.
type Role string

const (
	// RoleUser marks caller-authored turns.
	RoleUser Role = "user"
	// RoleModel marks provider-authored turns.
	RoleModel Role = "model"
)

// ContentType selects which payload field of a Turn is relevant.
type ContentType string

const (
	// ContentTypeText selects the Text field.
	ContentTypeText ContentType = "text"
	// ContentTypeImageURL selects the ImageURL field.
	ContentTypeImageURL ContentType = "imageUrl"
	// ContentTypeImageBase64 selects the ImageBase64 field.
	ContentTypeImageBase64 ContentType = "imageBase64"
)

// Turn is one role-tagged unit of conversation input supplied by the caller.
// Exactly one of Text / ImageURL / ImageBase64 is relevant per ContentType;
// turns that resolve to no content are dropped during assembly, not rejected.
type Turn struct {
	Role        Role        `json:"role"`
	ContentType ContentType `json:"contentType"`
	Text        string      `json:"text,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	ImageBase64 string      `json:"imageBase64,omitempty"`
	MIMEType    string      `json:"mimeType,omitempty"` // Optional override for image turns
}
