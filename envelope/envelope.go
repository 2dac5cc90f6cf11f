// Package envelope defines the terminal output artifact of one invocation
// and the collector that reassembles provider response fragments into it.
package envelope

import (
	"encoding/base64"
	"fmt"
)

// GeneratedImage is one decoded image artifact emitted by the provider.
// FileName is generated_image_N plus an extension derived from the MIME type;
// N is assigned in the order images are encountered across all fragments.
type GeneratedImage struct {
	FileName string `json:"fileName"`
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"-"`
}

// Usage is a rough token estimate derived from the generated text's character
// count. It is an approximation, not a provider-reported value; callers
// needing accurate usage must source it from the provider response directly.
type Usage struct {
	TotalTokens int `json:"totalTokens"`
}

// Envelope is the terminal artifact of one invocation. It is built fresh per
// call and never persisted by this module.
type Envelope struct {
	Text               string           `json:"text"`
	Images             []GeneratedImage `json:"images"`
	Model              string           `json:"model"`
	ResponseModalities []string         `json:"responseModalities"`
	Usage              Usage            `json:"usage"`
}

// Attachment mirrors one generated image as a host-facing binary record.
type Attachment struct {
	Data     string `json:"data"` // Base64 encoded bytes
	MIMEType string `json:"mimeType"`
	FileName string `json:"fileName"`
}

// Attachments renders the generated images as a map keyed image_0, image_1,
// ... in generation order. Returns nil when no images are present.
func (e *Envelope) Attachments() map[string]Attachment {
	if len(e.Images) == 0 {
		return nil
	}
	m := make(map[string]Attachment, len(e.Images))
	for i, img := range e.Images {
		m[fmt.Sprintf("image_%d", i)] = Attachment{
			Data:     base64.StdEncoding.EncodeToString(img.Data),
			MIMEType: img.MIMEType,
			FileName: img.FileName,
		}
	}
	return m
}
