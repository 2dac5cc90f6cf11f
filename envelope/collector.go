package envelope

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hupe1980/geminimesh/core"
	"github.com/hupe1980/geminimesh/media"
)

// Collector accumulates response fragments into a text buffer and an ordered
// list of generated images. A Collector is single-invocation state: create a
// fresh one per request and never share it across invocations. It operates
// identically whether fragments arrive incrementally (stream) or as one
// materialized batch, which makes the two dispatch paths produce the same
// envelope for semantically identical fragment sequences.
type Collector struct {
	text      strings.Builder
	images    []GeneratedImage
	nextIndex int
}

// NewCollector returns an empty collector.
func NewCollector() *Collector { return &Collector{} }

// Add applies one fragment's parts in arrival order. Text is concatenated
// byte-for-byte with no separators; inline images are decoded and named
// generated_image_N in encounter order (text parts do not consume an index).
// Parts with neither field and inline data that fails to decode are skipped;
// reassembly is best-effort per fragment, never all-or-nothing.
func (c *Collector) Add(content core.Content) {
	for _, part := range content.Parts {
		switch p := part.(type) {
		case core.TextPart:
			c.text.WriteString(p.Text)
		case core.InlineImagePart:
			raw, err := base64.StdEncoding.DecodeString(p.Image.Data)
			if err != nil || len(raw) == 0 {
				continue
			}
			mimeType := p.Image.MIMEType
			if mimeType == "" {
				mimeType = "image/png"
			}
			c.images = append(c.images, GeneratedImage{
				FileName: fmt.Sprintf("generated_image_%d.%s", c.nextIndex, media.ExtensionByMIME(mimeType)),
				MIMEType: mimeType,
				Data:     raw,
			})
			c.nextIndex++
		}
	}
}

// Text returns the accumulated text so far.
func (c *Collector) Text() string { return c.text.String() }

// Images returns the generated images collected so far.
func (c *Collector) Images() []GeneratedImage { return c.images }

// Envelope finalizes the collected output. The usage estimate is the
// character count of the accumulated text, not its byte length.
func (c *Collector) Envelope(model string, modalities []string) *Envelope {
	text := c.text.String()
	return &Envelope{
		Text:               text,
		Images:             c.images,
		Model:              model,
		ResponseModalities: modalities,
		Usage:              Usage{TotalTokens: utf8.RuneCountInString(text)},
	}
}
