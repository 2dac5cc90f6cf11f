package model

import (
	"context"
	"encoding/base64"

	"github.com/hupe1980/geminimesh/core"
)

// GenerationConfig carries optional sampling overrides. Pointer fields are
// included in the outbound request only when explicitly provided; nil means
// the provider default applies and the field is never sent.
type GenerationConfig struct {
	Temperature        *float64 `json:"temperature,omitempty"`
	MaxOutputTokens    *int     `json:"maxOutputTokens,omitempty"`
	TopP               *float64 `json:"topP,omitempty"`
	TopK               *int     `json:"topK,omitempty"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

// Request captures the normalized model input produced by the assembler.
type Request struct {
	Model    string           `json:"model"`
	Contents []core.Content   `json:"contents"`
	Config   GenerationConfig `json:"config"`
	Stream   bool             `json:"stream,omitempty"`
}

// Response is one fragment emitted by a model: a unit of provider output
// carrying text and/or inline-image parts. The fragment sequence delivered
// over the channel is finite and not restartable; streaming and batch calls
// share this contract so the reassembler has exactly one consumer path.
type Response struct {
	Partial      bool         `json:"partial"`
	Content      core.Content `json:"content"`
	FinishReason string       `json:"finish_reason,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// Model is the minimal interface required to drive generation.
type Model interface {
	Generate(ctx context.Context, req Request) (<-chan Response, <-chan error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples. It
// replays a scripted fragment sequence: streamed requests receive each
// scripted fragment individually, batch requests receive one response
// carrying all scripted parts, mirroring the provider's two call shapes.
type MockModel struct {
	info      Info
	fragments []core.Content
	err       error
}

// NewMockModel constructs a MockModel.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{info: Info{Name: name, Provider: provider}}
}

// AddText appends a scripted text fragment.
func (m *MockModel) AddText(text string) {
	m.fragments = append(m.fragments, core.Content{
		Role:  string(core.RoleModel),
		Parts: []core.Part{core.TextPart{Text: text}},
	})
}

// AddImage appends a scripted inline-image fragment from raw bytes.
func (m *MockModel) AddImage(mimeType string, data []byte) {
	m.fragments = append(m.fragments, core.Content{
		Role: string(core.RoleModel),
		Parts: []core.Part{core.InlineImagePart{Image: core.InlineImage{
			MIMEType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(data),
		}}},
	})
}

// FailWith makes Generate emit err instead of the scripted fragments.
func (m *MockModel) FailWith(err error) { m.err = err }

// Generate implements Model; emits the scripted fragments.
func (m *MockModel) Generate(ctx context.Context, req Request) (<-chan Response, <-chan error) {
	respCh := make(chan Response, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(respCh)
		defer close(errCh)
		if m.err != nil {
			errCh <- m.err
			return
		}
		if req.Stream {
			for i, fr := range m.fragments {
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				case respCh <- Response{Partial: i < len(m.fragments)-1, Content: fr}:
				}
			}
			return
		}
		var parts []core.Part
		for _, fr := range m.fragments {
			parts = append(parts, fr.Parts...)
		}
		select {
		case <-ctx.Done():
			errCh <- ctx.Err()
		case respCh <- Response{Content: core.Content{Role: string(core.RoleModel), Parts: parts}, FinishReason: "stop"}:
		}
	}()
	return respCh, errCh
}

// Info implements Model interface.
func (m *MockModel) Info() Info { return m.info }
