// Package gemini provides a model wrapper for the Google Gemini API using the
// official genai SDK. It adapts GeminiMesh's normalized Request/Response
// structures into the SDK's content format and back.
package gemini

import (
	"context"

	"google.golang.org/genai"

	"github.com/hupe1980/geminimesh/core"
	"github.com/hupe1980/geminimesh/model"
)

// Options configure the Gemini model adapter.
type Options struct {
	// APIKey is the bearer credential; when empty the SDK falls back to
	// its environment lookup.
	APIKey string
	// Backend selects the genai backend; the zero value resolves to the
	// Gemini API.
	Backend genai.Backend
}

// Model wraps the genai client behind the generic model.Model interface.
type Model struct {
	client *genai.Client
	name   string
}

var _ model.Model = (*Model)(nil)

// NewModel creates a new Gemini model using the official client.
func NewModel(ctx context.Context, name string, optFns ...func(o *Options)) (*Model, error) {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: opts.Backend,
	})
	if err != nil {
		return nil, core.NewProviderError("create genai client", err)
	}
	return &Model{client: client, name: name}, nil
}

// NewModelFromClient creates a new Gemini model from an existing client.
func NewModelFromClient(client *genai.Client, name string) *Model {
	return &Model{client: client, name: name}
}

// Generate implements unified streaming / non-streaming generation. Each
// provider chunk is forwarded as exactly one Response carrying only that
// chunk's parts, so the collector sees every part once regardless of the
// dispatch path.
func (m *Model) Generate(ctx context.Context, req model.Request) (<-chan model.Response, <-chan error) {
	out := make(chan model.Response, 32)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)
		contents, err := buildContents(req.Contents)
		if err != nil {
			errCh <- err
			return
		}
		config := buildConfig(req.Config)
		name := req.Model
		if name == "" {
			name = m.name
		}
		if req.Stream {
			m.handleStreaming(ctx, name, contents, config, out, errCh)
			return
		}
		m.handleNonStreaming(ctx, name, contents, config, out, errCh)
	}()
	return out, errCh
}

// handleStreaming forwards incremental chunks. Chunks without candidate
// content are skipped rather than aborting the sequence.
func (m *Model) handleStreaming(
	ctx context.Context,
	name string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
	out chan<- model.Response,
	errCh chan<- error,
) {
	for resp, err := range m.client.Models.GenerateContentStream(ctx, name, contents, config) {
		if err != nil {
			errCh <- core.NewProviderError("gemini streaming error", err)
			return
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}
		candidate := resp.Candidates[0]
		complete := candidate.FinishReason != ""
		select {
		case <-ctx.Done():
			errCh <- ctx.Err()
			return
		case out <- model.Response{
			Partial:      !complete,
			Content:      convertParts(candidate.Content),
			FinishReason: string(candidate.FinishReason),
		}:
		}
	}
}

// handleNonStreaming processes a single-shot completion. A response without
// candidate content yields no fragment, matching the streaming path's
// skip-malformed behavior.
func (m *Model) handleNonStreaming(
	ctx context.Context,
	name string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
	out chan<- model.Response,
	errCh chan<- error,
) {
	resp, err := m.client.Models.GenerateContent(ctx, name, contents, config)
	if err != nil {
		errCh <- core.NewProviderError("gemini api error", err)
		return
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return
	}
	candidate := resp.Candidates[0]
	select {
	case <-ctx.Done():
		errCh <- ctx.Err()
	case out <- model.Response{
		Content:      convertParts(candidate.Content),
		FinishReason: string(candidate.FinishReason),
	}:
	}
}

// Info returns metadata describing this Gemini model implementation.
func (m *Model) Info() model.Info {
	return model.Info{Name: m.name, Provider: "gemini"}
}
