package gemini

import (
	"encoding/base64"

	"google.golang.org/genai"

	"github.com/hupe1980/geminimesh/core"
	"github.com/hupe1980/geminimesh/model"
)

// buildContents converts normalized content blocks into genai wire contents.
// Inline image data is decoded back to raw bytes since the SDK handles its
// own transport encoding.
func buildContents(contents []core.Content) ([]*genai.Content, error) {
	converted := make([]*genai.Content, 0, len(contents))
	for _, c := range contents {
		parts := make([]*genai.Part, 0, len(c.Parts))
		for _, p := range c.Parts {
			switch v := p.(type) {
			case core.TextPart:
				parts = append(parts, genai.NewPartFromText(v.Text))
			case core.InlineImagePart:
				raw, err := base64.StdEncoding.DecodeString(v.Image.Data)
				if err != nil {
					return nil, core.NewValidationError("base64 validation failed")
				}
				parts = append(parts, &genai.Part{InlineData: &genai.Blob{
					MIMEType: v.Image.MIMEType,
					Data:     raw,
				}})
			}
		}
		if len(parts) == 0 {
			continue
		}
		converted = append(converted, &genai.Content{Role: c.Role, Parts: parts})
	}
	return converted, nil
}

// buildConfig maps optional sampling overrides into the genai generation
// config. Absent values are never defaulted into the outbound request.
func buildConfig(cfg model.GenerationConfig) *genai.GenerateContentConfig {
	out := &genai.GenerateContentConfig{}
	if len(cfg.ResponseModalities) > 0 {
		out.ResponseModalities = append([]string(nil), cfg.ResponseModalities...)
	}
	if cfg.Temperature != nil {
		out.Temperature = ptr(float32(*cfg.Temperature))
	}
	if cfg.MaxOutputTokens != nil {
		out.MaxOutputTokens = int32(*cfg.MaxOutputTokens)
	}
	if cfg.TopP != nil {
		out.TopP = ptr(float32(*cfg.TopP))
	}
	if cfg.TopK != nil {
		out.TopK = ptr(float32(*cfg.TopK))
	}
	return out
}

// convertParts maps genai response parts back into core parts. Parts carrying
// neither text nor inline data are dropped.
func convertParts(content *genai.Content) core.Content {
	out := core.Content{Role: string(core.RoleModel)}
	if content == nil {
		return out
	}
	for _, p := range content.Parts {
		if p == nil {
			continue
		}
		switch {
		case p.InlineData != nil && len(p.InlineData.Data) > 0:
			out.Parts = append(out.Parts, core.InlineImagePart{Image: core.InlineImage{
				MIMEType: p.InlineData.MIMEType,
				Data:     base64.StdEncoding.EncodeToString(p.InlineData.Data),
			}})
		case p.Text != "":
			out.Parts = append(out.Parts, core.TextPart{Text: p.Text})
		}
	}
	return out
}

func ptr[T any](v T) *T { return &v }
