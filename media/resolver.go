package media

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/hupe1980/geminimesh/core"
	"github.com/hupe1980/geminimesh/logging"
)

// fetchRecorder is implemented by loggers that record image retrievals, such
// as logging.MeshLogger.
type fetchRecorder interface {
	LogImageFetch(url string, bytes int, dur time.Duration, err error)
}

// Options configure the image resolver.
type Options struct {
	// Fetcher retrieves remote image bytes for imageUrl turns.
	Fetcher Fetcher
	// Logger receives fetch diagnostics; defaults to NoOp.
	Logger logging.Logger
}

// Resolver normalizes image turns into inline image payloads. It dispatches
// once on the turn's content type: URLs are fetched and encoded, inline
// base64 is cleaned and validated. MIME types come from an explicit caller
// override when present, otherwise from extension or magic-byte detection.
type Resolver struct {
	fetcher Fetcher
	logger  logging.Logger
}

// NewResolver constructs a Resolver with optional overrides.
func NewResolver(optFns ...func(o *Options)) *Resolver {
	opts := Options{
		Fetcher: NewHTTPFetcher(),
		Logger:  logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Resolver{fetcher: opts.Fetcher, logger: opts.Logger}
}

// Resolve converts an image turn into an InlineImage. All error messages
// leaving this component are sanitized so raw binary content cannot reach
// log or error channels.
func (r *Resolver) Resolve(ctx context.Context, turn core.Turn) (core.InlineImage, error) {
	switch turn.ContentType {
	case core.ContentTypeImageURL:
		return r.resolveURL(ctx, turn)
	case core.ContentTypeImageBase64:
		return r.resolveBase64(turn)
	default:
		return core.InlineImage{}, core.NewValidationError(
			"unsupported content type: " + core.Sanitize(string(turn.ContentType)))
	}
}

func (r *Resolver) resolveURL(ctx context.Context, turn core.Turn) (core.InlineImage, error) {
	if strings.TrimSpace(turn.ImageURL) == "" {
		return core.InlineImage{}, core.NewValidationError("image URL cannot be empty")
	}
	start := time.Now()
	raw, err := r.fetcher.Fetch(ctx, turn.ImageURL)
	if rec, ok := r.logger.(fetchRecorder); ok {
		rec.LogImageFetch(turn.ImageURL, len(raw), time.Since(start), err)
	} else if err == nil {
		r.logger.Debug("fetched remote image", "url", turn.ImageURL, "bytes", len(raw))
	}
	if err != nil {
		return core.InlineImage{}, core.NewFetchError(turn.ImageURL, err)
	}
	mimeType := turn.MIMEType
	if mimeType == "" {
		mimeType = DetectFromURL(turn.ImageURL)
	}
	return finalize(mimeType, base64.StdEncoding.EncodeToString(raw))
}

func (r *Resolver) resolveBase64(turn core.Turn) (core.InlineImage, error) {
	if strings.TrimSpace(turn.ImageBase64) == "" {
		return core.InlineImage{}, core.NewValidationError("base64 data cannot be empty")
	}
	clean, err := NormalizeBase64(turn.ImageBase64)
	if err != nil {
		return core.InlineImage{}, err
	}
	mimeType := turn.MIMEType
	if mimeType == "" {
		decoded, _ := base64.StdEncoding.DecodeString(clean) // validated by NormalizeBase64
		mimeType = DetectFromBytes(decoded)
	}
	return finalize(mimeType, clean)
}

// finalize enforces the non-empty post-condition shared by both paths.
func finalize(mimeType, data string) (core.InlineImage, error) {
	if data == "" {
		return core.InlineImage{}, core.NewValidationError("processed image data is empty")
	}
	return core.InlineImage{MIMEType: mimeType, Data: data}, nil
}
