// Package geminimesh adapts structured conversation descriptions (text and
// image turns) onto the Google Gemini generate-content API and translates the
// streamed or batched response back into a uniform envelope of text and
// binary image outputs. Most applications interact with this package by:
//  1. Creating an Adapter via New() (configuration is read from the
//     environment unless supplied explicitly)
//  2. Calling GenerateContent for a single invocation or GenerateAll for a
//     batch of independent items
//
// The façade delegates orchestration to runner.Runner while keeping setup and
// usage ergonomics concise. All defaults are safe for local development;
// hosts typically only set GEMINI_API_KEY.
package geminimesh

import (
	"context"
	"net/http"

	"github.com/hupe1980/geminimesh/artifact"
	"github.com/hupe1980/geminimesh/assembler"
	"github.com/hupe1980/geminimesh/config"
	"github.com/hupe1980/geminimesh/envelope"
	"github.com/hupe1980/geminimesh/logging"
	"github.com/hupe1980/geminimesh/media"
	"github.com/hupe1980/geminimesh/model"
	"github.com/hupe1980/geminimesh/model/gemini"
	"github.com/hupe1980/geminimesh/runner"
)

// Options configures the Adapter instance.
type Options struct {
	// Config overrides the environment-derived configuration.
	Config *config.Config
	// Model overrides the default Gemini-backed model, e.g. for tests.
	Model model.Model
	// Fetcher overrides the HTTP transport used for remote image turns.
	Fetcher media.Fetcher
	// Logger overrides the default structured logger built from the
	// configured log level.
	Logger logging.Logger
	// ContinueOnFailure makes batch processing capture per-item failures
	// instead of aborting on the first one.
	ContinueOnFailure bool
}

// defaultLogger builds the structured logger at the configured level.
func defaultLogger(cfg *config.Config) logging.Logger {
	lc := logging.DefaultLoggerConfig()
	lc.Level = logging.ParseLevel(cfg.LogLevel)
	lc.Component = "geminimesh"
	return logging.NewLogger(lc)
}

// Adapter is the high-level façade aggregating the model, the assembly
// pipeline and the artifact store.
type Adapter struct {
	cfg    *config.Config
	runner *runner.Runner
	store  *artifact.Store
}

// New creates a new Adapter with optional overrides. Configuration falls back
// to the environment; the model falls back to the official Gemini client.
func New(ctx context.Context, optFns ...func(o *Options)) (*Adapter, error) {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	cfg := opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return nil, err
		}
	}
	if opts.Logger == nil {
		opts.Logger = defaultLogger(cfg)
	}

	m := opts.Model
	if m == nil {
		gm, err := gemini.NewModel(ctx, cfg.Model, func(o *gemini.Options) {
			o.APIKey = cfg.APIKey
		})
		if err != nil {
			return nil, err
		}
		m = gm
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = &media.HTTPFetcher{
			Client:   &http.Client{Timeout: cfg.FetchTimeout},
			MaxBytes: cfg.MaxImageBytes,
		}
	}
	resolver := media.NewResolver(func(o *media.Options) {
		o.Fetcher = fetcher
		o.Logger = opts.Logger
	})
	asm := assembler.New(func(o *assembler.Options) {
		o.Resolver = resolver
	})

	store := artifact.NewStore()
	r := runner.New(m, func(o *runner.Options) {
		o.Assembler = asm
		o.Artifacts = store
		o.Logger = opts.Logger
		o.ContinueOnFailure = opts.ContinueOnFailure
	})

	return &Adapter{cfg: cfg, runner: r, store: store}, nil
}

// GenerateContent runs a single invocation and returns its output envelope.
func (a *Adapter) GenerateContent(ctx context.Context, input runner.Input) (*envelope.Envelope, error) {
	if input.Model == "" {
		input.Model = a.cfg.Model
	}
	return a.runner.Run(ctx, input)
}

// GenerateAll processes a batch of independent input items.
func (a *Adapter) GenerateAll(ctx context.Context, inputs []runner.Input) ([]runner.Result, error) {
	for i := range inputs {
		if inputs[i].Model == "" {
			inputs[i].Model = a.cfg.Model
		}
	}
	return a.runner.RunAll(ctx, inputs)
}

// Artifacts exposes the store holding generated image bytes per invocation.
func (a *Adapter) Artifacts() *artifact.Store { return a.store }
