package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/geminimesh/artifact"
	"github.com/hupe1980/geminimesh/assembler"
	"github.com/hupe1980/geminimesh/core"
	"github.com/hupe1980/geminimesh/envelope"
	"github.com/hupe1980/geminimesh/logging"
	"github.com/hupe1980/geminimesh/model"
)

// Input describes one invocation: conversation history, the current user
// message and generation settings.
type Input struct {
	// Model identifies the target model; falls back to the adapter default
	// when empty.
	Model string
	// Turns is the ordered conversation history.
	Turns []core.Turn
	// CurrentMessage is the trailing user message; appended as a final
	// user block when non-blank.
	CurrentMessage string
	// Config carries optional generation overrides.
	Config model.GenerationConfig
	// Stream selects the streaming dispatch path.
	Stream bool
}

// Result pairs one batch item's envelope (or sanitized failure) with its
// position. On failure Envelope and Attachments are nil and Err carries the
// classified error.
type Result struct {
	Item        int
	Envelope    *envelope.Envelope
	Attachments map[string]envelope.Attachment
	Err         error
}

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// Assembler builds provider contents from turns.
	Assembler *assembler.Assembler
	// Artifacts, when set, receives generated image bytes per invocation.
	Artifacts *artifact.Store
	// Logger receives invocation diagnostics.
	Logger logging.Logger
	// ContinueOnFailure makes RunAll capture per-item failures instead of
	// aborting the whole batch.
	ContinueOnFailure bool
}

// Runner coordinates one generation request end-to-end: assembles contents,
// dispatches the model call (streaming or single-shot), reassembles the
// fragment sequence and packages the output envelope. It is the single error
// boundary: every failure below is classified and its message sanitized to
// printable text while the original cause stays wrapped for diagnostics.
// Public methods are safe for concurrent use; all per-invocation state is
// created fresh inside Run.
type Runner struct {
	model             model.Model
	assembler         *assembler.Assembler
	artifacts         *artifact.Store
	logger            logging.Logger
	continueOnFailure bool
}

// modelCallRecorder is implemented by loggers that record model call metrics,
// such as logging.MeshLogger.
type modelCallRecorder interface {
	LogModelCall(model string, textLen, images int, dur time.Duration, err error)
}

// New constructs a Runner with optional overrides.
func New(m model.Model, optFns ...func(o *Options)) *Runner {
	opts := Options{
		Assembler: assembler.New(),
		Logger:    logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Runner{
		model:             m,
		assembler:         opts.Assembler,
		artifacts:         opts.Artifacts,
		logger:            opts.Logger,
		continueOnFailure: opts.ContinueOnFailure,
	}
}

// Run executes a single invocation and returns its output envelope.
func (r *Runner) Run(ctx context.Context, input Input) (*envelope.Envelope, error) {
	invocationID := uuid.NewString()
	start := time.Now()

	env, err := r.run(ctx, invocationID, input)
	if err != nil {
		classified := core.Classify(err)
		if rec, ok := r.logger.(modelCallRecorder); ok {
			rec.LogModelCall(input.Model, 0, 0, time.Since(start), classified)
		}
		r.logger.Error("generation failed",
			"invocation_id", invocationID,
			"model", input.Model,
			"kind", classified.Kind.String(),
			"error", classified.Message,
		)
		return nil, classified
	}

	if rec, ok := r.logger.(modelCallRecorder); ok {
		rec.LogModelCall(env.Model, len(env.Text), len(env.Images), time.Since(start), nil)
	}
	r.logger.Info("generation completed",
		"invocation_id", invocationID,
		"model", env.Model,
		"duration", time.Since(start),
		"text_len", len(env.Text),
		"image_count", len(env.Images),
	)
	return env, nil
}

func (r *Runner) run(ctx context.Context, invocationID string, input Input) (*envelope.Envelope, error) {
	contents, err := r.assembler.Assemble(ctx, input.Turns, input.CurrentMessage)
	if err != nil {
		return nil, err
	}

	modelName := input.Model
	if modelName == "" {
		modelName = r.model.Info().Name
	}
	req := model.Request{
		Model:    modelName,
		Contents: contents,
		Config:   input.Config,
		Stream:   input.Stream,
	}

	respCh, errCh := r.model.Generate(ctx, req)
	collector := envelope.NewCollector()
	for resp := range respCh {
		collector.Add(resp.Content)
	}
	if err := <-errCh; err != nil {
		return nil, err
	}

	env := collector.Envelope(modelName, input.Config.ResponseModalities)
	if r.artifacts != nil {
		for _, img := range env.Images {
			if err := r.artifacts.Save(invocationID, img.FileName, img.Data); err != nil {
				r.logger.Warn("failed to persist generated image",
					"invocation_id", invocationID, "file_name", img.FileName, "error", err.Error())
			}
		}
	}
	return env, nil
}

// RunAll processes independent input items sequentially; each item is its own
// invocation with fresh counters, accumulators and error boundary. In
// continue-on-failure mode an item's failure is captured as a Result with Err
// set and processing moves on; otherwise the first failure aborts the batch
// annotated with the item's position.
func (r *Runner) RunAll(ctx context.Context, inputs []Input) ([]Result, error) {
	results := make([]Result, 0, len(inputs))
	for i, input := range inputs {
		env, err := r.Run(ctx, input)
		if err != nil {
			if r.continueOnFailure {
				results = append(results, Result{Item: i, Err: err})
				continue
			}
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		results = append(results, Result{
			Item:        i,
			Envelope:    env,
			Attachments: env.Attachments(),
		})
	}
	return results, nil
}
