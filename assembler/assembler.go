// Package assembler converts an ordered list of heterogeneous conversation
// turns into the normalized content blocks consumed by the provider adapter.
// Turn order is a correctness guarantee: image turns may resolve
// concurrently, but results are stitched back by turn index before blocks are
// built, so output block order always equals input turn order.
package assembler

import (
	"context"
	"strings"
	"sync"

	"github.com/hupe1980/geminimesh/core"
	"github.com/hupe1980/geminimesh/media"
)

// Options configure the assembler.
type Options struct {
	// Resolver normalizes image turns into inline payloads.
	Resolver *media.Resolver
	// MaxConcurrentFetches bounds parallel image resolution across turns.
	MaxConcurrentFetches int
}

// Assembler builds provider-facing content blocks from caller turns.
type Assembler struct {
	resolver      *media.Resolver
	maxConcurrent int
}

// New constructs an Assembler with optional overrides.
func New(optFns ...func(o *Options)) *Assembler {
	opts := Options{
		Resolver:             media.NewResolver(),
		MaxConcurrentFetches: 4,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxConcurrentFetches < 1 {
		opts.MaxConcurrentFetches = 1
	}
	return &Assembler{resolver: opts.Resolver, maxConcurrent: opts.MaxConcurrentFetches}
}

// Assemble produces one content block per non-empty turn, history first, plus
// a synthesized trailing user block for a non-blank current message. A turn
// producing zero parts (blank text) is silently omitted: it models an empty
// optional slot in a host-composed message list. Image turns are validated;
// their resolution errors are annotated with the originating turn position
// and re-raised, never swallowed.
func (a *Assembler) Assemble(ctx context.Context, turns []core.Turn, currentMessage string) ([]core.Content, error) {
	images, err := a.resolveImages(ctx, turns)
	if err != nil {
		return nil, err
	}

	contents := make([]core.Content, 0, len(turns)+1)
	for i, turn := range turns {
		var parts []core.Part
		switch turn.ContentType {
		case core.ContentTypeText:
			if strings.TrimSpace(turn.Text) != "" {
				parts = append(parts, core.TextPart{Text: turn.Text})
			}
		case core.ContentTypeImageURL, core.ContentTypeImageBase64:
			parts = append(parts, core.InlineImagePart{Image: images[i]})
		}
		if len(parts) == 0 {
			continue
		}
		contents = append(contents, core.Content{Role: string(turn.Role), Parts: parts})
	}

	if strings.TrimSpace(currentMessage) != "" {
		contents = append(contents, core.Content{
			Role:  string(core.RoleUser),
			Parts: []core.Part{core.TextPart{Text: currentMessage}},
		})
	}
	return contents, nil
}

// resolveImages resolves every image turn, bounded-concurrently, keyed by
// turn index. On failure the first error in turn order wins.
func (a *Assembler) resolveImages(ctx context.Context, turns []core.Turn) (map[int]core.InlineImage, error) {
	var indices []int
	for i, turn := range turns {
		if turn.ContentType == core.ContentTypeImageURL || turn.ContentType == core.ContentTypeImageBase64 {
			indices = append(indices, i)
		}
	}
	if len(indices) == 0 {
		return nil, nil
	}

	type result struct {
		image core.InlineImage
		err   error
	}
	results := make([]result, len(indices))
	sem := make(chan struct{}, a.maxConcurrent)
	var wg sync.WaitGroup
	for slot, idx := range indices {
		wg.Add(1)
		go func(slot, idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			img, err := a.resolver.Resolve(ctx, turns[idx])
			results[slot] = result{image: img, err: err}
		}(slot, idx)
	}
	wg.Wait()

	images := make(map[int]core.InlineImage, len(indices))
	for slot, idx := range indices {
		if results[slot].err != nil {
			return nil, core.WithTurn(results[slot].err, idx)
		}
		images[idx] = results[slot].image
	}
	return images, nil
}
