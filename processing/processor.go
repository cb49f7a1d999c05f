package processing

import (
	"context"
	"fmt"

	"github.com/spacemeshos/merkle-tree"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/bits/config"
	"github.com/spacemeshos/bits/shared"
)

// Batch is the outcome of processing a set of lines. Results are in input
// order. Root is the merkle root over the result digests.
type Batch struct {
	Results []*Result
	Root    []byte
}

// Failed returns the number of lines that didn't fully evaluate.
func (b *Batch) Failed() int {
	n := 0
	for _, r := range b.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Processor decodes independent lines in parallel. A failing line never
// affects the others; only context cancellation aborts a batch.
type Processor struct {
	cfg    *config.Config
	logger shared.Logger
}

func NewProcessor(cfg *config.Config, opts ...OptionFunc) (*Processor, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	options := &option{
		logger: shared.NoopLogger{},
	}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	return &Processor{
		cfg:    cfg,
		logger: options.logger,
	}, nil
}

func (p *Processor) Process(ctx context.Context, lines []string) (*Batch, error) {
	if len(lines) == 0 {
		return nil, shared.ErrEmptyInput
	}

	numWorkers := shared.Min(p.cfg.NumWorkers(), len(lines))
	p.logger.Info("processing: %d lines with %d workers, strategy: %v", len(lines), numWorkers, p.cfg.Strategy)

	jobs := make(chan int)
	results := make([]*Result, len(lines))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer close(jobs)
		for i := range lines {
			select {
			case jobs <- i:
			case <-egCtx.Done():
				return egCtx.Err()
			}
		}
		return nil
	})

	for i := 0; i < numWorkers; i++ {
		eg.Go(func() error {
			return p.lineWorker(egCtx, jobs, lines, results)
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	root, err := digestRoot(results)
	if err != nil {
		return nil, err
	}

	batch := &Batch{
		Results: results,
		Root:    root,
	}
	p.logger.Info("processing: completed; %d lines, %d failed, root: %x", len(results), batch.Failed(), root)
	return batch, nil
}

// lineWorker decodes the lines whose indices arrive on jobs. Each index is
// received once, so writes to results never overlap.
func (p *Processor) lineWorker(ctx context.Context, jobs <-chan int, lines []string, results []*Result) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case i, ok := <-jobs:
			if !ok {
				return nil
			}
			res := decodeLine(i+1, lines[i], p.cfg, p.logger)
			if res.Err != nil {
				p.logger.Debug("processing: %v", res.Err)
			}
			results[i] = res
		}
	}
}

func digestRoot(results []*Result) ([]byte, error) {
	tree, err := merkle.NewTreeBuilder().WithHashFunc(shared.HashParent).Build()
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		if err := tree.AddLeaf(r.Digest); err != nil {
			return nil, fmt.Errorf("failed to add digest of line %d: %w", r.Line, err)
		}
	}
	return tree.Root(), nil
}
