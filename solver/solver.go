package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/jvitoroc/numgame/eval"
	"github.com/jvitoroc/numgame/search"
	"github.com/jvitoroc/numgame/shape"
	"golang.org/x/sync/errgroup"
)

const DefaultTolerance = 1e-9

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrWorkerFailure = errors.New("worker failure")
)

type options struct {
	table   *eval.Table
	tol     float64
	workers int
	logger  *slog.Logger
	shapes  *shape.Generator
}

type Option func(*options)

// WithOperators replaces the default + - * / table.
func WithOperators(t *eval.Table) Option {
	return func(o *options) { o.table = t }
}

func WithTolerance(tol float64) Option {
	return func(o *options) { o.tol = tol }
}

// WithWorkers sets how many partitions run in parallel. It defaults to the
// number of CPUs.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithShapes uses g instead of the shared shape cache.
func WithShapes(g *shape.Generator) Option {
	return func(o *options) { o.shapes = g }
}

// Solve finds every expression over numbers that evaluates to target within
// the tolerance. The operator tuple space is split into contiguous
// partitions searched in parallel; the result is either complete or an
// error.
func Solve(ctx context.Context, target float64, numbers []float64, opts ...Option) (*search.ResultSet, error) {
	o := &options{
		table:   eval.DefaultTable(),
		tol:     DefaultTolerance,
		workers: runtime.NumCPU(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.table == nil {
		o.table = eval.DefaultTable()
	}

	if err := validate(target, numbers, o); err != nil {
		return nil, err
	}

	space, err := search.NewSpace(target, numbers, o.table, o.tol, o.shapes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	parts := Partition(space.Tuples(), o.workers)

	logger := o.logger.With("run", uuid.NewString())
	logger.Debug("solve started",
		"target", target,
		"numbers", len(numbers),
		"operators", o.table.Symbols(),
		"tuples", space.Tuples(),
		"candidates", space.Candidates(),
		"workers", len(parts),
	)
	start := time.Now()

	results := make([]*search.ResultSet, len(parts))
	g, gCtx := errgroup.WithContext(ctx)

	for i, p := range parts {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: partition [%d, %d): %v", ErrWorkerFailure, p.Lo, p.Hi, r)
				}
			}()

			rs, err := space.Run(gCtx, p.Lo, p.Hi)
			if err != nil {
				return err
			}

			results[i] = rs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Debug("solve failed", "error", err, "duration", time.Since(start))
		return nil, err
	}

	merged := search.NewResultSet()
	for _, rs := range results {
		merged.Merge(rs)
	}

	logger.Debug("solve finished",
		"attempts", merged.Attempts(),
		"found", merged.Len(),
		"duration", time.Since(start),
	)

	return merged, nil
}

func validate(target float64, numbers []float64, o *options) error {
	if len(numbers) == 0 {
		return fmt.Errorf("%w: no numbers given", ErrInvalidInput)
	}

	for i, n := range numbers {
		if !finite(n) {
			return fmt.Errorf("%w: number %d is %v", ErrInvalidInput, i, n)
		}
	}

	if !finite(target) {
		return fmt.Errorf("%w: target is %v", ErrInvalidInput, target)
	}

	if !finite(o.tol) || o.tol < 0 {
		return fmt.Errorf("%w: tolerance must be a non-negative finite number, got %v", ErrInvalidInput, o.tol)
	}

	if o.workers < 1 {
		return fmt.Errorf("%w: worker count must be positive, got %d", ErrInvalidInput, o.workers)
	}

	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
