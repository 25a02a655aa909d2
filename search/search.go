package search

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jvitoroc/numgame/eval"
	"github.com/jvitoroc/numgame/shape"
)

var (
	ErrSpaceTooLarge = errors.New("search space too large")
	ErrRange         = errors.New("tuple range out of bounds")
)

// Space is everything a search over one input needs, prepared once and
// shared read-only between partitions.
type Space struct {
	target float64
	tol    float64
	table  *eval.Table
	shapes []shape.Shape
	perms  [][]float64
	slots  int
	tuples int
}

// NewSpace prepares the search of numbers for target. Shapes come from gen,
// or from the shared generator when gen is nil.
func NewSpace(target float64, numbers []float64, table *eval.Table, tol float64, gen *shape.Generator) (*Space, error) {
	var (
		shapes []shape.Shape
		err    error
	)
	if gen != nil {
		shapes, err = gen.Shapes(len(numbers))
	} else {
		shapes, err = shape.Shapes(len(numbers))
	}
	if err != nil {
		return nil, err
	}

	slots := len(numbers) - 1
	tuples, ok := TupleCount(table.Len(), slots)
	if !ok {
		return nil, fmt.Errorf("%w: %d operators over %d slots", ErrSpaceTooLarge, table.Len(), slots)
	}

	return &Space{
		target: target,
		tol:    tol,
		table:  table,
		shapes: shapes,
		perms:  Permutations(numbers),
		slots:  slots,
		tuples: tuples,
	}, nil
}

// Tuples is the number of operator tuples; Run addresses them by index.
func (s *Space) Tuples() int {
	return s.tuples
}

// Candidates is the total number of candidates in the space.
func (s *Space) Candidates() float64 {
	return float64(s.tuples) * float64(len(s.perms)) * float64(len(s.shapes))
}

// Run searches operator tuples [lo, hi). Context cancellation is checked
// between tuples; a cancelled run returns no result set.
func (s *Space) Run(ctx context.Context, lo, hi int) (*ResultSet, error) {
	if lo < 0 || hi > s.tuples || lo > hi {
		return nil, fmt.Errorf("%w: [%d, %d) of %d", ErrRange, lo, hi, s.tuples)
	}

	rs := NewResultSet()
	if lo == hi {
		return rs, nil
	}

	tuple := make([]int, s.slots)
	tupleAt(lo, s.table.Len(), tuple)
	ops := make([]eval.Operator, s.slots)

	for i := lo; i < hi; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for j, k := range tuple {
			ops[j] = s.table.At(k)
		}

		for _, perm := range s.perms {
			for _, sh := range s.shapes {
				rs.attempts++

				c := eval.Candidate{Shape: sh, Leaves: perm, Ops: ops}
				v, ok := eval.Compute(c)
				if !ok || math.Abs(v-s.target) > s.tol {
					continue
				}

				rs.Add(eval.Render(c))
			}
		}

		nextTuple(tuple, s.table.Len())
	}

	return rs, nil
}

// Search runs the whole space in the calling goroutine.
func Search(ctx context.Context, target float64, numbers []float64, table *eval.Table, tol float64) (*ResultSet, error) {
	s, err := NewSpace(target, numbers, table, tol, nil)
	if err != nil {
		return nil, err
	}

	return s.Run(ctx, 0, s.Tuples())
}
