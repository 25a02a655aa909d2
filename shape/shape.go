package shape

import (
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

type Token uint8

const (
	Leaf Token = iota
	Slot
)

// Shape is one binary tree topology written as an RPN sequence of leaves
// and operator slots.
type Shape []Token

func (s Shape) Leaves() int {
	n := 0
	for _, tk := range s {
		if tk == Leaf {
			n++
		}
	}

	return n
}

func (s Shape) Slots() int {
	return len(s) - s.Leaves()
}

// WellFormed reports whether s evaluates on a stack without underflow and
// leaves exactly one entry.
func (s Shape) WellFormed() bool {
	depth := 0
	for _, tk := range s {
		switch tk {
		case Leaf:
			depth++
		case Slot:
			if depth < 2 {
				return false
			}
			depth--
		default:
			return false
		}
	}

	return depth == 1
}

// String renders leaves as 'n' and slots as 'o', e.g. "nnono".
func (s Shape) String() string {
	var b strings.Builder
	for _, tk := range s {
		if tk == Leaf {
			b.WriteByte('n')
		} else {
			b.WriteByte('o')
		}
	}

	return b.String()
}

var ErrNoLeaves = errors.New("shape needs at least one leaf")

// Generate returns every shape with n leaves. A tree of n leaves is a left
// subtree of k leaves and a right subtree of n-k leaves joined by a slot, for
// each k in 1..n-1.
func Generate(n int) ([]Shape, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoLeaves, n)
	}

	memo := make([][]Shape, n+1)
	return generate(n, memo), nil
}

func generate(n int, memo [][]Shape) []Shape {
	if memo[n] != nil {
		return memo[n]
	}

	if n == 1 {
		memo[1] = []Shape{{Leaf}}
		return memo[1]
	}

	shapes := make([]Shape, 0)
	for k := 1; k < n; k++ {
		left := generate(k, memo)
		right := generate(n-k, memo)

		for _, l := range left {
			for _, r := range right {
				s := make(Shape, 0, len(l)+len(r)+1)
				s = append(s, l...)
				s = append(s, r...)
				s = append(s, Slot)
				shapes = append(shapes, s)
			}
		}
	}

	memo[n] = shapes
	return shapes
}

const DefaultCacheSize = 16

// Generator memoizes shapes per leaf count. It is safe for concurrent use.
// Returned shapes are shared and must not be modified.
type Generator struct {
	cache *lru.Cache[int, []Shape]
}

func NewGenerator(size int) (*Generator, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	cache, err := lru.New[int, []Shape](size)
	if err != nil {
		return nil, err
	}

	return &Generator{cache: cache}, nil
}

func (g *Generator) Shapes(n int) ([]Shape, error) {
	if shapes, ok := g.cache.Get(n); ok {
		return shapes, nil
	}

	shapes, err := Generate(n)
	if err != nil {
		return nil, err
	}

	g.cache.Add(n, shapes)
	return shapes, nil
}

var defaultGenerator, _ = NewGenerator(DefaultCacheSize)

// Shapes uses the process-wide generator.
func Shapes(n int) ([]Shape, error) {
	return defaultGenerator.Shapes(n)
}
