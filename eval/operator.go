package eval

import (
	"errors"
	"fmt"
	"math"
)

// Value is the outcome of applying an operator: either a real number or
// invalid. Zero is a valid number, so the two are kept apart explicitly.
type Value struct {
	n     float64
	valid bool
}

// Number wraps x as a valid value. NaN and infinities are not real results
// and come back invalid.
func Number(x float64) Value {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Value{}
	}

	return Value{n: x, valid: true}
}

func Invalid() Value {
	return Value{}
}

func (v Value) Float() (float64, bool) {
	return v.n, v.valid
}

func (v Value) IsValid() bool {
	return v.valid
}

type Func func(a, b float64) Value

type Operator struct {
	Symbol      string
	Func        Func
	Precedence  int
	Associative bool
}

var (
	ErrDuplicateSymbol = errors.New("duplicate operator symbol")
	ErrEmptySymbol     = errors.New("empty operator symbol")
	ErrNilFunc         = errors.New("operator has no function")
)

// Table is an ordered, read-only set of operators keyed by symbol. The
// order operators were given in is the order operator tuples are
// enumerated in.
type Table struct {
	ops   []Operator
	index map[string]int
}

func NewTable(ops ...Operator) (*Table, error) {
	t := &Table{
		ops:   make([]Operator, 0, len(ops)),
		index: make(map[string]int, len(ops)),
	}

	for _, op := range ops {
		if op.Symbol == "" {
			return nil, ErrEmptySymbol
		}

		if op.Func == nil {
			return nil, fmt.Errorf("%w: '%s'", ErrNilFunc, op.Symbol)
		}

		if _, ok := t.index[op.Symbol]; ok {
			return nil, fmt.Errorf("%w: '%s'", ErrDuplicateSymbol, op.Symbol)
		}

		t.index[op.Symbol] = len(t.ops)
		t.ops = append(t.ops, op)
	}

	return t, nil
}

func MustTable(ops ...Operator) *Table {
	t, err := NewTable(ops...)
	if err != nil {
		panic(err)
	}

	return t
}

func (t *Table) Len() int {
	return len(t.ops)
}

// At returns the i-th operator in table order.
func (t *Table) At(i int) Operator {
	return t.ops[i]
}

func (t *Table) Lookup(symbol string) (Operator, bool) {
	i, ok := t.index[symbol]
	if !ok {
		return Operator{}, false
	}

	return t.ops[i], true
}

func (t *Table) Symbols() []string {
	s := make([]string, len(t.ops))
	for i, op := range t.ops {
		s[i] = op.Symbol
	}

	return s
}

// Operators returns a copy of the table's operators in order.
func (t *Table) Operators() []Operator {
	return append([]Operator(nil), t.ops...)
}
