package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jvitoroc/numgame/shape"
	"github.com/jvitoroc/numgame/stack"
)

// Candidate is one shape instantiated with leaf values and operators, both
// consumed in order.
type Candidate struct {
	Shape  shape.Shape
	Leaves []float64
	Ops    []Operator
}

type EvalResult struct {
	Value float64
	Infix string
}

// Resolve maps symbols to the table's operators.
func Resolve(t *Table, symbols []string) ([]Operator, error) {
	ops := make([]Operator, len(symbols))
	for i, s := range symbols {
		op, ok := t.Lookup(s)
		if !ok {
			return nil, fmt.Errorf("operator '%s' is not in the table", s)
		}
		ops[i] = op
	}

	return ops, nil
}

func (c *Candidate) check() {
	if len(c.Shape) != len(c.Leaves)+len(c.Ops) {
		panic(fmt.Sprintf("candidate %s has %d leaves and %d operators", c.Shape, len(c.Leaves), len(c.Ops)))
	}
}

// Compute evaluates the candidate numerically. It stops at the first
// operator that has no result.
func Compute(c Candidate) (float64, bool) {
	c.check()

	s := make(stack.Stack[float64], 0, len(c.Leaves))
	leaf, op := 0, 0

	for _, tk := range c.Shape {
		if tk == shape.Leaf {
			s.Push(c.Leaves[leaf])
			leaf++
			continue
		}

		right := s.Pop()
		left := s.Pop()

		v, ok := c.Ops[op].Func(left, right).Float()
		if !ok {
			return 0, false
		}
		op++

		s.Push(v)
	}

	if len(s) != 1 {
		panic(fmt.Sprintf("shape %s does not reduce to a single value", c.Shape))
	}

	return s[0], true
}

type rendering struct {
	text string
	root *Operator
	// mixed reports that an operator other than root sits unparenthesized
	// at root's precedence, as in "5 % 3 * 4".
	mixed bool
}

// Evaluate computes the candidate and renders it in infix form with the
// fewest parentheses that keep its meaning.
func Evaluate(c Candidate) (EvalResult, bool) {
	c.check()

	values := make(stack.Stack[float64], 0, len(c.Leaves))
	texts := make(stack.Stack[rendering], 0, len(c.Leaves))
	leaf, op := 0, 0

	for _, tk := range c.Shape {
		if tk == shape.Leaf {
			values.Push(c.Leaves[leaf])
			texts.Push(rendering{text: FormatNumber(c.Leaves[leaf])})
			leaf++
			continue
		}

		o := &c.Ops[op]
		op++

		right, left := values.Pop(), values.Pop()
		v, ok := o.Func(left, right).Float()
		if !ok {
			return EvalResult{}, false
		}
		values.Push(v)

		r, l := texts.Pop(), texts.Pop()
		texts.Push(join(o, l, r))
	}

	if len(values) != 1 || len(texts) != 1 {
		panic(fmt.Sprintf("shape %s does not reduce to a single value", c.Shape))
	}

	return EvalResult{Value: values[0], Infix: texts[0].text}, true
}

// Render produces only the infix text; operators are not applied.
func Render(c Candidate) string {
	c.check()

	texts := make(stack.Stack[rendering], 0, len(c.Leaves))
	leaf, op := 0, 0

	for _, tk := range c.Shape {
		if tk == shape.Leaf {
			texts.Push(rendering{text: FormatNumber(c.Leaves[leaf])})
			leaf++
			continue
		}

		o := &c.Ops[op]
		op++

		r, l := texts.Pop(), texts.Pop()
		texts.Push(join(o, l, r))
	}

	return texts.Pop().text
}

func join(parent *Operator, left, right rendering) rendering {
	var b strings.Builder
	b.Grow(len(left.text) + len(right.text) + len(parent.Symbol) + 6)

	wrapLeft := needsParentheses(parent, left, false)
	wrap(&b, left.text, wrapLeft)
	b.WriteByte(' ')
	b.WriteString(parent.Symbol)
	b.WriteByte(' ')
	wrap(&b, right.text, needsParentheses(parent, right, true))

	// Flattened right children are never mixed.
	mixed := false
	if !wrapLeft && left.root != nil && left.root.Precedence == parent.Precedence {
		mixed = left.mixed || left.root.Symbol != parent.Symbol
	}

	return rendering{text: b.String(), root: parent, mixed: mixed}
}

func wrap(b *strings.Builder, s string, parens bool) {
	if !parens {
		b.WriteString(s)
		return
	}

	b.WriteByte('(')
	b.WriteString(s)
	b.WriteByte(')')
}

// needsParentheses decides for a child rendered under parent. Equal
// precedence groups left to right, so a right child at the same level keeps
// its parentheses unless every operator at that level repeats an
// associative parent.
func needsParentheses(parent *Operator, child rendering, right bool) bool {
	if child.root == nil {
		return false
	}

	if child.root.Precedence != parent.Precedence {
		return child.root.Precedence < parent.Precedence
	}

	if !right {
		return false
	}

	return !(parent.Associative && child.root.Symbol == parent.Symbol && !child.mixed)
}

// FormatNumber writes integers without a fraction and other values with the
// shortest exact decimal. Negative numbers are parenthesized.
func FormatNumber(x float64) string {
	if x == 0 {
		x = 0 // drop the sign of -0
	}

	s := strconv.FormatFloat(x, 'f', -1, 64)
	if x < 0 {
		return "(" + s + ")"
	}

	return s
}
