package eval

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jvitoroc/numgame/shape"
)

var (
	leftDeep  = shape.Shape{shape.Leaf, shape.Leaf, shape.Slot, shape.Leaf, shape.Slot}
	rightDeep = shape.Shape{shape.Leaf, shape.Leaf, shape.Leaf, shape.Slot, shape.Slot}

	// a o ((b o c) o d)
	rightLeftDeep = shape.Shape{shape.Leaf, shape.Leaf, shape.Leaf, shape.Slot, shape.Leaf, shape.Slot, shape.Slot}
)

func ops(t *testing.T, symbols ...string) []Operator {
	t.Helper()

	o, err := Resolve(ExtendedTable(), symbols)
	if err != nil {
		t.Fatal(err)
	}

	return o
}

func Test_Evaluate(t *testing.T) {
	tests := []struct {
		name   string
		shape  shape.Shape
		leaves []float64
		ops    []string
		want   EvalResult
	}{
		{
			name:   "single leaf",
			shape:  shape.Shape{shape.Leaf},
			leaves: []float64{5},
			want:   EvalResult{Value: 5, Infix: "5"},
		},
		{
			name:   "left nested subtraction",
			shape:  leftDeep,
			leaves: []float64{10, 4, 3},
			ops:    []string{"-", "-"},
			want:   EvalResult{Value: 3, Infix: "10 - 4 - 3"},
		},
		{
			name:   "right nested subtraction",
			shape:  rightDeep,
			leaves: []float64{10, 4, 3},
			ops:    []string{"-", "-"},
			want:   EvalResult{Value: 9, Infix: "10 - (4 - 3)"},
		},
		{
			name:   "right nested addition",
			shape:  rightDeep,
			leaves: []float64{1, 2, 3},
			ops:    []string{"+", "+"},
			want:   EvalResult{Value: 6, Infix: "1 + 2 + 3"},
		},
		{
			name:   "right nested mixed additive",
			shape:  rightDeep,
			leaves: []float64{1, 2, 3},
			ops:    []string{"-", "+"},
			want:   EvalResult{Value: 0, Infix: "1 + (2 - 3)"},
		},
		{
			name:   "lower precedence on the left",
			shape:  leftDeep,
			leaves: []float64{2, 3, 4},
			ops:    []string{"+", "*"},
			want:   EvalResult{Value: 20, Infix: "(2 + 3) * 4"},
		},
		{
			name:   "higher precedence on the right",
			shape:  rightDeep,
			leaves: []float64{2, 3, 4},
			ops:    []string{"*", "+"},
			want:   EvalResult{Value: 14, Infix: "2 + 3 * 4"},
		},
		{
			name:   "division under division",
			shape:  rightDeep,
			leaves: []float64{8, 4, 2},
			ops:    []string{"/", "/"},
			want:   EvalResult{Value: 4, Infix: "8 / (4 / 2)"},
		},
		{
			name:   "fractions and negatives",
			shape:  leftDeep,
			leaves: []float64{0.5, -3, 2},
			ops:    []string{"*", "-"},
			want:   EvalResult{Value: -3.5, Infix: "0.5 * (-3) - 2"},
		},
		{
			name:   "right chain of one associative operator",
			shape:  rightLeftDeep,
			leaves: []float64{2, 3, 4, 5},
			ops:    []string{"*", "*", "*"},
			want:   EvalResult{Value: 120, Infix: "2 * 3 * 4 * 5"},
		},
		{
			name:   "right chain mixing operators of one precedence",
			shape:  rightLeftDeep,
			leaves: []float64{2, 5, 3, 4},
			ops:    []string{"%", "*", "*"},
			want:   EvalResult{Value: 16, Infix: "2 * (5 % 3 * 4)"},
		},
		{
			name:   "right chain mixing negatives and modulo",
			shape:  rightLeftDeep,
			leaves: []float64{-2, 0.5, 3, 7},
			ops:    []string{"%", "*", "*"},
			want:   EvalResult{Value: -7, Infix: "(-2) * (0.5 % 3 * 7)"},
		},
		{
			name:   "right chain mixing additive operators",
			shape:  rightLeftDeep,
			leaves: []float64{1, 2, 3, 4},
			ops:    []string{"-", "+", "+"},
			want:   EvalResult{Value: 4, Infix: "1 + (2 - 3 + 4)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Evaluate(Candidate{Shape: tt.shape, Leaves: tt.leaves, Ops: ops(t, tt.ops...)})
			if !ok {
				t.Error("expected a valid result")
				return
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Error(diff)
			}

			if r := Render(Candidate{Shape: tt.shape, Leaves: tt.leaves, Ops: ops(t, tt.ops...)}); r != tt.want.Infix {
				t.Errorf("expected rendering %q, but got %q", tt.want.Infix, r)
			}

			v, ok := Compute(Candidate{Shape: tt.shape, Leaves: tt.leaves, Ops: ops(t, tt.ops...)})
			if !ok || v != tt.want.Value {
				t.Errorf("expected %v from Compute, but got %v (%v)", tt.want.Value, v, ok)
			}
		})
	}
}

func TestEvaluateDivisionByZero(t *testing.T) {
	c := Candidate{Shape: rightDeep, Leaves: []float64{1, 2, 2}, Ops: ops(t, "-", "/")}

	if _, ok := Evaluate(c); ok {
		t.Error("expected 1 / (2 - 2) to be invalid")
	}

	if _, ok := Compute(c); ok {
		t.Error("expected 1 / (2 - 2) to be invalid")
	}
}

func TestEvaluateStopsAtInvalid(t *testing.T) {
	calls := 0
	counting := Operator{
		Symbol:     "#",
		Precedence: 1,
		Func: func(a, b float64) Value {
			calls++
			return Number(a)
		},
	}
	never := Operator{
		Symbol:     "!",
		Precedence: 1,
		Func:       func(a, b float64) Value { return Invalid() },
	}

	_, ok := Evaluate(Candidate{Shape: leftDeep, Leaves: []float64{1, 2, 3}, Ops: []Operator{never, counting}})
	if ok {
		t.Error("expected invalid result")
	}

	if calls != 0 {
		t.Errorf("expected evaluation to stop, but the next operator ran %d times", calls)
	}
}

func TestEvaluateMalformedCandidate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a malformed candidate")
		}
	}()

	Evaluate(Candidate{Shape: leftDeep, Leaves: []float64{1, 2}, Ops: ops(t, "+", "+")})
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{12, "12"},
		{0.5, "0.5"},
		{2.25, "2.25"},
		{-3, "(-3)"},
		{math.Copysign(0, -1), "0"},
		{1e21, "1000000000000000000000"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("%v: expected %q, but got %q", tt.in, tt.want, got)
		}
	}
}
