package eval

import (
	"math"
	"slices"
)

type BuiltinName string

const (
	Add BuiltinName = "add"
	Sub BuiltinName = "sub"
	Mul BuiltinName = "mul"
	Div BuiltinName = "div"
	Pow BuiltinName = "pow"
	Log BuiltinName = "log"
	Mod BuiltinName = "mod"
)

var builtinOrder = []BuiltinName{Add, Sub, Mul, Div, Pow, Log, Mod}

var builtins = map[BuiltinName]Operator{
	Add: {
		Symbol:      "+",
		Func:        func(a, b float64) Value { return Number(a + b) },
		Precedence:  1,
		Associative: true,
	},
	Sub: {
		Symbol:     "-",
		Func:       func(a, b float64) Value { return Number(a - b) },
		Precedence: 1,
	},
	Mul: {
		Symbol:      "*",
		Func:        func(a, b float64) Value { return Number(a * b) },
		Precedence:  2,
		Associative: true,
	},
	Div: {
		Symbol:     "/",
		Func:       divide,
		Precedence: 2,
	},
	Pow: {
		Symbol:     "^",
		Func:       power,
		Precedence: 5,
	},
	Log: {
		Symbol:     "logbase",
		Func:       logBase,
		Precedence: 4,
	},
	Mod: {
		Symbol:     "%",
		Func:       modulo,
		Precedence: 2,
	},
}

func divide(a, b float64) Value {
	if b == 0 {
		return Invalid()
	}

	return Number(a / b)
}

// power refuses huge operands and anything without a real result.
func power(a, b float64) Value {
	if math.Abs(b) > 1e2 || math.Abs(a) > 1e3 {
		return Invalid()
	}

	if a == 0 && b < 0 {
		return Invalid()
	}

	if a < 0 && b != math.Trunc(b) {
		return Invalid()
	}

	return Number(math.Pow(a, b))
}

// logBase is the logarithm of a in base b.
func logBase(a, b float64) Value {
	if a <= 0 || b <= 1 {
		return Invalid()
	}

	return Number(math.Log(a) / math.Log(b))
}

// modulo takes the sign of the divisor.
func modulo(a, b float64) Value {
	if b == 0 {
		return Invalid()
	}

	m := math.Mod(a, b)
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}

	return Number(m)
}

func Builtin(name BuiltinName) (Operator, bool) {
	op, ok := builtins[name]
	return op, ok
}

func BuiltinNames() []BuiltinName {
	return slices.Clone(builtinOrder)
}

// BuiltinBySymbol finds a built-in operator by its default symbol.
func BuiltinBySymbol(symbol string) (Operator, bool) {
	for _, name := range builtinOrder {
		if op := builtins[name]; op.Symbol == symbol {
			return op, true
		}
	}

	return Operator{}, false
}

// DefaultTable holds the four arithmetic operators.
func DefaultTable() *Table {
	return MustTable(builtins[Add], builtins[Sub], builtins[Mul], builtins[Div])
}

func ExtendedTable() *Table {
	ops := make([]Operator, len(builtinOrder))
	for i, name := range builtinOrder {
		ops[i] = builtins[name]
	}

	return MustTable(ops...)
}
