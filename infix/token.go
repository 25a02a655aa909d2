package infix

import (
	"slices"
	"strconv"

	"github.com/jvitoroc/numgame/eval"
)

type tokenType string

const (
	numberLiteral    tokenType = "number_literal"
	leftParenthesis  tokenType = "left_parenthesis"
	rightParenthesis tokenType = "right_parenthesis"
	operator         tokenType = "operator"
	whitespace       tokenType = "whitespace"
	invalid          tokenType = "invalid"
)

type token struct {
	_type    tokenType
	strValue string
	goValue  float64

	column int
}

var tokenNoop token

func (tk *token) isParenthesis() bool {
	return tk.isLeftParenthesis() || tk.isRightParenthesis()
}

func (tk *token) isLeftParenthesis() bool {
	return tk._type == leftParenthesis
}

func (tk *token) isRightParenthesis() bool {
	return tk._type == rightParenthesis
}

func (tk *token) isOperand() bool {
	return tk._type == numberLiteral
}

func (tk *token) isOperator() bool {
	return tk._type == operator
}

// opensOperand reports whether a '-' right after tk starts a signed number.
func (tk *token) opensOperand() bool {
	return tk == nil || slices.Contains([]tokenType{leftParenthesis, operator}, tk._type)
}

// hasLowerOrSamePrecedenceThan is true when tk1 binds at least as tightly
// as tk and so must be emitted first.
func (tk *token) hasLowerOrSamePrecedenceThan(tk1 token, table *eval.Table) bool {
	if !tk1.isOperator() {
		return false
	}

	l, lok := table.Lookup(tk.strValue)
	r, rok := table.Lookup(tk1.strValue)

	if !lok || !rok {
		return false
	}

	return l.Precedence <= r.Precedence
}

func (tk *token) convertToGoType() (err error) {
	if tk._type == numberLiteral {
		tk.goValue, err = strconv.ParseFloat(tk.strValue, 64)
	}

	return
}
