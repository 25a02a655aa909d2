package infix

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jvitoroc/numgame/eval"
	"github.com/jvitoroc/numgame/stack"
)

var (
	ErrSyntax   = errors.New("syntax error")
	ErrNoResult = errors.New("expression has no result")
)

// Expression is a parsed infix expression kept in postfix order.
type Expression struct {
	postfix []token
	table   *eval.Table
}

// Parse reads expr using the operators of table. Operators of equal
// precedence group from left to right.
func Parse(expr string, table *eval.Table) (*Expression, error) {
	tokens, err := newTokenizer(expr, table).tokens()
	if err != nil {
		return nil, err
	}

	if err := checkParenthesesBalance(tokens); err != nil {
		return nil, err
	}

	if err := checkArithmeticSyntax(tokens); err != nil {
		return nil, err
	}

	postfix, err := infixToPostfix(tokens, table)
	if err != nil {
		return nil, err
	}

	return &Expression{postfix: postfix, table: table}, nil
}

// Evaluate parses and evaluates expr in one step.
func Evaluate(expr string, table *eval.Table) (float64, error) {
	e, err := Parse(expr, table)
	if err != nil {
		return 0, err
	}

	return e.Evaluate()
}

func (e *Expression) Evaluate() (float64, error) {
	s := stack.Stack[float64]{}

	for _, tk := range e.postfix {
		if tk.isOperand() {
			s.Push(tk.goValue)
			continue
		}

		op, ok := e.table.Lookup(tk.strValue)
		if !ok {
			return 0, fmt.Errorf("%w: '%s' is not an operator", ErrSyntax, tk.strValue)
		}

		right := s.Pop()
		left := s.Pop()

		v, ok := op.Func(left, right).Float()
		if !ok {
			return 0, fmt.Errorf("%w: '%s' at column %d", ErrNoResult, tk.strValue, tk.column)
		}

		s.Push(v)
	}

	if len(s) != 1 {
		return 0, fmt.Errorf("%w: expression does not reduce to one value", ErrSyntax)
	}

	return s.Pop(), nil
}

// Postfix renders the expression in RPN, tokens separated by spaces.
func (e *Expression) Postfix() string {
	parts := make([]string, len(e.postfix))
	for i, tk := range e.postfix {
		parts[i] = tk.strValue
	}

	return strings.Join(parts, " ")
}

func infixToPostfix(tokens []token, table *eval.Table) ([]token, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no tokens given", ErrSyntax)
	}

	s := stack.Stack[token]{}
	postfix := make([]token, 0, len(tokens))

	for _, tk := range tokens {
		if tk.isLeftParenthesis() {
			s.Push(tk)
		} else if tk.isRightParenthesis() {
			for tki := s.Pop(); tki != tokenNoop; tki = s.Pop() {
				if tki.isLeftParenthesis() {
					break
				}
				postfix = append(postfix, tki)
			}
		} else if tk.isOperand() {
			postfix = append(postfix, tk)
		} else if tk.isOperator() {
			for top, ok := s.Peek(); ok && tk.hasLowerOrSamePrecedenceThan(top, table); top, ok = s.Peek() {
				postfix = append(postfix, s.Pop())
			}
			s.Push(tk)
		} else {
			return nil, fmt.Errorf("%w: token '%s' at column %d is invalid as part of an expression", ErrSyntax, tk.strValue, tk.column)
		}
	}

	for tki := s.Pop(); tki != tokenNoop; tki = s.Pop() {
		if !tki.isParenthesis() {
			postfix = append(postfix, tki)
		}
	}

	return postfix, nil
}

func checkParenthesesBalance(tokens []token) error {
	unclosedParentheses := stack.Stack[token]{}
	for _, t := range tokens {
		if t.isLeftParenthesis() {
			unclosedParentheses.Push(t)
		} else if t.isRightParenthesis() {
			tk := unclosedParentheses.Pop()
			if tk == tokenNoop {
				return fmt.Errorf("%w: unexpected closing parenthesis at column %d", ErrSyntax, t.column)
			}
		}
	}

	if len(unclosedParentheses) > 0 {
		tk := unclosedParentheses.Pop()
		return fmt.Errorf("%w: opening parenthesis at column %d, but missing its closing parenthesis", ErrSyntax, tk.column)
	}

	return nil
}

// checkArithmeticSyntax requires operands and operators to alternate,
// starting and ending with an operand, and rejects empty parentheses.
func checkArithmeticSyntax(tokens []token) error {
	if len(tokens) == 0 {
		return fmt.Errorf("%w: empty expression", ErrSyntax)
	}

	expectOperand := true
	var previous token

	for _, t := range tokens {
		switch {
		case t.isLeftParenthesis():
			if !expectOperand {
				return fmt.Errorf("%w: expected operator before '(' at column %d", ErrSyntax, t.column)
			}
		case t.isRightParenthesis():
			if previous.isLeftParenthesis() {
				return fmt.Errorf("%w: empty parentheses at column %d", ErrSyntax, previous.column)
			}
			if expectOperand {
				return fmt.Errorf("%w: expected operand before ')' at column %d", ErrSyntax, t.column)
			}
		case t.isOperand():
			if !expectOperand {
				return fmt.Errorf("%w: expected operator after '%s' at column %d", ErrSyntax, previous.strValue, t.column)
			}
			expectOperand = false
		case t.isOperator():
			if expectOperand {
				return fmt.Errorf("%w: expected operand before '%s' at column %d", ErrSyntax, t.strValue, t.column)
			}
			expectOperand = true
		}

		previous = t
	}

	if expectOperand {
		return fmt.Errorf("%w: can't end expression with operator '%s'", ErrSyntax, previous.strValue)
	}

	return nil
}
