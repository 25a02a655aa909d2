// Package stack holds the LIFO stack shared by the evaluators and the infix
// parser.
package stack

type Stack[T any] []T

func (s *Stack[T]) Push(e T) {
	*s = append(*s, e)
}

// Pop removes the top element. An empty stack yields the zero value.
func (s *Stack[T]) Pop() T {
	l := len(*s)
	if l == 0 {
		var noop T
		return noop
	}

	e := (*s)[l-1]
	*s = (*s)[:l-1]

	return e
}

// Peek returns the top element without removing it.
func (s Stack[T]) Peek() (T, bool) {
	if len(s) == 0 {
		var noop T
		return noop, false
	}

	return s[len(s)-1], true
}
