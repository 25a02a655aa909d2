package search

import "slices"

// ResultSet holds unique matching expressions in the order they were
// first found.
type ResultSet struct {
	exprs    []string
	seen     map[string]struct{}
	attempts int64
}

func NewResultSet() *ResultSet {
	return &ResultSet{seen: make(map[string]struct{})}
}

// Add reports whether expr was new.
func (r *ResultSet) Add(expr string) bool {
	if _, ok := r.seen[expr]; ok {
		return false
	}

	r.seen[expr] = struct{}{}
	r.exprs = append(r.exprs, expr)

	return true
}

// Merge adds other's expressions after r's own and sums the attempts.
func (r *ResultSet) Merge(other *ResultSet) {
	for _, e := range other.exprs {
		r.Add(e)
	}

	r.attempts += other.attempts
}

func (r *ResultSet) Contains(expr string) bool {
	_, ok := r.seen[expr]
	return ok
}

func (r *ResultSet) Len() int {
	return len(r.exprs)
}

func (r *ResultSet) Expressions() []string {
	return slices.Clone(r.exprs)
}

// Attempts is the number of candidates evaluated to build the set.
func (r *ResultSet) Attempts() int64 {
	return r.attempts
}
