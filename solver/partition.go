package solver

// Range is the half-open interval of operator tuple indexes [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// Partition splits [0, total) into at most workers contiguous, non-empty
// ranges whose sizes differ by at most one. With nothing to split it returns
// a single empty range so that the search still runs once.
func Partition(total, workers int) []Range {
	if workers < 1 {
		workers = 1
	}

	if total <= 0 {
		return []Range{{}}
	}

	if workers > total {
		workers = total
	}

	parts := make([]Range, workers)
	size, extra := total/workers, total%workers

	lo := 0
	for i := range parts {
		hi := lo + size
		if i < extra {
			hi++
		}

		parts[i] = Range{Lo: lo, Hi: hi}
		lo = hi
	}

	return parts
}
