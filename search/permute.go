package search

import (
	"slices"
)

// Permutations lists every distinct ordering of numbers in lexicographic
// order. Repeated values do not produce repeated orderings.
func Permutations(numbers []float64) [][]float64 {
	p := slices.Clone(numbers)
	slices.Sort(p)

	perms := [][]float64{slices.Clone(p)}
	for nextPermutation(p) {
		perms = append(perms, slices.Clone(p))
	}

	return perms
}

// nextPermutation rearranges p into the next greater ordering and reports
// false once p is the last one.
func nextPermutation(p []float64) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}

	if i < 0 {
		return false
	}

	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}

	p[i], p[j] = p[j], p[i]
	slices.Reverse(p[i+1:])

	return true
}

// TupleCount is k^slots, the number of operator tuples. ok is false when the
// count overflows an int.
func TupleCount(k, slots int) (count int, ok bool) {
	count = 1
	for range slots {
		if k != 0 && count > maxInt/k {
			return 0, false
		}
		count *= k
	}

	return count, true
}

const maxInt = int(^uint(0) >> 1)

// tupleAt writes into dst the operator indexes of tuple i: base-k digits,
// most significant first, so increasing i is lexicographic order.
func tupleAt(i, k int, dst []int) {
	for j := len(dst) - 1; j >= 0; j-- {
		dst[j] = i % k
		i /= k
	}
}

// nextTuple advances dst to the following tuple in place.
func nextTuple(dst []int, k int) {
	for j := len(dst) - 1; j >= 0; j-- {
		dst[j]++
		if dst[j] < k {
			return
		}
		dst[j] = 0
	}
}
