package marks

import "sort"

// Next returns the first marked line after current, wrapping to the first
// mark when current is before the first mark or at/after the last one.
// When lines is empty, current is returned.
func Next(lines []int, current int) int {
	if len(lines) == 0 {
		return current
	}

	first, last := lines[0], lines[len(lines)-1]
	if current < first || current >= last {
		return first
	}

	i := sort.SearchInts(lines, current+1)
	return lines[i]
}

// Prev returns the last marked line before current, wrapping to the last
// mark when current is after the last mark or at/before the first one.
// When lines is empty, current is returned.
func Prev(lines []int, current int) int {
	if len(lines) == 0 {
		return current
	}

	first, last := lines[0], lines[len(lines)-1]
	if current > last || current <= first {
		return last
	}

	i := sort.SearchInts(lines, current)
	return lines[i-1]
}
