package marks

import "slices"

// Normalize sorts lines ascending and removes duplicates and negative values.
// The input slice is reused.
func Normalize(lines []int) []int {
	slices.Sort(lines)
	lines = slices.Compact(lines)

	// Negative lines sort first; trim them off the front.
	i := 0
	for i < len(lines) && lines[i] < 0 {
		i++
	}
	return lines[i:]
}

// Set is an ordered set of zero-based marked line numbers.
type Set struct {
	lines []int
}

// NewSet builds a set from lines in any order.
func NewSet(lines ...int) *Set {
	return &Set{lines: Normalize(slices.Clone(lines))}
}

// Lines returns the marked lines in ascending order. The returned slice is a
// copy.
func (s *Set) Lines() []int {
	return slices.Clone(s.lines)
}

// Len returns the number of marked lines.
func (s *Set) Len() int {
	return len(s.lines)
}

// Empty reports whether no line is marked.
func (s *Set) Empty() bool {
	return len(s.lines) == 0
}

// Has reports whether line is marked.
func (s *Set) Has(line int) bool {
	_, ok := slices.BinarySearch(s.lines, line)
	return ok
}

// Add marks line and reports whether it was newly added.
func (s *Set) Add(line int) bool {
	if line < 0 {
		return false
	}
	i, ok := slices.BinarySearch(s.lines, line)
	if ok {
		return false
	}
	s.lines = slices.Insert(s.lines, i, line)
	return true
}

// Remove unmarks line and reports whether it was marked.
func (s *Set) Remove(line int) bool {
	i, ok := slices.BinarySearch(s.lines, line)
	if !ok {
		return false
	}
	s.lines = slices.Delete(s.lines, i, i+1)
	return true
}

// Replace swaps the content of the set for lines in any order.
func (s *Set) Replace(lines []int) {
	s.lines = Normalize(slices.Clone(lines))
}

// Clear removes every mark.
func (s *Set) Clear() {
	s.lines = nil
}

// CoversRange reports whether every line in [start, end] is marked.
func (s *Set) CoversRange(start, end int) bool {
	if end < start {
		return false
	}
	for line := start; line <= end; line++ {
		if !s.Has(line) {
			return false
		}
	}
	return true
}

// LinesRange returns the inclusive sequence start..end.
func LinesRange(start, end int) []int {
	if end < start {
		return nil
	}
	out := make([]int, 0, end-start+1)
	for line := start; line <= end; line++ {
		out = append(out, line)
	}
	return out
}
