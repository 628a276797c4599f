package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hay-kot/linemark/internal/linemark"
)

// Line numbers on the command line are 1-based like in an editor. They are
// converted to the zero-based lines stored in marks.

func parseLine(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid line %q: %w", s, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid line %d: lines start at 1", n)
	}
	return n - 1, nil
}

func parseLines(args []string) ([]int, error) {
	lines := make([]int, 0, len(args))
	for _, arg := range args {
		line, err := parseLine(arg)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// parseRange parses "A:B" into a zero-based inclusive range. The bounds may
// be given in either order.
func parseRange(s string) (linemark.LineRange, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return linemark.LineRange{}, fmt.Errorf("invalid range %q: expected START:END", s)
	}

	start, err := parseLine(a)
	if err != nil {
		return linemark.LineRange{}, err
	}
	end, err := parseLine(b)
	if err != nil {
		return linemark.LineRange{}, err
	}

	if end < start {
		start, end = end, start
	}
	return linemark.LineRange{Start: start, End: end}, nil
}

// humanLines converts zero-based lines to their 1-based display form.
func humanLines(lines []int) []int {
	out := make([]int, len(lines))
	for i, l := range lines {
		out[i] = l + 1
	}
	return out
}

func joinLines(lines []int) string {
	parts := make([]string, len(lines))
	for i, l := range humanLines(lines) {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, ", ")
}
