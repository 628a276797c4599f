package marks

// Remap computes the marked lines that survive a single edit. A mark stays
// attached to the line it pointed at, shifting with inserted or removed line
// breaks, and is dropped when its line is deleted by the edit.
//
// The input must be sorted ascending. The result is sorted and free of
// duplicates. An empty input, or an edit that
// neither adds nor removes a line break, returns the input as is.
func Remap(lines []int, e Edit) []int {
	if len(lines) == 0 || e.SingleLine() {
		return lines
	}

	span := e.Span()
	inserted := e.ReplacementLines()

	if span == 0 {
		// Pure insertion of inserted-1 line breaks at StartLine. A mark on
		// StartLine keeps its line; everything below moves down.
		out := make([]int, len(lines))
		for i, line := range lines {
			if line > e.StartLine {
				line += inserted - 1
			}
			out[i] = line
		}
		return out
	}

	out := make([]int, 0, len(lines))
	for _, line := range lines {
		switch {
		case line < e.StartLine:
			out = append(out, line)
		case line == e.StartLine:
			// The line survives only when the edit starts after its first
			// character.
			if e.StartCol > 0 {
				out = append(out, line)
			}
		case line >= e.EndLine:
			out = append(out, line-span-1+inserted)
		}
	}

	return Normalize(out)
}

// RemapBatch folds Remap over the edits of a batch in order.
func RemapBatch(lines []int, batch Batch) []int {
	for _, e := range batch {
		lines = Remap(lines, e)
	}
	return lines
}
