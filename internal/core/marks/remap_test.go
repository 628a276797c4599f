package marks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemap_EmptyMarks(t *testing.T) {
	edits := []Edit{
		Insert(0, 0, ""),
		Insert(3, 2, "\n\n"),
		Replace(1, 0, 4, 2, "x"),
		Replace(0, 3, 9, 0, "a\nb\nc"),
	}
	for _, e := range edits {
		assert.Empty(t, Remap(nil, e), e.String())
		assert.Empty(t, Remap([]int{}, e), e.String())
	}
}

func TestRemap_SingleLineEditKeepsMarks(t *testing.T) {
	lines := []int{0, 2, 5, 9}
	edits := []Edit{
		Insert(2, 0, ""),
		Insert(2, 3, "abc"),
		Replace(5, 1, 5, 4, ""),
		Replace(9, 0, 9, 10, "replaced"),
		Replace(100, 0, 100, 0, "x"),
	}
	for _, e := range edits {
		assert.Equal(t, lines, Remap(lines, e), e.String())
	}
}

func TestRemap(t *testing.T) {
	tests := []struct {
		name  string
		lines []int
		edit  Edit
		want  []int
	}{
		{
			name:  "empty replacement on one line",
			lines: []int{2},
			edit:  Insert(1, 0, ""),
			want:  []int{2},
		},
		{
			name:  "newline inserted above mark",
			lines: []int{2},
			edit:  Insert(1, 0, "\n"),
			want:  []int{3},
		},
		{
			name:  "newline inserted on marked line keeps it",
			lines: []int{1, 2},
			edit:  Insert(1, 0, "\n"),
			want:  []int{1, 3},
		},
		{
			name:  "insertion at end of marked line",
			lines: []int{4},
			edit:  Insert(4, 12, "\n\n\n"),
			want:  []int{4},
		},
		{
			name:  "insertion shifts only lines below",
			lines: []int{0, 3, 4, 8},
			edit:  Insert(3, 5, "a\nb\nc"),
			want:  []int{0, 3, 6, 10},
		},
		{
			name:  "join from column zero drops start mark",
			lines: []int{1, 2},
			edit:  Replace(1, 0, 2, 0, "xxx"),
			want:  []int{1},
		},
		{
			name:  "mark at end line moves up",
			lines: []int{2},
			edit:  Replace(1, 0, 2, 0, "xxx"),
			want:  []int{1},
		},
		{
			name:  "mark at start line kept when edit starts mid-line",
			lines: []int{1},
			edit:  Replace(1, 1, 2, 0, "xxx"),
			want:  []int{1},
		},
		{
			name:  "start mark dropped from column zero",
			lines: []int{1},
			edit:  Replace(1, 0, 2, 0, "xxx"),
			want:  []int{},
		},
		{
			name:  "marks strictly inside are deleted",
			lines: []int{0, 2, 3, 4, 7},
			edit:  Replace(1, 4, 5, 0, ""),
			want:  []int{0, 3},
		},
		{
			name:  "merging two marked lines keeps one",
			lines: []int{1, 2},
			edit:  Replace(1, 1, 2, 1, ""),
			want:  []int{1},
		},
		{
			name:  "multi-line replacement over multi-line range",
			lines: []int{1, 2},
			edit:  Replace(1, 0, 2, 0, "\nxxx"),
			want:  []int{2},
		},
		{
			name:  "replacement ending in newline",
			lines: []int{1, 2},
			edit:  Replace(1, 0, 2, 0, "xxx\n"),
			want:  []int{2},
		},
		{
			name:  "edit spanning from one mark to the next",
			lines: []int{2, 5, 9},
			edit:  Replace(2, 0, 5, 0, ""),
			want:  []int{2, 6},
		},
		{
			name:  "edit spanning from mid mark to the next",
			lines: []int{2, 5, 9},
			edit:  Replace(2, 3, 5, 0, ""),
			want:  []int{2, 6},
		},
		{
			name:  "larger replacement grows the document",
			lines: []int{0, 4, 6},
			edit:  Replace(1, 0, 3, 2, "a\nb\nc\nd\ne"),
			want:  []int{0, 6, 8},
		},
		{
			name:  "marks before the edit untouched",
			lines: []int{0, 1},
			edit:  Replace(4, 0, 8, 0, ""),
			want:  []int{0, 1},
		},
		{
			name:  "deletion of a marked range",
			lines: []int{1, 2, 3},
			edit:  Replace(1, 1, 3, 3, "xxx"),
			want:  []int{1},
		},
		{
			name:  "deletion with mark on last touched line only",
			lines: []int{2, 3},
			edit:  Replace(1, 1, 3, 3, "xxx"),
			want:  []int{1},
		},
		{
			name:  "mark strictly inside only",
			lines: []int{2},
			edit:  Replace(1, 1, 3, 3, "xxx"),
			want:  []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Remap(tt.lines, tt.edit)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemap_InsertionProperty(t *testing.T) {
	lines := []int{0, 1, 2, 5, 6, 10, 11}
	for start := 0; start <= 12; start++ {
		for k := 2; k <= 5; k++ {
			text := ""
			for i := 1; i < k; i++ {
				text += "x\n"
			}
			got := Remap(lines, Insert(start, 1, text))

			for i, line := range lines {
				if line <= start {
					assert.Equal(t, line, got[i])
				} else {
					assert.Equal(t, line+k-1, got[i])
				}
			}
		}
	}
}

func TestRemap_DeletionProperty(t *testing.T) {
	lines := []int{0, 1, 3, 4, 5, 8, 9}
	for s := 0; s < 9; s++ {
		for e := s + 1; e <= 10; e++ {
			for k := 1; k <= 3; k++ {
				text := ""
				for i := 1; i < k; i++ {
					text += "\n"
				}
				got := Remap(lines, Replace(s, 0, e, 0, text))

				var want []int
				for _, line := range lines {
					switch {
					case line < s:
						want = append(want, line)
					case line >= e:
						want = append(want, line-(e-s-1)+k-2)
					}
				}
				want = Normalize(want)

				if len(want) == 0 {
					assert.Empty(t, got)
					continue
				}
				assert.Equal(t, want, got, "s=%d e=%d k=%d", s, e, k)
			}
		}
	}
}

func TestRemap_ResultIsSortedAndUnique(t *testing.T) {
	// Edits that collapse several lines onto one must not duplicate targets.
	lines := []int{1, 2, 3, 4}
	got := Remap(lines, Replace(1, 2, 4, 0, ""))
	assert.Equal(t, []int{1}, got)
}

func TestRemapBatch(t *testing.T) {
	batch := Batch{
		Insert(0, 0, "\n"),      // [2,5] -> [3,6]
		Replace(3, 0, 4, 0, ""), // [3,6] -> [5]
		Insert(5, 3, "\n\n"),    // [5] -> [5]
		Insert(1, 0, "\n"),      // [5] -> [6]
	}

	assert.Equal(t, []int{6}, RemapBatch([]int{2, 5}, batch))
	assert.Equal(t, []int{2, 5}, RemapBatch([]int{2, 5}, nil))
}
