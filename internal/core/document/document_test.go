package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/linemark/internal/core/marks"
	"github.com/hay-kot/linemark/internal/core/marks/fixture"
)

func TestApply_Scenarios(t *testing.T) {
	cases, err := fixture.ParseFile("../marks/testdata/edits.txt")
	require.NoError(t, err)

	for _, c := range cases {
		doc := New("", strings.Join(c.Before.Lines, "\n"))
		require.NoError(t, doc.Apply(marks.Batch{c.Edit}))
		assert.Equal(t, c.After.Lines, doc.Lines(), c.Edit.String())
	}
}

func TestApply_Sequential(t *testing.T) {
	doc := New("", "one\ntwo\nthree\n")
	require.Equal(t, 3, doc.Len())

	err := doc.Apply(marks.Batch{
		marks.Insert(0, 3, "\nuno"),
		marks.Replace(2, 0, 3, 0, ""),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "uno", "three"}, doc.Lines())
	assert.True(t, doc.Dirty())
}

func TestApply_ClampsOutOfRange(t *testing.T) {
	doc := New("", "abc\ndef")
	require.NoError(t, doc.Apply(marks.Batch{marks.Insert(10, 50, "!")}))
	assert.Equal(t, []string{"abc", "def!"}, doc.Lines())
}

func TestApply_RejectsInvalidEdit(t *testing.T) {
	doc := New("", "abc")
	err := doc.Apply(marks.Batch{marks.Replace(2, 0, 1, 0, "")})
	require.ErrorIs(t, err, marks.ErrInvalidEdit)
	assert.False(t, doc.Dirty())
}

func TestLineEdits(t *testing.T) {
	doc := New("", "a\nb\nc")

	require.NoError(t, doc.Apply(marks.Batch{doc.InsertLineBelow(0)}))
	assert.Equal(t, []string{"a", "", "b", "c"}, doc.Lines())

	require.NoError(t, doc.Apply(marks.Batch{doc.DeleteLine(1)}))
	assert.Equal(t, []string{"a", "b", "c"}, doc.Lines())

	require.NoError(t, doc.Apply(marks.Batch{doc.DeleteLine(2)}))
	assert.Equal(t, []string{"a", "b"}, doc.Lines())

	join, ok := doc.JoinLines(0)
	require.True(t, ok)
	require.NoError(t, doc.Apply(marks.Batch{join}))
	assert.Equal(t, []string{"a b"}, doc.Lines())

	_, ok = doc.JoinLines(0)
	assert.False(t, ok)

	require.NoError(t, doc.Apply(marks.Batch{doc.DeleteLine(0)}))
	assert.Equal(t, []string{""}, doc.Lines())
}

func TestJoinLines_TrimsIndent(t *testing.T) {
	doc := New("", "if x {\n\treturn\n}")
	join, ok := doc.JoinLines(0)
	require.True(t, ok)
	require.NoError(t, doc.Apply(marks.Batch{join}))
	assert.Equal(t, "if x { return", doc.Line(0))
}

func TestOpenSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("first\r\nsecond\n"), 0o644))

	doc, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, doc.Lines())
	assert.Equal(t, "", doc.Line(5))

	require.NoError(t, doc.Apply(marks.Batch{doc.InsertLineBelow(1)}))
	require.NoError(t, doc.Save())
	assert.False(t, doc.Dirty())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n\n", string(data))
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}
