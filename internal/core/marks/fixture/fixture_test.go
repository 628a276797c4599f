package fixture

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/linemark/internal/core/document"
	"github.com/hay-kot/linemark/internal/core/marks"
)

func TestParse_SingleCase(t *testing.T) {
	data := "aaa\n[bbb *\n]ccc *\nddd\n===[xxx]===\naaa\nxxxccc *\nddd\n"

	cases, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, cases, 1)

	c := cases[0]
	assert.Equal(t, []string{"aaa", "bbb", "ccc", "ddd"}, c.Before.Lines)
	assert.Equal(t, []int{1, 2}, c.Before.Marks)
	assert.Equal(t, []string{"aaa", "xxxccc", "ddd"}, c.After.Lines)
	assert.Equal(t, []int{1}, c.After.Marks)
	assert.Equal(t, marks.Replace(1, 0, 2, 0, "xxx"), c.Edit)
}

func TestParse_MultiLineReplacement(t *testing.T) {
	data := "aaa\n[]bbb\nccc *\n===[\n]===\naaa\n\nbbb\nccc *"

	cases, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, cases, 1)

	assert.Equal(t, marks.Insert(1, 0, "\n"), cases[0].Edit)
	assert.Equal(t, []string{"aaa", "", "bbb", "ccc"}, cases[0].After.Lines)
	assert.Equal(t, []int{3}, cases[0].After.Marks)
}

func TestParse_ColumnsCountRunes(t *testing.T) {
	data := "äö[ü *\nß]x *\n===[y]===\näöyx *"

	cases, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, cases, 1)

	c := cases[0]
	assert.Equal(t, marks.Replace(0, 2, 1, 1, "y"), c.Edit)
	assert.Equal(t, c.After.Marks, marks.Remap(c.Before.Marks, c.Edit))

	doc := document.New("", strings.Join(c.Before.Lines, "\n"))
	require.NoError(t, doc.Apply(marks.Batch{c.Edit}))
	assert.Equal(t, c.After.Lines, doc.Lines())
}

func TestParse_SeveralCases(t *testing.T) {
	data := "a\n[b]\n===[]===\na\n\n\n\nx *\n[]y\n===[z]===\nx *\nzy"

	cases, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, marks.Replace(1, 0, 1, 1, ""), cases[0].Edit)
	assert.Empty(t, cases[0].Before.Marks)
	assert.Equal(t, []int{0}, cases[1].Before.Marks)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse("aaa\nbbb\n")
	require.ErrorIs(t, err, ErrMalformed)

	_, err = Parse("aaa\nbbb\n===[x]===\naaa")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile("testdata/does-not-exist.txt")
	require.Error(t, err)
}
