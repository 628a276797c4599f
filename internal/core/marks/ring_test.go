package marks

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var ringMarks = []int{0, 1, 3, 5, 6, 7, 9, 10}

func TestNext(t *testing.T) {
	want := map[int]int{
		0: 1, 1: 3, 2: 3, 3: 5, 4: 5, 5: 6,
		6: 7, 7: 9, 8: 9, 9: 10, 10: 0,
	}
	for current, expected := range want {
		assert.Equal(t, expected, Next(ringMarks, current), "Next from %d", current)
	}
}

func TestPrev(t *testing.T) {
	want := map[int]int{
		0: 10, 1: 0, 2: 1, 3: 1, 4: 3, 5: 3,
		6: 5, 7: 6, 8: 7, 9: 7, 10: 9,
	}
	for current, expected := range want {
		assert.Equal(t, expected, Prev(ringMarks, current), "Prev from %d", current)
	}
}

func TestRing_Wrap(t *testing.T) {
	assert.Equal(t, 0, Next(ringMarks, 10))
	assert.Equal(t, 10, Prev(ringMarks, 0))
	assert.Equal(t, 5, Next(ringMarks, 4))
	assert.Equal(t, 3, Prev(ringMarks, 4))

	// Off either end lands on the anchors.
	assert.Equal(t, 0, Next(ringMarks, 42))
	assert.Equal(t, 0, Next(ringMarks, -3))
	assert.Equal(t, 10, Prev(ringMarks, 42))
	assert.Equal(t, 10, Prev(ringMarks, -3))
}

func TestRing_Empty(t *testing.T) {
	for _, current := range []int{-5, 0, 7, math.MaxInt} {
		assert.Equal(t, current, Next(nil, current))
		assert.Equal(t, current, Prev(nil, current))
	}
}

func TestRing_SingleMark(t *testing.T) {
	for _, current := range []int{-1, 0, 4, 5, 6, 100} {
		assert.Equal(t, 5, Next([]int{5}, current))
		assert.Equal(t, 5, Prev([]int{5}, current))
	}
}

func TestRing_Totality(t *testing.T) {
	inRing := func(v int) bool {
		for _, m := range ringMarks {
			if m == v {
				return true
			}
		}
		return false
	}

	for _, current := range []int{math.MinInt, -100, -1, 0, 2, 8, 11, 1 << 40, math.MaxInt} {
		assert.True(t, inRing(Next(ringMarks, current)), "Next(%d)", current)
		assert.True(t, inRing(Prev(ringMarks, current)), "Prev(%d)", current)
	}
}
