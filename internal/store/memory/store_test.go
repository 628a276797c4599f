package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s := New()

	lines, err := s.Load(ctx, "a.txt")
	require.NoError(t, err)
	assert.Empty(t, lines)

	require.NoError(t, s.Save(ctx, "a.txt", []int{5, 1, 5, -2}))

	lines, err = s.Load(ctx, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5}, lines)

	// Callers own the returned slice.
	lines[0] = 99
	again, _ := s.Load(ctx, "a.txt")
	assert.Equal(t, []int{1, 5}, again)
}

func TestStore_SaveEmptyRemoves(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Save(ctx, "a.txt", []int{1}))
	require.NoError(t, s.Save(ctx, "a.txt", nil))

	docs, err := s.Documents(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestStore_PrunesMissing(t *testing.T) {
	ctx := context.Background()
	gone := map[string]bool{}
	s := New(WithExists(func(doc string) bool { return !gone[doc] }))

	require.NoError(t, s.Save(ctx, "a.txt", []int{1}))
	require.NoError(t, s.Save(ctx, "b.txt", []int{2}))
	require.NoError(t, s.Save(ctx, "c.txt", []int{3}))

	gone["a.txt"] = true
	assert.False(t, s.Exists("a.txt"))

	removed, err := s.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, removed)

	gone["b.txt"] = true
	require.NoError(t, s.Save(ctx, "c.txt", []int{4}))

	docs, err := s.Documents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c.txt"}, docs)
}
