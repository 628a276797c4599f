package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*MarkStore, string) {
	t.Helper()
	dir := t.TempDir()
	store := NewMarkStore(filepath.Join(dir, "data", "marks.json"), zerolog.Nop())
	return store, dir
}

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))
	return path
}

func TestMarkStore_LoadMissingFile(t *testing.T) {
	store, dir := newTestStore(t)

	lines, err := store.Load(context.Background(), filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestMarkStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store, dir := newTestStore(t)
	a := touch(t, filepath.Join(dir, "a.txt"))
	b := touch(t, filepath.Join(dir, "b.txt"))

	require.NoError(t, store.Save(ctx, a, []int{7, 2, 2, 5}))
	require.NoError(t, store.Save(ctx, b, []int{0}))

	lines, err := store.Load(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5, 7}, lines)

	docs, err := store.Documents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, docs)
}

func TestMarkStore_SaveEmptyRemovesEntry(t *testing.T) {
	ctx := context.Background()
	store, dir := newTestStore(t)
	a := touch(t, filepath.Join(dir, "a.txt"))

	require.NoError(t, store.Save(ctx, a, []int{1}))
	require.NoError(t, store.Save(ctx, a, nil))

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.NotContains(t, all, a)
}

func TestMarkStore_SavePrunesMissingDocuments(t *testing.T) {
	ctx := context.Background()
	store, dir := newTestStore(t)
	a := touch(t, filepath.Join(dir, "a.txt"))
	b := touch(t, filepath.Join(dir, "b.txt"))

	require.NoError(t, store.Save(ctx, a, []int{1}))
	require.NoError(t, store.Save(ctx, b, []int{2}))
	require.NoError(t, os.Remove(a))

	require.NoError(t, store.Save(ctx, b, []int{3}))

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, MarksFile{b: {3}}, all)
}

func TestMarkStore_SaveSkipsMissingDocument(t *testing.T) {
	ctx := context.Background()
	store, dir := newTestStore(t)

	require.NoError(t, store.Save(ctx, filepath.Join(dir, "gone.txt"), []int{1}))

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMarkStore_MalformedFile(t *testing.T) {
	ctx := context.Background()
	store, dir := newTestStore(t)
	a := touch(t, filepath.Join(dir, "a.txt"))

	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"broken": [1,`), 0o644))

	_, err := store.Load(ctx, a)
	require.Error(t, err)

	// Saving replaces the unreadable content.
	require.NoError(t, store.Save(ctx, a, []int{4}))
	lines, err := store.Load(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, lines)
}

func TestMarkStore_WrongShape(t *testing.T) {
	store, dir := newTestStore(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte(`["not", "a", "map"]`), 0o644))

	_, err := store.Load(context.Background(), filepath.Join(dir, "a.txt"))
	require.Error(t, err)
}

func TestMarkStore_Prune(t *testing.T) {
	ctx := context.Background()
	store, dir := newTestStore(t)
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")

	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	data := `{"` + a + `": [1], "` + b + `": [2, 3]}`
	require.NoError(t, os.WriteFile(store.Path(), []byte(data), 0o644))
	touch(t, b)

	removed, err := store.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{a}, removed)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, MarksFile{b: {2, 3}}, all)

	removed, err = store.Prune(ctx)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestMarkStore_Exists(t *testing.T) {
	store, dir := newTestStore(t)
	a := touch(t, filepath.Join(dir, "a.txt"))

	assert.True(t, store.Exists(a))
	assert.False(t, store.Exists(filepath.Join(dir, "missing.txt")))
}
