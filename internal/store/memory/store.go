// Package memory implements mark persistence that lives only for the
// lifetime of the process.
package memory

import (
	"context"
	"slices"

	"github.com/hay-kot/linemark/internal/core/marks"
	"github.com/hay-kot/linemark/pkg/kv"
)

// Store keeps marked lines per document in memory.
type Store struct {
	data   *kv.Store[string, []int]
	exists func(doc string) bool
}

// Option configures a Store.
type Option func(*Store)

// WithExists sets the function used to decide whether a document still
// exists. By default every document exists.
func WithExists(fn func(doc string) bool) Option {
	return func(s *Store) { s.exists = fn }
}

// New creates an empty in-memory store.
func New(opts ...Option) *Store {
	s := &Store{
		data:   kv.New[string, []int](),
		exists: func(string) bool { return true },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns a copy of the stored lines for doc.
func (s *Store) Load(_ context.Context, doc string) ([]int, error) {
	lines, _ := s.data.Get(doc)
	return slices.Clone(lines), nil
}

// Save stores lines for doc and prunes empty or missing documents.
func (s *Store) Save(_ context.Context, doc string, lines []int) error {
	lines = marks.Normalize(slices.Clone(lines))
	if len(lines) == 0 {
		s.data.Delete(doc)
	} else {
		s.data.Set(doc, lines)
	}

	s.data.DeleteFunc(func(doc string, _ []int) bool {
		return !s.exists(doc)
	})
	return nil
}

// Exists reports whether doc still exists.
func (s *Store) Exists(doc string) bool {
	return s.exists(doc)
}

// Documents returns every document with stored marks.
func (s *Store) Documents(_ context.Context) ([]string, error) {
	return s.data.Keys(), nil
}

// Prune drops documents that no longer exist and returns them.
func (s *Store) Prune(_ context.Context) ([]string, error) {
	var removed []string
	for _, doc := range s.data.Keys() {
		if !s.exists(doc) {
			removed = append(removed, doc)
		}
	}

	s.data.DeleteFunc(func(doc string, _ []int) bool {
		return !s.exists(doc)
	})
	return removed, nil
}
