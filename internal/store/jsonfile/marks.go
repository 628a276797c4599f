// Package jsonfile implements mark persistence backed by a single JSON file.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hay-kot/linemark/internal/core/marks"
)

// MarksFile is the root JSON structure stored on disk: document path to
// ascending marked lines.
type MarksFile map[string][]int

// MarkStore implements linemark.Persistence using a JSON file. Every save
// rewrites the whole file, dropping documents that have no marks or no
// longer exist.
type MarkStore struct {
	path   string
	exists func(doc string) bool
	log    zerolog.Logger
	mu     sync.Mutex
}

// NewMarkStore creates a JSON file mark store at the given path.
func NewMarkStore(path string, logger zerolog.Logger) *MarkStore {
	return &MarkStore{
		path:   path,
		exists: fileExists,
		log:    logger,
	}
}

// Path returns the location of the JSON file.
func (s *MarkStore) Path() string { return s.path }

// Load returns the stored lines for doc. A missing file or document yields
// an empty list; a malformed file yields an error.
func (s *MarkStore) Load(ctx context.Context, doc string) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}

	return marks.Normalize(slices.Clone(file[doc])), nil
}

// Save stores lines for doc. Unreadable existing content is discarded.
func (s *MarkStore) Save(ctx context.Context, doc string, lines []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		s.log.Warn().Ctx(ctx).Err(err).Str("path", s.path).Msg("discarding unreadable marks file")
		file = MarksFile{}
	}

	file[doc] = lines
	return s.save(file)
}

// Exists reports whether doc is an existing file.
func (s *MarkStore) Exists(doc string) bool {
	return s.exists(doc)
}

// All returns every stored document and its lines.
func (s *MarkStore) All(ctx context.Context) (MarksFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// Documents returns every document with stored marks in ascending order.
func (s *MarkStore) Documents(ctx context.Context) ([]string, error) {
	file, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]string, 0, len(file))
	for doc := range file {
		docs = append(docs, doc)
	}
	slices.Sort(docs)
	return docs, nil
}

// Prune rewrites the file without entries for missing documents and returns
// the removed documents.
func (s *MarkStore) Prune(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}

	var removed []string
	for doc, lines := range file {
		if len(lines) == 0 || !s.exists(doc) {
			removed = append(removed, doc)
		}
	}
	slices.Sort(removed)

	if len(removed) == 0 {
		return nil, nil
	}

	return removed, s.save(file)
}

// load reads the marks file from disk.
// Returns an empty MarksFile if the file doesn't exist.
func (s *MarkStore) load() (MarksFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return MarksFile{}, nil
		}
		return nil, fmt.Errorf("read marks file: %w", err)
	}

	if len(data) == 0 {
		return MarksFile{}, nil
	}

	var file MarksFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse marks file: %w", err)
	}
	if file == nil {
		file = MarksFile{}
	}

	return file, nil
}

// save writes the marks file to disk atomically, dropping empty and missing
// documents.
func (s *MarkStore) save(file MarksFile) error {
	out := make(MarksFile, len(file))
	for doc, lines := range file {
		lines = marks.Normalize(slices.Clone(lines))
		if len(lines) == 0 || !s.exists(doc) {
			continue
		}
		out[doc] = lines
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
