package linemark

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/hay-kot/linemark/internal/core/config"
	"github.com/hay-kot/linemark/internal/core/document"
	"github.com/hay-kot/linemark/internal/core/marks"
)

// Catalog is a Persistence that can also enumerate and prune its documents.
type Catalog interface {
	Persistence
	Documents(ctx context.Context) ([]string, error)
	Prune(ctx context.Context) ([]string, error)
}

// App is the central entry point for linemark operations. Commands and the
// viewer consume App instead of cherry-picking raw dependencies.
type App struct {
	Config *config.Config
	Store  Catalog
	Log    zerolog.Logger
}

// NewApp constructs an App from explicit dependencies.
func NewApp(cfg *config.Config, store Catalog, logger zerolog.Logger) *App {
	return &App{
		Config: cfg,
		Store:  store,
		Log:    logger,
	}
}

// DocumentID returns the id marks for path are stored under: the cleaned
// absolute path.
func DocumentID(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return filepath.Clean(abs), nil
}

// Session is an open document together with the MarkStore tracking it.
type Session struct {
	Doc   *document.Document
	Marks *MarkStore
}

// Close flushes the marks of the session.
func (s *Session) Close(ctx context.Context) error {
	return s.Marks.Close(ctx)
}

// Open reads the document at path and activates its marks. render and cursor
// may be nil.
func (a *App) Open(ctx context.Context, path string, render Renderer, cursor Cursor) (*Session, error) {
	id, err := DocumentID(path)
	if err != nil {
		return nil, err
	}

	doc, err := document.Open(id)
	if err != nil {
		return nil, err
	}

	store := NewMarkStore(a.Store, render, cursor, a.Log)
	store.Activate(ctx, id)

	return &Session{Doc: doc, Marks: store}, nil
}

// OpenMarks activates the marks of path without reading the document. The
// file does not need to exist.
func (a *App) OpenMarks(ctx context.Context, path string, render Renderer, cursor Cursor) (*MarkStore, error) {
	id, err := DocumentID(path)
	if err != nil {
		return nil, err
	}

	store := NewMarkStore(a.Store, render, cursor, a.Log)
	store.Activate(ctx, id)
	return store, nil
}

// ApplyEdits applies batch to the document at path, saves it, and remaps and
// persists its marks. The batch is rejected as a whole when any edit is
// malformed. It returns the marked lines after the edit.
func (a *App) ApplyEdits(ctx context.Context, path string, batch marks.Batch) ([]int, error) {
	if err := batch.Validate(); err != nil {
		return nil, err
	}

	sess, err := a.Open(ctx, path, nil, nil)
	if err != nil {
		return nil, err
	}

	if err := sess.Doc.Apply(batch); err != nil {
		return nil, fmt.Errorf("apply edits: %w", err)
	}

	if err := sess.Doc.Save(); err != nil {
		return nil, err
	}

	lines := sess.Marks.ApplyEditBatch(ctx, batch)
	if err := sess.Close(ctx); err != nil {
		return nil, err
	}

	return lines, nil
}
