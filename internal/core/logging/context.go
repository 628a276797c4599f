package logging

import "context"

type contextKey string

const (
	documentKey contextKey = "document"
	commandKey  contextKey = "command"
)

// WithDocument adds the active document identifier to the context.
func WithDocument(ctx context.Context, doc string) context.Context {
	return context.WithValue(ctx, documentKey, doc)
}

// WithCommand adds the name of the command being executed to the context.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, name)
}

// GetDocument retrieves the document identifier from the context.
// Returns empty string if not present.
func GetDocument(ctx context.Context) string {
	if doc, ok := ctx.Value(documentKey).(string); ok {
		return doc
	}
	return ""
}

// GetCommand retrieves the command name from the context.
// Returns empty string if not present.
func GetCommand(ctx context.Context) string {
	if name, ok := ctx.Value(commandKey).(string); ok {
		return name
	}
	return ""
}
