// Package iojson reads and writes the JSON payloads of linemark commands.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// Error is the JSON shape of an error reported to a machine reader.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// WriteError writes msg and data as a single line JSON Error to w. Values in
// data that cannot be encoded are replaced by their fmt representation.
func WriteError(w io.Writer, msg string, data map[string]any) error {
	err := WriteLine(w, Error{Message: msg, Data: data})
	if err == nil {
		return nil
	}

	fallback := make(map[string]any, len(data))
	for k, v := range data {
		fallback[k] = fmt.Sprint(v)
	}
	return WriteLine(w, Error{Message: msg, Data: fallback})
}

// WriteLine writes obj as a single line of JSON, suitable for JSON lines
// output.
func WriteLine(w io.Writer, obj any) error {
	bits, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	_, err = fmt.Fprintln(w, string(bits))
	return err
}
