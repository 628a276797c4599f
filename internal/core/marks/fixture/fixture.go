// Package fixture parses the plain-text edit scenarios used to exercise the
// mark remapping rules.
//
// A scenario file holds cases separated by two blank lines. Each case is a
// document before the edit, a replacement marker and the document after it:
//
//	aaa
//	[bbb *
//	]ccc *
//	===[xxx]===
//	aaa
//	xxxccc *
//
// "[" and "]" delimit the replaced range in the first document, the text
// between "===[" and "]===" is the replacement, and a trailing " *" marks a
// line. Columns are counted in runes.
package fixture

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/hay-kot/linemark/internal/core/marks"
)

var (
	reReplacement = regexp.MustCompile(`(?s)===\[(.*)\]===`)
	reMarker      = regexp.MustCompile(` \*$`)
)

// ErrMalformed is returned when a case does not follow the scenario format.
var ErrMalformed = errors.New("malformed fixture")

// Snapshot is a document and its marked lines.
type Snapshot struct {
	Lines []string
	Marks []int
}

// Case is one parsed scenario.
type Case struct {
	Before Snapshot
	After  Snapshot
	Edit   marks.Edit
}

// ParseFile reads and parses the scenario file at path.
func ParseFile(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(string(data))
}

// Parse parses every case in data.
func Parse(data string) ([]Case, error) {
	var cases []Case
	for i, raw := range strings.Split(data, "\n\n\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		c, err := parseCase(raw)
		if err != nil {
			return nil, fmt.Errorf("case %d: %w", i, err)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func parseCase(raw string) (Case, error) {
	match := reReplacement.FindStringSubmatchIndex(raw)
	if match == nil {
		return Case{}, fmt.Errorf("%w: missing ===[...]=== separator", ErrMalformed)
	}

	before := strings.TrimSpace(raw[:match[0]])
	after := strings.TrimSpace(raw[match[1]:])
	text := raw[match[2]:match[3]]

	edit := marks.Edit{Text: text}
	var sawStart, sawEnd bool

	lines := strings.Split(before, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, "["); idx >= 0 && !sawStart {
			edit.StartLine, edit.StartCol = i, utf8.RuneCountInString(line[:idx])
			line = line[:idx] + line[idx+1:]
			sawStart = true
		}
		if idx := strings.Index(line, "]"); idx >= 0 && !sawEnd {
			edit.EndLine, edit.EndCol = i, utf8.RuneCountInString(line[:idx])
			line = line[:idx] + line[idx+1:]
			sawEnd = true
		}
		lines[i] = line
	}

	if !sawStart || !sawEnd {
		return Case{}, fmt.Errorf("%w: missing [ or ] range delimiter", ErrMalformed)
	}

	return Case{
		Before: snapshot(lines),
		After:  snapshot(strings.Split(after, "\n")),
		Edit:   edit,
	}, nil
}

func snapshot(lines []string) Snapshot {
	s := Snapshot{Lines: make([]string, len(lines)), Marks: []int{}}
	for i, line := range lines {
		if reMarker.MatchString(line) {
			s.Marks = append(s.Marks, i)
			line = reMarker.ReplaceAllString(line, "")
		}
		s.Lines[i] = line
	}
	return s
}
