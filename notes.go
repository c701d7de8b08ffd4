package yamlite

import (
	"fmt"
	"strings"
)

// NoteKind classifies a non-fatal parse note.
type NoteKind int

const (
	// NoteIndent marks indentation that is not a clean multiple of the
	// two-space unit, contains tabs, or starts the document indented.
	NoteIndent NoteKind = iota + 1
	// NoteIgnored marks a line that matched no dialect construct.
	NoteIgnored
	// NoteOrphanItem marks a list item with no key to attach to.
	NoteOrphanItem
	// NoteConflict marks a write whose path crosses a non-mapping value.
	NoteConflict
	// NoteUnterminated marks a multiline string still open at end of input.
	NoteUnterminated
)

func (k NoteKind) String() string {
	switch k {
	case NoteIndent:
		return "indent"
	case NoteIgnored:
		return "ignored"
	case NoteOrphanItem:
		return "orphan-item"
	case NoteConflict:
		return "conflict"
	case NoteUnterminated:
		return "unterminated"
	default:
		return fmt.Sprintf("NoteKind(%d)", int(k))
	}
}

// Note records a line the parser absorbed or normalized instead of rejecting.
type Note struct {
	Line    int
	Kind    NoteKind
	Message string
}

func (n Note) String() string {
	return fmt.Sprintf("line %d: %s: %s", n.Line, n.Kind, n.Message)
}

// Result is the outcome of Parse: the best-effort tree and the notes
// collected while building it.
type Result struct {
	Value *Map
	Notes []Note
}

// ParseError is returned by strict decoding when the parser recorded notes.
type ParseError struct {
	Notes []Note
}

func (e *ParseError) Error() string {
	msgs := make([]string, len(e.Notes))
	for i, n := range e.Notes {
		msgs[i] = n.String()
	}
	return "yamlite: parsing error: " + strings.Join(msgs, "; ")
}
