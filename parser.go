package yamlite

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// indentUnit is the indentation step the dialect is written with.
const indentUnit = 2

var (
	emptyObjectRegex = regexp.MustCompile(`^\{\s*\}$`)
	emptyArrayRegex  = regexp.MustCompile(`^\[\s*\]$`)
)

// frame is one level of the indentation stack: the column a key was found
// at and the key itself. The keys of all frames form the cursor path.
type frame struct {
	indent int
	key    string
}

// streamParser builds a value tree from classified lines.
type streamParser struct {
	lexer *lexer

	root   *Map
	frames []frame
	notes  []Note

	mlBuf  strings.Builder // Open multiline string, opening quote included.
	mlLine int             // Line the multiline string started on.
}

// newStreamParser creates a new parser from a lexer.
func newStreamParser(l *lexer) *streamParser {
	return &streamParser{lexer: l}
}

// parse consumes every line and returns the tree built so far. The error is
// only set when the underlying reader fails; the partial tree is still returned.
func (p *streamParser) parse() (*Result, error) {
	p.root = NewMap()

	for {
		tk, err := p.lexer.next()
		if err != nil {
			return p.result(), err
		}

		switch tk.Type {
		case TokenEOF:
			p.finish()
			return p.result(), nil

		case TokenText:
			p.continueMultiline(tk)

		case TokenListItem:
			p.appendListItem(tk)

		case TokenKeyValue:
			p.enter(tk)
			p.setValue(tk)

		case TokenKey:
			p.enter(tk)
			p.write(tk.Line, NewMap())

		default:
			p.notef(tk.Line, NoteIgnored, "unrecognized line %q", tk.Value)
		}
	}
}

func (p *streamParser) result() *Result {
	return &Result{Value: p.root, Notes: p.notes}
}

func (p *streamParser) notef(line int, kind NoteKind, format string, args ...any) {
	p.notes = append(p.notes, Note{Line: line, Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// enter moves the cursor to the key on tk, pushing or popping indentation
// frames as the line's indent requires.
func (p *streamParser) enter(tk Token) {
	if tk.Tabbed {
		p.notef(tk.Line, NoteIndent, "tab character in indentation")
	}

	switch {
	case len(p.frames) == 0:
		if tk.Indent != 0 {
			p.notef(tk.Line, NoteIndent, "document starts indented by %d", tk.Indent)
		}
		p.frames = append(p.frames, frame{indent: tk.Indent})

	case tk.Indent > p.top().indent:
		if step := tk.Indent - p.top().indent; step != indentUnit {
			p.notef(tk.Line, NoteIndent, "indent step of %d, expected %d", step, indentUnit)
		}
		p.frames = append(p.frames, frame{indent: tk.Indent})

	case tk.Indent < p.top().indent:
		for len(p.frames) > 0 && p.top().indent > tk.Indent {
			p.frames = p.frames[:len(p.frames)-1]
		}

		// Dedented between two known levels: open a level at this column
		// under the enclosing key.
		if len(p.frames) == 0 || p.top().indent < tk.Indent {
			p.notef(tk.Line, NoteIndent, "dedent to column %d matches no enclosing level", tk.Indent)
			p.frames = append(p.frames, frame{indent: tk.Indent})
		}
	}

	p.frames[len(p.frames)-1].key = tk.Key
}

func (p *streamParser) top() frame {
	return p.frames[len(p.frames)-1]
}

// path returns the cursor path.
func (p *streamParser) path() []string {
	path := make([]string, len(p.frames))
	for i, f := range p.frames {
		path[i] = f.key
	}
	return path
}

// write stores v at the cursor path.
func (p *streamParser) write(line int, v any) {
	replaced, err := setPath(p.root, p.path(), v)
	if err != nil {
		p.notef(line, NoteConflict, "%s; value dropped", err)
		return
	}
	if replaced {
		p.notef(line, NoteConflict, "scalar replaced by a mapping to hold nested keys")
	}
}

// setValue classifies the value of a key line and writes it.
func (p *streamParser) setValue(tk Token) {
	v := tk.Value

	switch {
	case isMultilineStart(v):
		p.lexer.inMultilineStr = true
		p.mlBuf.Reset()
		p.mlBuf.WriteString(v)
		p.mlLine = tk.Line
	case emptyObjectRegex.MatchString(v):
		p.write(tk.Line, NewMap())
	case emptyArrayRegex.MatchString(v):
		p.write(tk.Line, []any{})
	case strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]"):
		p.write(tk.Line, ParseInlineList(v))
	default:
		if inner, ok := unquote(v); ok {
			p.write(tk.Line, inner)
			return
		}
		p.write(tk.Line, ParseScalar(v))
	}
}

// isMultilineStart reports whether v opens a quote it does not close.
func isMultilineStart(v string) bool {
	return strings.HasPrefix(v, `"`) && !strings.Contains(v[1:], `"`)
}

// continueMultiline appends a raw line to the open string and commits it
// once a line ends with a closing quote.
func (p *streamParser) continueMultiline(tk Token) {
	p.mlBuf.WriteByte('\n')
	p.mlBuf.WriteString(tk.Value)

	if !strings.HasSuffix(strings.TrimRightFunc(tk.Value, unicode.IsSpace), `"`) {
		return
	}

	s := strings.TrimRightFunc(p.mlBuf.String(), unicode.IsSpace)
	p.lexer.inMultilineStr = false
	p.mlBuf.Reset()
	p.write(tk.Line, s[1:len(s)-1])
}

// appendListItem appends a list item to the sequence at the cursor path,
// creating the sequence if the path holds anything else.
func (p *streamParser) appendListItem(tk Token) {
	path := p.path()
	if len(path) == 0 {
		p.notef(tk.Line, NoteOrphanItem, "list item %q has no key", tk.Value)
		return
	}

	cur, _ := getPath(p.root, path)
	seq, ok := cur.([]any)
	if !ok {
		seq = make([]any, 0, 8)
	}

	if inner, ok := unquote(tk.Value); ok {
		seq = append(seq, inner)
	} else {
		seq = append(seq, ParseScalar(tk.Value))
	}

	p.write(tk.Line, seq)
}

// finish commits a multiline string left open at end of input.
func (p *streamParser) finish() {
	if !p.lexer.inMultilineStr {
		return
	}

	p.notef(p.mlLine, NoteUnterminated, "quoted string is never closed")
	p.lexer.inMultilineStr = false
	s := p.mlBuf.String()
	p.mlBuf.Reset()
	p.write(p.mlLine, s[1:])
}
