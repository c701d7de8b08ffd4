package yamlite

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// lexer splits yamlite input from an io.Reader into classified lines.
type lexer struct {
	r *bufio.Reader

	line           string // Current line being processed.
	lineNum        int    // Current line number (1-based).
	eof            bool   // True if EOF reached.
	err            error  // First error encountered.
	inMultilineStr bool   // True if lines belong to an open quoted string.
}

// newLexer creates a new lexer that reads from r.
func newLexer(r io.Reader) *lexer {
	return &lexer{r: bufio.NewReader(r)}
}

// next returns the next non-skipped line as a token.
// Blank and comment lines are skipped unless a multiline string is open.
func (l *lexer) next() (Token, error) {
	if l.err != nil {
		return Token{Type: TokenError, Value: l.err.Error()}, l.err
	}

	for {
		if l.eof {
			return Token{Type: TokenEOF, Line: l.lineNum}, nil
		}

		if err := l.readLine(); err != nil {
			if err == io.EOF {
				l.eof = true
				return Token{Type: TokenEOF, Line: l.lineNum}, nil
			}
			l.err = err

			return Token{Type: TokenError, Value: err.Error()}, err
		}

		if l.inMultilineStr {
			return Token{Type: TokenText, Value: l.line, Line: l.lineNum}, nil
		}

		if isBlankOrComment(l.line) {
			continue
		}

		return l.scanLine(), nil
	}
}

// readLine reads the next line from input without its line terminator.
func (l *lexer) readLine() error {
	s, err := l.r.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return fmt.Errorf("yamlite: reading line %d: %w", l.lineNum+1, err)
		}
		if len(s) == 0 {
			return io.EOF
		}
		// EOF with data - process as final line.
		l.eof = true
	}

	l.lineNum++
	s = strings.TrimSuffix(s, "\n")
	l.line = strings.TrimSuffix(s, "\r")

	return nil
}

// scanLine classifies the current line.
func (l *lexer) scanLine() Token {
	indent, tabbed := countIndent(l.line)
	tk := Token{Line: l.lineNum, Indent: indent, Tabbed: tabbed}
	trimmed := strings.TrimSpace(l.line)

	// List item marker: '-' followed by whitespace.
	if len(trimmed) > 1 && trimmed[0] == '-' {
		r, _ := utf8.DecodeRuneInString(trimmed[1:])
		if unicode.IsSpace(r) {
			tk.Type = TokenListItem
			tk.Value = strings.TrimSpace(trimmed[1:])
			return tk
		}
	}

	// Key and value are split at the first ": " on the line. A separator right
	// at the indent is the empty key.
	if sep := strings.Index(l.line, ": "); sep != -1 {
		tk.Type = TokenKeyValue
		tk.Key = strings.TrimSpace(l.line[:sep])
		tk.Value = stripComment(strings.TrimSpace(l.line[sep+1:]))
		return tk
	}

	// A key with nothing after the colon opens a mapping; a lone ':' is the
	// empty key.
	if strings.HasSuffix(trimmed, ":") {
		tk.Type = TokenKey
		tk.Key = strings.TrimSpace(trimmed[:len(trimmed)-1])
		return tk
	}

	tk.Type = TokenUnknown
	tk.Value = trimmed
	return tk
}

// countIndent counts leading whitespace characters in s.
func countIndent(s string) (int, bool) {
	indent := 0
	tabbed := false
	for _, r := range s {
		if !unicode.IsSpace(r) {
			break
		}
		if r == '\t' {
			tabbed = true
		}
		indent++
	}

	return indent, tabbed
}

// isBlankOrComment reports whether s is empty, whitespace only, or a comment line.
func isBlankOrComment(s string) bool {
	t := strings.TrimLeftFunc(s, unicode.IsSpace)
	return t == "" || t[0] == '#'
}

// stripComment removes a trailing '# comment' from a value. Any '#' outside
// double quotes starts a comment.
func stripComment(v string) string {
	if !strings.Contains(v, "#") {
		return v
	}

	inQuote := false
	for i := 0; i < len(v); i++ {
		switch v[i] {
		case '"':
			inQuote = !inQuote
		case '#':
			if !inQuote {
				return strings.TrimSpace(v[:i])
			}
		}
	}

	return v
}
