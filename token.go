package yamlite

import "fmt"

// TokenType represents the kind of a source line in a yamlite document.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenError

	// Structural tokens.
	TokenKeyValue // key: value
	TokenKey      // key: (opens a nested mapping).
	TokenListItem // - value

	// Raw line inside a multiline quoted string.
	TokenText

	// A line that matches no dialect construct.
	TokenUnknown
)

// Token represents one classified line of yamlite input.
type Token struct {
	Type   TokenType
	Key    string // Key for TokenKeyValue and TokenKey.
	Value  string // Trimmed value, list item or raw text.
	Line   int    // Line number (1-based).
	Indent int    // Leading whitespace characters.
	Tabbed bool   // True if the indentation contains a tab.
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return fmt.Sprintf("Error(%s)", t.Value)
	case TokenKeyValue:
		return fmt.Sprintf("KeyValue(%s=%q, indent=%d)", t.Key, t.Value, t.Indent)
	case TokenKey:
		return fmt.Sprintf("Key(%s, indent=%d)", t.Key, t.Indent)
	case TokenListItem:
		return fmt.Sprintf("ListItem(%q)", t.Value)
	case TokenText:
		return fmt.Sprintf("Text(%q)", t.Value)
	case TokenUnknown:
		return fmt.Sprintf("Unknown(%q)", t.Value)
	default:
		return fmt.Sprintf("Unknown(%d)", t.Type)
	}
}
