package yamlite

import (
	"regexp"
	"strconv"
	"strings"
)

// numberRegex matches decimal literals: optional sign, digits with an
// optional fraction, and an optional exponent.
var numberRegex = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// ParseScalar interprets an unquoted literal. "true", "false" and "null" map to
// true, false and nil; decimal numbers map to float64; anything else is
// returned as the string itself. It never fails.
func ParseScalar(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}

	if numberRegex.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	return s
}

// ParseInlineList interprets an inline list literal such as `[a, "b", 3]`.
// Elements wrapped in double quotes are taken verbatim without the quotes;
// the rest go through ParseScalar.
func ParseInlineList(s string) []any {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	out := make([]any, 0, 8)
	if strings.TrimSpace(s) == "" {
		return out
	}

	for _, item := range strings.Split(s, ",") {
		out = append(out, parseListElement(strings.TrimSpace(item)))
	}

	return out
}

func parseListElement(item string) any {
	if inner, ok := unquote(item); ok {
		return inner
	}
	return ParseScalar(item)
}

// unquote strips one pair of surrounding double quotes. No escape sequences
// are processed.
func unquote(s string) (string, bool) {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1], true
	}
	return s, false
}
