// Package template implements the placeholder grammar used by prompt
// templates: {name} substitutes a variable, {{ and }} emit literal braces.
package template

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed indicates the template violates the placeholder grammar:
// an unmatched brace or an empty placeholder name. A malformed template
// cannot be repaired by supplying values; it must be replaced.
var ErrMalformed = errors.New("malformed template")

// MissingVariableError reports a placeholder with no value in the mapping.
type MissingVariableError struct {
	Name string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("no value for placeholder %q", e.Name)
}

// TokenKind discriminates parsed template tokens.
type TokenKind int

const (
	TokenLiteral TokenKind = iota
	TokenPlaceholder
)

// Token is one parsed segment of a template. Text holds the literal text
// for TokenLiteral tokens and the placeholder name for TokenPlaceholder.
type Token struct {
	Kind TokenKind
	Text string
}

// Parse splits a template into literal and placeholder tokens.
func Parse(tmpl string) ([]Token, error) {
	var tokens []Token
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, Token{Kind: TokenLiteral, Text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(tmpl); {
		switch tmpl[i] {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				lit.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end == -1 {
				return nil, fmt.Errorf("%w: unmatched '{' at offset %d", ErrMalformed, i)
			}
			name := tmpl[i+1 : i+1+end]
			if name == "" {
				return nil, fmt.Errorf("%w: empty placeholder at offset %d", ErrMalformed, i)
			}
			if strings.ContainsRune(name, '{') {
				return nil, fmt.Errorf("%w: nested '{' at offset %d", ErrMalformed, i)
			}
			flush()
			tokens = append(tokens, Token{Kind: TokenPlaceholder, Text: name})
			i += end + 2
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				lit.WriteByte('}')
				i += 2
				continue
			}
			return nil, fmt.Errorf("%w: unmatched '}' at offset %d", ErrMalformed, i)
		default:
			lit.WriteByte(tmpl[i])
			i++
		}
	}
	flush()
	return tokens, nil
}

// Placeholders returns the distinct placeholder names in the template, in
// order of first appearance.
func Placeholders(tmpl string) ([]string, error) {
	tokens, err := Parse(tmpl)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, tok := range tokens {
		if tok.Kind != TokenPlaceholder || seen[tok.Text] {
			continue
		}
		seen[tok.Text] = true
		names = append(names, tok.Text)
	}
	return names, nil
}

// Render substitutes every placeholder with its mapped value. Returns a
// *MissingVariableError naming the first placeholder with no mapping.
func Render(tmpl string, vars map[string]string) (string, error) {
	tokens, err := Parse(tmpl)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenLiteral:
			b.WriteString(tok.Text)
		case TokenPlaceholder:
			val, ok := vars[tok.Text]
			if !ok {
				return "", &MissingVariableError{Name: tok.Text}
			}
			b.WriteString(val)
		}
	}
	return b.String(), nil
}
