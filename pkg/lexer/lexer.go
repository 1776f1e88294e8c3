package lexer

import (
	"fmt"
	"strings"
	"unicode"
)

// SyntaxError reports a lexical failure. Position is 1-based and counts
// characters, not bytes.
type SyntaxError struct {
	Message  string
	Position int
}

func (e *SyntaxError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// Describe returns the message together with its source position.
func (e *SyntaxError) Describe() string {
	return fmt.Sprintf("SyntaxError: %s (position: %d)", e.Message, e.Position)
}

func syntaxError(index int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(format, args...), Position: index + 1}
}

// Tokenize converts source text into tokens in source order.
func Tokenize(source string) ([]Token, error) {
	chars := []rune(source)
	tokens := make([]Token, 0, len(chars)/4)

	for i := 0; i < len(chars); i++ {
		c := chars[i]
		switch {
		case isASCIILetter(c):
			start := i
			var word strings.Builder
			word.WriteRune(c)
			for i+1 < len(chars) {
				i++
				d := chars[i]
				if isASCIILetter(d) || d == '_' {
					word.WriteRune(d)
					continue
				}
				if unicode.IsSpace(d) {
					break
				}
				return nil, syntaxError(i, "Invalid character : %c", d)
			}
			tok, ok := Lookup(word.String())
			if !ok {
				return nil, syntaxError(start, "Invalid keyword : %s", word.String())
			}
			tokens = append(tokens, tok)
		case unicode.IsSpace(c):
		default:
			return nil, syntaxError(i, "Invalid character : %c", c)
		}
	}

	return tokens, nil
}

func isASCIILetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
