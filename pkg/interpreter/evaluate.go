package interpreter

import (
	"strings"

	"github.com/samber/lo"

	"arith/interpreter-go/pkg/ast"
	"arith/interpreter-go/pkg/lexer"
	"arith/interpreter-go/pkg/parser"
)

// Evaluate runs one source text through the whole pipeline and returns the
// normal form of every top-level term, one per line, in parse order.
//
// Lexical and parse failures come back as *lexer.SyntaxError or
// *parser.ParseError; their Error text is the message alone. Nothing is
// evaluated when either stage fails.
func Evaluate(source string) (string, error) {
	terms, err := ParseSource(source)
	if err != nil {
		return "", err
	}
	rendered := lo.Map(terms, func(t ast.Term, _ int) string {
		return Eval(t).String()
	})
	return strings.Join(rendered, "\n"), nil
}

// ParseSource tokenizes and parses source without evaluating it.
func ParseSource(source string) ([]ast.Term, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return parser.Parse(tokens)
}
