package parser

import (
	"fmt"

	"arith/interpreter-go/pkg/ast"
	"arith/interpreter-go/pkg/lexer"
)

// ParseError reports a malformed token sequence.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func parseError(format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...)}
}

const (
	msgInvalidProgram = "Invalid program!"
	msgMissingThen    = "Invalid If statement. Missing 'then' clause."
	msgMissingElse    = "Invalid If statement. Missing 'else' clause."
)

// Parse consumes every token and returns the top-level terms in order.
// Terms are not separated: each one takes exactly the tokens it needs and
// the next token starts a new term. The first error discards all results.
func Parse(tokens []lexer.Token) ([]ast.Term, error) {
	p := &tokenStream{tokens: tokens}
	terms := make([]ast.Term, 0)
	for {
		tok, ok := p.next()
		if !ok {
			return terms, nil
		}
		term, err := p.parseTerm(tok)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
}

type tokenStream struct {
	tokens []lexer.Token
	pos    int
}

func (p *tokenStream) next() (lexer.Token, bool) {
	if p.pos >= len(p.tokens) {
		return 0, false
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, true
}

// expect consumes the next token and reports whether it was want.
func (p *tokenStream) expect(want lexer.Token) bool {
	tok, ok := p.next()
	return ok && tok == want
}

func (p *tokenStream) parseTerm(tok lexer.Token) (ast.Term, *ParseError) {
	switch tok {
	case lexer.True:
		return ast.True{}, nil
	case lexer.False:
		return ast.False{}, nil
	case lexer.Zero:
		return ast.Zero{}, nil
	case lexer.IsZero:
		arg, err := p.parseInner()
		if err != nil {
			return nil, err
		}
		return ast.NewIsZero(arg), nil
	case lexer.Succ:
		arg, err := p.parseInner()
		if err != nil {
			return nil, err
		}
		return ast.NewSucc(arg), nil
	case lexer.Pred:
		arg, err := p.parseInner()
		if err != nil {
			return nil, err
		}
		return ast.NewPred(arg), nil
	case lexer.If:
		return p.parseIf()
	default:
		return nil, parseError("Unknown token : %s", tok)
	}
}

func (p *tokenStream) parseIf() (ast.Term, *ParseError) {
	cond, err := p.parseInner()
	if err != nil {
		return nil, err
	}
	if !p.expect(lexer.Then) {
		return nil, parseError(msgMissingThen)
	}
	then, err := p.parseInner()
	if err != nil {
		return nil, err
	}
	if !p.expect(lexer.Else) {
		return nil, parseError(msgMissingElse)
	}
	els, err := p.parseInner()
	if err != nil {
		return nil, err
	}
	return ast.NewIf(cond, then, els), nil
}

// parseInner parses the sub-term a term-former requires.
func (p *tokenStream) parseInner() (ast.Term, *ParseError) {
	tok, ok := p.next()
	if !ok {
		return nil, parseError(msgInvalidProgram)
	}
	return p.parseTerm(tok)
}
