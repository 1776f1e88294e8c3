package interpreter

import (
	"errors"

	"arith/interpreter-go/pkg/ast"
)

// ErrStuck is the sentinel every EvalError matches.
var ErrStuck = errors.New("no rule applies")

// EvalError reports a term that no reduction rule applies to.
type EvalError struct {
	Term ast.Term
}

func (e *EvalError) Error() string {
	return "No rule applies for " + ast.Inspect(e.Term)
}

func (e *EvalError) Is(target error) bool {
	return target == ErrStuck
}

func stuck(t ast.Term) *EvalError {
	return &EvalError{Term: t}
}

// Step performs one reduction. It fails with an *EvalError when t is stuck;
// a stuck sub-term fails the whole step without building a parent term.
func Step(t ast.Term) (ast.Term, error) {
	next, err := step(t)
	if err != nil {
		return nil, err
	}
	return next, nil
}

func step(t ast.Term) (ast.Term, *EvalError) {
	switch n := t.(type) {
	case ast.If:
		switch n.Cond.(type) {
		case ast.True:
			return n.Then, nil
		case ast.False:
			return n.Else, nil
		}
		cond, err := step(n.Cond)
		if err != nil {
			return nil, err
		}
		return ast.NewIf(cond, n.Then, n.Else), nil

	case ast.Succ:
		// No value guard: a finished numeral recurses down to Zero and is stuck there.
		arg, err := step(n.Arg)
		if err != nil {
			return nil, err
		}
		return ast.NewSucc(arg), nil

	case ast.Pred:
		switch arg := n.Arg.(type) {
		case ast.Zero:
			return ast.Zero{}, nil
		case ast.Succ:
			if ast.IsNumericValue(arg.Arg) {
				return arg.Arg, nil
			}
		}
		arg, err := step(n.Arg)
		if err != nil {
			return nil, err
		}
		return ast.NewPred(arg), nil

	case ast.IsZero:
		switch arg := n.Arg.(type) {
		case ast.Zero:
			return ast.True{}, nil
		case ast.Succ:
			if ast.IsNumericValue(arg.Arg) {
				return ast.False{}, nil
			}
		}
		arg, err := step(n.Arg)
		if err != nil {
			return nil, err
		}
		return ast.NewIsZero(arg), nil
	}
	return nil, stuck(t)
}

// Eval reduces t until no rule applies and returns that normal form.
// Stuck terms come back unchanged.
func Eval(t ast.Term) ast.Term {
	for {
		next, err := step(t)
		if err != nil {
			return t
		}
		t = next
	}
}

// Trace returns every generation of t, starting with t itself and ending
// with its normal form.
func Trace(t ast.Term) []ast.Term {
	generations := []ast.Term{t}
	for {
		next, err := step(t)
		if err != nil {
			return generations
		}
		generations = append(generations, next)
		t = next
	}
}
