package ast

type Kind string

const (
	KindTrue   Kind = "True"
	KindFalse  Kind = "False"
	KindZero   Kind = "Zero"
	KindSucc   Kind = "Succ"
	KindPred   Kind = "Pred"
	KindIsZero Kind = "IsZero"
	KindIf     Kind = "If"
)

// Term is both the syntax tree and the runtime value of an Arith program.
// Variants are value types; a term is never mutated after construction.
type Term interface {
	Kind() Kind
	String() string
	isTerm()
}

// Leaves

type True struct{}

type False struct{}

type Zero struct{}

func (True) Kind() Kind  { return KindTrue }
func (False) Kind() Kind { return KindFalse }
func (Zero) Kind() Kind  { return KindZero }

func (True) isTerm()  {}
func (False) isTerm() {}
func (Zero) isTerm()  {}

// Unary forms

type Succ struct {
	Arg Term
}

type Pred struct {
	Arg Term
}

type IsZero struct {
	Arg Term
}

func (Succ) Kind() Kind   { return KindSucc }
func (Pred) Kind() Kind   { return KindPred }
func (IsZero) Kind() Kind { return KindIsZero }

func (Succ) isTerm()   {}
func (Pred) isTerm()   {}
func (IsZero) isTerm() {}

// If is the conditional if Cond then Then else Else.
type If struct {
	Cond Term
	Then Term
	Else Term
}

func (If) Kind() Kind { return KindIf }
func (If) isTerm()    {}

func NewSucc(arg Term) Succ     { return Succ{Arg: arg} }
func NewPred(arg Term) Pred     { return Pred{Arg: arg} }
func NewIsZero(arg Term) IsZero { return IsZero{Arg: arg} }

func NewIf(cond, then, els Term) If {
	return If{Cond: cond, Then: then, Else: els}
}

// IsNumericValue reports whether t is Zero or a chain of Succ ending in Zero.
// The check is structural; nothing is evaluated.
func IsNumericValue(t Term) bool {
	for {
		switch n := t.(type) {
		case Zero:
			return true
		case Succ:
			t = n.Arg
		default:
			return false
		}
	}
}

// Numeral builds succ^n zero. Negative n yields zero.
func Numeral(n int) Term {
	var t Term = Zero{}
	for i := 0; i < n; i++ {
		t = Succ{Arg: t}
	}
	return t
}

// Equal reports structural equality.
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case True, False, Zero:
		return b != nil && a.Kind() == b.Kind()
	case Succ:
		y, ok := b.(Succ)
		return ok && Equal(x.Arg, y.Arg)
	case Pred:
		y, ok := b.(Pred)
		return ok && Equal(x.Arg, y.Arg)
	case IsZero:
		y, ok := b.(IsZero)
		return ok && Equal(x.Arg, y.Arg)
	case If:
		y, ok := b.(If)
		return ok && Equal(x.Cond, y.Cond) && Equal(x.Then, y.Then) && Equal(x.Else, y.Else)
	default:
		return a == nil && b == nil
	}
}
