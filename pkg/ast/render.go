package ast

import (
	"strconv"
	"strings"
)

func (True) String() string  { return "true" }
func (False) String() string { return "false" }
func (Zero) String() string  { return "0" }

func (n Pred) String() string   { return "pred " + n.Arg.String() }
func (n IsZero) String() string { return "is_zero " + n.Arg.String() }

func (n If) String() string {
	return "if " + n.Cond.String() + " then " + n.Then.String() + " else " + n.Else.String()
}

// String folds a Succ/Pred chain ending in Zero into a decimal count.
// Any other term ends the walk and is shown as "(succ <term>)".
func (n Succ) String() string {
	count := 1
	t := n.Arg
	for {
		switch inner := t.(type) {
		case Zero:
			return strconv.Itoa(count)
		case Succ:
			count++
			t = inner.Arg
		case Pred:
			count--
			t = inner.Arg
		default:
			return "(succ " + t.String() + ")"
		}
	}
}

// Inspect renders t in constructor notation, e.g. If(True, Zero, Succ(Zero)).
func Inspect(t Term) string {
	var b strings.Builder
	writeInspect(&b, t)
	return b.String()
}

func writeInspect(b *strings.Builder, t Term) {
	if t == nil {
		b.WriteString("<nil>")
		return
	}
	b.WriteString(string(t.Kind()))
	children := Children(t)
	if len(children) == 0 {
		return
	}
	b.WriteByte('(')
	for i, child := range children {
		if i > 0 {
			b.WriteString(", ")
		}
		writeInspect(b, child)
	}
	b.WriteByte(')')
}

// Children returns the direct sub-terms of t in source order.
func Children(t Term) []Term {
	switch n := t.(type) {
	case Succ:
		return []Term{n.Arg}
	case Pred:
		return []Term{n.Arg}
	case IsZero:
		return []Term{n.Arg}
	case If:
		return []Term{n.Cond, n.Then, n.Else}
	default:
		return nil
	}
}
