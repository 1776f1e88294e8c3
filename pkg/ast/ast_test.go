package ast

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNumericValue(t *testing.T) {
	assert.True(t, IsNumericValue(Zero{}))
	assert.True(t, IsNumericValue(Succ{Arg: Zero{}}))
	assert.True(t, IsNumericValue(Numeral(7)))
	assert.False(t, IsNumericValue(True{}))
	assert.False(t, IsNumericValue(False{}))
	assert.False(t, IsNumericValue(Pred{Arg: Zero{}}))
	assert.False(t, IsNumericValue(Succ{Arg: Pred{Arg: Zero{}}}))
	assert.False(t, IsNumericValue(Succ{Arg: True{}}))
	assert.False(t, IsNumericValue(IsZero{Arg: Zero{}}))
}

func TestRenderLeavesAndForms(t *testing.T) {
	cases := []struct {
		term Term
		want string
	}{
		{True{}, "true"},
		{False{}, "false"},
		{Zero{}, "0"},
		{NewPred(Zero{}), "pred 0"},
		{NewIsZero(Zero{}), "is_zero 0"},
		{NewIsZero(True{}), "is_zero true"},
		{NewIf(True{}, Zero{}, NewSucc(Zero{})), "if true then 0 else 1"},
		{NewPred(NewSucc(Zero{})), "pred 1"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.term.String(), Inspect(tc.term))
	}
}

func TestRenderSuccChains(t *testing.T) {
	for n := 1; n <= 12; n++ {
		assert.Equal(t, strconv.Itoa(n), Numeral(n).String())
	}

	// Pred layers inside a succ chain decrement the count.
	assert.Equal(t, "1", NewSucc(NewPred(NewSucc(Zero{}))).String())
	assert.Equal(t, "0", NewSucc(NewPred(Zero{})).String())
	assert.Equal(t, "-1", NewSucc(NewPred(NewPred(Zero{}))).String())

	// Anything else stops the walk and discards the count.
	assert.Equal(t, "(succ true)", NewSucc(True{}).String())
	assert.Equal(t, "(succ true)", NewSucc(NewSucc(NewPred(True{}))).String())
	assert.Equal(t, "(succ is_zero 0)", NewSucc(NewSucc(NewIsZero(Zero{}))).String())
	assert.Equal(t, "(succ if true then 0 else 0)", NewSucc(NewIf(True{}, Zero{}, Zero{})).String())
}

func TestInspect(t *testing.T) {
	assert.Equal(t, "Zero", Inspect(Zero{}))
	assert.Equal(t, "Succ(Zero)", Inspect(Numeral(1)))
	assert.Equal(t, "If(IsZero(Pred(Succ(Zero))), Zero, Succ(Zero))",
		Inspect(NewIf(NewIsZero(NewPred(NewSucc(Zero{}))), Zero{}, NewSucc(Zero{}))))
	assert.Equal(t, "<nil>", Inspect(nil))
}

func TestEqual(t *testing.T) {
	a := NewIf(NewIsZero(Zero{}), Numeral(2), False{})
	b := NewIf(NewIsZero(Zero{}), Numeral(2), False{})
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, NewIf(NewIsZero(Zero{}), Numeral(3), False{})))
	assert.False(t, Equal(True{}, False{}))
	assert.False(t, Equal(Zero{}, nil))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(NewSucc(Zero{}), NewPred(Zero{})))
}

func TestToNode(t *testing.T) {
	node := ToNode(NewIf(True{}, Zero{}, NewSucc(Zero{})))
	require.NotNil(t, node)
	assert.Equal(t, KindIf, node.Kind)
	require.Len(t, node.Children, 3)
	assert.Equal(t, KindTrue, node.Children[0].Kind)
	assert.Empty(t, node.Children[0].Children)
	assert.Equal(t, KindSucc, node.Children[2].Kind)
	require.Len(t, node.Children[2].Children, 1)
	assert.Equal(t, KindZero, node.Children[2].Children[0].Kind)
	assert.Nil(t, ToNode(nil))
}

func TestNumeralNegative(t *testing.T) {
	assert.Equal(t, Term(Zero{}), Numeral(-3))
}
