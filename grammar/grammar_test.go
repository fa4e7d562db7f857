package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBuild_NullableFirstFollow mirrors the grammar used by the reference
// implementation's own fixpoint test:
//
//	S -> A B
//	A -> a
//	B -> C b
//	C -> c | ε
func TestBuild_NullableFirstFollow(t *testing.T) {
	const (
		S = iota
		A
		B
		C
	)
	prods := []Production{
		{Head: S, Body: []Symbol{NT(A), NT(B)}},
		{Head: A, Body: []Symbol{Term('a')}},
		{Head: B, Body: []Symbol{NT(C), Term('b')}},
		{Head: C, Body: []Symbol{Term('c')}},
		{Head: C, Body: []Symbol{}},
	}

	g := Build(S, prods)

	assert.False(t, g.Nullable(S))
	assert.False(t, g.Nullable(A))
	assert.False(t, g.Nullable(B))
	assert.True(t, g.Nullable(C))

	assert.Equal(t, []byte{'a'}, g.First(S))
	assert.Equal(t, []byte{'a'}, g.First(A))
	assert.Equal(t, []byte{'b', 'c'}, g.First(B))
	assert.Equal(t, []byte{'c'}, g.First(C))

	assert.Empty(t, g.Follow(S))
	assert.Equal(t, []byte{'b', 'c'}, g.Follow(A))
	assert.Empty(t, g.Follow(B))
	assert.Equal(t, []byte{'b'}, g.Follow(C))
}

func TestBuild_ProdsOfAndSymbols(t *testing.T) {
	const (
		S = iota
		A
	)
	prods := []Production{
		{Head: S, Body: []Symbol{NT(A)}},
		{Head: A, Body: []Symbol{Term('x')}},
		{Head: A, Body: []Symbol{}},
	}
	g := Build(S, prods)

	assert.Len(t, g.ProdsOf(A), 2)
	assert.Len(t, g.ProdsOf(S), 1)

	syms := g.Symbols()
	assert.NotEmpty(t, syms)
	var sawTermX, sawNTA bool
	for _, sym := range syms {
		if sym.IsTerminal() && sym.Term == 'x' {
			sawTermX = true
		}
		if sym.IsNonterminal() && sym.NT == A {
			sawNTA = true
		}
	}
	assert.True(t, sawTermX)
	assert.True(t, sawNTA)
}
