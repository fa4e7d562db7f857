package gramtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_ArithmeticGrammar(t *testing.T) {
	src := `
E -> E + T
E -> T
T -> T * F
T -> F
F -> n
`
	r := New()
	prods, start, err := r.Read(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, prods, 5)

	assert.Equal(t, "E", r.Names()[start])
	assert.NotZero(t, start)
	assert.NotEqual(t, 0, prods[0].Head)

	// reserved id 0 must never be assigned to a user nonterminal
	for _, p := range prods {
		assert.NotZero(t, p.Head)
	}
}

func TestRead_EmptyRHSIsEpsilon(t *testing.T) {
	r := New()
	prods, _, err := r.Read(strings.NewReader("S -> A B\nA ->\nB ->\n"))
	require.NoError(t, err)
	require.Len(t, prods, 3)
	assert.Empty(t, prods[1].Body)
	assert.Empty(t, prods[2].Body)
}

func TestRead_BlankLinesIgnored(t *testing.T) {
	r := New()
	prods, _, err := r.Read(strings.NewReader("S -> a\n\n\nS -> b\n"))
	require.NoError(t, err)
	assert.Len(t, prods, 2)
}

func TestRead_MalformedLineAborts(t *testing.T) {
	r := New()
	_, _, err := r.Read(strings.NewReader("this is not a production\n"))
	assert.Error(t, err)
}

func TestRead_ReservedTerminalRejected(t *testing.T) {
	r := New()
	_, _, err := r.Read(strings.NewReader("S -> a $\n"))
	assert.Error(t, err)
}
