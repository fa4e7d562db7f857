package parse

import (
	"testing"

	"github.com/dorsalfin/sturgeon/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accepts(t *testing.T, tbl *Table, input string) {
	t.Helper()
	_, err := tbl.Parse([]byte(input))
	assert.NoError(t, err, "expected %q to be accepted", input)
}

func rejects(t *testing.T, tbl *Table, input string) {
	t.Helper()
	_, err := tbl.Parse([]byte(input))
	assert.Error(t, err, "expected %q to be rejected", input)
}

// Scenario 1: S -> A B, A -> a, B -> C b, C -> c | eps. Under Canonical
// LR(1): accept "acb", "ab"; reject "a", "b", "c", "ac".
func TestScenario1_OptionalMiddle(t *testing.T) {
	const (
		S = 1 + iota
		A
		B
		C
	)
	prods := []grammar.Production{
		{Head: S, Body: []grammar.Symbol{grammar.NT(A), grammar.NT(B)}},
		{Head: A, Body: []grammar.Symbol{grammar.Term('a')}},
		{Head: B, Body: []grammar.Symbol{grammar.NT(C), grammar.Term('b')}},
		{Head: C, Body: []grammar.Symbol{grammar.Term('c')}},
		{Head: C, Body: []grammar.Symbol{}},
	}

	tbl, err := Build(CanonicalLR1, S, prods, nil)
	require.NoError(t, err)

	accepts(t, tbl, "acb")
	accepts(t, tbl, "ab")
	rejects(t, tbl, "a")
	rejects(t, tbl, "b")
	rejects(t, tbl, "c")
	rejects(t, tbl, "ac")
}

// Scenario 2: S -> A B, A -> a, B -> C B | D, C -> c, D -> eps. Under
// Canonical LR(1): accept "a", "acccc"; reject "c".
func TestScenario2_RightRecursiveChain(t *testing.T) {
	const (
		S = 1 + iota
		A
		B
		C
		D
	)
	prods := []grammar.Production{
		{Head: S, Body: []grammar.Symbol{grammar.NT(A), grammar.NT(B)}},
		{Head: A, Body: []grammar.Symbol{grammar.Term('a')}},
		{Head: B, Body: []grammar.Symbol{grammar.NT(C), grammar.NT(B)}},
		{Head: B, Body: []grammar.Symbol{grammar.NT(D)}},
		{Head: C, Body: []grammar.Symbol{grammar.Term('c')}},
		{Head: D, Body: []grammar.Symbol{}},
	}

	tbl, err := Build(CanonicalLR1, S, prods, nil)
	require.NoError(t, err)

	accepts(t, tbl, "a")
	accepts(t, tbl, "acccc")
	rejects(t, tbl, "c")
}

// Scenario 3: S -> A a | b A c | d c | b d a, A -> d. Under SLR(1), build
// must fail (shift/reduce conflict). Under Canonical LR(1): accept "da",
// "bdc"; reject "aa".
func TestScenario3_NotSLRButLR1(t *testing.T) {
	const (
		S = 1 + iota
		A
	)
	prods := []grammar.Production{
		{Head: S, Body: []grammar.Symbol{grammar.NT(A), grammar.Term('a')}},
		{Head: S, Body: []grammar.Symbol{grammar.Term('b'), grammar.NT(A), grammar.Term('c')}},
		{Head: S, Body: []grammar.Symbol{grammar.Term('d'), grammar.Term('c')}},
		{Head: S, Body: []grammar.Symbol{grammar.Term('b'), grammar.Term('d'), grammar.Term('a')}},
		{Head: A, Body: []grammar.Symbol{grammar.Term('d')}},
	}

	_, err := Build(SLR, S, prods, nil)
	assert.Error(t, err, "grammar is not SLR(1) and should fail to build")

	tbl, err := Build(CanonicalLR1, S, prods, nil)
	require.NoError(t, err)

	accepts(t, tbl, "da")
	accepts(t, tbl, "bdc")
	rejects(t, tbl, "aa")
}

func arithmeticGrammar() (int, []grammar.Production) {
	const (
		E = 1 + iota
		T
		F
	)
	prods := []grammar.Production{
		{Head: E, Body: []grammar.Symbol{grammar.NT(E), grammar.Term('+'), grammar.NT(T)}},
		{Head: E, Body: []grammar.Symbol{grammar.NT(T)}},
		{Head: T, Body: []grammar.Symbol{grammar.NT(T), grammar.Term('*'), grammar.NT(F)}},
		{Head: T, Body: []grammar.Symbol{grammar.NT(F)}},
		{Head: F, Body: []grammar.Symbol{grammar.Term('n')}},
	}
	return E, prods
}

// Scenario 4: classic arithmetic-expression grammar, accepted under both
// flavors.
func TestScenario4_ArithmeticBothFlavors(t *testing.T) {
	start, prods := arithmeticGrammar()

	for _, flavor := range []Flavor{SLR, CanonicalLR1} {
		tbl, err := Build(flavor, start, prods, nil)
		require.NoError(t, err)

		accepts(t, tbl, "n")
		accepts(t, tbl, "n+n")
		accepts(t, tbl, "n*n")
		accepts(t, tbl, "n+n*n+n*n")
		rejects(t, tbl, "n+n*")
		rejects(t, tbl, "n+*n")
		rejects(t, tbl, "")
	}
}

// Scenario 5: S -> A B, A -> eps, B -> eps. Under Canonical LR(1): accept
// the empty string; reject "a".
func TestScenario5_NullableChain(t *testing.T) {
	const (
		S = 1 + iota
		A
		B
	)
	prods := []grammar.Production{
		{Head: S, Body: []grammar.Symbol{grammar.NT(A), grammar.NT(B)}},
		{Head: A, Body: []grammar.Symbol{}},
		{Head: B, Body: []grammar.Symbol{}},
	}

	tbl, err := Build(CanonicalLR1, S, prods, nil)
	require.NoError(t, err)

	accepts(t, tbl, "")
	rejects(t, tbl, "a")
}

// Scenario 6: the derivation trace for the arithmetic grammar on "n+n"
// must start at the start symbol and end at "n+n$", with no two adjacent
// sentential forms equal.
func TestScenario6_DerivationTrace(t *testing.T) {
	start, prods := arithmeticGrammar()
	tbl, err := Build(CanonicalLR1, start, prods, nil)
	require.NoError(t, err)

	deriv, err := tbl.Parse([]byte("n+n"))
	require.NoError(t, err)
	require.NotEmpty(t, deriv)

	first := deriv[0]
	require.Len(t, first, 1)
	assert.True(t, first[0].IsNonterminal())
	assert.Equal(t, start, first[0].NT)

	last := deriv[len(deriv)-1]
	assert.Equal(t, "n+n$", renderSentence(last))

	for i := 1; i < len(deriv); i++ {
		assert.NotEqual(t, deriv[i-1], deriv[i])
	}
}

func renderSentence(form []grammar.Symbol) string {
	out := ""
	for _, sym := range form {
		out += sym.String(nil)
	}
	return out
}

// go_to(S, X) is always itself closed, for every reachable state S and
// every symbol X.
func TestGoToResultIsClosed(t *testing.T) {
	start, prods := arithmeticGrammar()
	augmented := append([]grammar.Production{{Head: augmentedStartProd, Body: []grammar.Symbol{grammar.NT(start), grammar.Term(grammar.EndOfInput)}}}, prods...)
	g := grammar.Build(start, augmented)

	initial := InitialState(CanonicalLR1, g)
	states, _ := AllStates(initial, g)

	for _, st := range states {
		for _, sym := range g.Symbols() {
			succ := st.GoTo(sym, g)
			if succ.IsEmpty() {
				continue
			}
			closedAgain := succ.(LR1State).closure(g)
			assert.Equal(t, succ.Key(), closedAgain.Key())
		}
	}
}

// closure(closure(S)) == closure(S): idempotence.
func TestClosureIdempotent(t *testing.T) {
	start, prods := arithmeticGrammar()
	augmented := append([]grammar.Production{{Head: augmentedStartProd, Body: []grammar.Symbol{grammar.NT(start), grammar.Term(grammar.EndOfInput)}}}, prods...)
	g := grammar.Build(start, augmented)

	seed := newLR1State(grammar.LR1Item{Item: grammar.Item{Prod: augmentedStartProd, Dot: 0}, Lookahead: grammar.EndOfInput})
	once := seed.closure(g)
	twice := once.closure(g)
	assert.Equal(t, once.Key(), twice.Key())
}

// Build determinism: building the same grammar twice yields identical
// state orderings and table contents.
func TestBuildIsDeterministic(t *testing.T) {
	start, prods := arithmeticGrammar()

	t1, err := Build(CanonicalLR1, start, prods, nil)
	require.NoError(t, err)
	t2, err := Build(CanonicalLR1, start, prods, nil)
	require.NoError(t, err)

	assert.Equal(t, t1.states, t2.states)
	assert.Equal(t, t1.String(), t2.String())
}
