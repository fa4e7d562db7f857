package parse

import (
	"fmt"
	"sort"

	"github.com/dekarrin/rosed"
	"github.com/dorsalfin/sturgeon/grammar"
	"github.com/dorsalfin/sturgeon/lrerr"
)

// Table is the assembled ACTION/GOTO table produced by Build: a
// deterministically-ordered state collection, an ACTION row per state,
// and the GOTO transitions discovered during state enumeration (reused
// directly rather than recomputed, since AllStates already visits every
// (state, symbol) pair once).
type Table struct {
	flavor      Flavor
	g           *grammar.Grammar
	names       map[int]string
	states      []string // state keys, in enumeration order; states[0] is initial
	action      map[string]map[byte]Move
	transitions map[string]map[string]string
}

// Build implements spec §4.6, the table builder pipeline:
//
//  1. Prepend S' -> S $ as production 0 (S' is a fresh nonterminal id 0;
//     initNonterm is wrapped, not replaced).
//  2. Build the Grammar analyzer.
//  3. Obtain initial_state from production 0.
//  4. Enumerate all states.
//  5. For each state, compute its action row; on any conflict, the whole
//     build fails with BuildError.NotLR.
//  6. Flatten into a mapping (State, Terminal) -> Move.
//  7. GOTO on nonterminals is not separately stored; it is served from the
//     transition map AllStates already computed during enumeration.
//
// names is an optional nonterminal id -> display name table (as produced
// by package gramtext) used only for rendering; it may be nil.
func Build(flavor Flavor, initNonterm int, prods []grammar.Production, names map[int]string) (*Table, error) {
	augmented := make([]grammar.Production, 0, len(prods)+1)
	augmented = append(augmented, grammar.Production{
		Head: augmentedStartProd,
		Body: []grammar.Symbol{grammar.NT(initNonterm), grammar.Term(grammar.EndOfInput)},
	})
	augmented = append(augmented, prods...)

	g := grammar.Build(initNonterm, augmented)

	initial := InitialState(flavor, g)
	states, transitions := AllStates(initial, g)

	t := &Table{
		flavor:      flavor,
		g:           g,
		names:       names,
		transitions: transitions,
		action:      map[string]map[byte]Move{},
	}

	for _, st := range states {
		row, ok, reason := st.Action(g, names)
		if !ok {
			return nil, lrerr.NotLR(st.Key(), 0, reason)
		}
		t.action[st.Key()] = row
		t.states = append(t.states, st.Key())
	}

	return t, nil
}

// Initial returns the key of the start state.
func (t *Table) Initial() string {
	return t.states[0]
}

// Action returns the move for (state, terminal), and false if no entry
// applies there (the grammar's table is partial at that cell).
func (t *Table) Action(state string, terminal byte) (Move, bool) {
	row, ok := t.action[state]
	if !ok {
		return Move{Kind: Reject}, false
	}
	mv, ok := row[terminal]
	if !ok {
		return Move{Kind: Reject}, false
	}
	return mv, true
}

// ExpectedTerminals returns the terminals for which state has a defined
// action, sorted, for use in human-facing rejection messages.
func (t *Table) ExpectedTerminals(state string) []byte {
	row := t.action[state]
	out := make([]byte, 0, len(row))
	for term := range row {
		out = append(out, term)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Goto returns the successor state reached from state on nonterminal nt,
// per spec §4.6 step 7: GOTO on nonterminals is served from the
// transition map produced during state enumeration rather than recomputed
// or separately stored; the result is guaranteed to lie in the state set.
func (t *Table) Goto(state string, nt int) (string, bool) {
	row, ok := t.transitions[state]
	if !ok {
		return "", false
	}
	succ, ok := row[symKey(grammar.NT(nt))]
	return succ, ok
}

// Grammar exposes the augmented Grammar backing this table.
func (t *Table) Grammar() *grammar.Grammar {
	return t.g
}

// String renders the ACTION/GOTO table using the same rosed table-layout
// convention as the teacher's SLR/LR(1) table renderers.
func (t *Table) String() string {
	stateRefs := map[string]string{}
	for i, s := range t.states {
		stateRefs[s] = fmt.Sprintf("%d", i)
	}

	var terms []byte
	for _, s := range t.states {
		for term := range t.action[s] {
			terms = append(terms, term)
		}
	}
	termSet := map[byte]bool{}
	var allTerms []byte
	for _, term := range terms {
		if !termSet[term] {
			termSet[term] = true
			allTerms = append(allTerms, term)
		}
	}
	sort.Slice(allTerms, func(i, j int) bool { return allTerms[i] < allTerms[j] })

	var nonterms []int
	seenNT := map[int]bool{}
	for _, sym := range t.g.Symbols() {
		if sym.IsNonterminal() && !seenNT[sym.NT] {
			seenNT[sym.NT] = true
			nonterms = append(nonterms, sym.NT)
		}
	}
	sort.Ints(nonterms)

	data := [][]string{}

	headers := []string{"S", "|"}
	for _, term := range allTerms {
		headers = append(headers, fmt.Sprintf("A:%s", grammar.Term(term).String(t.names)))
	}
	headers = append(headers, "|")
	for _, nt := range nonterms {
		headers = append(headers, fmt.Sprintf("G:%s", grammar.NT(nt).String(t.names)))
	}
	data = append(data, headers)

	for _, s := range t.states {
		row := []string{stateRefs[s], "|"}
		for _, term := range allTerms {
			cell := ""
			if mv, ok := t.Action(s, term); ok {
				switch mv.Kind {
				case Accept:
					cell = "acc"
				case Reduce:
					cell = fmt.Sprintf("r%s", t.g.Prods()[mv.Prod].String(t.names))
				case Shift:
					cell = fmt.Sprintf("s%s", stateRefs[mv.State])
				}
			}
			row = append(row, cell)
		}
		row = append(row, "|")
		for _, nt := range nonterms {
			cell := ""
			if succ, ok := t.Goto(s, nt); ok {
				cell = stateRefs[succ]
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
