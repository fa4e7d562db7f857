package parse

import (
	"sort"
	"strings"

	"github.com/dorsalfin/sturgeon/grammar"
)

// LR1State is the Canonical LR(1) item-set flavor: each item carries its
// own lookahead terminal rather than sharing Follow(A) across every item
// headed by A, which is what makes it strictly more permissive than
// SLRState.
type LR1State map[string]grammar.LR1Item

func newLR1State(seed ...grammar.LR1Item) LR1State {
	s := LR1State{}
	for _, it := range seed {
		s[it.Key()] = it
	}
	return s
}

// closure implements spec §4.4: for every item [A -> alpha . B beta, a]
// in the set, for every production B -> gamma and every b in
// First(beta a), add [B -> . gamma, b]. First(beta a) is computed by
// scanning beta; a itself is included iff beta is nullable.
func (s LR1State) closure(g *grammar.Grammar) LR1State {
	result := LR1State{}
	queue := make([]grammar.LR1Item, 0, len(s))
	for k, it := range s {
		result[k] = it
		queue = append(queue, it)
	}

	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]

		next, ok := it.NextSymbol(g)
		if !ok || next.IsTerminal() {
			continue
		}
		rest := restOfBody(g, it.Item)
		firstOfRest, restNullable := g.FirstOfSequence(rest)

		lookaheads := make([]byte, len(firstOfRest))
		copy(lookaheads, firstOfRest)
		if restNullable {
			lookaheads = append(lookaheads, it.Lookahead)
		}

		for _, idx := range g.ProdIndicesOf(next.NT) {
			for _, b := range lookaheads {
				newItem := grammar.LR1Item{Item: grammar.Item{Prod: idx, Dot: 0}, Lookahead: b}
				key := newItem.Key()
				if _, seen := result[key]; !seen {
					result[key] = newItem
					queue = append(queue, newItem)
				}
			}
		}
	}
	return result
}

// restOfBody returns the symbols of it's production body strictly after
// the symbol immediately following the dot (i.e. beta, where the item is
// [A -> alpha . B beta]).
func restOfBody(g *grammar.Grammar, it grammar.Item) []grammar.Symbol {
	body := g.Prods()[it.Prod].Body
	if it.Dot+1 >= len(body) {
		return nil
	}
	return body[it.Dot+1:]
}

// GoTo implements spec §4.4: advance the dot over sym on matching items,
// preserving lookaheads, then close.
func (s LR1State) GoTo(sym grammar.Symbol, g *grammar.Grammar) State {
	moved := LR1State{}
	for _, it := range s {
		next, ok := it.NextSymbol(g)
		if !ok || !next.Equal(sym) {
			continue
		}
		advanced := it.Advance()
		moved[advanced.Key()] = advanced
	}
	if len(moved) == 0 {
		return LR1State{}
	}
	return moved.closure(g)
}

// IsEmpty reports whether this is the sink state with no items.
func (s LR1State) IsEmpty() bool {
	return len(s) == 0
}

// Key is the canonical, sorted encoding of the item set.
func (s LR1State) Key() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}

// Action implements spec §4.4: Shift entries exactly as in SLRState. For
// each completed item [A -> alpha ., a], emit Reduce(A -> alpha) on
// lookahead a alone (not Follow(A)); the augmented start's completed item
// emits Accept on $ instead. Collision handling is identical to SLRState.
func (s LR1State) Action(g *grammar.Grammar, names map[int]string) (map[byte]Move, bool, string) {
	row := map[byte]Move{}

	for _, t := range terminalsOf(g) {
		succ := s.GoTo(grammar.Term(t), g)
		if succ.IsEmpty() {
			continue
		}
		row[t] = Move{Kind: Shift, State: succ.Key()}
	}

	for _, it := range s {
		if !it.AtEnd(g) {
			continue
		}
		prod := g.Prods()[it.Prod]

		if it.Prod == augmentedStartProd && it.Lookahead == grammar.EndOfInput {
			// Unreachable in practice: the driver shifts $ out of the
			// predecessor state before this cell is ever looked up.
			mv := Move{Kind: Accept}
			if existing, ok := row[grammar.EndOfInput]; ok && !existing.Equal(mv) {
				return nil, false, conflictReason(existing, mv, g, names)
			}
			row[grammar.EndOfInput] = mv
			continue
		}

		mv := Move{Kind: Reduce, Prod: it.Prod, Head: prod.Head}
		if existing, ok := row[it.Lookahead]; ok && !existing.Equal(mv) {
			return nil, false, conflictReason(existing, mv, g, names)
		}
		row[it.Lookahead] = mv
	}

	return row, true, ""
}
