package parse

import (
	"sort"
	"strings"

	"github.com/dorsalfin/sturgeon/grammar"
)

// SLRState is the SLR(1) item-set flavor: an LR(0) item set whose reduce
// lookaheads come from Follow(A) rather than from a per-item lookahead.
// It is a set of grammar.Item keyed by their canonical encoding, which
// both deduplicates items and gives the state's Key() a stable sort order
// to iterate over.
type SLRState map[string]grammar.Item

// newSLRState builds an (unclosed) state from a seed item list.
func newSLRState(seed ...grammar.Item) SLRState {
	s := SLRState{}
	for _, it := range seed {
		s[it.Key()] = it
	}
	return s
}

// closure implements spec §4.3: iteratively add, for every item
// [A -> alpha . B beta] in the set, every item [B -> . gamma] for each
// production B -> gamma, to a fixed point.
func (s SLRState) closure(g *grammar.Grammar) SLRState {
	result := SLRState{}
	queue := make([]grammar.Item, 0, len(s))
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
		for _, idx := range g.ProdIndicesOf(next.NT) {
			newItem := grammar.Item{Prod: idx, Dot: 0}
			key := newItem.Key()
			if _, seen := result[key]; !seen {
				result[key] = newItem
				queue = append(queue, newItem)
			}
		}
	}
	return result
}

// GoTo implements spec §4.3: take items [A -> alpha . X beta] in the set,
// advance the dot over X, then close. An empty result (IsEmpty) means
// there is no transition on sym from this state.
func (s SLRState) GoTo(sym grammar.Symbol, g *grammar.Grammar) State {
	moved := SLRState{}
	for _, it := range s {
		next, ok := it.NextSymbol(g)
		if !ok || !next.Equal(sym) {
			continue
		}
		advanced := it.Advance()
		moved[advanced.Key()] = advanced
	}
	if len(moved) == 0 {
		return SLRState{}
	}
	return moved.closure(g)
}

// IsEmpty reports whether this is the sink state with no items.
func (s SLRState) IsEmpty() bool {
	return len(s) == 0
}

// Key is the canonical, sorted encoding of the item set.
func (s SLRState) Key() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}

// Action implements spec §4.3: for every terminal t with a non-empty
// go_to(I, t), emit Shift(go_to(I,t)); for every completed item
// [A -> alpha .], emit Reduce(A -> alpha) on every t in Follow(A); the
// augmented start's completed item emits Accept on $ instead of Reduce.
// A collision on any (I, t) key is reported via ok=false.
func (s SLRState) Action(g *grammar.Grammar, names map[int]string) (map[byte]Move, bool, string) {
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

		if it.Prod == augmentedStartProd {
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
		for _, t := range g.Follow(prod.Head) {
			if existing, ok := row[t]; ok && !existing.Equal(mv) {
				return nil, false, conflictReason(existing, mv, g, names)
			}
			row[t] = mv
		}
	}

	return row, true, ""
}
