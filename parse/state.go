// Package parse implements the item-set engine (SLR(1) and Canonical
// LR(1) state flavors sharing one capability contract), the ACTION/GOTO
// table assembler, and the stack-based shift/reduce parser driver.
package parse

import (
	"strconv"

	"github.com/dorsalfin/sturgeon/grammar"
)

// Flavor selects which concrete item-set realization Build uses.
type Flavor int

const (
	// SLR builds the table from SLR(1) states, which use Follow(A) sets
	// to decide reduce lookaheads. SLR(1) accepts a smaller class of
	// grammars than Canonical LR(1) but produces far fewer states.
	SLR Flavor = iota
	// CanonicalLR1 builds the table from Canonical LR(1) states, which
	// carry a per-item lookahead terminal computed during closure. It is
	// strictly more permissive than SLR(1) at the cost of a larger state
	// count.
	CanonicalLR1
)

// State is the polymorphic "LR state" contract shared by every item-set
// flavor: closure, go_to (here GoTo), initial_state (here a flavor-keyed
// constructor, InitialState), and action. all_states is not a method on
// this interface — it is algorithm-complete given GoTo and InitialState
// alone, so it lives once, as the free function AllStates below, shared
// by every flavor instead of being reimplemented per flavor.
type State interface {
	// Key is the canonical, sorted encoding of the state's item set; two
	// states with the same Key are the same state for set-membership and
	// map-indexing purposes.
	Key() string

	// GoTo returns the successor state reached by advancing the dot over
	// sym and closing the result. An empty (zero-item) result indicates
	// no transition on sym from this state.
	GoTo(sym grammar.Symbol, g *grammar.Grammar) State

	// IsEmpty reports whether the state's item set is empty; this is the
	// sink state produced by GoTo on an irrelevant symbol.
	IsEmpty() bool

	// Action computes this state's ACTION row: for every terminal with a
	// valid shift, a Shift move; for every completed item, a Reduce (or
	// Accept) move on its applicable lookahead(s). ok is false if two
	// candidate moves collide on the same terminal (the grammar is not
	// usable under this flavor); reason then describes the conflict.
	Action(g *grammar.Grammar, names map[int]string) (row map[byte]Move, ok bool, reason string)
}

// InitialState seeds and closes the initial state for the given flavor,
// from the augmented start production (always production index 0,
// S' -> S $, by the table builder's convention).
func InitialState(flavor Flavor, g *grammar.Grammar) State {
	switch flavor {
	case CanonicalLR1:
		seed := newLR1State(grammar.LR1Item{Item: grammar.Item{Prod: augmentedStartProd, Dot: 0}, Lookahead: grammar.EndOfInput})
		return seed.closure(g)
	default:
		seed := newSLRState(grammar.Item{Prod: augmentedStartProd, Dot: 0})
		return seed.closure(g)
	}
}

// AllStates performs the full state enumeration of spec §4.5: starting
// from the initial state, it visits go_to(state, sym) for every symbol in
// the grammar's symbol index, inserting newly-seen states (keyed by
// structural equality, i.e. Key()) until no new state is discovered. The
// order in which states are visited does not matter for correctness, but
// is made deterministic here (symbols visited in the Grammar's fixed
// Symbols() order) so that two runs on the same grammar enumerate states
// identically.
//
// The sink (empty) state that GoTo may produce on an irrelevant symbol is
// elided rather than inserted into the collection, since it carries no
// outgoing transitions and the table builder has nothing to ask it.
func AllStates(initial State, g *grammar.Grammar) ([]State, map[string]map[string]string) {
	visited := map[string]State{initial.Key(): initial}
	order := []State{initial}
	transitions := map[string]map[string]string{}

	queue := []State{initial}
	syms := g.Symbols()

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, sym := range syms {
			succ := cur.GoTo(sym, g)
			if succ.IsEmpty() {
				continue
			}
			if transitions[cur.Key()] == nil {
				transitions[cur.Key()] = map[string]string{}
			}
			transitions[cur.Key()][symKey(sym)] = succ.Key()

			if _, ok := visited[succ.Key()]; !ok {
				visited[succ.Key()] = succ
				order = append(order, succ)
				queue = append(queue, succ)
			}
		}
	}

	return order, transitions
}

func symKey(sym grammar.Symbol) string {
	if sym.IsTerminal() {
		return "t:" + string(sym.Term)
	}
	return "n:" + strconv.Itoa(sym.NT)
}
