package parse

import "github.com/dorsalfin/sturgeon/grammar"

// augmentedStartProd is the production index of the table builder's
// injected S' -> S $ rule. The builder always prepends it at index 0 (see
// spec §4.6 step 1 and §9's augmentation trick), so every item-set flavor
// can recognize "the completed augmented-start item" purely by production
// index, without comparing against a separately-tracked symbolic start id.
const augmentedStartProd = 0

// terminalsOf returns every terminal symbol in the grammar, including the
// end-of-input atom, in a fixed deterministic order.
func terminalsOf(g *grammar.Grammar) []byte {
	seen := map[byte]bool{grammar.EndOfInput: true}
	out := []byte{grammar.EndOfInput}
	for _, sym := range g.Symbols() {
		if sym.IsTerminal() && !seen[sym.Term] {
			seen[sym.Term] = true
			out = append(out, sym.Term)
		}
	}
	return out
}
