package grammar

import "sort"

// Grammar is the read-only result of analyzing a production list: the
// Nullable set, First map, and Follow map, computed once by fixed-point
// iteration and never mutated afterward. All query methods return sorted,
// deterministic views so that downstream item-set construction is
// reproducible across runs.
type Grammar struct {
	initNonterm int
	prods       []Production
	nullable    map[int]bool
	first       map[int]map[byte]bool
	follow      map[int]map[byte]bool
	symbols     []Symbol
	byHead      map[int][]int // nonterm id -> indices into prods
}

// Build computes Nullable, First, and Follow for prods by repeated
// fixed-point iteration, each pass repeating while any set grew in the
// previous pass. initNonterm names the grammar's (pre-augmentation) start
// symbol and is not itself used in the fixpoint computation; it is stored
// on the Grammar but not returned by any query method.
//
// Callers are expected to have already prepended the augmented production
// S' -> S $ at index 0, per the table builder's responsibility; Build
// itself performs no augmentation.
func Build(initNonterm int, prods []Production) *Grammar {
	g := &Grammar{
		initNonterm: initNonterm,
		prods:       prods,
		nullable:    map[int]bool{},
		first:       map[int]map[byte]bool{},
		follow:      map[int]map[byte]bool{},
		byHead:      map[int][]int{},
	}

	symSeen := map[string]Symbol{}
	for i, p := range prods {
		g.byHead[p.Head] = append(g.byHead[p.Head], i)
		head := NT(p.Head)
		symSeen[head.key()] = head
		for _, sym := range p.Body {
			symSeen[sym.key()] = sym
		}
	}
	for nt := range g.byHead {
		g.first[nt] = map[byte]bool{}
		g.follow[nt] = map[byte]bool{}
	}

	g.computeNullable()
	g.computeFirst()
	g.computeFollow()

	keys := make([]string, 0, len(symSeen))
	for k := range symSeen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		g.symbols = append(g.symbols, symSeen[k])
	}

	return g
}

// computeNullable computes the least fixed point: A is nullable iff some
// production A -> X1 .. Xn has every Xi either a nullable nonterminal (n
// may be 0).
func (g *Grammar) computeNullable() {
	for {
		changed := false
		for _, p := range g.prods {
			if g.nullable[p.Head] {
				continue
			}
			allNullable := true
			for _, sym := range p.Body {
				if sym.IsTerminal() || !g.nullable[sym.NT] {
					allNullable = false
					break
				}
			}
			if allNullable {
				g.nullable[p.Head] = true
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// computeFirst computes First(A) for every nonterminal A: scanning each
// production's body left to right, adding First(Xi) minus epsilon for each
// Xi, stopping at the first non-nullable Xi (adding the terminal itself and
// stopping if that Xi is a terminal).
func (g *Grammar) computeFirst() {
	for {
		changed := false
		for _, p := range g.prods {
			dst := g.first[p.Head]
			for _, sym := range p.Body {
				if sym.IsTerminal() {
					if !dst[sym.Term] {
						dst[sym.Term] = true
						changed = true
					}
					break
				}
				for t := range g.first[sym.NT] {
					if !dst[t] {
						dst[t] = true
						changed = true
					}
				}
				if !g.nullable[sym.NT] {
					break
				}
			}
		}
		if !changed {
			return
		}
	}
}

// computeFollow computes Follow(A) for every nonterminal A. For every
// production B -> alpha A beta: First(beta) is added to Follow(A); if beta
// is nullable (including empty) Follow(B) is added to Follow(A) as well.
// Follow(S') is seeded implicitly: the caller augments the grammar with
// S' -> S $, so the scan below adds the terminal $ to Follow(S) directly
// from that production's body, without any special-cased seeding step.
func (g *Grammar) computeFollow() {
	for {
		changed := false
		for _, p := range g.prods {
			for i, sym := range p.Body {
				if sym.IsNonterminal() {
					rest := p.Body[i+1:]
					firstRest, restNullable := g.firstOfSequence(rest)
					dst := g.follow[sym.NT]
					for t := range firstRest {
						if !dst[t] {
							dst[t] = true
							changed = true
						}
					}
					if restNullable {
						for t := range g.follow[p.Head] {
							if !dst[t] {
								dst[t] = true
								changed = true
							}
						}
					}
				}
			}
		}
		if !changed {
			return
		}
	}
}

// firstOfSequence computes First(beta) and whether beta is nullable
// (including the empty sequence, which is always nullable) for a sequence
// of symbols beta.
func (g *Grammar) firstOfSequence(beta []Symbol) (map[byte]bool, bool) {
	result := map[byte]bool{}
	for _, sym := range beta {
		if sym.IsTerminal() {
			result[sym.Term] = true
			return result, false
		}
		for t := range g.first[sym.NT] {
			result[t] = true
		}
		if !g.nullable[sym.NT] {
			return result, false
		}
	}
	return result, true
}

func sortedBytes(set map[byte]bool) []byte {
	out := make([]byte, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// First returns the ordered First set of nonterminal nt.
func (g *Grammar) First(nt int) []byte {
	return sortedBytes(g.first[nt])
}

// Follow returns the ordered Follow set of nonterminal nt.
func (g *Grammar) Follow(nt int) []byte {
	return sortedBytes(g.follow[nt])
}

// Nullable reports whether nonterminal nt is nullable.
func (g *Grammar) Nullable(nt int) bool {
	return g.nullable[nt]
}

// ProdsOf returns every production headed by nonterminal nt, in the order
// they were supplied to Build.
func (g *Grammar) ProdsOf(nt int) []Production {
	indices := g.byHead[nt]
	out := make([]Production, len(indices))
	for i, idx := range indices {
		out[i] = g.prods[idx]
	}
	return out
}

// ProdIndicesOf returns the indices into Prods() of every production
// headed by nonterminal nt, in the order they were supplied to Build. It
// lets item-set closure construct new items [B -> . gamma] by production
// index, matching an Item's (Prod, Dot) identity, without needing to
// search Prods() for a value match.
func (g *Grammar) ProdIndicesOf(nt int) []int {
	return g.byHead[nt]
}

// Symbols returns every distinct symbol (terminal or nonterminal)
// appearing anywhere in the grammar, in a fixed deterministic order.
func (g *Grammar) Symbols() []Symbol {
	return g.symbols
}

// Prods returns the full production list, including the augmented start
// production at index 0. Indices into this slice are stable for the
// lifetime of the Grammar and are used by items as a canonical production
// reference.
func (g *Grammar) Prods() []Production {
	return g.prods
}

// FirstOfSequence exposes firstOfSequence for item-set closure
// computation, which needs First(beta) for arbitrary suffixes beta of a
// production body, not just for a single nonterminal.
func (g *Grammar) FirstOfSequence(beta []Symbol) ([]byte, bool) {
	set, nullable := g.firstOfSequence(beta)
	return sortedBytes(set), nullable
}
