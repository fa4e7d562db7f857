package parse

import (
	"github.com/dorsalfin/sturgeon/grammar"
	"github.com/dorsalfin/sturgeon/internal/set"
	"github.com/dorsalfin/sturgeon/internal/textutil"
	"github.com/dorsalfin/sturgeon/lrerr"
)

// Derivation is the ordered sequence of sentential forms a successful
// parse passes through, as recorded by the driver. Read top to bottom it
// is a rightmost derivation (start symbol first, input string plus
// trailing $ last).
type Derivation [][]grammar.Symbol

// stackEntry pairs a state with the symbol that caused the driver to
// shift or reduce into it; the seed entry carries the zero Symbol.
type stackEntry struct {
	state string
	sym   grammar.Symbol
}

// Parse implements spec §4.7, the shift/reduce parser driver: a stack of
// (state, symbol) pairs seeded with (initial_state, sentinel); input is
// a byte sequence with a virtual $ appended.
//
// Before any input is consumed, the full input with its trailing $ is
// recorded as the first sentential form. On every Reduce, the sequence
// formed by concatenating the non-seed stack symbols with the remaining
// input is recorded. On acceptance (shift of $), the recorded sequence is
// reversed so it reads top-down: start symbol, then each reduction,
// ending at the input string followed by $ — the rightmost derivation in
// reverse, then reversed again to present leftmost-to-the-eye.
func (t *Table) Parse(input []byte) (Derivation, error) {
	var stack set.Stack[stackEntry]
	stack.Push(stackEntry{state: t.Initial()})

	var deriv Derivation
	initialForm := make([]grammar.Symbol, len(input)+1)
	for i, b := range input {
		initialForm[i] = grammar.Term(b)
	}
	initialForm[len(input)] = grammar.Term(grammar.EndOfInput)
	deriv = append(deriv, initialForm)

	pos := 0
	for {
		top, ok := stack.Peek()
		if !ok {
			return nil, lrerr.InternalInvariant("stack empty at start of driver loop")
		}

		var term byte
		if pos < len(input) {
			term = input[pos]
		} else {
			term = grammar.EndOfInput
		}

		mv, ok := t.Action(top.state, term)
		if !ok {
			return nil, t.rejectError(top.state, pos)
		}

		switch mv.Kind {
		case Shift:
			stack.Push(stackEntry{state: mv.State, sym: grammar.Term(term)})
			if term == grammar.EndOfInput {
				reverseDerivation(deriv)
				return deriv, nil
			}
			pos++

		case Accept:
			// Belt-and-suspenders: the Shift of $ above already returns
			// before this state's own Accept cell would be consulted.
			reverseDerivation(deriv)
			return deriv, nil

		case Reduce:
			prod := t.g.Prods()[mv.Prod]
			for i := 0; i < len(prod.Body); i++ {
				if _, ok := stack.Pop(); !ok {
					return nil, lrerr.InternalInvariant("stack underflow during reduce")
				}
			}
			newTop, ok := stack.Peek()
			if !ok {
				return nil, lrerr.InternalInvariant("stack empty after popping reduced symbols")
			}
			succ, ok := t.Goto(newTop.state, prod.Head)
			if !ok {
				return nil, lrerr.InternalInvariant("goto on reduced nonterminal yielded no successor state")
			}
			stack.Push(stackEntry{state: succ, sym: grammar.NT(prod.Head)})
			deriv = append(deriv, sententialForm(&stack, input[pos:]))

		default:
			return nil, t.rejectError(top.state, pos)
		}
	}
}

// sententialForm concatenates every non-seed symbol currently on the
// stack with the unconsumed remainder of the input.
func sententialForm(stack *set.Stack[stackEntry], remaining []byte) []grammar.Symbol {
	entries := stack.All()
	form := make([]grammar.Symbol, 0, len(entries)-1+len(remaining))
	for _, e := range entries[1:] {
		form = append(form, e.sym)
	}
	for _, b := range remaining {
		form = append(form, grammar.Term(b))
	}
	return form
}

func reverseDerivation(d Derivation) {
	for i, j := 0, len(d)-1; i < j; i, j = i+1, j-1 {
		d[i], d[j] = d[j], d[i]
	}
}

// rejectError builds a ParseError.Reject carrying the human-readable set
// of terminals that would have been valid at state, in the teacher's
// "expected a, b, and c" phrasing.
func (t *Table) rejectError(state string, pos int) error {
	expected := t.ExpectedTerminals(state)
	if len(expected) == 0 {
		return lrerr.Reject(pos)
	}
	names := make([]string, len(expected))
	for i, term := range expected {
		word := string(term)
		names[i] = textutil.ArticleFor(word) + " " + word
	}
	return lrerr.RejectExpecting(pos, textutil.MakeTextList(names))
}
