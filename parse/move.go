package parse

import (
	"fmt"

	"github.com/dorsalfin/sturgeon/grammar"
)

// MoveKind distinguishes the three kinds of entries that may occupy an
// ACTION table cell, plus the sentinel Reject kind used for absent
// entries.
type MoveKind int

const (
	Shift MoveKind = iota
	Reduce
	// Accept is stored in the completed augmented-start item's cell, but
	// the driver never actually consults it: it returns on Shift of $
	// one step earlier. Kept for table rendering and as belt-and-suspenders.
	Accept
	Reject
)

// Move is a single ACTION table cell: a tagged variant of Shift(state),
// Reduce(production), or Accept. Reject marks the absence of any of the
// above and is never actually stored in a table row; Action returns it
// when no entry applies.
type Move struct {
	Kind MoveKind

	// State is the successor state key, valid when Kind is Shift.
	State string

	// Prod is the index, into the owning Grammar's Prods(), of the
	// production to reduce by. Valid when Kind is Reduce.
	Prod int

	// Head is the nonterminal a Reduce move's production rewrites to,
	// duplicated here (rather than re-derived from Prod) so conflict
	// messages can name it without threading a Grammar through String.
	Head int
}

func (m Move) String() string {
	switch m.Kind {
	case Accept:
		return "ACTION<accept>"
	case Reject:
		return "ACTION<reject>"
	case Reduce:
		return fmt.Sprintf("ACTION<reduce #%d>", m.Prod)
	case Shift:
		return fmt.Sprintf("ACTION<shift %s>", m.State)
	default:
		return "ACTION<unknown>"
	}
}

func (m Move) Equal(other Move) bool {
	return m.Kind == other.Kind && m.State == other.State && m.Prod == other.Prod && m.Head == other.Head
}

// conflictReason describes why two candidate moves for the same (state,
// terminal) pair collide, for use in a BuildError.NotLR message.
func conflictReason(a, b Move, g *grammar.Grammar, names map[int]string) string {
	describe := func(m Move) string {
		switch m.Kind {
		case Shift:
			return fmt.Sprintf("shift to %s", m.State)
		case Reduce:
			return fmt.Sprintf("reduce %s", g.Prods()[m.Prod].String(names))
		case Accept:
			return "accept"
		default:
			return "reject"
		}
	}

	switch {
	case a.Kind == Reduce && b.Kind == Shift, a.Kind == Shift && b.Kind == Reduce:
		return fmt.Sprintf("shift/reduce conflict (%s or %s)", describe(a), describe(b))
	case a.Kind == Reduce && b.Kind == Reduce:
		return fmt.Sprintf("reduce/reduce conflict (%s or %s)", describe(a), describe(b))
	case a.Kind == Accept || b.Kind == Accept:
		return fmt.Sprintf("accept conflict (%s or %s)", describe(a), describe(b))
	default:
		return fmt.Sprintf("conflict (%s or %s)", describe(a), describe(b))
	}
}
