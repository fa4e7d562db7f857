// Package lrerr defines the error taxonomy of the table builder and parser
// driver: BuildError.NotLR, ParseError.Reject, and
// ParseError.InternalInvariant. Each pairs a technical Error() message with
// an optional human-facing rendering, following the same shape as a
// typical interpreter error type: a short technical description plus a
// longer message meant to be shown to an operator.
package lrerr

import "fmt"

// buildError reports that some state has a shift/reduce or reduce/reduce
// conflict under the chosen item-set flavor; no partial parser is ever
// returned alongside it.
type buildError struct {
	msg   string
	human string
}

func (e *buildError) Error() string { return e.msg }

// Human returns the longer, human-facing rendering of the error.
func (e *buildError) Human() string { return e.human }

// NotLR returns the BuildError.NotLR error raised when state reports a
// conflict on terminal while constructing the action table.
func NotLR(state string, onInput byte, reason string) error {
	return &buildError{
		msg:   fmt.Sprintf("not LR: state %s, input %q: %s", state, onInput, reason),
		human: fmt.Sprintf("the grammar is not usable under this item-set flavor: state %s has a conflict on input %q (%s)", state, onInput, reason),
	}
}

// parseErrorKind distinguishes the two ParseError kinds named in the
// error taxonomy: a rejection from well-formed table lookup, and a
// corrupted-table invariant violation.
type parseErrorKind int

const (
	kindReject parseErrorKind = iota
	kindInternalInvariant
)

// parseError is the concrete type behind both ParseError.Reject and
// ParseError.InternalInvariant.
type parseError struct {
	kind     parseErrorKind
	position int
	expected string
	msg      string
}

func (e *parseError) Error() string {
	switch e.kind {
	case kindReject:
		return fmt.Sprintf("rejected at position %d", e.position)
	default:
		return fmt.Sprintf("internal invariant violated: %s", e.msg)
	}
}

// Human returns the longer, human-facing rendering of the error.
func (e *parseError) Human() string {
	switch e.kind {
	case kindReject:
		if e.expected == "" {
			return fmt.Sprintf("input was rejected: no valid action at position %d", e.position)
		}
		return fmt.Sprintf("input was rejected at position %d: expected %s", e.position, e.expected)
	default:
		return fmt.Sprintf("parser hit a corrupted-table invariant: %s", e.msg)
	}
}

// Position returns the input position at which a ParseError.Reject
// occurred. It is meaningless for ParseError.InternalInvariant.
func (e *parseError) Position() int { return e.position }

// Reject returns the ParseError.Reject error: no action entry exists for
// the current (state, terminal) pair at the given input position.
func Reject(position int) error {
	return &parseError{kind: kindReject, position: position}
}

// RejectExpecting is Reject, additionally carrying a human-readable
// rendering of the terminals that would have been valid at this point,
// for a caller that wants to show an operator a better message than a
// bare position.
func RejectExpecting(position int, expected string) error {
	return &parseError{kind: kindReject, position: position, expected: expected}
}

// InternalInvariant returns the ParseError.InternalInvariant error: a
// stack underflow during reduce, or a go_to on a nonterminal yielding an
// absent state. These indicate a corrupted table and are treated as fatal
// program invariants rather than user errors.
func InternalInvariant(msg string) error {
	return &parseError{kind: kindInternalInvariant, msg: msg}
}

// Human renders the longer, human-facing message for any error returned
// by this package; for any other error it falls back to err.Error().
func Human(err error) string {
	type humanizer interface{ Human() string }
	if h, ok := err.(humanizer); ok {
		return h.Human()
	}
	return err.Error()
}
