// Package gramtext is the external grammar-text reader collaborator
// described by spec §6: it is not part of the core table-construction
// contract, and its exact error signalling is implementation-defined. It
// turns lines of the form "HEAD -> SYM SYM ..." into a production list
// and an initial nonterminal id ready to hand to parse.Build.
package gramtext

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dorsalfin/sturgeon/grammar"
)

// Reader assigns dense nonterminal ids as names are first encountered,
// starting at 1 — id 0 is reserved by the table builder for the
// augmented start S', so the reader must never hand that id to a user
// nonterminal, unlike the original source this format is drawn from, which
// conflated the two.
type Reader struct {
	ids   map[string]int
	names map[int]string
}

// New creates an empty Reader.
func New() *Reader {
	return &Reader{ids: map[string]int{}, names: map[int]string{}}
}

// idFor returns the id for name, assigning the next free id (starting at
// 1) the first time name is seen.
func (r *Reader) idFor(name string) int {
	if id, ok := r.ids[name]; ok {
		return id
	}
	id := len(r.ids) + 1
	r.ids[name] = id
	r.names[id] = name
	return id
}

// Names returns the nonterminal id -> source-name table built up by Read,
// for use when rendering a derivation trace or a table with the
// grammar's own names instead of bare integers.
func (r *Reader) Names() map[int]string {
	return r.names
}

// Read parses every line of input as "HEAD -> SYM SYM ...":
//
//   - tokens are whitespace-separated;
//   - a single-byte token that is not an uppercase letter is a terminal
//     (its one byte is the atom);
//   - any other token is a nonterminal, identified by its textual name;
//   - an empty right-hand side (nothing after "->") encodes epsilon;
//   - blank lines are ignored;
//   - a line not matching this shape aborts the read with an error.
//
// The reserved terminal '$' must not appear in the input. initNonterm is
// the id assigned to the head of the first production read.
func (r *Reader) Read(input io.Reader) (prods []grammar.Production, initNonterm int, err error) {
	scanner := bufio.NewScanner(input)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 || parts[1] != "->" {
			return nil, 0, fmt.Errorf("gramtext: line %d: expected \"HEAD -> SYM SYM ...\", got %q", lineNo, line)
		}
		head := parts[0]
		headID := r.idFor(head)
		if len(prods) == 0 {
			initNonterm = headID
		}

		var body []grammar.Symbol
		for _, tok := range parts[2:] {
			sym, serr := r.symbolFor(tok)
			if serr != nil {
				return nil, 0, fmt.Errorf("gramtext: line %d: %w", lineNo, serr)
			}
			body = append(body, sym)
		}

		prods = append(prods, grammar.Production{Head: headID, Body: body})
	}

	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("gramtext: %w", err)
	}
	if len(prods) == 0 {
		return nil, 0, fmt.Errorf("gramtext: no productions read")
	}

	return prods, initNonterm, nil
}

// symbolFor classifies a single RHS token: a single non-uppercase byte is
// a terminal; anything else is a nonterminal name.
func (r *Reader) symbolFor(tok string) (grammar.Symbol, error) {
	if len(tok) == 1 && !isUpper(tok[0]) {
		if tok[0] == grammar.EndOfInput {
			return grammar.Symbol{}, fmt.Errorf("reserved terminal %q must not appear in a user grammar", grammar.EndOfInput)
		}
		return grammar.Term(tok[0]), nil
	}
	return grammar.NT(r.idFor(tok)), nil
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}
