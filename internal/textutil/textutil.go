// Package textutil holds small text-formatting helpers used when
// rendering human-facing parse error messages (the set of terminals
// expected at a rejection point).
package textutil

import "strings"

// MakeTextList gives a nice list of things based on their display name.
func MakeTextList(items []string) string {
	if len(items) < 1 {
		return ""
	}

	output := ""

	if len(items) == 1 {
		output += items[0]
	} else if len(items) == 2 {
		output += items[0] + " and " + items[1]
	} else {
		// if its more than two, use an oxford comma
		items[len(items)-1] = "and " + items[len(items)-1]
		output += strings.Join(items, ", ")
	}

	return output
}

// ArticleFor returns "a" or "an" for the given word, based on whether it
// starts with a vowel sound. It is a simple spelling-based heuristic (not
// a pronunciation one) sufficient for the short terminal/nonterminal names
// that appear in rejection messages.
func ArticleFor(word string) string {
	if word == "" {
		return "a"
	}
	switch word[0] {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return "an"
	default:
		return "a"
	}
}
