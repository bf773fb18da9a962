package qb

import "strings"

// validateBrackets is the Bracket Validator (C5). It sums parenthesis depth
// across every WHERE and HAVING fragment: string fragments contribute their
// own '(' / ')' counts; EXISTS/NOT EXISTS fragments contribute only the
// brackets in their ExtraCloseBracket field, since the subquery's own
// parentheses (including the fragment's mandatory wrapper) are self-balanced
// and never counted here. The statement is valid iff the running difference
// returns to exactly zero.
func validateBrackets(where, having []Fragment) error {
	depth := 0
	for _, f := range append(append([]Fragment{}, where...), having...) {
		switch frag := f.(type) {
		case TextFragment:
			depth += strings.Count(string(frag), "(")
			depth -= strings.Count(string(frag), ")")
		case ExistsFragment:
			// The mandatory "(" opened in Prefix and the mandatory ")" that
			// closes it (the leading ")" inside CloseBracket) are the EXISTS
			// fragment's own self-balanced wrapper and never count here —
			// only a caller-supplied extra bracket does (spec §4.4).
			depth += strings.Count(frag.ExtraCloseBracket, "(")
			depth -= strings.Count(frag.ExtraCloseBracket, ")")
		}
	}
	if depth != 0 {
		return newError(InvalidStructure, "unbalanced parentheses across WHERE/HAVING conditions (net depth %d)", depth)
	}
	return nil
}
