// Package naming resolves module identifiers to canonical model family
// names, which drive documentation file lookup.
package naming

import "strings"

// Family returns the canonical family name for a module identifier composed
// of underscore-separated tokens. The rules are ordered and first-match-wins:
//
//  1. a trailing "xl" token only makes sense joined with the token before it
//     (the transfo_xl family), so the last two tokens are joined;
//  2. a trailing "xlm roberta" token pair is the xlm_roberta family, joined
//     the same way;
//  3. otherwise the family is the last token alone.
//
// There is no fuzzy matching and no normalization beyond these two
// documented exceptions; anything else is handled by explicit doc-file
// overrides in the audit configuration.
func Family(module string) string {
	tokens := strings.Split(module, "_")
	last := len(tokens) - 1
	if tokens[last] == "xl" && last >= 1 {
		return strings.Join(tokens[last-1:], "_")
	}
	if tokens[last] == "roberta" && last >= 1 && tokens[last-1] == "xlm" {
		return strings.Join(tokens[last-1:], "_")
	}
	return tokens[last]
}
