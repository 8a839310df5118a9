// Package keywords extracts ranked keywords from text. Extracted
// keywords are joined into a keyword sentence that gets a second
// embedding pass alongside the full text.
package keywords

import (
	"regexp"
	"strings"
)

var wordRe = regexp.MustCompile(`\p{L}[\p{L}\p{N}_'-]*`)

// english stopwords filtered out of keyword candidates.
var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "after": {}, "again": {}, "all": {},
	"also": {}, "am": {}, "an": {}, "and": {}, "any": {}, "are": {}, "as": {},
	"at": {}, "be": {}, "because": {}, "been": {}, "before": {}, "being": {},
	"below": {}, "between": {}, "both": {}, "but": {}, "by": {}, "can": {},
	"could": {}, "did": {}, "do": {}, "does": {}, "doing": {}, "down": {},
	"during": {}, "each": {}, "few": {}, "for": {}, "from": {}, "further": {},
	"had": {}, "has": {}, "have": {}, "having": {}, "he": {}, "her": {},
	"here": {}, "hers": {}, "him": {}, "his": {}, "how": {}, "i": {}, "if": {},
	"in": {}, "into": {}, "is": {}, "it": {}, "its": {}, "just": {}, "me": {},
	"more": {}, "most": {}, "my": {}, "no": {}, "nor": {}, "not": {}, "now": {},
	"of": {}, "off": {}, "on": {}, "once": {}, "only": {}, "or": {}, "other": {},
	"our": {}, "out": {}, "over": {}, "own": {}, "same": {}, "she": {},
	"should": {}, "so": {}, "some": {}, "such": {}, "than": {}, "that": {},
	"the": {}, "their": {}, "them": {}, "then": {}, "there": {}, "these": {},
	"they": {}, "this": {}, "those": {}, "through": {}, "to": {}, "too": {},
	"under": {}, "until": {}, "up": {}, "very": {}, "was": {}, "we": {},
	"were": {}, "what": {}, "when": {}, "where": {}, "which": {}, "while": {},
	"who": {}, "whom": {}, "why": {}, "will": {}, "with": {}, "would": {},
	"you": {}, "your": {}, "yours": {},
}

func isStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}

// candidates generates deduplicated unigram and bigram keyword candidates
// from text, lowercased, with stopwords filtered out. Order of first
// appearance is preserved.
func candidates(text string, ngramMax int) []string {
	words := wordRe.FindAllString(strings.ToLower(text), -1)

	var out []string
	seen := make(map[string]struct{})
	add := func(phrase string) {
		if _, dup := seen[phrase]; dup {
			return
		}
		seen[phrase] = struct{}{}
		out = append(out, phrase)
	}

	for i, w := range words {
		if !isStopword(w) && len([]rune(w)) > 1 {
			add(w)
		}
		if ngramMax >= 2 && i+1 < len(words) {
			next := words[i+1]
			if !isStopword(w) && !isStopword(next) {
				add(w + " " + next)
			}
		}
	}
	return out
}

// Sentence joins keywords into the space-separated keyword sentence that
// is embedded in place of the full text.
func Sentence(keywords []string) string {
	return strings.Join(keywords, " ")
}
