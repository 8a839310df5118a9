// Package normalize implements deterministic text preprocessing applied
// before embedding.
package normalize

import (
	"regexp"
	"strings"
)

// Flags controls which preprocessing steps are applied.
type Flags struct {
	Lowercase        bool `json:"lowercase"`
	StripPunctuation bool `json:"strip_punctuation"`
}

// NormalizedText carries a preprocessed string together with its source
// and the flags that produced it.
type NormalizedText struct {
	Original string `json:"original"`
	Text     string `json:"text"`
	Flags    Flags  `json:"flags"`
}

var (
	// punctRe matches everything that is not a letter, digit, underscore
	// or whitespace. Unicode letters and digits pass through untouched.
	punctRe = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// Normalize preprocesses text according to flags. The order of operations
// is fixed: lowercase first, then punctuation stripping, so results stay
// reproducible. Pure and idempotent; empty input yields empty output.
func Normalize(text string, flags Flags) NormalizedText {
	out := text
	if flags.Lowercase {
		out = strings.ToLower(out)
	}
	if flags.StripPunctuation {
		out = punctRe.ReplaceAllString(out, " ")
		out = strings.TrimSpace(spaceRe.ReplaceAllString(out, " "))
	}
	return NormalizedText{Original: text, Text: out, Flags: flags}
}
