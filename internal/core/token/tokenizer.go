// Package token turns raw message text into normalized word tokens:
// whitespace/punctuation splitting with a closed contraction whitelist,
// no further linguistic processing.
package token

import (
	"regexp"
	"strings"
)

var (
	// urlRE matches any non-whitespace run starting with "http".
	urlRE = regexp.MustCompile(`http[^\s]*`)

	// separatorRE matches hyphen runs, slash runs, and 2+-dot ellipses,
	// all of which act as word separators rather than word characters.
	separatorRE = regexp.MustCompile(`-+|/+|\.{2,}`)

	// nonWordRE matches everything outside [0-9A-Za-z_].
	nonWordRE = regexp.MustCompile(`\W+`)
)

// contractions is the closed set of contracted forms spared from
// punctuation stripping.
var contractions = map[string]bool{
	"can't": true, "could've": true, "couldn't": true, "didn't": true,
	"doesn't": true, "don't": true, "hadn't": true, "hasn't": true,
	"haven't": true, "he'd": true, "he'll": true, "here's": true,
	"he's": true, "i'd": true, "i'll": true, "i'm": true, "i've": true,
	"isn't": true, "it'd": true, "it'll": true, "it's": true,
	"let's": true, "she'd": true, "she'll": true, "she's": true,
	"that'd": true, "that'll": true, "that's": true, "there's": true,
	"there'll": true, "they're": true, "this'd": true, "this'll": true,
	"wasn't": true, "we'd": true, "we're": true, "we've": true,
	"what'd": true, "what'll": true, "what's": true, "won't": true,
	"would've": true, "wouldn't": true, "you'd": true, "you'll": true,
	"you're": true, "you've": true,
}

// IsContraction reports whether w is a member of the contraction whitelist.
func IsContraction(w string) bool {
	return contractions[w]
}

// Tokenize splits message text into normalized word tokens. URLs are
// removed, hyphens/slashes/ellipses become separators, and each candidate
// word is normalized. Empty results are dropped. The function is pure and
// idempotent: tokenizing an already-tokenized sequence is a no-op.
func Tokenize(text string) []string {
	text = urlRE.ReplaceAllString(text, "")
	text = separatorRE.ReplaceAllString(text, " ")

	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if w := NormalizeWord(field); w != "" {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// NormalizeWord trims a candidate word and strips all non-word characters,
// unless the trimmed word is a whitelisted contraction, which is kept
// verbatim. A purely punctuational word normalizes to "".
func NormalizeWord(word string) string {
	word = strings.TrimSpace(word)
	if contractions[word] {
		return word
	}
	return nonWordRE.ReplaceAllString(word, "")
}
