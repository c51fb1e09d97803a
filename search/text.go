package search

import (
	"strings"

	"github.com/praxisworks/recall/preprocess"
)

// fuzzyTokenThreshold is the minimum token length (in runes) at which a
// single-edit misspelling still counts as a match. Short tokens must
// match exactly; one edit on a three-rune token changes too much.
const fuzzyTokenThreshold = 4

// tokensMatch reports whether a query token matches a candidate token,
// tolerating one edit for long enough tokens.
func tokensMatch(query, candidate string) bool {
	if query == candidate {
		return true
	}
	qr := []rune(query)
	if len(qr) < fuzzyTokenThreshold {
		return false
	}
	return withinOneEdit(qr, []rune(candidate))
}

// withinOneEdit reports whether b can be produced from a with at most
// one insertion, deletion, or substitution.
func withinOneEdit(a, b []rune) bool {
	la, lb := len(a), len(b)
	if la > lb {
		a, b = b, a
		la, lb = lb, la
	}
	if lb-la > 1 {
		return false
	}

	i, j := 0, 0
	edits := 0
	for i < la && j < lb {
		if a[i] == b[j] {
			i++
			j++
			continue
		}
		edits++
		if edits > 1 {
			return false
		}
		if la == lb {
			i++ // substitution
		}
		j++ // insertion into the shorter string
	}
	edits += lb - j
	return edits <= 1
}

// snippetFor extracts a short window of text around the first occurrence
// of any token, for display in result lists.
func snippetFor(text string, tokens []string, width int) string {
	if text == "" {
		return ""
	}
	lower := strings.ToLower(text)
	pos := -1
	for _, tok := range tokens {
		if idx := strings.Index(lower, tok); idx >= 0 && (pos < 0 || idx < pos) {
			pos = idx
		}
	}
	runes := []rune(text)
	if pos < 0 {
		pos = 0
	} else {
		// byte offset to rune offset
		pos = len([]rune(text[:pos]))
	}

	start := pos - width/4
	if start < 0 {
		start = 0
	}
	end := start + width
	if end > len(runes) {
		end = len(runes)
	}
	snippet := strings.TrimSpace(string(runes[start:end]))
	if start > 0 {
		snippet = "…" + snippet
	}
	if end < len(runes) {
		snippet = snippet + "…"
	}
	return snippet
}

func tokenize(text string) []string {
	return preprocess.Tokenize(text)
}
