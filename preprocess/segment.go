// Copyright 2025 Praxis Works
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package preprocess

import (
	"strings"
	"unicode"
)

// Segment splits text into tokens by script runs. Thai has no word
// boundaries, so contiguous Thai runs come back as single tokens and
// the reasoning model is relied on for finer word splitting. Latin
// words and digit runs are split on non-alphanumerics as usual.
func Segment(text string) []string {
	tokens := []string{}
	var run []rune
	var runKind scriptKind

	flush := func() {
		if len(run) > 0 {
			tokens = append(tokens, string(run))
			run = run[:0]
		}
	}

	for _, r := range text {
		kind := kindOf(r)
		if kind == scriptNone {
			flush()
			runKind = scriptNone
			continue
		}
		if kind != runKind {
			flush()
			runKind = kind
		}
		run = append(run, r)
	}
	flush()
	return tokens
}

// Tokenize segments text, lowercases Latin tokens, and drops stopwords,
// single-rune fragments, and repeated terms (first occurrence wins).
func Tokenize(text string) []string {
	tokens := []string{}
	seen := map[string]bool{}
	for _, tok := range Segment(text) {
		tok = strings.ToLower(tok)
		if seen[tok] || isStopword(tok) {
			continue
		}
		if len([]rune(tok)) < 2 && !unicode.IsDigit([]rune(tok)[0]) {
			continue
		}
		seen[tok] = true
		tokens = append(tokens, tok)
	}
	return tokens
}

type scriptKind int

const (
	scriptNone scriptKind = iota
	scriptThai
	scriptLatin
	scriptOther
)

func kindOf(r rune) scriptKind {
	switch {
	case unicode.Is(unicode.Thai, r):
		return scriptThai
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', unicode.IsDigit(r):
		// digits glue to Latin so model names like "A5" stay whole
		return scriptLatin
	case unicode.IsLetter(r):
		return scriptOther
	default:
		return scriptNone
	}
}

// Common filler words stripped before lexical matching. The Thai set
// covers polite particles and question fillers that carry no search
// signal.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true,
	"was": true, "were": true, "of": true, "to": true, "in": true,
	"on": true, "at": true, "for": true, "and": true, "or": true,
	"what": true, "where": true, "when": true, "who": true, "how": true,
	"please": true, "me": true, "my": true, "i": true, "you": true,
	"ครับ": true, "ค่ะ": true, "คะ": true, "นะ": true, "หน่อย": true,
	"ช่วย": true, "ขอ": true, "อะไร": true, "ไหม": true, "มั้ย": true,
	"ที่ไหน": true, "เมื่อไหร่": true, "ยังไง": true, "ได้ไหม": true,
}

func isStopword(tok string) bool {
	return stopwords[tok]
}
