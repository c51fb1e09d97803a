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


package vectorize

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultChunkSize is the target chunk length in runes.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is how many trailing runes of a chunk are
	// repeated at the head of the next, so sentences straddling a
	// boundary stay searchable.
	DefaultChunkOverlap = 100
)

// Chunker splits document text into bounded, slightly overlapping
// pieces. Paragraph boundaries are preferred; oversized paragraphs are
// split on sentence boundaries, then hard-wrapped as a last resort.
type Chunker struct {
	ChunkSize int
	Overlap   int
}

// NewChunker creates a chunker with the default size and overlap.
func NewChunker() *Chunker {
	return &Chunker{
		ChunkSize: DefaultChunkSize,
		Overlap:   DefaultChunkOverlap,
	}
}

// Split breaks text into chunks. Returns nil for blank input.
func (c *Chunker) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= c.ChunkSize {
		return []string{text}
	}

	chunks := []string{}
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			tail := overlapTail(current.String(), c.Overlap)
			current.Reset()
			current.WriteString(tail)
			currentLen = utf8.RuneCountInString(tail)
		}
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		for _, piece := range c.splitOversized(para) {
			pieceLen := utf8.RuneCountInString(piece)
			if currentLen > 0 && currentLen+pieceLen+1 > c.ChunkSize {
				flush()
			}
			if currentLen > 0 {
				current.WriteString("\n")
				currentLen++
			}
			current.WriteString(piece)
			currentLen += pieceLen
		}
	}
	if currentLen > 0 {
		chunk := strings.TrimSpace(current.String())
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

// splitOversized breaks a paragraph longer than the chunk size on
// sentence boundaries, hard-wrapping any sentence that is itself too
// long. Thai text without sentence punctuation falls through to the
// hard wrap.
func (c *Chunker) splitOversized(para string) []string {
	if utf8.RuneCountInString(para) <= c.ChunkSize {
		return []string{para}
	}

	pieces := []string{}
	var current strings.Builder
	currentLen := 0
	for _, sentence := range splitSentences(para) {
		sentLen := utf8.RuneCountInString(sentence)
		if sentLen > c.ChunkSize {
			if currentLen > 0 {
				pieces = append(pieces, current.String())
				current.Reset()
				currentLen = 0
			}
			pieces = append(pieces, hardWrap(sentence, c.ChunkSize)...)
			continue
		}
		if currentLen+sentLen > c.ChunkSize && currentLen > 0 {
			pieces = append(pieces, current.String())
			current.Reset()
			currentLen = 0
		}
		current.WriteString(sentence)
		currentLen += sentLen
	}
	if currentLen > 0 {
		pieces = append(pieces, current.String())
	}
	return pieces
}

func splitSentences(text string) []string {
	sentences := []string{}
	start := 0
	runes := []rune(text)
	for i, r := range runes {
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			if i+1 > start {
				sentences = append(sentences, strings.TrimSpace(string(runes[start:i+1])))
			}
			start = i + 1
		}
	}
	if start < len(runes) {
		sentences = append(sentences, strings.TrimSpace(string(runes[start:])))
	}
	out := sentences[:0]
	for _, s := range sentences {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func hardWrap(text string, size int) []string {
	runes := []rune(text)
	pieces := []string{}
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		pieces = append(pieces, string(runes[start:end]))
	}
	return pieces
}

func overlapTail(text string, overlap int) string {
	if overlap <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= overlap {
		return text
	}
	tail := runes[len(runes)-overlap:]
	// start the overlap at a whitespace boundary when one exists
	for i, r := range tail {
		if r == ' ' || r == '\n' {
			return strings.TrimSpace(string(tail[i:]))
		}
	}
	return string(tail)
}
