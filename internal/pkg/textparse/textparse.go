// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package textparse splits free-form text into sentences and word tokens.
package textparse

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// a run of terminators is a single boundary, so "..." and "?!" split once
var sentenceBoundary = regexp.MustCompile(`[.?!]+`)

// Sentences splits text on runs of '.', '?' and '!', trims surrounding
// whitespace from each span and drops empty spans.
func Sentences(text string) []string {
	var out []string
	for _, span := range sentenceBoundary.Split(text, -1) {
		if span = strings.TrimSpace(span); span != "" {
			out = append(out, span)
		}
	}
	return out
}

// Words returns the maximal runs of alphanumeric runes in sentence, left to
// right. Everything between runs is discarded, so "don't" yields "don" and "t".
func Words(sentence string) []string {
	return strings.FieldsFunc(sentence, func(r rune) bool {
		return !isAlphanumeric(r)
	})
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Other_Alphabetic, r)
}

// Tokenizer turns text into per-sentence word sequences.
type Tokenizer struct {
	normalize bool
	foldCase  bool
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithNormalize converts text to Unicode NFC before splitting, so canonically
// equivalent spellings produce identical tokens.
func WithNormalize() Option {
	return func(t *Tokenizer) {
		t.normalize = true
	}
}

// WithFoldCase case-folds every token.
func WithFoldCase() Option {
	return func(t *Tokenizer) {
		t.foldCase = true
	}
}

// NewTokenizer returns a Tokenizer. With no options it is exactly
// Sentences followed by Words.
func NewTokenizer(opts ...Option) *Tokenizer {
	t := &Tokenizer{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize returns the word sequence of every sentence in text that has at
// least one word.
func (t *Tokenizer) Tokenize(text string) [][]string {
	if t.normalize {
		text = norm.NFC.String(text)
	}
	// a Caser carries state and is not safe for concurrent use
	var caser cases.Caser
	if t.foldCase {
		caser = cases.Fold()
	}

	var out [][]string
	for _, sentence := range Sentences(text) {
		tokens := Words(sentence)
		if len(tokens) == 0 {
			continue
		}
		if t.foldCase {
			for i, tok := range tokens {
				tokens[i] = caser.String(tok)
			}
		}
		out = append(out, tokens)
	}
	return out
}
