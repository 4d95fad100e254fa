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

package textparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const lamb = `Mary had a little lamb, Its fleece was white as snow; And everywhere that Mary went The lamb was sure to go.
It followed her to school one day, Which was against the rule; It made the children laugh and play To see a lamb at school.
And so the teacher turned it out, But still it lingered near, And waited patiently about Till Mary did appear.
Why does the lamb love Mary so? The eager children cry; Why, Mary loves the lamb, you know, The teacher did reply.`

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "full stops",
			text: "I like trains. I like red potatoes.",
			want: []string{"I like trains", "I like red potatoes"},
		},
		{
			name: "ellipsis and exclamation",
			text: "I would like to come... But I don't want to!",
			want: []string{"I would like to come", "But I don't want to"},
		},
		{
			name: "question mark with space before it",
			text: "I would like to come... But I don't want to! If only I could fly ?",
			want: []string{"I would like to come", "But I don't want to", "If only I could fly"},
		},
		{
			name: "mixed terminator run",
			text: "Really?! Yes.",
			want: []string{"Really", "Yes"},
		},
		{
			name: "no terminator",
			text: "  trailing words  ",
			want: []string{"trailing words"},
		},
		{
			name: "only punctuation and space",
			text: " ... ?! \n",
			want: nil,
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sentences(tt.text))
		})
	}
}

func TestSentences_Lamb(t *testing.T) {
	assert.Equal(t, []string{
		"Mary had a little lamb, Its fleece was white as snow; And everywhere that Mary went The lamb was sure to go",
		"It followed her to school one day, Which was against the rule; It made the children laugh and play To see a lamb at school",
		"And so the teacher turned it out, But still it lingered near, And waited patiently about Till Mary did appear",
		"Why does the lamb love Mary so",
		"The eager children cry; Why, Mary loves the lamb, you know, The teacher did reply",
	}, Sentences(lamb))
}

func TestWords(t *testing.T) {
	tests := []struct {
		sentence string
		want     []string
	}{
		{"I like trains.", []string{"I", "like", "trains"}},
		{"Why, Mary loves the lamb, you know", []string{"Why", "Mary", "loves", "the", "lamb", "you", "know"}},
		{"But I don't want to", []string{"But", "I", "don", "t", "want", "to"}},
		{"route 66, exit 4b", []string{"route", "66", "exit", "4b"}},
		{"über straße", []string{"über", "straße"}},
		{"--- ;; ,,", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.sentence, func(t *testing.T) {
			got := Words(tt.sentence)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizer_Default(t *testing.T) {
	got := NewTokenizer().Tokenize("I like trains. I like red potatoes. ... !")
	assert.Equal(t, [][]string{
		{"I", "like", "trains"},
		{"I", "like", "red", "potatoes"},
	}, got)
}

func TestTokenizer_SkipsWordlessSentences(t *testing.T) {
	got := NewTokenizer().Tokenize("Hello. -- ; --. World!")
	assert.Equal(t, [][]string{{"Hello"}, {"World"}}, got)
}

func TestTokenizer_Normalize(t *testing.T) {
	precomposed := "caf\u00e9"
	decomposed := "cafe\u0301"

	plain := NewTokenizer().Tokenize(precomposed + ". " + decomposed + ".")
	assert.NotEqual(t, plain[0], plain[1])

	normalized := NewTokenizer(WithNormalize()).Tokenize(precomposed + ". " + decomposed + ".")
	assert.Equal(t, [][]string{{precomposed}, {precomposed}}, normalized)
}

func TestTokenizer_FoldCase(t *testing.T) {
	got := NewTokenizer(WithFoldCase()).Tokenize("The cat. the CAT!")
	assert.Equal(t, [][]string{{"the", "cat"}, {"the", "cat"}}, got)
}
