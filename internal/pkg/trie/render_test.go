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

package trie

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, tr *Trie[string], opts ...RenderOption) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, tr.Render(&buf, opts...))
	return buf.String()
}

func TestRender_Trains(t *testing.T) {
	tr := New[string]()
	tr.Insert(words("I like trains"))
	tr.Insert(words("I like red potatoes"))

	want := strings.Join([]string{
		"└─ I",
		"    └─ like",
		"        ├─ red",
		"        │   └─ potatoes",
		"        └─ trains",
		"",
	}, "\n")
	assert.Equal(t, want, render(t, tr))
}

func TestRender_Counts(t *testing.T) {
	tr := New[string]()
	tr.Insert(words("I like trains"))
	tr.Insert(words("I like red potatoes"))
	tr.Insert(words("you"))

	want := strings.Join([]string{
		"├─ I (count: 2)",
		"│   └─ like (count: 2)",
		"│       ├─ red (count: 1)",
		"│       │   └─ potatoes (count: 1)",
		"│       └─ trains (count: 1)",
		"└─ you (count: 1)",
		"",
	}, "\n")
	assert.Equal(t, want, render(t, tr, WithCounts()))
	assert.Equal(t, want, tr.String())
}

func TestRender_Empty(t *testing.T) {
	tr := New[string]()
	tr.Insert(nil)
	assert.Empty(t, render(t, tr))
}

func TestRender_OmitsRoot(t *testing.T) {
	tr := New[string]()
	tr.Insert([]string{"x"})
	assert.Equal(t, "└─ x\n", render(t, tr))
}

func TestRender_Idempotent(t *testing.T) {
	tr := New[string]()
	tr.Insert(words("The quick brown fox jumps over the lazy dog"))
	tr.Insert(words("The quick brown fox jumps over the lazy cat"))
	tr.Insert(words("I like green apples"))

	first := render(t, tr, WithCounts())
	second := render(t, tr, WithCounts())
	assert.Equal(t, first, second)
	assert.Equal(t, 2, tr.Root().Len(), "rendering must not mutate")
}

func TestRender_DeterministicAcrossInsertOrder(t *testing.T) {
	sentences := [][]string{
		words("I like trains"),
		words("I like red potatoes"),
		words("I like red wine"),
		words("I like green apples"),
		words("The quick brown fox jumps over the lazy dog"),
		words("The quick brown fox jumps over the lazy cat"),
		words("I like trains"),
	}

	build := func(order []int) string {
		tr := New[string]()
		for _, i := range order {
			tr.Insert(sentences[i])
		}
		return render(t, tr, WithCounts())
	}

	order := []int{0, 1, 2, 3, 4, 5, 6}
	want := build(order)
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		rnd.Shuffle(len(order), func(a, b int) { order[a], order[b] = order[b], order[a] })
		assert.Equal(t, want, build(order), "order %v", order)
	}
}

func TestRender_IntegerTokens(t *testing.T) {
	tr := New[int]()
	tr.Insert([]int{1, 2, 3, 4})
	tr.Insert([]int{1, 2, 3, 5})
	tr.Insert([]int{1, 2, 4, 5})
	tr.Insert([]int{10})

	var buf bytes.Buffer
	require.NoError(t, tr.Render(&buf))
	want := strings.Join([]string{
		"├─ 1",
		"│   └─ 2",
		"│       ├─ 3",
		"│       │   ├─ 4",
		"│       │   └─ 5",
		"│       └─ 4",
		"│           └─ 5",
		"└─ 10",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestRender_CustomFormat(t *testing.T) {
	tr := NewFunc[int](func(a, b int) int { return b - a }, func(v int) string {
		return strings.Repeat("*", v)
	})
	tr.Insert([]int{1})
	tr.Insert([]int{3})

	var buf bytes.Buffer
	require.NoError(t, tr.Render(&buf))
	assert.Equal(t, "├─ ***\n└─ *\n", buf.String())
}

func TestRender_MaxDepth(t *testing.T) {
	tr := New[string]()
	tr.Insert(words("I like trains"))
	tr.Insert(words("I like red potatoes"))

	want := "└─ I\n    └─ like\n"
	assert.Equal(t, want, render(t, tr, WithMaxDepth(2)))
	assert.Equal(t, render(t, tr), render(t, tr, WithMaxDepth(0)))
}

func TestRender_MinCount(t *testing.T) {
	tr := New[string]()
	tr.Insert(words("a b"))
	tr.Insert(words("a b"))
	tr.Insert(words("a c"))
	tr.Insert(words("z"))

	want := strings.Join([]string{
		"└─ a (count: 3)",
		"    └─ b (count: 2)",
		"",
	}, "\n")
	assert.Equal(t, want, render(t, tr, WithCounts(), WithMinCount(2)))
}

type failingWriter struct {
	lines int
	limit int
}

var errSinkFull = errors.New("sink full")

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.lines >= w.limit {
		return 0, errSinkFull
	}
	w.lines++
	return len(p), nil
}

func TestRender_WriteErrorAborts(t *testing.T) {
	tr := New[string]()
	tr.Insert(words("I like trains"))
	tr.Insert(words("I like red potatoes"))

	w := &failingWriter{limit: 2}
	err := tr.Render(w)
	require.ErrorIs(t, err, errSinkFull)
	assert.Equal(t, 2, w.lines, "no write may be attempted past the failure")
}
