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

// Package trie implements a frequency-counting prefix tree over token sequences.
//
// Every node records how many inserted sequences passed through it, so the
// tree doubles as a table of prefix frequencies. Siblings have no order of
// their own; Walk and Render visit them in the order given by the trie's
// compare function.
//
// A Trie is not safe for concurrent mutation. Callers that insert from more
// than one goroutine must serialize access themselves.
package trie

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	// ErrSkipChildren may be returned by a WalkFunc to skip the subtree of
	// the node it was called with.
	ErrSkipChildren = errors.New("trie: skip children")
	// ErrStop may be returned by a WalkFunc to end the walk early. Walk
	// itself returns nil in that case.
	ErrStop = errors.New("trie: stop walk")
)

// Node is one position in the tree, reached after consuming a specific
// prefix of tokens.
type Node[T comparable] struct {
	value    T
	hasValue bool
	count    uint64
	children map[T]*Node[T]
}

// Value returns the token stored at the node. ok is false only for the root.
func (n *Node[T]) Value() (value T, ok bool) {
	return n.value, n.hasValue
}

// Count returns the number of inserted sequences whose prefix reached the node.
func (n *Node[T]) Count() uint64 {
	return n.count
}

// Len returns the number of direct children.
func (n *Node[T]) Len() int {
	return len(n.children)
}

// Child returns the direct child keyed by token.
func (n *Node[T]) Child(token T) (*Node[T], bool) {
	child, ok := n.children[token]
	return child, ok
}

// child returns the child keyed by token, creating it on first use.
func (n *Node[T]) child(token T) (child *Node[T], created bool) {
	if child, ok := n.children[token]; ok {
		return child, false
	}
	if n.children == nil {
		n.children = make(map[T]*Node[T])
	}
	child = &Node[T]{value: token, hasValue: true}
	n.children[token] = child
	return child, true
}

// Trie is a prefix tree over sequences of T.
type Trie[T comparable] struct {
	root    *Node[T]
	compare func(a, b T) int
	format  func(T) string

	nodes     int
	sequences uint64
	depth     int
}

// New returns an empty trie whose siblings are ordered by the natural order
// of T and rendered with fmt.Sprint.
func New[T cmp.Ordered]() *Trie[T] {
	return NewFunc[T](cmp.Compare[T], nil)
}

// NewFunc returns an empty trie for any comparable token type. compare must
// define a total order consistent with ==. A nil format renders tokens with
// fmt.Sprint, which honours fmt.Stringer.
func NewFunc[T comparable](compare func(a, b T) int, format func(T) string) *Trie[T] {
	if compare == nil {
		panic("trie: nil compare function")
	}
	if format == nil {
		format = func(v T) string { return fmt.Sprint(v) }
	}
	return &Trie[T]{
		root:    &Node[T]{},
		compare: compare,
		format:  format,
	}
}

// Root returns the root node. Its value is always absent.
func (t *Trie[T]) Root() *Node[T] {
	return t.root
}

// Insert records one occurrence of seq: every node along its prefix chain
// gains one count, and missing nodes are created. An empty seq is a no-op.
func (t *Trie[T]) Insert(seq []T) {
	t.InsertSeq(slices.Values(seq))
}

// InsertSeq is Insert over an iterator.
func (t *Trie[T]) InsertSeq(seq iter.Seq[T]) {
	n := t.root
	depth := 0
	for token := range seq {
		var created bool
		n, created = n.child(token)
		if created {
			t.nodes++
		}
		n.count++
		depth++
	}
	if depth == 0 {
		return
	}
	t.sequences++
	t.depth = max(t.depth, depth)
}

// Len returns the number of non-root nodes, i.e. distinct prefixes.
func (t *Trie[T]) Len() int {
	return t.nodes
}

// Sequences returns the number of non-empty sequences inserted.
func (t *Trie[T]) Sequences() uint64 {
	return t.sequences
}

// Depth returns the length of the longest inserted sequence.
func (t *Trie[T]) Depth() int {
	return t.depth
}

// Lookup returns the node reached by prefix. The empty prefix yields the root.
func (t *Trie[T]) Lookup(prefix []T) (*Node[T], bool) {
	n := t.root
	for _, token := range prefix {
		child, ok := n.children[token]
		if !ok {
			return nil, false
		}
		n = child
	}
	return n, true
}

// Count returns how often prefix occurred as the start of an inserted
// sequence. The empty prefix counts every sequence.
func (t *Trie[T]) Count(prefix []T) uint64 {
	if len(prefix) == 0 {
		return t.sequences
	}
	n, ok := t.Lookup(prefix)
	if !ok {
		return 0
	}
	return n.count
}

// Children returns the direct children of n in the trie's sibling order.
func (t *Trie[T]) Children(n *Node[T]) []*Node[T] {
	out := make([]*Node[T], 0, len(n.children))
	for _, child := range n.children {
		out = append(out, child)
	}
	slices.SortFunc(out, func(a, b *Node[T]) int {
		return t.compare(a.value, b.value)
	})
	return out
}

// Format renders a token the way Render does.
func (t *Trie[T]) Format(token T) string {
	return t.format(token)
}

// WalkFunc is called for every non-root node. path holds the tokens from the
// root to n and is only valid for the duration of the call.
type WalkFunc[T comparable] func(path []T, n *Node[T]) error

// Walk visits every non-root node depth-first, parents before children and
// siblings in the trie's order. Any error other than ErrSkipChildren or
// ErrStop aborts the walk and is returned.
func (t *Trie[T]) Walk(fn WalkFunc[T]) error {
	err := t.walk(t.root, make([]T, 0, t.depth), fn)
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

func (t *Trie[T]) walk(n *Node[T], path []T, fn WalkFunc[T]) error {
	for _, child := range t.Children(n) {
		p := append(path, child.value)
		err := fn(p, child)
		if errors.Is(err, ErrSkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
		if err := t.walk(child, p, fn); err != nil {
			return err
		}
	}
	return nil
}
