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
	"fmt"
	"io"
	"strings"
)

// branch glyphs, matching the usual tree(1) drawing
const (
	teeGlyph    = "├─ "
	cornerGlyph = "└─ "
	pipeIndent  = "│   "
	blankIndent = "    "
)

type renderConfig struct {
	counts   bool
	maxDepth int
	minCount uint64
}

// RenderOption tunes Render.
type RenderOption func(*renderConfig)

// WithCounts appends " (count: N)" to every rendered node.
func WithCounts() RenderOption {
	return func(c *renderConfig) {
		c.counts = true
	}
}

// WithMaxDepth stops descending below depth. Children of the root are at
// depth 1. A depth of zero or less means unlimited.
func WithMaxDepth(depth int) RenderOption {
	return func(c *renderConfig) {
		c.maxDepth = depth
	}
}

// WithMinCount hides nodes, and their subtrees, seen fewer than n times.
func WithMinCount(n uint64) RenderOption {
	return func(c *renderConfig) {
		c.minCount = n
	}
}

// Render writes the tree to w, one line per non-root node, in pre-order.
// The root itself is never drawn, so an empty trie writes nothing. The first
// failed write stops the traversal and its error is returned.
func (t *Trie[T]) Render(w io.Writer, opts ...RenderOption) error {
	var cfg renderConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return t.render(w, t.root, "", 1, &cfg)
}

func (t *Trie[T]) render(w io.Writer, n *Node[T], prefix string, depth int, cfg *renderConfig) error {
	if cfg.maxDepth > 0 && depth > cfg.maxDepth {
		return nil
	}
	children := t.visible(n, cfg)
	for i, child := range children {
		glyph, indent := teeGlyph, pipeIndent
		if i == len(children)-1 {
			glyph, indent = cornerGlyph, blankIndent
		}
		if err := t.writeLine(w, prefix+glyph, child, cfg); err != nil {
			return err
		}
		if err := t.render(w, child, prefix+indent, depth+1, cfg); err != nil {
			return err
		}
	}
	return nil
}

// visible returns the sorted children of n that pass the count filter, so
// the last-child glyph lands on the last line actually drawn.
func (t *Trie[T]) visible(n *Node[T], cfg *renderConfig) []*Node[T] {
	children := t.Children(n)
	if cfg.minCount == 0 {
		return children
	}
	kept := children[:0]
	for _, child := range children {
		if child.count >= cfg.minCount {
			kept = append(kept, child)
		}
	}
	return kept
}

func (t *Trie[T]) writeLine(w io.Writer, prefix string, n *Node[T], cfg *renderConfig) error {
	var line strings.Builder
	line.WriteString(prefix)
	line.WriteString(t.format(n.value))
	if cfg.counts {
		fmt.Fprintf(&line, " (count: %d)", n.count)
	}
	line.WriteByte('\n')
	_, err := io.WriteString(w, line.String())
	return err
}

// String renders the tree with counts.
func (t *Trie[T]) String() string {
	var sb strings.Builder
	_ = t.Render(&sb, WithCounts())
	return sb.String()
}
