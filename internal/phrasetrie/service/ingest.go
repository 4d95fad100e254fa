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

package service

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/go-arcade/phrasetrie/internal/pkg/textparse"
	"github.com/go-arcade/phrasetrie/internal/pkg/trie"
	"github.com/go-arcade/phrasetrie/pkg/id"
	"github.com/go-arcade/phrasetrie/pkg/log"
	"github.com/go-arcade/phrasetrie/pkg/metrics"
	"github.com/go-arcade/phrasetrie/pkg/storage"
	"github.com/go-arcade/phrasetrie/pkg/trace"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentFetches bounds in-flight GetObject calls per build.
const maxConcurrentFetches = 8

// Stats summarizes one build.
type Stats struct {
	RunID     string
	Inputs    int
	Sentences int
	Tokens    int
	Nodes     int
	Depth     int
}

// Ingester turns stored text into a phrase trie and renders it.
type Ingester struct {
	reader     storage.Reader
	tokenizer  *textparse.Tokenizer
	metrics    *metrics.IngestMetrics
	renderOpts []trie.RenderOption
}

func NewIngester(
	reader storage.Reader,
	tokenizer *textparse.Tokenizer,
	m *metrics.IngestMetrics,
	renderOpts []trie.RenderOption,
) *Ingester {
	return &Ingester{
		reader:     reader,
		tokenizer:  tokenizer,
		metrics:    m,
		renderOpts: renderOpts,
	}
}

// Build fetches every named input concurrently and inserts each sentence
// into a fresh trie. Inputs are inserted in the order given regardless of
// fetch completion order, so equal inputs always produce equal tries. The
// first fetch error cancels the remaining fetches and is returned.
func (s *Ingester) Build(ctx context.Context, names []string) (*trie.Trie[string], Stats, error) {
	stats := Stats{RunID: id.GetUlid(), Inputs: len(names)}

	ctx, span := trace.Tracer().Start(ctx, "phrasetrie.build",
		oteltrace.WithAttributes(
			attribute.String("run_id", stats.RunID),
			attribute.Int("inputs", len(names)),
		))
	defer span.End()
	logger := log.WithContext(ctx).With("run", stats.RunID)

	texts, err := s.fetchAll(ctx, names)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.BuildsTotal.WithLabelValues("error").Inc()
		logger.Errorw("build failed", "error", err)
		return nil, stats, err
	}

	t := trie.New[string]()
	for i, text := range texts {
		sentences := s.tokenizer.Tokenize(string(text))
		for _, words := range sentences {
			t.Insert(words)
			stats.Tokens += len(words)
			s.metrics.SentenceTokens.Observe(float64(len(words)))
		}
		stats.Sentences += len(sentences)
		logger.Debugw("input inserted", "name", names[i], "sentences", len(sentences))
	}
	stats.Nodes = t.Len()
	stats.Depth = t.Depth()

	s.metrics.SentencesTotal.Add(float64(stats.Sentences))
	s.metrics.TokensTotal.Add(float64(stats.Tokens))
	s.metrics.TrieNodes.Set(float64(stats.Nodes))
	s.metrics.TrieDepth.Set(float64(stats.Depth))
	s.metrics.BuildsTotal.WithLabelValues("ok").Inc()

	span.SetAttributes(
		attribute.Int("sentences", stats.Sentences),
		attribute.Int("nodes", stats.Nodes),
	)
	logger.Infow("trie built",
		"inputs", stats.Inputs,
		"sentences", stats.Sentences,
		"tokens", stats.Tokens,
		"nodes", stats.Nodes,
		"depth", stats.Depth,
	)
	return t, stats, nil
}

func (s *Ingester) fetchAll(ctx context.Context, names []string) ([][]byte, error) {
	texts := make([][]byte, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, name := range names {
		g.Go(func() error {
			data, err := s.fetch(ctx, name)
			if err != nil {
				return err
			}
			texts[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return texts, nil
}

func (s *Ingester) fetch(ctx context.Context, name string) ([]byte, error) {
	ctx, span := trace.Tracer().Start(ctx, "phrasetrie.fetch",
		oteltrace.WithAttributes(attribute.String("name", name)))
	defer span.End()

	timer := prometheus.NewTimer(s.metrics.FetchSeconds)
	data, err := s.reader.GetObject(ctx, name)
	timer.ObserveDuration()
	if err != nil {
		s.metrics.InputsTotal.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	s.metrics.InputsTotal.WithLabelValues("ok").Inc()
	span.SetAttributes(attribute.Int("bytes", len(data)))
	return data, nil
}

// Render writes t to w with the configured render options.
func (s *Ingester) Render(ctx context.Context, t *trie.Trie[string], w io.Writer) error {
	_, span := trace.Tracer().Start(ctx, "phrasetrie.render")
	defer span.End()

	bw := bufio.NewWriter(w)
	err := t.Render(bw, s.renderOpts...)
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// Run builds the trie from names and renders it to w.
func (s *Ingester) Run(ctx context.Context, names []string, w io.Writer) (Stats, error) {
	t, stats, err := s.Build(ctx, names)
	if err != nil {
		return stats, err
	}
	return stats, s.Render(ctx, t, w)
}
