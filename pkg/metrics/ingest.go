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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "phrasetrie"

// IngestMetrics tracks trie builds.
type IngestMetrics struct {
	BuildsTotal    *prometheus.CounterVec
	InputsTotal    *prometheus.CounterVec
	SentencesTotal prometheus.Counter
	TokensTotal    prometheus.Counter
	TrieNodes      prometheus.Gauge
	TrieDepth      prometheus.Gauge
	SentenceTokens prometheus.Histogram
	FetchSeconds   prometheus.Histogram
}

// NewIngestMetrics creates the ingest collectors and registers them with reg.
func NewIngestMetrics(reg prometheus.Registerer) *IngestMetrics {
	f := promauto.With(reg)
	return &IngestMetrics{
		BuildsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Trie builds by result.",
		}, []string{"result"}),
		InputsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inputs_total",
			Help:      "Inputs fetched by result.",
		}, []string{"result"}),
		SentencesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sentences_total",
			Help:      "Sentences inserted into the trie.",
		}),
		TokensTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_total",
			Help:      "Word tokens inserted into the trie.",
		}),
		TrieNodes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "trie_nodes",
			Help:      "Distinct prefixes in the last built trie.",
		}),
		TrieDepth: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "trie_depth",
			Help:      "Longest sentence, in tokens, of the last built trie.",
		}),
		SentenceTokens: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sentence_tokens",
			Help:      "Tokens per inserted sentence.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		FetchSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_seconds",
			Help:      "Time spent fetching one input.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
}
