package config

import (
	"github.com/go-arcade/phrasetrie/internal/pkg/textparse"
	"github.com/go-arcade/phrasetrie/internal/pkg/trie"
	"github.com/go-arcade/phrasetrie/pkg/log"
	"github.com/go-arcade/phrasetrie/pkg/metrics"
	"github.com/go-arcade/phrasetrie/pkg/storage"
	"github.com/go-arcade/phrasetrie/pkg/trace"
	"github.com/google/wire"
)

// ProviderSet is a Wire provider set for configuration
var ProviderSet = wire.NewSet(
	ProvideLogConfig,
	ProvideStorageConfig,
	ProvideMetricsConfig,
	ProvideTraceConfig,
	ProvideTokenizer,
	ProvideRenderOptions,
)

// ProvideLogConfig provides the log configuration
func ProvideLogConfig(c AppConfig) *log.Conf {
	return &c.Log
}

// ProvideStorageConfig provides the storage configuration
func ProvideStorageConfig(c AppConfig) *storage.Storage {
	return &c.Storage
}

// ProvideMetricsConfig provides the metrics configuration
func ProvideMetricsConfig(c AppConfig) metrics.MetricsConfig {
	return c.Metrics
}

// ProvideTraceConfig provides the trace configuration
func ProvideTraceConfig(c AppConfig) trace.TraceConfig {
	return c.Trace
}

// ProvideTokenizer builds the tokenizer from the tokenizer section
func ProvideTokenizer(c AppConfig) *textparse.Tokenizer {
	var opts []textparse.Option
	if c.Tokenizer.Normalize {
		opts = append(opts, textparse.WithNormalize())
	}
	if c.Tokenizer.FoldCase {
		opts = append(opts, textparse.WithFoldCase())
	}
	return textparse.NewTokenizer(opts...)
}

// ProvideRenderOptions translates the render section into trie options
func ProvideRenderOptions(c AppConfig) []trie.RenderOption {
	var opts []trie.RenderOption
	if c.Render.Counts {
		opts = append(opts, trie.WithCounts())
	}
	if c.Render.MaxDepth > 0 {
		opts = append(opts, trie.WithMaxDepth(c.Render.MaxDepth))
	}
	if c.Render.MinCount > 0 {
		opts = append(opts, trie.WithMinCount(c.Render.MinCount))
	}
	return opts
}
