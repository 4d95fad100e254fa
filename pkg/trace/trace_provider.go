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

package trace

import (
	"context"
	"fmt"
	"time"

	"github.com/go-arcade/phrasetrie/pkg/log"
	"github.com/go-arcade/phrasetrie/pkg/version"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	ExporterNone     = "none"
	ExporterOTLPGRPC = "otlp-grpc"
	ExporterOTLPHTTP = "otlp-http"

	instrumentationName = "github.com/go-arcade/phrasetrie"
)

// TraceConfig configures OpenTelemetry tracing.
type TraceConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	ServiceName  string `mapstructure:"serviceName"`
	ExporterType string `mapstructure:"exporterType"` // "otlp-grpc", "otlp-http" or "none"
	// Endpoint is host:port for both exporters, e.g. localhost:4317 or localhost:4318.
	Endpoint string            `mapstructure:"endpoint"`
	Insecure bool              `mapstructure:"insecure"`
	Headers  map[string]string `mapstructure:"headers"`
	Batch    BatchConfig       `mapstructure:"batch"`
}

// BatchConfig configures the batch span processor.
type BatchConfig struct {
	MaxQueueSize       int           `mapstructure:"maxQueueSize"`
	BatchTimeout       time.Duration `mapstructure:"batchTimeout"`
	ExportTimeout      time.Duration `mapstructure:"exportTimeout"`
	MaxExportBatchSize int           `mapstructure:"maxExportBatchSize"`
}

// SetDefaults fills unset fields.
func (c *TraceConfig) SetDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "phrasetrie"
	}
	if c.ExporterType == "" {
		c.ExporterType = ExporterNone
	}
	if c.Batch.MaxQueueSize == 0 {
		c.Batch.MaxQueueSize = 2048
	}
	// bare integers in the config file decode as nanoseconds; read them as seconds
	c.Batch.BatchTimeout = seconds(c.Batch.BatchTimeout, 5*time.Second)
	c.Batch.ExportTimeout = seconds(c.Batch.ExportTimeout, 30*time.Second)
	if c.Batch.MaxExportBatchSize == 0 {
		c.Batch.MaxExportBatchSize = 512
	}
}

func seconds(d, def time.Duration) time.Duration {
	switch {
	case d <= 0:
		return def
	case d < time.Second:
		return d * time.Second
	default:
		return d
	}
}

// Provider owns the installed tracer provider. The zero value is a no-op.
type Provider struct {
	tp *sdktrace.TracerProvider
}

// Init installs the global tracer provider described by cfg and returns
// a handle whose Shutdown flushes pending spans.
func Init(cfg TraceConfig) (*Provider, error) {
	cfg.SetDefaults()

	if !cfg.Enabled || cfg.ExporterType == ExporterNone {
		otel.SetTracerProvider(noop.NewTracerProvider())
		log.Debug("tracing disabled, using noop tracer")
		return &Provider{}, nil
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(version.GetVersion().Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	var client otlptrace.Client
	switch cfg.ExporterType {
	case ExporterOTLPGRPC:
		client = newGRPCClient(cfg)
	case ExporterOTLPHTTP:
		client = newHTTPClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.ExporterType)
	}
	exporter, err := otlptrace.New(context.Background(), client)
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	bsp := sdktrace.NewBatchSpanProcessor(
		exporter,
		sdktrace.WithMaxQueueSize(cfg.Batch.MaxQueueSize),
		sdktrace.WithBatchTimeout(cfg.Batch.BatchTimeout),
		sdktrace.WithExportTimeout(cfg.Batch.ExportTimeout),
		sdktrace.WithMaxExportBatchSize(cfg.Batch.MaxExportBatchSize),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Infow("tracing initialized",
		"exporter", cfg.ExporterType,
		"endpoint", cfg.Endpoint,
		"service", cfg.ServiceName,
	)
	return &Provider{tp: tp}, nil
}

func newGRPCClient(cfg TraceConfig) otlptrace.Client {
	opts := []otlptracegrpc.Option{}
	if cfg.Endpoint != "" {
		opts = append(opts, otlptracegrpc.WithEndpoint(cfg.Endpoint))
	}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	if len(cfg.Headers) > 0 {
		opts = append(opts, otlptracegrpc.WithHeaders(cfg.Headers))
	}
	return otlptracegrpc.NewClient(opts...)
}

func newHTTPClient(cfg TraceConfig) otlptrace.Client {
	opts := []otlptracehttp.Option{}
	if cfg.Endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(cfg.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(cfg.Headers))
	}
	return otlptracehttp.NewClient(opts...)
}

// Shutdown flushes and stops the provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.tp == nil {
		return nil
	}
	return p.tp.Shutdown(ctx)
}

// Tracer returns the named tracer of the global provider.
func Tracer() oteltrace.Tracer {
	return otel.Tracer(instrumentationName)
}
