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
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"sync"

	"github.com/go-arcade/phrasetrie/pkg/log"
	"github.com/go-arcade/phrasetrie/pkg/safe"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

// MetricsConfig holds metrics configuration. Enable starts the HTTP
// endpoint, which only makes sense for long running modes such as watch.
// Textfile and PushURL are honoured by Export after one-shot runs.
type MetricsConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Textfile string `mapstructure:"textfile"` // node_exporter textfile collector target
	PushURL  string `mapstructure:"pushURL"`  // Pushgateway address
	Job      string `mapstructure:"job"`
	Pprof    bool   `mapstructure:"pprof"` // also serve /debug/pprof while enabled
}

// SetDefaults fills unset fields.
func (c *MetricsConfig) SetDefaults() {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 9464
	}
	if c.Job == "" {
		c.Job = "phrasetrie"
	}
}

// Server owns the private registry every collector of the process lives in.
type Server struct {
	config   MetricsConfig
	server   *http.Server
	registry *prometheus.Registry
	mu       sync.Mutex
}

// NewServer creates a server with an empty registry.
func NewServer(config MetricsConfig) *Server {
	config.SetDefaults()
	return &Server{
		config:   config,
		registry: prometheus.NewRegistry(),
	}
}

// GetRegistry returns the prometheus registry.
func (s *Server) GetRegistry() *prometheus.Registry {
	return s.registry
}

// Start serves /metrics in the background when enabled. Go runtime and
// process collectors are added only here, so textfile exports stay free of
// series node_exporter already reports.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.config.Enable {
		log.Debug("metrics server is disabled")
		return nil
	}
	if s.server != nil {
		return nil
	}
	if err := s.registry.Register(collectors.NewGoCollector()); err != nil {
		return fmt.Errorf("failed to register go collector: %w", err)
	}
	if err := s.registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return fmt.Errorf("failed to register process collector: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	if s.config.Pprof {
		registerPprof(mux, "/debug/pprof")
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	srv := s.server
	safe.Go("metrics-server", func() {
		log.Infow("metrics server started", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("metrics server failed", "error", err)
		}
	})
	return nil
}

func registerPprof(mux *http.ServeMux, prefix string) {
	mux.HandleFunc(prefix+"/", pprof.Index)
	mux.HandleFunc(prefix+"/cmdline", pprof.Cmdline)
	mux.HandleFunc(prefix+"/profile", pprof.Profile)
	mux.HandleFunc(prefix+"/symbol", pprof.Symbol)
	mux.HandleFunc(prefix+"/trace", pprof.Trace)
	for _, name := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
		mux.Handle(prefix+"/"+name, pprof.Handler(name))
	}
}

// Stop shuts the HTTP endpoint down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server == nil {
		return nil
	}
	err := s.server.Shutdown(ctx)
	s.server = nil
	return err
}

// Export writes the registry to the configured textfile and pushes it to
// the configured Pushgateway. Unset targets are skipped.
func (s *Server) Export(ctx context.Context) error {
	if s.config.Textfile != "" {
		if err := prometheus.WriteToTextfile(s.config.Textfile, s.registry); err != nil {
			return fmt.Errorf("write metrics textfile: %w", err)
		}
		log.Debugw("metrics written", "textfile", s.config.Textfile)
	}
	if s.config.PushURL != "" {
		err := push.New(s.config.PushURL, s.config.Job).
			Gatherer(s.registry).
			PushContext(ctx)
		if err != nil {
			return fmt.Errorf("push metrics: %w", err)
		}
		log.Debugw("metrics pushed", "url", s.config.PushURL, "job", s.config.Job)
	}
	return nil
}
