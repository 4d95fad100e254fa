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
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsConfig_SetDefaults(t *testing.T) {
	c := MetricsConfig{}
	c.SetDefaults()
	assert.Equal(t, "127.0.0.1", c.Host)
	assert.Equal(t, 9464, c.Port)
	assert.Equal(t, "phrasetrie", c.Job)
}

func TestIngestMetrics(t *testing.T) {
	s := NewMetricsServer(MetricsConfig{})
	m := ProvideIngestMetrics(s)

	m.SentencesTotal.Add(3)
	m.InputsTotal.WithLabelValues("ok").Inc()
	m.TrieNodes.Set(12)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.SentencesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InputsTotal.WithLabelValues("ok")))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.TrieNodes))

	n, err := testutil.GatherAndCount(s.GetRegistry(), "phrasetrie_trie_nodes")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestExport_Textfile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "phrasetrie.prom")
	s := NewServer(MetricsConfig{Textfile: out})
	m := NewIngestMetrics(s.GetRegistry())
	m.TokensTotal.Add(7)

	require.NoError(t, s.Export(context.Background()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "phrasetrie_tokens_total 7")
	assert.NotContains(t, string(data), "go_goroutines")
}

func TestExport_Push(t *testing.T) {
	var pushes atomic.Int32
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/metrics/job/phrasetrie")
		pushes.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer gw.Close()

	s := NewServer(MetricsConfig{PushURL: gw.URL})
	NewIngestMetrics(s.GetRegistry()).BuildsTotal.WithLabelValues("ok").Inc()

	require.NoError(t, s.Export(context.Background()))
	assert.Equal(t, int32(1), pushes.Load())
}

func TestExport_Nothing(t *testing.T) {
	assert.NoError(t, NewServer(MetricsConfig{}).Export(context.Background()))
}

func TestStartStop_Disabled(t *testing.T) {
	s := NewServer(MetricsConfig{})
	require.NoError(t, s.Start())
	assert.NoError(t, s.Stop(context.Background()))
}

func TestRegisterPprof(t *testing.T) {
	mux := http.NewServeMux()
	registerPprof(mux, "/debug/pprof")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/goroutine?debug=1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "goroutine")
}
