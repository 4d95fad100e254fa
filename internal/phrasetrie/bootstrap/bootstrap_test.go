package bootstrap

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-arcade/phrasetrie/internal/phrasetrie/config"
	"github.com/go-arcade/phrasetrie/internal/phrasetrie/service"
	"github.com/go-arcade/phrasetrie/internal/pkg/textparse"
	"github.com/go-arcade/phrasetrie/internal/pkg/trie"
	"github.com/go-arcade/phrasetrie/pkg/metrics"
	"github.com/go-arcade/phrasetrie/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T, conf config.AppConfig) (*App, func()) {
	t.Helper()
	reader, err := storage.ProvideReader(&conf.Storage)
	require.NoError(t, err)
	server := metrics.NewMetricsServer(conf.Metrics)
	ingester := service.NewIngester(reader, textparse.NewTokenizer(),
		metrics.ProvideIngestMetrics(server), []trie.RenderOption{trie.WithCounts()})
	app, cleanup, err := NewApp(ingester, server, nil, nil, conf)
	require.NoError(t, err)
	return app, cleanup
}

func TestBootstrap_NoInput(t *testing.T) {
	called := false
	_, _, err := Bootstrap(config.AppConfig{}, func(config.AppConfig) (*App, func(), error) {
		called = true
		return nil, nil, nil
	})
	assert.ErrorIs(t, err, ErrNoInput)
	assert.False(t, called)
}

func TestApp_Render(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "in.txt"), []byte("a b. a c."), 0o644))
	textfile := filepath.Join(dir, "phrasetrie.prom")

	conf, err := config.Load("", nil)
	require.NoError(t, err)
	conf.Input.Files = []string{"in.txt"}
	conf.Storage.BasePath = dir
	conf.Metrics.Textfile = textfile

	app, cleanup := newApp(t, conf)
	defer cleanup()

	var out bytes.Buffer
	require.NoError(t, app.Render(context.Background(), &out))
	assert.Equal(t, "└─ a (count: 2)\n    ├─ b (count: 1)\n    └─ c (count: 1)\n", out.String())

	data, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "phrasetrie_sentences_total 2")
}

func TestApp_RenderMissingInput(t *testing.T) {
	conf, err := config.Load("", nil)
	require.NoError(t, err)
	conf.Input.Files = []string{filepath.Join(t.TempDir(), "nope.txt")}

	app, cleanup := newApp(t, conf)
	defer cleanup()

	var out bytes.Buffer
	err = app.Render(context.Background(), &out)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Empty(t, out.String())
}

func TestApp_WatchRequiresLocal(t *testing.T) {
	conf, err := config.Load("", nil)
	require.NoError(t, err)
	conf.Input.Files = []string{"in.txt"}
	conf.Storage.Provider = storage.StorageHTTP
	conf.Storage.Endpoint = "http://127.0.0.1:1"

	app, cleanup := newApp(t, conf)
	defer cleanup()

	err = app.Watch(context.Background(), &bytes.Buffer{})
	assert.ErrorContains(t, err, "storage provider")
}
