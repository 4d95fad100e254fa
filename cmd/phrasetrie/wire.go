//go:build wireinject
// +build wireinject

package main

import (
	"github.com/go-arcade/phrasetrie/internal/phrasetrie/bootstrap"
	"github.com/go-arcade/phrasetrie/internal/phrasetrie/config"
	"github.com/go-arcade/phrasetrie/internal/phrasetrie/service"
	"github.com/go-arcade/phrasetrie/pkg/log"
	"github.com/go-arcade/phrasetrie/pkg/metrics"
	"github.com/go-arcade/phrasetrie/pkg/storage"
	"github.com/go-arcade/phrasetrie/pkg/trace"
	"github.com/google/wire"
)

func initApp(appConf config.AppConfig) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		// config sections
		config.ProviderSet,
		// logging (depends on config)
		log.ProviderSet,
		// input readers (depends on config, log)
		storage.ProviderSet,
		// metrics registry and ingest collectors
		metrics.ProviderSet,
		// tracing
		trace.ProviderSet,
		service.ProviderSet,
		bootstrap.NewApp,
	))
}
