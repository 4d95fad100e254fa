package metrics

import (
	"github.com/google/wire"
)

// ProviderSet is a Wire provider set for metrics
var ProviderSet = wire.NewSet(
	NewMetricsServer,
	ProvideIngestMetrics,
)

// NewMetricsServer creates a new metrics server from config
func NewMetricsServer(config MetricsConfig) *Server {
	return NewServer(config)
}

// ProvideIngestMetrics registers the ingest collectors with the server's registry
func ProvideIngestMetrics(server *Server) *IngestMetrics {
	return NewIngestMetrics(server.GetRegistry())
}
