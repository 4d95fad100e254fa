package trace

import (
	"context"
	"time"

	"github.com/google/wire"
)

// ProviderSet is a Wire provider set for tracing
var ProviderSet = wire.NewSet(ProvideTracer)

// ProvideTracer installs the tracer provider and returns a cleanup that flushes it
func ProvideTracer(cfg TraceConfig) (*Provider, func(), error) {
	p, err := Init(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = p.Shutdown(ctx)
	}
	return p, cleanup, nil
}
