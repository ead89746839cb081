package metrics

import (
	"context"
	"time"

	"github.com/go-arcade/edo/pkg/event"
	"github.com/go-arcade/edo/pkg/log"
	"github.com/google/wire"
)

// ProviderSet is a Wire provider set for metrics
var ProviderSet = wire.NewSet(
	ProvideHTTPMetrics,
	ProvideMetricsServer,
)

func ProvideHTTPMetrics() *HTTPMetrics {
	return NewHTTPMetrics()
}

// ProvideMetricsServer registers the http and domain collectors and subscribes
// the domain recorder to bus.
func ProvideMetricsServer(config MetricsConfig, httpMetrics *HTTPMetrics, bus *event.EventBus) (*Server, func(), error) {
	server := NewServer(config)
	if err := server.RegisterCollector(httpMetrics); err != nil {
		return nil, nil, err
	}
	domain := NewDomainMetrics()
	if err := server.RegisterCollector(domain); err != nil {
		return nil, nil, err
	}
	domain.Subscribe(bus)

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Stop(ctx); err != nil {
			log.Warnw("stop metrics server failed", "error", err)
		}
	}
	return server, cleanup, nil
}
