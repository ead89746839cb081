package pprof

import (
	"context"
	"time"

	"github.com/google/wire"
)

// ProviderSet is a Wire provider set for pprof
var ProviderSet = wire.NewSet(ProvidePprofServer)

// ProvidePprofServer starts the debug listener and stops it on cleanup.
func ProvidePprofServer(config PprofConfig) (*Server, func(), error) {
	s := NewServer(config)
	if err := s.Start(); err != nil {
		return nil, nil, err
	}
	return s, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Stop(ctx)
	}, nil
}
