package storage

import (
	"github.com/go-arcade/edo/pkg/log"
	"github.com/google/wire"
)

// ProviderSet 提供存储层相关的依赖
var ProviderSet = wire.NewSet(ProvideStorage)

// ProvideStorage returns nil when storage.provider is none; uploads then fail with ErrNotConfigured.
func ProvideStorage(conf Storage) (StorageProvider, error) {
	conf.SetDefaults()
	p, err := NewStorage(&conf)
	if err != nil {
		return nil, err
	}
	if p == nil {
		log.Warnw("object storage disabled, image uploads will be rejected")
		return nil, nil
	}
	log.Infow("object storage ready", "provider", conf.Provider, "bucket", conf.Bucket)
	return p, nil
}
