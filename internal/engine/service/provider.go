package service

import (
	"github.com/go-arcade/edo/internal/engine/repo"
	"github.com/go-arcade/edo/internal/pkg/notify"
	"github.com/go-arcade/edo/internal/pkg/storage"
	"github.com/go-arcade/edo/pkg/cache"
	"github.com/go-arcade/edo/pkg/database"
	"github.com/go-arcade/edo/pkg/event"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/google/wire"
)

// ProviderSet 提供服务层相关的依赖
var ProviderSet = wire.NewSet(ProvideServices)

// ProvideServices 提供统一的 Services 实例
func ProvideServices(
	db database.IDatabase,
	c cache.ICache,
	repos *repo.Repositories,
	bus *event.EventBus,
	sender notify.Sender,
	store storage.StorageProvider,
	auth http.Auth,
	invOpts InvitationOptions,
) *Services {
	return NewServices(db, c, repos, bus, sender, store, auth, invOpts)
}
