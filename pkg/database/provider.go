package database

import (
	"context"
	"time"

	"github.com/go-arcade/edo/pkg/log"
	"github.com/go-arcade/edo/pkg/retry"
	"github.com/google/wire"
	"gorm.io/gorm"
)

// ProviderSet provides database-related dependencies
var ProviderSet = wire.NewSet(ProvideIDatabase)

// ProvideIDatabase opens the store and returns a cleanup that closes the pool.
// The logger argument orders initialization so gorm logs through zap.
func ProvideIDatabase(conf Database, _ *log.Logger) (IDatabase, func(), error) {
	conf.SetDefaults()
	if err := conf.Validate(); err != nil {
		return nil, nil, err
	}

	var db *gorm.DB
	err := retry.Do(context.Background(), func(context.Context) error {
		var err error
		db, err = NewDatabase(conf)
		return err
	},
		retry.WithMaxAttempts(conf.ConnectRetry),
		retry.WithBackoff(retry.Exponential(500*time.Millisecond, 10*time.Second)),
		retry.OnRetry(func(attempt int, err error) {
			log.Warnw("database not ready, retrying", "type", conf.Type, "attempt", attempt, "error", err)
		}),
	)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := Close(db); err != nil {
			log.Warnw("close database failed", "error", err)
		}
	}
	return NewGormDB(db), cleanup, nil
}
