package xcontext

import (
	"context"

	"github.com/termwatch/backend/config"
	"github.com/termwatch/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	dbKey      struct{}
	txKey      struct{}
	loggerKey  struct{}
	configsKey struct{}
)

// dbTransaction tracks a transaction opened by WithDBTransaction so a
// deferred rollback after a commit becomes a no-op.
type dbTransaction struct {
	tx   *gorm.DB
	done bool
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the database handle. If a transaction was opened on this
// context, all repository calls go through it instead.
func DB(ctx context.Context) *gorm.DB {
	if t, ok := ctx.Value(txKey{}).(*dbTransaction); ok && !t.done {
		return t.tx
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		panic("no database in context")
	}

	return db
}

// WithDBTransaction begins a transaction and returns a context whose DB()
// resolves to it. Pair with a deferred WithRollbackDBTransaction and a
// WithCommitDBTransaction on the success path.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, &dbTransaction{tx: DB(ctx).Begin()})
}

func WithCommitDBTransaction(ctx context.Context) {
	if t, ok := ctx.Value(txKey{}).(*dbTransaction); ok && !t.done {
		t.tx.Commit()
		t.done = true
	}
}

func WithRollbackDBTransaction(ctx context.Context) {
	if t, ok := ctx.Value(txKey{}).(*dbTransaction); ok && !t.done {
		t.tx.Rollback()
		t.done = true
	}
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	if l, ok := ctx.Value(loggerKey{}).(logger.Logger); ok {
		return l
	}

	return logger.NewLogger(logger.INFO)
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		panic("no configs in context")
	}

	return cfg
}
