package main

import (
	"context"
	"fmt"

	"github.com/xavierca1/ligue-leads/internal/config"
	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/database"
	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/mongostore"
	"github.com/xavierca1/ligue-leads/internal/infra/worker"
	"go.uber.org/zap"
)

type leadStore interface {
	entity.LeadRepositoryInterface
	worker.StaleCounter
}

// storage is whichever backend DATABASE_URL points at.
type storage struct {
	accounts entity.AccountRepositoryInterface
	leads    leadStore
	replies  entity.InboundReplyRepositoryInterface
	pinger   handlers.Pinger
	close    func(ctx context.Context) error
}

func openStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*storage, error) {
	kind, err := cfg.Store()
	if err != nil {
		return nil, err
	}

	switch kind {
	case config.StoreMongo:
		store, err := mongostore.Connect(ctx, cfg.DatabaseURL, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureIndexes(ctx); err != nil {
			store.Close(ctx)
			return nil, err
		}
		logger.Info("using mongodb store", zap.String("database", cfg.MongoDatabase))
		return &storage{
			accounts: store.Accounts(),
			leads:    store.Leads(),
			replies:  store.InboundReplies(),
			pinger:   store,
			close:    store.Close,
		}, nil

	default:
		db, err := database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		logger.Info("using postgres store")
		return &storage{
			accounts: database.NewAccountRepository(db),
			leads:    database.NewLeadRepository(db),
			replies:  database.NewInboundReplyRepository(db),
			pinger:   handlers.PingFunc(db.PingContext),
			close:    func(context.Context) error { return db.Close() },
		}, nil
	}
}
