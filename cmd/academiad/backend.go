package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mind-engage/howacademia/internal/config"
	"github.com/mind-engage/howacademia/internal/db"
	"github.com/mind-engage/howacademia/internal/storage"
)

// backend is the persistence surface the store hydrates from, plus the SQL
// handle when one is open.
type backend struct {
	kv storage.KV
	db *sql.DB
}

// openBackend picks the KV by STORE_DRIVER. A database is also opened for
// the fs and memory drivers when EVENT_LOG asks for one.
func openBackend(ctx context.Context, cfg config.Config) (*backend, error) {
	be := &backend{}
	if cfg.StoreDriver == config.StoreSQL || cfg.EventLog {
		h, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		be.db = h
	}

	switch cfg.StoreDriver {
	case config.StoreMemory:
		be.kv = storage.NewMemoryKV()
	case config.StoreFS:
		kv, err := storage.NewFSKV(cfg.StorePath)
		if err != nil {
			be.Close()
			return nil, err
		}
		be.kv = kv
	case config.StoreSQL:
		be.kv = storage.NewSQLKV(be.db)
	default:
		be.Close()
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.StoreDriver)
	}
	return be, nil
}

func (b *backend) Ping(ctx context.Context) error {
	if b.db == nil {
		return nil
	}
	return b.db.PingContext(ctx)
}

func (b *backend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}
