package connector

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/Konsultn-Engineering/namedbind/database"
)

// Connect opens a pgx pool for cfg, retrying when cfg.Retry is set.
func Connect(ctx context.Context, cfg Config, log *logrus.Entry) (*database.PgxConnection, error) {
	if log == nil {
		log = discard()
	}
	pool, err := openPool(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return database.NewPgxConnection(pool, log), nil
}

// OpenDB opens cfg through database/sql on top of a pgx pool.
func OpenDB(ctx context.Context, cfg Config, log *logrus.Entry) (*database.SqlConnection, error) {
	if log == nil {
		log = discard()
	}
	pool, err := openPool(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return database.NewSqlConnection(stdlib.OpenDBFromPool(pool), log), nil
}

// OpenSqlx opens cfg through sqlx so ":name" placeholder SQL can run
// against PostgreSQL bindvars.
func OpenSqlx(ctx context.Context, cfg Config, log *logrus.Entry) (*database.SqlxConnection, error) {
	if log == nil {
		log = discard()
	}
	pool, err := openPool(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return database.NewSqlxConnection(sqlx.NewDb(stdlib.OpenDBFromPool(pool), "pgx"), log), nil
}

func discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func openPool(ctx context.Context, cfg Config, log *logrus.Entry) (*pgxpool.Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	log = log.WithFields(logrus.Fields{"host": cfg.Host, "database": cfg.Database})

	var pool *pgxpool.Pool
	connect := func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	}

	if cfg.Retry != nil {
		err = retryConnect(ctx, cfg.Retry, log, connect)
		if err != nil {
			return nil, fmt.Errorf("failed to connect after %d retries: %w", cfg.Retry.MaxRetries, err)
		}
	} else if err = connect(ctx); err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	log.Debug("connected")
	return pool, nil
}

func poolConfig(cfg Config) (*pgxpool.Config, error) {
	cfg = cfg.withDefaults()
	poolCfg, err := pgxpool.ParseConfig(buildDSN(cfg))
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConns = int32(cfg.Pool.MaxOpen)
	poolCfg.MinConns = int32(cfg.Pool.MaxIdle)
	poolCfg.MaxConnLifetime = cfg.Pool.MaxLifetime
	poolCfg.MaxConnIdleTime = cfg.Pool.MaxIdleTime
	return poolCfg, nil
}

// buildDSN creates a PostgreSQL connection string.
func buildDSN(cfg Config) string {
	return NewDSNBuilder("postgres").
		Auth(cfg.Username, cfg.Password).
		Host(cfg.Host, cfg.Port).
		Database(cfg.Database).
		Param("sslmode", cfg.SSLMode).
		Params(cfg.Params).
		Build()
}
