package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/Konsultn-Engineering/namedbind/placeholder"
)

// PgxConnection adapts a pgxpool.Pool. In NoAutoCommit mode statements run
// inside a transaction opened on first execute and finished by Commit or
// Rollback.
type PgxConnection struct {
	pool *pgxpool.Pool
	log  *logrus.Entry

	mu   sync.Mutex
	mode ExecuteMode
	tx   pgx.Tx
}

// NewPgxConnection creates a new PgxConnection. A nil log discards output.
func NewPgxConnection(pool *pgxpool.Pool, log *logrus.Entry) *PgxConnection {
	if log == nil {
		log = discardLogger()
	}
	return &PgxConnection{pool: pool, log: log}
}

// ExecuteMode returns the mode for the next execute.
func (c *PgxConnection) ExecuteMode() ExecuteMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// BeginTransaction switches the connection to NoAutoCommit.
func (c *PgxConnection) BeginTransaction() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = NoAutoCommit
}

// Commit commits the open transaction, if any, and restores AutoCommit.
func (c *PgxConnection) Commit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = AutoCommit
	if c.tx == nil {
		return nil
	}
	tx := c.tx
	c.tx = nil
	c.log.Debug("commit")
	return translate(tx.Commit(ctx))
}

// Rollback discards the open transaction, if any, and restores AutoCommit.
func (c *PgxConnection) Rollback(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = AutoCommit
	if c.tx == nil {
		return nil
	}
	tx := c.tx
	c.tx = nil
	c.log.Debug("rollback")
	return translate(tx.Rollback(ctx))
}

// Prepare returns a handle for query. pgx prepares statements on first use.
func (c *PgxConnection) Prepare(ctx context.Context, query string) (StatementHandle, error) {
	if c.pool == nil {
		return nil, ErrConnectionClosed
	}
	return &PgxStatement{conn: c, query: query}, nil
}

// Health verifies the pool is reachable.
func (c *PgxConnection) Health(ctx context.Context) error {
	if c.pool == nil {
		return ErrConnectionClosed
	}
	return c.pool.Ping(ctx)
}

// Close rolls back any open transaction and closes the pool.
func (c *PgxConnection) Close() error {
	if err := c.Rollback(context.Background()); err != nil {
		c.log.WithError(err).Warn("rollback on close failed")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pool != nil {
		c.pool.Close()
		c.pool = nil
	}
	return nil
}

func (c *PgxConnection) exec(ctx context.Context, mode ExecuteMode, query string, args ...any) (int64, error) {
	c.mu.Lock()
	if c.pool == nil {
		c.mu.Unlock()
		return 0, ErrConnectionClosed
	}

	if mode == AutoCommit && c.tx == nil {
		pool := c.pool
		c.mu.Unlock()
		tag, err := pool.Exec(ctx, query, args...)
		if err != nil {
			return 0, translate(err)
		}
		return tag.RowsAffected(), nil
	}

	// the transaction is one connection; execs on it stay serialized
	defer c.mu.Unlock()

	if c.tx == nil {
		tx, err := c.pool.Begin(ctx)
		if err != nil {
			return 0, translate(err)
		}
		c.log.Debug("begin")
		c.tx = tx
	}
	tag, err := c.tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, translate(err)
	}
	return tag.RowsAffected(), nil
}

// PgxStatement collects binds for a query run through a PgxConnection.
// Named binds are passed as pgx.NamedArgs after their ":name" markers are
// rewritten to "@name".
type PgxStatement struct {
	conn     *PgxConnection
	query    string
	binds    bindings
	affected int64
	closed   bool
}

func (s *PgxStatement) BindPositional(position int, value any) error {
	if s.closed || s.conn == nil {
		return ErrInvalidHandle
	}
	return s.binds.setPositional(position, value)
}

func (s *PgxStatement) BindNamed(name string, value any) error {
	if s.closed || s.conn == nil {
		return ErrInvalidHandle
	}
	return s.binds.setNamed(name, value)
}

func (s *PgxStatement) Execute(ctx context.Context, mode ExecuteMode) error {
	if s.closed || s.conn == nil {
		return ErrInvalidHandle
	}
	query, args, err := s.compile()
	if err != nil {
		return err
	}
	n, err := s.conn.exec(ctx, mode, query, args...)
	if err != nil {
		return fmt.Errorf("execute: %w", err)
	}
	s.affected = n
	return nil
}

func (s *PgxStatement) compile() (string, []any, error) {
	if s.binds.mixed() {
		return "", nil, ErrMixedBinds
	}
	if len(s.binds.named) == 0 {
		args, err := s.binds.ordered()
		return s.query, args, err
	}

	named := make(pgx.NamedArgs, len(s.binds.named))
	for _, nv := range s.binds.named {
		named[nv.name] = nv.value
	}
	query, err := placeholder.RewriteMarkers(s.query, func(name string) (string, bool) {
		if _, ok := named[name]; ok {
			return "@" + name, true
		}
		return "", false
	})
	if err != nil {
		return "", nil, err
	}
	return query, []any{named}, nil
}

// RowsAffected returns the count reported by the last successful execute.
func (s *PgxStatement) RowsAffected() int64 {
	return s.affected
}

func (s *PgxStatement) Close() error {
	s.closed = true
	s.binds.reset()
	return nil
}

// Assert that the pgx adapters implement the collaborator interfaces.
var (
	_ Connection      = (*PgxConnection)(nil)
	_ Preparer        = (*PgxConnection)(nil)
	_ StatementHandle = (*PgxStatement)(nil)
)
