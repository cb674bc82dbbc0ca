package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// SqlConnection adapts a *sql.DB with the same execute mode model as
// PgxConnection.
type SqlConnection struct {
	db  *sql.DB
	log *logrus.Entry

	mu   sync.Mutex
	mode ExecuteMode
	tx   *sql.Tx
}

// NewSqlConnection creates a new SqlConnection. A nil log discards output.
func NewSqlConnection(db *sql.DB, log *logrus.Entry) *SqlConnection {
	if log == nil {
		log = discardLogger()
	}
	return &SqlConnection{db: db, log: log}
}

func (c *SqlConnection) ExecuteMode() ExecuteMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *SqlConnection) BeginTransaction() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = NoAutoCommit
}

func (c *SqlConnection) Commit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = AutoCommit
	if c.tx == nil {
		return nil
	}
	tx := c.tx
	c.tx = nil
	c.log.Debug("commit")
	return translate(tx.Commit())
}

func (c *SqlConnection) Rollback(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = AutoCommit
	if c.tx == nil {
		return nil
	}
	tx := c.tx
	c.tx = nil
	c.log.Debug("rollback")
	return translate(tx.Rollback())
}

func (c *SqlConnection) Prepare(ctx context.Context, query string) (StatementHandle, error) {
	if c.db == nil {
		return nil, ErrConnectionClosed
	}
	return &SqlStatement{conn: c, query: query}, nil
}

// PingContext verifies the connection to the database is alive.
func (c *SqlConnection) PingContext(ctx context.Context) error {
	if c.db == nil {
		return ErrConnectionClosed
	}
	return c.db.PingContext(ctx)
}

// SetMaxOpenConns sets the maximum number of open connections.
func (c *SqlConnection) SetMaxOpenConns(n int) { c.db.SetMaxOpenConns(n) }

// SetMaxIdleConns sets the maximum number of idle connections.
func (c *SqlConnection) SetMaxIdleConns(n int) { c.db.SetMaxIdleConns(n) }

func (c *SqlConnection) Close() error {
	if err := c.Rollback(context.Background()); err != nil {
		c.log.WithError(err).Warn("rollback on close failed")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

func (c *SqlConnection) exec(ctx context.Context, mode ExecuteMode, query string, args ...any) (int64, error) {
	c.mu.Lock()
	if c.db == nil {
		c.mu.Unlock()
		return 0, ErrConnectionClosed
	}

	var (
		res sql.Result
		err error
	)
	if mode == AutoCommit && c.tx == nil {
		db := c.db
		c.mu.Unlock()
		res, err = db.ExecContext(ctx, query, args...)
	} else {
		defer c.mu.Unlock()
		if c.tx == nil {
			tx, beginErr := c.db.BeginTx(ctx, nil)
			if beginErr != nil {
				return 0, translate(beginErr)
			}
			c.log.Debug("begin")
			c.tx = tx
		}
		res, err = c.tx.ExecContext(ctx, query, args...)
	}
	if err != nil {
		return 0, translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		// not every driver reports a count
		return 0, nil
	}
	return n, nil
}

// SqlStatement collects binds for a query run through a SqlConnection.
// Named binds are passed as sql.Named without the leading colon.
type SqlStatement struct {
	conn     *SqlConnection
	query    string
	binds    bindings
	affected int64
	closed   bool
}

func (s *SqlStatement) BindPositional(position int, value any) error {
	if s.closed || s.conn == nil {
		return ErrInvalidHandle
	}
	return s.binds.setPositional(position, value)
}

func (s *SqlStatement) BindNamed(name string, value any) error {
	if s.closed || s.conn == nil {
		return ErrInvalidHandle
	}
	return s.binds.setNamed(name, value)
}

func (s *SqlStatement) Execute(ctx context.Context, mode ExecuteMode) error {
	if s.closed || s.conn == nil {
		return ErrInvalidHandle
	}
	args, err := s.args()
	if err != nil {
		return err
	}
	n, err := s.conn.exec(ctx, mode, s.query, args...)
	if err != nil {
		return fmt.Errorf("execute: %w", err)
	}
	s.affected = n
	return nil
}

func (s *SqlStatement) args() ([]any, error) {
	if s.binds.mixed() {
		return nil, ErrMixedBinds
	}
	if len(s.binds.named) > 0 {
		args := make([]any, len(s.binds.named))
		for i, nv := range s.binds.named {
			args[i] = sql.Named(nv.name, nv.value)
		}
		return args, nil
	}
	return s.binds.ordered()
}

func (s *SqlStatement) RowsAffected() int64 {
	return s.affected
}

func (s *SqlStatement) Close() error {
	s.closed = true
	s.binds.reset()
	return nil
}

// Assert that the database/sql adapters implement the collaborator interfaces.
var (
	_ Connection      = (*SqlConnection)(nil)
	_ Preparer        = (*SqlConnection)(nil)
	_ StatementHandle = (*SqlStatement)(nil)
)
