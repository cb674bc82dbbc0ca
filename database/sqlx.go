package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/Konsultn-Engineering/namedbind/placeholder"
)

// SqlxConnection runs ":name" placeholder SQL on drivers that only accept
// their own bindvars. Bound ":name" markers are rewritten to the bindvar
// type sqlx reports for the driver before execute.
type SqlxConnection struct {
	*SqlConnection
	xdb *sqlx.DB
}

// NewSqlxConnection creates a new SqlxConnection. A nil log discards output.
func NewSqlxConnection(db *sqlx.DB, log *logrus.Entry) *SqlxConnection {
	return &SqlxConnection{SqlConnection: NewSqlConnection(db.DB, log), xdb: db}
}

func (c *SqlxConnection) Prepare(ctx context.Context, query string) (StatementHandle, error) {
	if c.SqlConnection.db == nil {
		return nil, ErrConnectionClosed
	}
	return &SqlxStatement{conn: c, query: query}, nil
}

// SqlxStatement collects binds for a query run through a SqlxConnection.
type SqlxStatement struct {
	conn     *SqlxConnection
	query    string
	binds    bindings
	affected int64
	closed   bool
}

func (s *SqlxStatement) BindPositional(position int, value any) error {
	if s.closed || s.conn == nil {
		return ErrInvalidHandle
	}
	return s.binds.setPositional(position, value)
}

func (s *SqlxStatement) BindNamed(name string, value any) error {
	if s.closed || s.conn == nil {
		return ErrInvalidHandle
	}
	return s.binds.setNamed(name, value)
}

func (s *SqlxStatement) Execute(ctx context.Context, mode ExecuteMode) error {
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

// compile returns the query with ":name" markers replaced by the driver's
// bindvars, one argument per marker. A marker without a bound value is
// ErrMissingBind. Positional binds leave the query untouched.
func (s *SqlxStatement) compile() (string, []any, error) {
	if s.binds.mixed() {
		return "", nil, ErrMixedBinds
	}
	if len(s.binds.named) == 0 {
		args, err := s.binds.ordered()
		return s.query, args, err
	}

	values := make(map[string]any, len(s.binds.named))
	for _, nv := range s.binds.named {
		values[nv.name] = nv.value
	}
	bindType := sqlx.BindType(s.conn.xdb.DriverName())

	var (
		args    []any
		missing string
	)
	query, err := placeholder.RewriteMarkers(s.query, func(name string) (string, bool) {
		v, ok := values[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return "", false
		}
		args = append(args, v)
		return bindvar(bindType, name, len(args)), true
	})
	if err != nil {
		return "", nil, err
	}
	if missing != "" {
		return "", nil, fmt.Errorf("%w: :%s", ErrMissingBind, missing)
	}
	if bindType == sqlx.NAMED {
		args = args[:0]
		for _, nv := range s.binds.named {
			args = append(args, sql.Named(nv.name, nv.value))
		}
	}
	return query, args, nil
}

// bindvar renders the n-th marker for a sqlx bind type.
func bindvar(bindType int, name string, n int) string {
	switch bindType {
	case sqlx.DOLLAR:
		return "$" + strconv.Itoa(n)
	case sqlx.AT:
		return "@p" + strconv.Itoa(n)
	case sqlx.NAMED:
		return ":" + name
	}
	return "?"
}

func (s *SqlxStatement) RowsAffected() int64 {
	return s.affected
}

func (s *SqlxStatement) Close() error {
	s.closed = true
	s.binds.reset()
	return nil
}

var (
	_ Connection      = (*SqlxConnection)(nil)
	_ Preparer        = (*SqlxConnection)(nil)
	_ StatementHandle = (*SqlxStatement)(nil)
)
