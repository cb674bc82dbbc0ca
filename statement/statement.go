// Package statement binds caller parameters to statements whose positional
// markers were converted to generated placeholder names, and executes them
// through a native statement handle.
//
// A Statement is meant to be used by one caller at a time; it does no
// locking of its own.
package statement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/Konsultn-Engineering/namedbind/cache"
	"github.com/Konsultn-Engineering/namedbind/database"
	"github.com/Konsultn-Engineering/namedbind/dialect"
	"github.com/Konsultn-Engineering/namedbind/metrics"
	"github.com/Konsultn-Engineering/namedbind/placeholder"
)

var errNilConnection = errors.New("statement: connection is required")

type Statement struct {
	id      ulid.ULID
	handle  database.StatementHandle
	conn    database.Connection
	query   *placeholder.Converted
	dialect dialect.Dialect
	binder  *Binder
	log     *logrus.Entry
	metrics *metrics.Metrics
}

// Convert rewrites sql for d, going through c when it is not nil.
func Convert(sql string, d dialect.Dialect, c *cache.QueryCache) (*placeholder.Converted, error) {
	convert := func(sql string) (*placeholder.Converted, error) {
		return placeholder.ConvertWith(sql, d.Placeholder)
	}
	if c == nil {
		return convert(sql)
	}
	return c.GetOrConvert(d.Name(), sql, convert)
}

// Prepare converts sql and allocates a native handle for the converted text.
func Prepare(ctx context.Context, p database.Preparer, conn database.Connection, sql string, opts ...Option) (*Statement, error) {
	if conn == nil {
		return nil, errNilConnection
	}
	o := newOptions(opts)

	q, err := Convert(sql, o.dialect, o.cache)
	if err != nil {
		return nil, err
	}
	h, err := p.Prepare(ctx, q.SQL)
	if err != nil {
		return nil, fmt.Errorf("prepare statement: %w", err)
	}
	return newStatement(h, conn, q, o), nil
}

// New wraps an already allocated handle. query must be the conversion the
// handle was prepared from, and conn must not be nil.
func New(handle database.StatementHandle, conn database.Connection, query *placeholder.Converted, opts ...Option) *Statement {
	return newStatement(handle, conn, query, newOptions(opts))
}

func newStatement(h database.StatementHandle, conn database.Connection, q *placeholder.Converted, o options) *Statement {
	s := &Statement{
		id:      newID(),
		handle:  h,
		conn:    conn,
		query:   q,
		dialect: o.dialect,
		binder:  NewBinder(q.Names, o.dialect.BindByName()),
		metrics: o.metrics,
	}
	s.log = o.log.WithField("stmt", s.id.String())
	s.binder.observe = s.bound
	s.log.WithField("sql", q.SQL).Debug("statement prepared")
	return s
}

func (s *Statement) ID() ulid.ULID {
	return s.id
}

// SQL returns the converted statement text.
func (s *Statement) SQL() string {
	return s.query.SQL
}

// Names returns the generated placeholder names in order of appearance.
func (s *Statement) Names() []string {
	return append([]string(nil), s.query.Names...)
}

// BindParam binds one value. Positions are 1-based; names must start with
// ':' and are passed to the handle unchanged.
func (s *Statement) BindParam(key Key, value any) error {
	t, err := s.binder.Resolve(key, value, false)
	if err == nil {
		err = s.binder.Dispatch(s.handle, key, t)
	}
	if err != nil {
		s.metrics.IncBindError()
		return err
	}
	s.bound(t)
	return nil
}

// BindValue binds value to the 1-based placeholder position.
func (s *Statement) BindValue(position int, value any) error {
	return s.BindParam(PositionKey(position), value)
}

// Execute binds params, reads the connection's execute mode once and runs
// the native execute. A failed bind stops before the mode is read. Without
// a handle nothing is bound and the failure is an *ExecutionError.
func (s *Statement) Execute(ctx context.Context, params Params) error {
	if s.handle != nil && len(params) > 0 {
		if err := s.binder.BindAll(s.handle, params); err != nil {
			s.metrics.IncBindError()
			s.log.WithError(err).Warn("bind failed")
			return err
		}
	}

	mode := s.conn.ExecuteMode()
	log := s.log.WithField("mode", mode.String())

	start := time.Now()
	var err error
	if s.handle == nil {
		err = database.ErrInvalidHandle
	} else {
		err = s.handle.Execute(ctx, mode)
	}
	s.metrics.ObserveExecute(mode.String(), err != nil, time.Since(start))
	if err != nil {
		execErr := newExecutionError(s.query.SQL, mode, err)
		log.WithError(err).Warn("execute failed")
		return execErr
	}
	log.Debug("executed")
	return nil
}

// RowsAffected returns the count reported by the last execute.
func (s *Statement) RowsAffected() int64 {
	if s.handle == nil {
		return 0
	}
	return s.handle.RowsAffected()
}

func (s *Statement) Close() error {
	if s.handle == nil {
		return nil
	}
	err := s.handle.Close()
	s.handle = nil
	return err
}

func (s *Statement) bound(t BindTarget) {
	s.metrics.IncBind(t.Position == 0 || s.dialect.BindByName())
	if !s.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	s.log.WithFields(logrus.Fields{
		"ordinal": t.Position,
		"name":    t.Name,
		"value":   s.dialect.RenderValue(t.Value),
	}).Debug("bind")
}
