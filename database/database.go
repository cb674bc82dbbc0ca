// Package database defines the native collaborators a statement needs and
// adapters over pgx and database/sql.
package database

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// ExecuteMode tells the native driver whether to commit after execute.
type ExecuteMode int

const (
	AutoCommit ExecuteMode = iota
	NoAutoCommit
)

func (m ExecuteMode) String() string {
	switch m {
	case AutoCommit:
		return "auto_commit"
	case NoAutoCommit:
		return "no_auto_commit"
	default:
		return fmt.Sprintf("ExecuteMode(%d)", int(m))
	}
}

// StatementHandle is a native prepared statement.
// A handle is used by one caller at a time.
type StatementHandle interface {
	BindPositional(position int, value any) error
	BindNamed(name string, value any) error
	Execute(ctx context.Context, mode ExecuteMode) error
	RowsAffected() int64
	Close() error
}

// Connection reports the execute mode in effect for the next execute.
type Connection interface {
	ExecuteMode() ExecuteMode
}

// Preparer allocates native statement handles.
type Preparer interface {
	Prepare(ctx context.Context, query string) (StatementHandle, error)
}

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
