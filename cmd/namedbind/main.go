// Command namedbind rewrites positional "?" markers in a statement and,
// given a connection config, executes it with the supplied parameters.
//
//	namedbind "SELECT * FROM t WHERE a = ? AND b = '?'"
//	namedbind -dialect postgres -config db.yaml -p 1 -p x "UPDATE t SET a = ? WHERE b = ?"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Konsultn-Engineering/namedbind/cache"
	"github.com/Konsultn-Engineering/namedbind/connector"
	"github.com/Konsultn-Engineering/namedbind/database"
	"github.com/Konsultn-Engineering/namedbind/dialect"
	"github.com/Konsultn-Engineering/namedbind/metrics"
	"github.com/Konsultn-Engineering/namedbind/placeholder"
	"github.com/Konsultn-Engineering/namedbind/statement"
)

type paramList []string

func (p *paramList) String() string { return strings.Join(*p, ",") }

func (p *paramList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

func main() {
	var params paramList
	dialectName := flag.String("dialect", "oracle", "placeholder dialect: oracle or postgres")
	configPath := flag.String("config", "", "YAML connection config; when set the statement is executed")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Var(&params, "p", "positional parameter value, repeatable")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := run(context.Background(), *dialectName, *configPath, params, flag.Args(), log); err != nil {
		var syntaxErr *placeholder.SyntaxError
		if errors.As(err, &syntaxErr) {
			fmt.Fprintf(os.Stderr, "syntax error at byte %d: %s\n", syntaxErr.Offset, syntaxErr.Message)
			os.Exit(2)
		}
		log.WithError(err).Error("namedbind failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, dialectName, configPath string, params paramList, args []string, log *logrus.Logger) error {
	d, err := dialectByName(dialectName)
	if err != nil {
		return err
	}

	sql := strings.Join(args, " ")
	if sql == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read statement: %w", err)
		}
		sql = strings.TrimSpace(string(b))
	}
	if sql == "" {
		return errors.New("no statement given")
	}

	if configPath == "" {
		q, err := statement.Convert(sql, d, nil)
		if err != nil {
			return err
		}
		fmt.Println(q.SQL)
		for i, name := range q.Names {
			fmt.Fprintf(os.Stderr, "%d\t%s\n", i+1, name)
		}
		return nil
	}

	cfg, err := connector.LoadConfig(configPath)
	if err != nil {
		return err
	}
	entry := logrus.NewEntry(log)
	conn, err := open(ctx, d, cfg, entry)
	if err != nil {
		return err
	}
	defer conn.Close()

	queries, err := cache.NewQueryCache(cfg.QueryCacheSize)
	if err != nil {
		return err
	}
	m := metrics.New()
	if err := m.RegisterQueryCache(queries); err != nil {
		return err
	}
	stmt, err := statement.Prepare(ctx, conn, conn, sql,
		statement.WithDialect(d),
		statement.WithCache(queries),
		statement.WithLogger(entry),
		statement.WithMetrics(m),
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	values := make([]any, len(params))
	for i, p := range params {
		values[i] = p
	}
	if err := stmt.Execute(ctx, statement.Positional(values...)); err != nil {
		return err
	}
	fmt.Printf("%d rows affected\n", stmt.RowsAffected())
	return nil
}

type connection interface {
	database.Connection
	database.Preparer
	Close() error
}

// open picks the adapter matching the dialect's placeholder style.
func open(ctx context.Context, d dialect.Dialect, cfg connector.Config, log *logrus.Entry) (connection, error) {
	if d.BindByName() {
		return connector.OpenSqlx(ctx, cfg, log)
	}
	return connector.Connect(ctx, cfg, log)
}

func dialectByName(name string) (dialect.Dialect, error) {
	switch strings.ToLower(name) {
	case "oracle", "oci":
		return dialect.NewOracleDialect(), nil
	case "postgres", "pg":
		return dialect.NewPostgresDialect(), nil
	}
	return nil, fmt.Errorf("unknown dialect %q", name)
}
