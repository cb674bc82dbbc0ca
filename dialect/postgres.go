package dialect

import (
	"encoding/hex"
	"strconv"
	"strings"
)

type Postgres struct{}

func NewPostgresDialect() Dialect {
	return &Postgres{}
}

func (Postgres) Name() string {
	return "postgres"
}

func (p Postgres) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (p Postgres) Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func (Postgres) BindByName() bool {
	return false
}

func (Postgres) RenderValue(v any) string {
	if b, ok := v.([]byte); ok {
		return "'\\x" + hex.EncodeToString(b) + "'"
	}
	return renderValue(v, "2006-01-02 15:04:05.000000")
}

