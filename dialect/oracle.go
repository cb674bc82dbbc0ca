package dialect

import (
	"strings"

	"github.com/Konsultn-Engineering/namedbind/placeholder"
)

// Oracle targets OCI-style drivers that only accept named placeholders.
type Oracle struct{}

func NewOracleDialect() Dialect {
	return &Oracle{}
}

func (Oracle) Name() string {
	return "oracle"
}

func (Oracle) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (Oracle) Placeholder(n int) string {
	return placeholder.DefaultName(n)
}

func (Oracle) BindByName() bool {
	return true
}

func (Oracle) RenderValue(v any) string {
	return renderValue(v, "2006-01-02 15:04:05.000000")
}
