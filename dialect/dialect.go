package dialect

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

type Dialect interface {
	Name() string
	QuoteIdentifier(name string) string
	// Placeholder returns the bind marker for the n-th parameter, n >= 1.
	Placeholder(n int) string
	// BindByName reports whether the native driver binds placeholders by
	// name rather than by position.
	BindByName() bool
	RenderValue(v any) string
}

// renderValue formats v as a SQL literal for log output.
func renderValue(v any, timeLayout string) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64)
	case time.Time:
		return "'" + val.Format(timeLayout) + "'"
	case []byte:
		return fmt.Sprintf("HEXTORAW('%X')", val)
	default:
		return "'" + strings.ReplaceAll(fmt.Sprint(val), "'", "''") + "'"
	}
}
