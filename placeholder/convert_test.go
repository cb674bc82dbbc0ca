package placeholder

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected string
		names    []string
	}{
		{
			name:     "no placeholders",
			sql:      "SELECT * FROM dual",
			expected: "SELECT * FROM dual",
			names:    []string{},
		},
		{
			name:     "single placeholder",
			sql:      "SELECT * FROM users WHERE id = ?",
			expected: "SELECT * FROM users WHERE id = :param1",
			names:    []string{":param1"},
		},
		{
			name:     "sequential placeholders",
			sql:      "select * from dual where 1 = ? and 2 = ? and 3 = ?",
			expected: "select * from dual where 1 = :param1 and 2 = :param2 and 3 = :param3",
			names:    []string{":param1", ":param2", ":param3"},
		},
		{
			name:     "adjacent placeholders",
			sql:      "VALUES (?,?)",
			expected: "VALUES (:param1,:param2)",
			names:    []string{":param1", ":param2"},
		},
		{
			name:     "marker inside single quotes",
			sql:      "SELECT '?' FROM dual WHERE a = ?",
			expected: "SELECT '?' FROM dual WHERE a = :param1",
			names:    []string{":param1"},
		},
		{
			name:     "marker inside double quotes",
			sql:      `SELECT "?" FROM dual WHERE a = ?`,
			expected: `SELECT "?" FROM dual WHERE a = :param1`,
			names:    []string{":param1"},
		},
		{
			name:     "doubled single quote",
			sql:      "SELECT 'it''s ?' FROM dual WHERE a = ?",
			expected: "SELECT 'it''s ?' FROM dual WHERE a = :param1",
			names:    []string{":param1"},
		},
		{
			name:     "doubled double quote",
			sql:      `SELECT "a""?" FROM dual WHERE a = ?`,
			expected: `SELECT "a""?" FROM dual WHERE a = :param1`,
			names:    []string{":param1"},
		},
		{
			name:     "other quote inside literal",
			sql:      `SELECT '"?' , "'?" FROM dual WHERE a = ?`,
			expected: `SELECT '"?' , "'?" FROM dual WHERE a = :param1`,
			names:    []string{":param1"},
		},
		{
			name:     "empty literal",
			sql:      "SELECT '' FROM dual WHERE a = ?",
			expected: "SELECT '' FROM dual WHERE a = :param1",
			names:    []string{":param1"},
		},
		{
			name:     "escaped quote only",
			sql:      "SELECT '''' FROM dual WHERE a = ?",
			expected: "SELECT '''' FROM dual WHERE a = :param1",
			names:    []string{":param1"},
		},
		{
			name:     "backslash does not escape",
			sql:      `SELECT 'a\', ? FROM dual`,
			expected: `SELECT 'a\', :param1 FROM dual`,
			names:    []string{":param1"},
		},
		{
			name:     "multibyte text",
			sql:      "SELECT 'über ?' FROM dual WHERE ü = ?",
			expected: "SELECT 'über ?' FROM dual WHERE ü = :param1",
			names:    []string{":param1"},
		},
		{
			name:     "existing named placeholders",
			sql:      "SELECT * FROM dual WHERE a = :p1 AND b = ?",
			expected: "SELECT * FROM dual WHERE a = :p1 AND b = :param1",
			names:    []string{":param1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Convert(tt.sql)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c.SQL)
			assert.Equal(t, tt.names, c.Names)
			assert.Equal(t, len(tt.names), c.Len())
		})
	}
}

func TestConvertNonTerminatedLiteral(t *testing.T) {
	tests := []struct {
		name   string
		sql    string
		offset int
	}{
		{"no-matching-quote", "SELECT 'literal FROM DUAL", 7},
		{"no-matching-double-quote", `SELECT 1 "COL1 FROM DUAL`, 9},
		{"incorrect-escaping-syntax", "SELECT 'quoted \\'string' FROM DUAL", 23},
		{"escaped quote at end", "SELECT 'it''s", 7},
		{"second literal unclosed", `SELECT "a" 'b`, 11},
		{"lone quote", "'", 0},
		{"placeholder before unclosed literal", "SELECT ? '", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Convert(tt.sql)
			require.Error(t, err)
			assert.Nil(t, c)

			var syntaxErr *SyntaxError
			require.True(t, errors.As(err, &syntaxErr))
			assert.Equal(t, tt.offset, syntaxErr.Offset)
			assert.Contains(t, err.Error(), fmt.Sprintf("offset %d.", tt.offset))
			assert.ErrorIs(t, err, ErrNonTerminatedLiteral)
		})
	}
}

func TestConvertIsIdempotent(t *testing.T) {
	queries := []string{
		"select * from dual where 1 = ? and 2 = ?",
		"SELECT 'it''s ?', \"?\" FROM dual WHERE a = ?",
		"SELECT 1 FROM dual",
	}
	for _, q := range queries {
		first, err := Convert(q)
		require.NoError(t, err)

		second, err := Convert(first.SQL)
		require.NoError(t, err)
		assert.Equal(t, first.SQL, second.SQL)
		assert.Empty(t, second.Names)
	}
}

func TestConvertPlaceholderCount(t *testing.T) {
	for n := 0; n < 25; n++ {
		parts := make([]string, n)
		for i := range parts {
			parts[i] = "c = ?"
		}
		sql := "SELECT '?' FROM t WHERE " + strings.Join(parts, " AND ")

		c, err := Convert(sql)
		require.NoError(t, err)
		require.Len(t, c.Names, n)
		for i, name := range c.Names {
			assert.Equal(t, fmt.Sprintf(":param%d", i+1), name)
		}
		assert.Equal(t, n, strings.Count(c.SQL, ":param"))
		assert.Equal(t, 1, strings.Count(c.SQL, "?"))
	}
}

func TestConvertWith(t *testing.T) {
	c, err := ConvertWith("SELECT '?' WHERE a = ? AND b = ?", func(n int) string {
		return fmt.Sprintf("$%d", n)
	})
	require.NoError(t, err)
	assert.Equal(t, "SELECT '?' WHERE a = $1 AND b = $2", c.SQL)
	assert.Equal(t, []string{"$1", "$2"}, c.Names)

	c, err = ConvertWith("SELECT ?", nil)
	require.NoError(t, err)
	assert.Equal(t, "SELECT :param1", c.SQL)
}

func TestConvertPositionalToNamed(t *testing.T) {
	sql, err := ConvertPositionalToNamed("SELECT ? FROM dual")
	require.NoError(t, err)
	assert.Equal(t, "SELECT :param1 FROM dual", sql)

	sql, err = ConvertPositionalToNamed("SELECT 'literal FROM DUAL")
	assert.Empty(t, sql)
	assert.EqualError(t, err, "the statement contains non-terminated string literal starting at offset 7.")
}

func TestConvertedName(t *testing.T) {
	c, err := Convert("a = ? and b = ?")
	require.NoError(t, err)

	name, ok := c.Name(2)
	assert.True(t, ok)
	assert.Equal(t, ":param2", name)

	_, ok = c.Name(0)
	assert.False(t, ok)
	_, ok = c.Name(3)
	assert.False(t, ok)
}

func TestStepIsTotal(t *testing.T) {
	contexts := []QuoteContext{Normal, InSingleQuoted, InDoubleQuoted}
	for _, ctx := range contexts {
		for b := 0; b < 256; b++ {
			for _, la := range []int{noLookahead, '\'', '"', 'x'} {
				assert.NotPanics(t, func() {
					next, _ := step(ctx, byte(b), la)
					assert.Contains(t, contexts, next)
				})
			}
		}
	}
	assert.Panics(t, func() { step(QuoteContext(9), 'x', noLookahead) })
	assert.Equal(t, "single-quoted", InSingleQuoted.String())
	assert.Equal(t, "QuoteContext(9)", QuoteContext(9).String())
}
