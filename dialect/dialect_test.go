package dialect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, ":param1", NewOracleDialect().Placeholder(1))
	assert.Equal(t, ":param12", NewOracleDialect().Placeholder(12))
	assert.Equal(t, "$3", NewPostgresDialect().Placeholder(3))

	assert.True(t, NewOracleDialect().BindByName())
	assert.False(t, NewPostgresDialect().BindByName())
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, `"users"`, NewOracleDialect().QuoteIdentifier("users"))
	assert.Equal(t, `"we""ird"`, NewPostgresDialect().QuoteIdentifier(`we"ird`))
}

func TestRenderValue(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	tests := []struct {
		name     string
		d        Dialect
		value    any
		expected string
	}{
		{"nil", NewOracleDialect(), nil, "NULL"},
		{"string", NewOracleDialect(), "O'Brien", "'O''Brien'"},
		{"bool", NewOracleDialect(), true, "TRUE"},
		{"int", NewOracleDialect(), int64(-42), "-42"},
		{"uint", NewOracleDialect(), uint8(7), "7"},
		{"float", NewOracleDialect(), 1.5, "1.5"},
		{"time", NewOracleDialect(), ts, "'2024-03-01 10:30:00.000000'"},
		{"oracle bytes", NewOracleDialect(), []byte{0xde, 0xad}, "HEXTORAW('DEAD')"},
		{"postgres bytes", NewPostgresDialect(), []byte{0xde, 0xad}, `'\xdead'`},
		{"stringer", NewPostgresDialect(), struct{ A string }{"x'y"}, "'{x''y}'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.d.RenderValue(tt.value))
		})
	}
}
