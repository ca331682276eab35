package sqlgen

import (
	"strings"
	"testing"
	"time"

	"github.com/Rana718/jsonsql/internal/value"
	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		v       value.Value
		sqlType string
		want    string
	}{
		{"null", value.Null(), "VARCHAR(10)", "NULL"},
		{"null numeric", value.Null(), "INT", "NULL"},
		{"number", value.Number("42"), "BIGINT", "42"},
		{"decimal keeps text", value.Number("10.50"), "DECIMAL(10,2)", "10.50"},
		{"numeric string", value.String("123.4500"), "numeric", "123.4500"},
		{"numeric string verbatim", value.String(" 7 "), "INT", " 7 "},
		{"out of range is numeric", value.String("1e400"), "DOUBLE", "1e400"},
		{"infinity is quoted", value.String("Infinity"), "DOUBLE", "'Infinity'"},
		{"blank is quoted", value.String("  "), "INT", "'  '"},
		{"non numeric falls back", value.String("abc"), "INT", "'abc'"},
		{"nan is quoted", value.String("NaN"), "DOUBLE", "'NaN'"},
		{"boolean yes", value.String("yes"), "BOOLEAN", "1"},
		{"boolean TRUE", value.String("TRUE"), "boolean", "1"},
		{"boolean true", value.Bool(true), "BIT", "1"},
		{"boolean false", value.Bool(false), "BIT", "0"},
		{"boolean one", value.Number("1"), "BOOLEAN", "1"},
		{"boolean other", value.String("no"), "BOOLEAN", "0"},
		{"string", value.String("john"), "VARCHAR(255)", "'john'"},
		{"quote doubling", value.String("O'Brien"), "TEXT", "'O''Brien'"},
		{"number in text column", value.Number("5"), "TEXT", "5"},
		{"bool in text column", value.Bool(true), "TEXT", "1"},
		{"date", value.Temporal(ts, value.Date), "DATE", "'2024-01-15'"},
		{"time", value.Temporal(ts, value.TimeOfDay), "TIME", "'10:30:00'"},
		{"datetime", value.Temporal(ts, value.DateTime), "TIMESTAMP", "'2024-01-15T10:30:00'"},
		{"compound", value.Compound(`{"a":"b"}`), "JSON", `'{"a":"b"}'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.v, tt.sqlType))
		})
	}
}

func TestFormatStringQuoteCount(t *testing.T) {
	inputs := []string{"", "plain", "'", "''", "it's", "'leading", "trailing'", "a'b'c'd", "日本'語"}
	for _, s := range inputs {
		out := FormatString(s)
		assert.Equal(t, 2*strings.Count(s, "'")+2, strings.Count(out, "'"), "input %q", s)
	}
}

func TestTypeMarkers(t *testing.T) {
	assert.True(t, IsNumericType("bigint"))
	assert.True(t, IsNumericType("Double Precision"))
	assert.False(t, IsNumericType("VARCHAR(255)"))
	assert.True(t, IsBooleanType("bit(1)"))
	assert.False(t, IsBooleanType("TEXT"))
}

func TestPooledBufferKeepsCapacity(t *testing.T) {
	b := getBuffer()
	b.WriteString(strings.Repeat("x", 100))
	capacity := b.Cap()

	putBuffer(b)
	assert.Zero(t, b.Len())
	assert.Equal(t, capacity, b.Cap())
	assert.GreaterOrEqual(t, capacity, 512)
}
