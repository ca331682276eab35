package sqlgen

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/Rana718/jsonsql/internal/value"
)

const nullLiteral = "NULL"

var (
	numericMarkers = []string{"INT", "DECIMAL", "NUMERIC", "FLOAT", "DOUBLE", "REAL"}
	booleanMarkers = []string{"BOOLEAN", "BIT"}
)

// IsNumericType reports whether sqlType names a numeric column type.
func IsNumericType(sqlType string) bool {
	return containsAny(strings.ToUpper(sqlType), numericMarkers)
}

func IsBooleanType(sqlType string) bool {
	return containsAny(strings.ToUpper(sqlType), booleanMarkers)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// FormatValue renders v as a SQL literal for a column of the given type.
func FormatValue(v value.Value, sqlType string) string {
	lit, _ := formatValue(v, sqlType)
	return lit
}

// formatValue reports false when a numeric column received a value that could
// not be read as a number and was quoted instead.
func formatValue(v value.Value, sqlType string) (string, bool) {
	if v.IsNull() {
		return nullLiteral, true
	}

	switch {
	case IsNumericType(sqlType):
		if v.Kind() == value.KindNumber {
			return v.Text(), true
		}
		if text, ok := numericText(v.Text()); ok {
			return text, true
		}
		return FormatLiteral(v), false
	case IsBooleanType(sqlType):
		if Truthy(v) {
			return "1", true
		}
		return "0", true
	default:
		return FormatLiteral(v), true
	}
}

// IsNumericText reports whether s would be written unquoted into a numeric
// column.
func IsNumericText(s string) bool {
	_, ok := numericText(s)
	return ok
}

// numericText accepts what a float parser accepts once surrounding whitespace is
// ignored, out of range magnitudes included, and hands back s untouched.
// NaN and infinities have no numeric literal form.
func numericText(s string) (string, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		if !errors.Is(err, strconv.ErrRange) {
			return "", false
		}
		return s, true
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	return s, true
}

// Truthy implements the boolean column rule: true, 1, "true", "1" and "yes"
// (any case) are true, everything else is false.
func Truthy(v value.Value) bool {
	if v.Kind() == value.KindBoolean {
		return v.Bool()
	}
	switch strings.ToLower(v.Text()) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// FormatLiteral renders v without any column type information.
func FormatLiteral(v value.Value) string {
	switch v.Kind() {
	case value.KindNull:
		return nullLiteral
	case value.KindNumber:
		return v.Text()
	case value.KindBoolean:
		if v.Bool() {
			return "1"
		}
		return "0"
	case value.KindTemporal:
		return "'" + v.ISO8601() + "'"
	default:
		return FormatString(v.Text())
	}
}

// FormatString doubles every single quote in s and wraps it in single quotes.
func FormatString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
