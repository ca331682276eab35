// Package conformance checks a JSON record against a table mapping without
// blocking SQL generation.
package conformance

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Rana718/jsonsql/internal/jsonpath"
	"github.com/Rana718/jsonsql/internal/sqlgen"
	"github.com/Rana718/jsonsql/internal/types"
	"github.com/Rana718/jsonsql/internal/value"
	"github.com/relvacode/iso8601"
	"github.com/tidwall/gjson"
)

// Report is the outcome of a conformance check. Warnings are advisory and do
// not affect Valid.
type Report struct {
	Valid           bool                   `json:"valid"`
	Errors          []string               `json:"errors"`
	Warnings        []string               `json:"warnings"`
	ExtractedValues map[string]value.Value `json:"extractedValues"`
}

var timeOfDayLayouts = []string{"15:04:05.999999999", "15:04"}

// Check resolves every column of m against record. A non-nullable column
// without a default whose value is absent or null is reported as an error.
func Check(m types.TableMapping, record string) (Report, error) {
	if !gjson.Valid(record) {
		return Report{}, fmt.Errorf("failed to validate JSON for %s: %w", m.Name, types.ErrMalformedJSON)
	}

	report := Report{
		Errors:          []string{},
		Warnings:        []string{},
		ExtractedValues: make(map[string]value.Value, len(m.Columns)),
	}

	for _, col := range m.Columns {
		v, ok := jsonpath.Extract(record, col.ExtractionPath())
		if !ok {
			v = value.Null()
		}
		report.ExtractedValues[col.Name] = v

		if v.IsNull() {
			if !col.Nullable && !col.HasDefault() {
				report.Errors = append(report.Errors,
					fmt.Sprintf("Column '%s' is required but value is missing", col.Name))
			}
			continue
		}

		if w := typeWarning(col, v); w != "" {
			report.Warnings = append(report.Warnings, w)
		}
	}

	report.Valid = len(report.Errors) == 0
	return report, nil
}

// MapValues resolves every column of m, falling back to the column default.
// Columns with neither a value nor a default map to null.
func MapValues(m types.TableMapping, record string) map[string]value.Value {
	values := make(map[string]value.Value, len(m.Columns))
	for _, col := range m.Columns {
		values[col.Name] = sqlgen.ResolveColumn(col, record)
	}
	return values
}

func typeWarning(col types.ColumnMapping, v value.Value) string {
	sqlType := strings.ToUpper(col.SQLType)

	switch {
	case sqlgen.IsNumericType(sqlType):
		if v.Kind() == value.KindNumber {
			return ""
		}
		if !sqlgen.IsNumericText(v.Text()) {
			return fmt.Sprintf("Column '%s' expects %s but value '%s' is not numeric", col.Name, col.SQLType, v.Text())
		}
	case sqlgen.IsBooleanType(sqlType):
		if !isBooleanLike(v) {
			return fmt.Sprintf("Column '%s' expects %s but value '%s' will be written as 0", col.Name, col.SQLType, v.Text())
		}
	case isTemporalType(sqlType):
		if v.Kind() != value.KindString || !parsesAsTemporal(sqlType, v.Text()) {
			return fmt.Sprintf("Column '%s' expects %s but value '%s' is not an ISO-8601 value", col.Name, col.SQLType, v.Text())
		}
	case col.MaxLength != nil && v.Kind() == value.KindString:
		if n := utf8.RuneCountInString(v.Text()); n > *col.MaxLength {
			return fmt.Sprintf("Column '%s' value has %d characters, exceeding the maximum length of %d", col.Name, n, *col.MaxLength)
		}
	}
	return ""
}

func isBooleanLike(v value.Value) bool {
	if v.Kind() == value.KindBoolean {
		return true
	}
	switch strings.ToLower(v.Text()) {
	case "true", "false", "1", "0", "yes", "no":
		return true
	}
	return false
}

func isTemporalType(sqlType string) bool {
	return strings.Contains(sqlType, "DATE") || strings.Contains(sqlType, "TIME")
}

func parsesAsTemporal(sqlType, s string) bool {
	if strings.Contains(sqlType, "DATE") || strings.Contains(sqlType, "TIMESTAMP") {
		_, err := iso8601.ParseString(s)
		return err == nil
	}
	for _, layout := range timeOfDayLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
