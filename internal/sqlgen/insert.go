package sqlgen

import (
	"fmt"

	"github.com/Rana718/jsonsql/internal/jsonpath"
	"github.com/Rana718/jsonsql/internal/types"
	"github.com/Rana718/jsonsql/internal/value"
	"github.com/tidwall/gjson"
)

// GenerateInsert renders one INSERT for a single JSON record. The record is not
// validated: unresolved paths fall back to the column default, then to NULL.
func (g *Generator) GenerateInsert(m types.TableMapping, record string) (string, error) {
	table, err := QualifiedName(m)
	if err != nil {
		return "", err
	}

	b := getBuffer()
	defer putBuffer(b)

	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")

	values := make([]string, 0, len(m.Columns))
	for _, col := range m.Columns {
		if col.AutoGenerated {
			continue
		}
		name, err := EscapeIdentifier(col.Name)
		if err != nil {
			return "", err
		}
		if len(values) > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)

		lit, ok := formatValue(ResolveColumn(col, record), col.SQLType)
		if !ok {
			g.log.Warn().
				Str("table", m.Name).
				Str("column", col.Name).
				Str("type", col.SQLType).
				Msg("value is not numeric, writing it as a string literal")
		}
		values = append(values, lit)
	}

	b.WriteString(") VALUES (")
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v)
	}
	b.WriteString(");")

	return b.String(), nil
}

// GenerateBatchInserts renders one INSERT per element when payload is a JSON
// array and exactly one otherwise. A payload that does not parse aborts the
// whole batch.
func (g *Generator) GenerateBatchInserts(m types.TableMapping, payload string) ([]string, error) {
	records, err := SplitRecords(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to generate batch inserts for %s: %w", m.Name, err)
	}

	statements := make([]string, 0, len(records))
	for _, record := range records {
		stmt, err := g.GenerateInsert(m, record)
		if err != nil {
			return nil, fmt.Errorf("failed to generate batch inserts for %s: %w", m.Name, err)
		}
		statements = append(statements, stmt)
	}

	g.log.Debug().Str("table", m.Name).Int("records", len(statements)).Msg("generated batch inserts")
	return statements, nil
}

// SplitRecords returns the raw JSON of every element when payload is an
// array, or the payload itself otherwise.
func SplitRecords(payload string) ([]string, error) {
	if !gjson.Valid(payload) {
		return nil, types.ErrMalformedJSON
	}

	root := gjson.Parse(payload)
	if !root.IsArray() {
		return []string{payload}, nil
	}

	records := make([]string, 0)
	root.ForEach(func(_, element gjson.Result) bool {
		records = append(records, element.Raw)
		return true
	})
	return records, nil
}

// ResolveColumn extracts the column value from record. Absent and JSON null
// values fall back to the column default when one is set.
func ResolveColumn(col types.ColumnMapping, record string) value.Value {
	v, ok := jsonpath.Extract(record, col.ExtractionPath())
	if ok && !v.IsNull() {
		return v
	}
	if col.HasDefault() {
		return value.String(*col.Default)
	}
	return value.Null()
}

func GenerateInsert(m types.TableMapping, record string) (string, error) {
	return defaultGenerator.GenerateInsert(m, record)
}

func GenerateBatchInserts(m types.TableMapping, payload string) ([]string, error) {
	return defaultGenerator.GenerateBatchInserts(m, payload)
}
