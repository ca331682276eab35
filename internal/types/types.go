package types

import (
	"strings"
)

const DefaultDialect = "STANDARD"

// TableMapping is the declarative description of a target table and of where
// each of its column values lives inside a JSON document.
type TableMapping struct {
	Name        string
	Schema      string
	Description string
	Columns     []ColumnMapping
}

type ColumnMapping struct {
	Name          string
	SQLType       string
	Nullable      bool
	PrimaryKey    bool
	AutoGenerated bool // excluded from INSERT column lists
	Path          string
	Default       *string

	// Informational only.
	MaxLength *int
	Precision *int
	Scale     *int
}

// Key returns the case-insensitive identity of the mapping.
func (m TableMapping) Key() string {
	return MappingKey(m.Name)
}

func MappingKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ExtractionPath is the path used to locate the column value. When no path is
// configured the column name itself is used.
func (c ColumnMapping) ExtractionPath() string {
	if strings.TrimSpace(c.Path) != "" {
		return c.Path
	}
	return c.Name
}

func (c ColumnMapping) HasDefault() bool {
	return c.Default != nil
}

// Validate checks the structural invariants every generator relies on.
func (m TableMapping) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return NewMappingError("table name is required")
	}
	if len(m.Columns) == 0 {
		return NewMappingError("at least one column is required for table %s", m.Name)
	}
	for i, col := range m.Columns {
		if strings.TrimSpace(col.Name) == "" {
			return NewMappingError("column #%d of table %s has no name", i+1, m.Name)
		}
		if strings.TrimSpace(col.SQLType) == "" {
			return NewMappingError("column %s of table %s has no type", col.Name, m.Name)
		}
	}
	return nil
}

type GenerationRequest struct {
	TableName  string
	JSONData   string
	IncludeDDL bool
	BatchMode  bool
	Dialect    string
}

// DialectOrDefault returns the requested dialect tag, upper-cased, falling back
// to STANDARD.
func (r GenerationRequest) DialectOrDefault() string {
	d := strings.ToUpper(strings.TrimSpace(r.Dialect))
	if d == "" {
		return DefaultDialect
	}
	return d
}

type GenerationResult struct {
	Statements     []string
	Script         string
	TableName      string
	StatementCount int
	Warnings       []string
	Errors         []string
}
