// Package mapping reads and writes table mapping documents.
package mapping

import (
	"github.com/Rana718/jsonsql/internal/types"
)

// Document is the on-disk and over-the-wire shape of a table mapping.
type Document struct {
	TableName   string   `json:"tableName" yaml:"tableName" validate:"required"`
	Schema      string   `json:"schema,omitempty" yaml:"schema,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Columns     []Column `json:"columns" yaml:"columns" validate:"required,min=1,dive"`
}

type Column struct {
	Name          string  `json:"name" yaml:"name" validate:"required"`
	Type          string  `json:"type" yaml:"type" validate:"required"`
	Nullable      *bool   `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	PrimaryKey    bool    `json:"primaryKey" yaml:"primaryKey"`
	AutoIncrement bool    `json:"autoIncrement" yaml:"autoIncrement"`
	JSONPath      string  `json:"jsonPath,omitempty" yaml:"jsonPath,omitempty"`
	DefaultValue  *string `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	MaxLength     *int    `json:"maxLength,omitempty" yaml:"maxLength,omitempty" validate:"omitempty,min=0"`
	Precision     *int    `json:"precision,omitempty" yaml:"precision,omitempty" validate:"omitempty,min=0"`
	Scale         *int    `json:"scale,omitempty" yaml:"scale,omitempty" validate:"omitempty,min=0"`
}

// ToTable converts a document into the domain mapping. Columns are nullable
// unless the document says otherwise.
func ToTable(doc Document) types.TableMapping {
	t := types.TableMapping{
		Name:        doc.TableName,
		Schema:      doc.Schema,
		Description: doc.Description,
		Columns:     make([]types.ColumnMapping, 0, len(doc.Columns)),
	}
	for _, c := range doc.Columns {
		nullable := true
		if c.Nullable != nil {
			nullable = *c.Nullable
		}
		t.Columns = append(t.Columns, types.ColumnMapping{
			Name:          c.Name,
			SQLType:       c.Type,
			Nullable:      nullable,
			PrimaryKey:    c.PrimaryKey,
			AutoGenerated: c.AutoIncrement,
			Path:          c.JSONPath,
			Default:       c.DefaultValue,
			MaxLength:     c.MaxLength,
			Precision:     c.Precision,
			Scale:         c.Scale,
		})
	}
	return t
}

func FromTable(t types.TableMapping) Document {
	doc := Document{
		TableName:   t.Name,
		Schema:      t.Schema,
		Description: t.Description,
		Columns:     make([]Column, 0, len(t.Columns)),
	}
	for _, c := range t.Columns {
		nullable := c.Nullable
		doc.Columns = append(doc.Columns, Column{
			Name:          c.Name,
			Type:          c.SQLType,
			Nullable:      &nullable,
			PrimaryKey:    c.PrimaryKey,
			AutoIncrement: c.AutoGenerated,
			JSONPath:      c.Path,
			DefaultValue:  c.Default,
			MaxLength:     c.MaxLength,
			Precision:     c.Precision,
			Scale:         c.Scale,
		})
	}
	return doc
}
