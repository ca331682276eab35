// Package sqlgen renders table mappings and JSON records into SQL text.
package sqlgen

import (
	"strings"

	"github.com/Rana718/jsonsql/internal/types"
	"github.com/rs/zerolog"
)

var defaultGenerator = NewGenerator(types.DefaultDialect, zerolog.Nop())

// Generator assembles complete scripts. The dialect is carried for callers but
// does not change the emitted syntax yet. A Generator holds no mutable state.
type Generator struct {
	dialect string
	log     zerolog.Logger
}

func NewGenerator(dialect string, log zerolog.Logger) *Generator {
	d := strings.ToUpper(strings.TrimSpace(dialect))
	if d == "" {
		d = types.DefaultDialect
	}
	return &Generator{
		dialect: d,
		log:     log.With().Str("component", "sqlgen").Logger(),
	}
}

func (g *Generator) Dialect() string {
	return g.dialect
}

// Assemble builds the ordered statement list for req: the CREATE TABLE when
// requested, then the INSERTs. Statements are joined by a blank line.
func (g *Generator) Assemble(req types.GenerationRequest, m types.TableMapping) (types.GenerationResult, error) {
	var statements []string

	if req.IncludeDDL {
		ddl, err := GenerateCreateTable(m)
		if err != nil {
			return types.GenerationResult{}, err
		}
		statements = append(statements, ddl)
	}

	if req.BatchMode {
		inserts, err := g.GenerateBatchInserts(m, req.JSONData)
		if err != nil {
			return types.GenerationResult{}, err
		}
		statements = append(statements, inserts...)
	} else {
		insert, err := g.GenerateInsert(m, req.JSONData)
		if err != nil {
			return types.GenerationResult{}, err
		}
		statements = append(statements, insert)
	}

	g.log.Debug().
		Str("table", m.Name).
		Str("dialect", req.DialectOrDefault()).
		Int("statements", len(statements)).
		Msg("assembled script")

	return types.GenerationResult{
		Statements:     statements,
		Script:         strings.Join(statements, "\n\n"),
		TableName:      m.Name,
		StatementCount: len(statements),
		Warnings:       []string{},
		Errors:         []string{},
	}, nil
}
