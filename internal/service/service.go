// Package service wires the mapping store to the SQL generator.
package service

import (
	"context"
	"fmt"

	"github.com/Rana718/jsonsql/internal/conformance"
	"github.com/Rana718/jsonsql/internal/sqlgen"
	"github.com/Rana718/jsonsql/internal/store"
	"github.com/Rana718/jsonsql/internal/types"
	"github.com/rs/zerolog"
)

type Options struct {
	// ReportConformance appends conformance errors and warnings to the
	// generation result. When false the check still runs, so malformed JSON
	// is rejected, but its findings are only logged.
	ReportConformance bool
}

type Service struct {
	store     store.Store
	generator *sqlgen.Generator
	opts      Options
	log       zerolog.Logger
}

func New(s store.Store, g *sqlgen.Generator, opts Options, log zerolog.Logger) *Service {
	return &Service{
		store:     s,
		generator: g,
		opts:      opts,
		log:       log.With().Str("component", "service").Logger(),
	}
}

// GenerateSQL looks up the mapping named by req, checks the payload against it
// and assembles the script.
func (s *Service) GenerateSQL(ctx context.Context, req types.GenerationRequest) (types.GenerationResult, error) {
	m, err := s.store.Get(ctx, req.TableName)
	if err != nil {
		return types.GenerationResult{}, err
	}
	return s.Generate(req, m)
}

// Generate runs against an explicit mapping instead of the store.
func (s *Service) Generate(req types.GenerationRequest, m types.TableMapping) (types.GenerationResult, error) {
	if err := m.Validate(); err != nil {
		return types.GenerationResult{}, err
	}

	report, err := s.check(req, m)
	if err != nil {
		return types.GenerationResult{}, err
	}
	if !report.Valid {
		s.log.Warn().
			Str("table", m.Name).
			Strs("errors", report.Errors).
			Msg("payload does not conform to table mapping")
	}

	result, err := s.generator.Assemble(req, m)
	if err != nil {
		return types.GenerationResult{}, err
	}

	if s.opts.ReportConformance {
		result.Errors = append(result.Errors, report.Errors...)
		result.Warnings = append(result.Warnings, report.Warnings...)
	}

	s.log.Info().
		Str("table", m.Name).
		Int("statements", result.StatementCount).
		Bool("ddl", req.IncludeDDL).
		Bool("batch", req.BatchMode).
		Msg("generated SQL")
	return result, nil
}

// check validates every record: the whole payload in single mode, each
// element in batch mode.
func (s *Service) check(req types.GenerationRequest, m types.TableMapping) (conformance.Report, error) {
	if !req.BatchMode {
		return conformance.Check(m, req.JSONData)
	}

	records, err := sqlgen.SplitRecords(req.JSONData)
	if err != nil {
		return conformance.Report{}, fmt.Errorf("failed to validate JSON for %s: %w", m.Name, err)
	}

	merged := conformance.Report{Valid: true, Errors: []string{}, Warnings: []string{}}
	for i, record := range records {
		r, err := conformance.Check(m, record)
		if err != nil {
			return conformance.Report{}, err
		}
		for _, e := range r.Errors {
			merged.Errors = append(merged.Errors, fmt.Sprintf("Record %d: %s", i, e))
		}
		for _, w := range r.Warnings {
			merged.Warnings = append(merged.Warnings, fmt.Sprintf("Record %d: %s", i, w))
		}
	}
	merged.Valid = len(merged.Errors) == 0
	return merged, nil
}

func (s *Service) ValidateJSON(ctx context.Context, tableName, payload string) (conformance.Report, error) {
	m, err := s.store.Get(ctx, tableName)
	if err != nil {
		return conformance.Report{}, err
	}
	return conformance.Check(m, payload)
}

func (s *Service) CreateTable(ctx context.Context, tableName string) (string, error) {
	m, err := s.store.Get(ctx, tableName)
	if err != nil {
		return "", err
	}
	return sqlgen.GenerateCreateTable(m)
}

func (s *Service) DropTable(ctx context.Context, tableName string, ifExists bool) (string, error) {
	m, err := s.store.Get(ctx, tableName)
	if err != nil {
		return "", err
	}
	return sqlgen.GenerateDropTable(m, ifExists)
}

func (s *Service) ListMappings(ctx context.Context) ([]types.TableMapping, error) {
	return s.store.List(ctx)
}

func (s *Service) GetMapping(ctx context.Context, tableName string) (types.TableMapping, error) {
	return s.store.Get(ctx, tableName)
}

func (s *Service) SaveMapping(ctx context.Context, m types.TableMapping) (types.TableMapping, error) {
	if err := s.store.Put(ctx, m); err != nil {
		return types.TableMapping{}, err
	}
	return m, nil
}

func (s *Service) DeleteMapping(ctx context.Context, tableName string) error {
	return s.store.Delete(ctx, tableName)
}
