package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/jsonsql/internal/mapping"
	"github.com/Rana718/jsonsql/internal/types"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const mappingsTable = "_jsonsql_mappings"

// SQL stores mapping documents as JSON text in a single table.
type SQL struct {
	db       *sql.DB
	qb       squirrel.StatementBuilderType
	provider string
}

type dialect struct {
	driver      string
	placeholder squirrel.PlaceholderFormat
	createTable string
	upsert      string
}

var dialects = map[string]dialect{
	"sqlite": {
		driver:      "sqlite3",
		placeholder: squirrel.Question,
		createTable: `CREATE TABLE IF NOT EXISTS ` + mappingsTable + ` (
			name VARCHAR(255) PRIMARY KEY,
			table_name VARCHAR(255) NOT NULL,
			document TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		upsert: "ON CONFLICT (name) DO UPDATE SET table_name = excluded.table_name, document = excluded.document, updated_at = excluded.updated_at",
	},
	"postgres": {
		driver:      "pgx",
		placeholder: squirrel.Dollar,
		createTable: `CREATE TABLE IF NOT EXISTS ` + mappingsTable + ` (
			name VARCHAR(255) PRIMARY KEY,
			table_name VARCHAR(255) NOT NULL,
			document TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		upsert: "ON CONFLICT (name) DO UPDATE SET table_name = EXCLUDED.table_name, document = EXCLUDED.document, updated_at = EXCLUDED.updated_at",
	},
	"mysql": {
		driver:      "mysql",
		placeholder: squirrel.Question,
		createTable: `CREATE TABLE IF NOT EXISTS ` + mappingsTable + ` (
			name VARCHAR(255) PRIMARY KEY,
			table_name VARCHAR(255) NOT NULL,
			document LONGTEXT NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		upsert: "ON DUPLICATE KEY UPDATE table_name = VALUES(table_name), document = VALUES(document), updated_at = VALUES(updated_at)",
	},
}

func dialectFor(provider string) (dialect, error) {
	switch strings.ToLower(provider) {
	case "sqlite", "sqlite3":
		return dialects["sqlite"], nil
	case "postgresql", "postgres":
		return dialects["postgres"], nil
	case "pq":
		d := dialects["postgres"]
		d.driver = "postgres"
		return d, nil
	case "mysql":
		return dialects["mysql"], nil
	default:
		return dialect{}, fmt.Errorf("unsupported SQL store provider: %s", provider)
	}
}

// OpenSQL connects to the database behind url and creates the mappings table
// when it does not exist yet.
func OpenSQL(ctx context.Context, provider, url string) (*SQL, error) {
	d, err := dialectFor(provider)
	if err != nil {
		return nil, err
	}

	dsn := url
	switch d.driver {
	case "sqlite3":
		dsn = strings.TrimPrefix(url, "sqlite://")
	case "mysql":
		dsn = mysqlDSN(url)
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", provider, err)
	}

	if d.driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(4)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(15 * time.Minute)
		db.SetConnMaxIdleTime(3 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", provider, err)
	}
	if _, err := db.ExecContext(ctx, d.createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create %s table: %w", mappingsTable, err)
	}

	return &SQL{
		db:       db,
		qb:       squirrel.StatementBuilder.PlaceholderFormat(d.placeholder),
		provider: strings.ToLower(provider),
	}, nil
}

func (s *SQL) Get(ctx context.Context, name string) (types.TableMapping, error) {
	query, args, err := s.qb.Select("document").
		From(mappingsTable).
		Where(squirrel.Eq{"name": types.MappingKey(name)}).
		ToSql()
	if err != nil {
		return types.TableMapping{}, err
	}

	var document string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&document); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.TableMapping{}, types.NewNotFoundError(name)
		}
		return types.TableMapping{}, fmt.Errorf("failed to load mapping %s: %w", name, err)
	}
	return mapping.Decode([]byte(document), mapping.FormatJSON)
}

func (s *SQL) List(ctx context.Context) ([]types.TableMapping, error) {
	query, args, err := s.qb.Select("document").From(mappingsTable).OrderBy("name").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list mappings: %w", err)
	}
	defer rows.Close()

	var out []types.TableMapping
	for rows.Next() {
		var document string
		if err := rows.Scan(&document); err != nil {
			return nil, err
		}
		t, err := mapping.Decode([]byte(document), mapping.FormatJSON)
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sortMappings(out), nil
}

func (s *SQL) Put(ctx context.Context, t types.TableMapping) error {
	if err := t.Validate(); err != nil {
		return err
	}

	document, err := mapping.Encode(t, mapping.FormatJSON)
	if err != nil {
		return err
	}

	d, err := dialectFor(s.provider)
	if err != nil {
		return err
	}

	query, args, err := s.qb.Insert(mappingsTable).
		Columns("name", "table_name", "document", "updated_at").
		Values(t.Key(), t.Name, string(document), time.Now().UTC()).
		Suffix(d.upsert).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save mapping %s: %w", t.Name, err)
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, name string) error {
	query, args, err := s.qb.Delete(mappingsTable).
		Where(squirrel.Eq{"name": types.MappingKey(name)}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete mapping %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.NewNotFoundError(name)
	}
	return nil
}

func (s *SQL) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// mysqlDSN turns a mysql:// URL into the go-sql-driver DSN format and maps the
// common sslmode spellings onto its tls parameter.
func mysqlDSN(url string) string {
	if !strings.HasPrefix(url, "mysql://") {
		return url
	}
	dsn := strings.TrimPrefix(url, "mysql://")

	atIndex := strings.LastIndex(dsn, "@")
	if atIndex <= 0 {
		return dsn
	}
	credentials := dsn[:atIndex]
	remainder := dsn[atIndex+1:]

	slashIndex := strings.Index(remainder, "/")
	if slashIndex <= 0 {
		return dsn
	}
	hostPort := remainder[:slashIndex]
	dbAndParams := strings.NewReplacer(
		"ssl-mode=REQUIRED", "tls=skip-verify",
		"ssl-mode=DISABLED", "tls=false",
		"ssl-mode=VERIFY_CA", "tls=true",
		"ssl-mode=VERIFY_IDENTITY", "tls=true",
		"sslmode=require", "tls=skip-verify",
		"sslmode=disable", "tls=false",
		"sslmode=verify-ca", "tls=true",
		"sslmode=verify-full", "tls=true",
	).Replace(remainder[slashIndex+1:])

	return fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, dbAndParams)
}
