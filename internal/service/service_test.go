package service

import (
	"context"
	"testing"

	"github.com/Rana718/jsonsql/internal/sqlgen"
	"github.com/Rana718/jsonsql/internal/store"
	"github.com/Rana718/jsonsql/internal/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usersMapping() types.TableMapping {
	return types.TableMapping{
		Name: "users",
		Columns: []types.ColumnMapping{
			{Name: "id", SQLType: "BIGINT", AutoGenerated: true, PrimaryKey: true, Nullable: true},
			{Name: "username", SQLType: "VARCHAR(255)", Path: "user.name"},
			{Name: "age", SQLType: "INT", Path: "user.age", Nullable: true},
		},
	}
}

func newService(t *testing.T, opts Options) *Service {
	t.Helper()
	s := store.NewMemory()
	require.NoError(t, s.Put(context.Background(), usersMapping()))
	return New(s, sqlgen.NewGenerator("", zerolog.Nop()), opts, zerolog.Nop())
}

func TestGenerateSQL(t *testing.T) {
	svc := newService(t, Options{})

	res, err := svc.GenerateSQL(context.Background(), types.GenerationRequest{
		TableName:  "USERS",
		JSONData:   `{"user":{"name":"john_doe","age":30}}`,
		IncludeDDL: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.StatementCount)
	assert.Equal(t, `INSERT INTO "users" ("username", "age") VALUES ('john_doe', 30);`, res.Statements[1])
}

func TestGenerateSQLUnknownTable(t *testing.T) {
	svc := newService(t, Options{})
	_, err := svc.GenerateSQL(context.Background(), types.GenerationRequest{TableName: "nope", JSONData: `{}`})
	assert.ErrorIs(t, err, types.ErrMappingNotFound)
}

func TestGenerateSQLMalformedPayload(t *testing.T) {
	svc := newService(t, Options{})

	for _, batch := range []bool{false, true} {
		_, err := svc.GenerateSQL(context.Background(), types.GenerationRequest{
			TableName: "users",
			JSONData:  `{"user":`,
			BatchMode: batch,
		})
		assert.ErrorIs(t, err, types.ErrMalformedJSON)
	}
}

func TestConformanceNotMergedByDefault(t *testing.T) {
	svc := newService(t, Options{})

	res, err := svc.GenerateSQL(context.Background(), types.GenerationRequest{
		TableName: "users",
		JSONData:  `{"user":{"age":"old"}}`,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, `INSERT INTO "users" ("username", "age") VALUES (NULL, 'old');`, res.Statements[0])
}

func TestConformanceMergedWhenEnabled(t *testing.T) {
	svc := newService(t, Options{ReportConformance: true})

	res, err := svc.GenerateSQL(context.Background(), types.GenerationRequest{
		TableName: "users",
		JSONData:  `{"user":{"age":"old"}}`,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Column 'username' is required but value is missing"}, res.Errors)
	assert.Len(t, res.Warnings, 1)

	res, err = svc.GenerateSQL(context.Background(), types.GenerationRequest{
		TableName: "users",
		JSONData:  `[{"user":{"name":"a"}},{"user":{}}]`,
		BatchMode: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.StatementCount)
	assert.Equal(t, []string{"Record 1: Column 'username' is required but value is missing"}, res.Errors)
}

func TestValidateJSON(t *testing.T) {
	svc := newService(t, Options{})

	report, err := svc.ValidateJSON(context.Background(), "users", `{"user":{"name":"x"}}`)
	require.NoError(t, err)
	assert.True(t, report.Valid)

	_, err = svc.ValidateJSON(context.Background(), "users", `nope`)
	assert.ErrorIs(t, err, types.ErrMalformedJSON)
}

func TestDDL(t *testing.T) {
	svc := newService(t, Options{})
	ctx := context.Background()

	create, err := svc.CreateTable(ctx, "users")
	require.NoError(t, err)
	assert.Contains(t, create, `PRIMARY KEY ("id")`)

	drop, err := svc.DropTable(ctx, "users", true)
	require.NoError(t, err)
	assert.Equal(t, `DROP TABLE IF EXISTS "users";`, drop)
}

func TestMappingCRUD(t *testing.T) {
	svc := newService(t, Options{})
	ctx := context.Background()

	orders := types.TableMapping{Name: "orders", Columns: []types.ColumnMapping{{Name: "total", SQLType: "DECIMAL(10,2)"}}}
	saved, err := svc.SaveMapping(ctx, orders)
	require.NoError(t, err)
	assert.Equal(t, orders, saved)

	list, err := svc.ListMappings(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	got, err := svc.GetMapping(ctx, "Orders")
	require.NoError(t, err)
	assert.Equal(t, orders, got)

	require.NoError(t, svc.DeleteMapping(ctx, "orders"))
	assert.ErrorIs(t, svc.DeleteMapping(ctx, "orders"), types.ErrMappingNotFound)

	_, err = svc.SaveMapping(ctx, types.TableMapping{Name: "bad"})
	assert.ErrorIs(t, err, types.ErrInvalidMapping)
}
