package sqlgen

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Rana718/jsonsql/internal/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func usersMapping() types.TableMapping {
	return types.TableMapping{
		Name: "users",
		Columns: []types.ColumnMapping{
			{Name: "id", SQLType: "BIGINT", Nullable: true, AutoGenerated: true, PrimaryKey: true},
			{Name: "username", SQLType: "VARCHAR(255)", Nullable: false, Path: "user.name"},
		},
	}
}

func TestGenerateInsertUsers(t *testing.T) {
	stmt, err := GenerateInsert(usersMapping(), `{"user":{"name":"john_doe"}}`)
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "users" ("username") VALUES ('john_doe');`, stmt)
}

func TestGenerateCreateTableWithSchema(t *testing.T) {
	m := usersMapping()
	m.Schema = "public"

	ddl, err := GenerateCreateTable(m)
	require.NoError(t, err)

	want := "CREATE TABLE \"public\".\"users\" (\n" +
		"  \"id\" BIGINT AUTO_INCREMENT,\n" +
		"  \"username\" VARCHAR(255) NOT NULL,\n" +
		"  PRIMARY KEY (\"id\")\n" +
		");"
	assert.Equal(t, want, ddl)
}

func TestGenerateCreateTableCompositeKeyAndNoKey(t *testing.T) {
	m := types.TableMapping{
		Name: "order_items",
		Columns: []types.ColumnMapping{
			{Name: "order_id", SQLType: "INT", PrimaryKey: true},
			{Name: "qty", SQLType: "INT", Nullable: true},
			{Name: "sku", SQLType: "VARCHAR(32)", PrimaryKey: true},
		},
	}
	ddl, err := GenerateCreateTable(m)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ddl, "  PRIMARY KEY (\"order_id\", \"sku\")\n);"))
	assert.Contains(t, ddl, "  \"order_id\" INT NOT NULL,\n")

	m.Columns[0].PrimaryKey = false
	m.Columns[2].PrimaryKey = false
	ddl, err = GenerateCreateTable(m)
	require.NoError(t, err)
	assert.NotContains(t, ddl, "PRIMARY KEY")
	assert.True(t, strings.HasSuffix(ddl, "\"sku\" VARCHAR(32) NOT NULL\n);"))
}

func TestGenerateDropTable(t *testing.T) {
	m := usersMapping()
	m.Schema = "app"

	stmt, err := GenerateDropTable(m, true)
	require.NoError(t, err)
	assert.Equal(t, `DROP TABLE IF EXISTS "app"."users";`, stmt)

	stmt, err = GenerateDropTable(m, false)
	require.NoError(t, err)
	assert.Equal(t, `DROP TABLE "app"."users";`, stmt)
}

func TestGenerateInsertDefaultsAndMissingValues(t *testing.T) {
	m := types.TableMapping{
		Name: "events",
		Columns: []types.ColumnMapping{
			{Name: "kind", SQLType: "VARCHAR(20)", Default: strPtr("unknown")},
			{Name: "retries", SQLType: "INT", Default: strPtr("0")},
			{Name: "note", SQLType: "TEXT", Nullable: false},
			{Name: "active", SQLType: "BOOLEAN", Path: "$.flags.active"},
			{Name: "payload", SQLType: "JSON", Path: "data"},
		},
	}

	stmt, err := GenerateInsert(m, `{"kind":null,"flags":{"active":"yes"},"data":{"k":[1,2]}}`)
	require.NoError(t, err)
	assert.Equal(t,
		`INSERT INTO "events" ("kind", "retries", "note", "active", "payload") VALUES ('unknown', 0, NULL, 1, '{"k":[1,2]}');`,
		stmt)
}

func TestGenerateInsertMalformedRecordYieldsNulls(t *testing.T) {
	stmt, err := GenerateInsert(usersMapping(), `{"user":`)
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "users" ("username") VALUES (NULL);`, stmt)
}

func TestAutoGeneratedColumnsNeverInserted(t *testing.T) {
	m := types.TableMapping{
		Name: "t",
		Columns: []types.ColumnMapping{
			{Name: "a", SQLType: "INT", AutoGenerated: true},
			{Name: "b", SQLType: "INT"},
			{Name: "c", SQLType: "INT", AutoGenerated: true},
		},
	}
	stmt, err := GenerateInsert(m, `{"a":1,"b":2,"c":3}`)
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "t" ("b") VALUES (2);`, stmt)
}

func TestGenerateBatchInserts(t *testing.T) {
	stmts, err := GenerateBatchInserts(usersMapping(), `[{"user":{"name":"a"}},{"user":{"name":"b"}}]`)
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.Equal(t, `INSERT INTO "users" ("username") VALUES ('a');`, stmts[0])
	assert.Equal(t, `INSERT INTO "users" ("username") VALUES ('b');`, stmts[1])

	stmts, err = GenerateBatchInserts(usersMapping(), `{"user":{"name":"solo"}}`)
	require.NoError(t, err)
	assert.Len(t, stmts, 1)

	stmts, err = GenerateBatchInserts(usersMapping(), `[]`)
	require.NoError(t, err)
	assert.Empty(t, stmts)
}

func TestGenerateBatchInsertsCountMatchesArrayLength(t *testing.T) {
	for _, n := range []int{1, 3, 10} {
		records := make([]string, n)
		for i := range records {
			records[i] = fmt.Sprintf(`{"user":{"name":"u%d"}}`, i)
		}
		stmts, err := GenerateBatchInserts(usersMapping(), "["+strings.Join(records, ",")+"]")
		require.NoError(t, err)
		assert.Len(t, stmts, n)
	}
}

func TestGenerateBatchInsertsMalformed(t *testing.T) {
	_, err := GenerateBatchInserts(usersMapping(), `[{"user":{"name":"a"}},`)
	assert.ErrorIs(t, err, types.ErrMalformedJSON)
}

func TestAssembleStatementCount(t *testing.T) {
	g := NewGenerator("", zerolog.Nop())
	payload := `[{"user":{"name":"a"}},{"user":{"name":"b"}},{"user":{"name":"c"}}]`

	tests := []struct {
		ddl, batch bool
		want       int
	}{
		{false, false, 1},
		{true, false, 2},
		{false, true, 3},
		{true, true, 4},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("ddl=%v batch=%v", tt.ddl, tt.batch), func(t *testing.T) {
			res, err := g.Assemble(types.GenerationRequest{
				TableName:  "users",
				JSONData:   payload,
				IncludeDDL: tt.ddl,
				BatchMode:  tt.batch,
			}, usersMapping())
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.StatementCount)
			assert.Len(t, res.Statements, tt.want)
			assert.Equal(t, strings.Join(res.Statements, "\n\n"), res.Script)
			assert.Equal(t, "users", res.TableName)
			assert.NotNil(t, res.Warnings)
			assert.NotNil(t, res.Errors)
			assert.Empty(t, res.Warnings)
			assert.Empty(t, res.Errors)
		})
	}
}

func TestAssembleOrdersDDLFirst(t *testing.T) {
	g := NewGenerator("postgresql", zerolog.Nop())
	assert.Equal(t, "POSTGRESQL", g.Dialect())

	res, err := g.Assemble(types.GenerationRequest{
		JSONData:   `{"user":{"name":"x"}}`,
		IncludeDDL: true,
	}, usersMapping())
	require.NoError(t, err)
	require.Len(t, res.Statements, 2)
	assert.True(t, strings.HasPrefix(res.Statements[0], "CREATE TABLE"))
	assert.True(t, strings.HasPrefix(res.Statements[1], "INSERT INTO"))
}

func TestAssembleMalformedBatch(t *testing.T) {
	g := NewGenerator("", zerolog.Nop())
	_, err := g.Assemble(types.GenerationRequest{JSONData: "not json", BatchMode: true}, usersMapping())
	assert.ErrorIs(t, err, types.ErrMalformedJSON)
}
