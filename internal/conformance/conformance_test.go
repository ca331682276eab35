package conformance

import (
	"testing"

	"github.com/Rana718/jsonsql/internal/sqlgen"
	"github.com/Rana718/jsonsql/internal/types"
	"github.com/Rana718/jsonsql/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func usersMapping() types.TableMapping {
	return types.TableMapping{
		Name: "users",
		Columns: []types.ColumnMapping{
			{Name: "id", SQLType: "BIGINT", AutoGenerated: true, PrimaryKey: true, Nullable: true},
			{Name: "username", SQLType: "VARCHAR(255)", Path: "user.name"},
			{Name: "status", SQLType: "VARCHAR(10)", Default: strPtr("new")},
			{Name: "bio", SQLType: "TEXT", Nullable: true},
		},
	}
}

func TestCheckValid(t *testing.T) {
	report, err := Check(usersMapping(), `{"user":{"name":"john_doe"}}`)
	require.NoError(t, err)

	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Equal(t, "john_doe", report.ExtractedValues["username"].Text())
	assert.True(t, report.ExtractedValues["bio"].IsNull())
	assert.Len(t, report.ExtractedValues, 4)
}

func TestCheckMissingRequired(t *testing.T) {
	for _, payload := range []string{`{}`, `{"user":{"name":null}}`} {
		report, err := Check(usersMapping(), payload)
		require.NoError(t, err)
		assert.False(t, report.Valid)
		assert.Equal(t, []string{"Column 'username' is required but value is missing"}, report.Errors)
	}
}

func TestCheckAndInsertDisagreeOnMissingRequired(t *testing.T) {
	m := usersMapping()
	payload := `{"other":1}`

	report, err := Check(m, payload)
	require.NoError(t, err)
	assert.False(t, report.Valid)

	stmt, err := sqlgen.GenerateInsert(m, payload)
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "users" ("username", "status", "bio") VALUES (NULL, 'new', NULL);`, stmt)
}

func TestCheckMalformed(t *testing.T) {
	_, err := Check(usersMapping(), `{"user":`)
	assert.ErrorIs(t, err, types.ErrMalformedJSON)
}

func TestCheckTypeWarnings(t *testing.T) {
	m := types.TableMapping{
		Name: "metrics",
		Columns: []types.ColumnMapping{
			{Name: "count", SQLType: "INT", Nullable: true},
			{Name: "enabled", SQLType: "BOOLEAN", Nullable: true},
			{Name: "day", SQLType: "DATE", Nullable: true},
			{Name: "at", SQLType: "TIME", Nullable: true},
			{Name: "code", SQLType: "VARCHAR(3)", Nullable: true, MaxLength: intPtr(3)},
		},
	}

	report, err := Check(m, `{"count":"many","enabled":"maybe","day":"15/01/2024","at":"noon","code":"ABCD"}`)
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Len(t, report.Warnings, 5)

	report, err = Check(m, `{"count":"12","enabled":"no","day":"2024-01-15","at":"10:30:00","code":"ABC"}`)
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)
}

func TestMapValues(t *testing.T) {
	values := MapValues(usersMapping(), `{"user":{"name":"ana"},"bio":"hi"}`)

	assert.Equal(t, value.String("ana"), values["username"])
	assert.Equal(t, value.String("new"), values["status"])
	assert.Equal(t, "hi", values["bio"].Text())
	assert.True(t, values["id"].IsNull())
}
