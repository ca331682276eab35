package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Rana718/jsonsql/internal/config"
	"github.com/Rana718/jsonsql/internal/mapping"
	"github.com/Rana718/jsonsql/template"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeProjectWritesLoadableFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, initializeProject(dir, template.NewProjectTemplate(template.SQLite), false))

	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, config.FileName))
	require.NoError(t, v.ReadInConfig())
	cfg, err := config.LoadFrom(v)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "sqlite", cfg.Store.Provider)
	assert.True(t, cfg.UsesDatabase())

	m, err := mapping.LoadFile(filepath.Join(dir, template.DefinitionsDir, "users.json"))
	require.NoError(t, err)
	assert.Equal(t, "users", m.Name)
	assert.True(t, m.Columns[0].AutoGenerated)

	env, err := os.ReadFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Contains(t, string(env), "JSONSQL_DATABASE_URL=sqlite://")
}

func TestInitializeProjectRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	tmpl := template.NewProjectTemplate(template.File)
	require.NoError(t, initializeProject(dir, tmpl, false))

	assert.Error(t, initializeProject(dir, tmpl, false))
	assert.NoError(t, initializeProject(dir, tmpl, true))

	_, err := os.Stat(filepath.Join(dir, ".env"))
	assert.True(t, os.IsNotExist(err))
}

func TestHandleEnvFileAppendsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OTHER=1"), 0644))

	line := "JSONSQL_DATABASE_URL=postgres://localhost/db\n"
	require.NoError(t, handleEnvFile(path, line))
	require.NoError(t, handleEnvFile(path, line))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "OTHER=1\n\n# Added by jsonsql\n"+line, string(data))
}

func TestValidateStoreType(t *testing.T) {
	assert.Equal(t, template.PostgreSQL, template.ValidateStoreType("postgres"))
	assert.Equal(t, template.File, template.ValidateStoreType("oracle"))
}
