package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lager/internal/core"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lager.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/inventory.db", cfg.Database.Path)
	assert.Equal(t, "items_import.txt", cfg.Import.Source)
	assert.Equal(t, 10, cfg.Inspect.SampleLimit)
	assert.Equal(t, "human", cfg.Output.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadWithoutDefaultFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPicksUpDefaultFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("[import]\nsource = \"other.txt\"\n"), 0o644))
	chdir(t, dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "other.txt", cfg.Import.Source)
	assert.Equal(t, "data/inventory.db", cfg.Database.Path)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrFileNotFound)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "sqlite"
path = "/srv/lager/inventory.db"

[import]
source = "/srv/lager/items.txt"

[inspect]
sample_limit = 5

[output]
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/lager/inventory.db", cfg.Database.Path)
	assert.Equal(t, "/srv/lager/items.txt", cfg.Import.Source)
	assert.Equal(t, 5, cfg.Inspect.SampleLimit)
	assert.Equal(t, "json", cfg.Output.Format)

	loc := cfg.Location()
	assert.Equal(t, core.DialectSQLite, loc.Dialect)
	assert.Equal(t, "/srv/lager/inventory.db", loc.Path)
	assert.False(t, loc.Create)
}

func TestLoadMySQL(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "MySQL"
dsn = "lager:pw@tcp(localhost:3306)/inventory"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	loc := cfg.Location()
	assert.Equal(t, core.DialectMySQL, loc.Dialect)
	assert.Equal(t, "lager:pw@tcp(localhost:3306)/inventory", loc.DSN)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[database]\nfile = \"x.db\"\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys")
	assert.Contains(t, err.Error(), "database.file")
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, "[database\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: decode")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "oracle" }, wantErr: "unsupported driver"},
		{name: "sqlite without path", mutate: func(c *Config) { c.Database.Path = " " }, wantErr: "database.path is required"},
		{name: "mysql without dsn", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: "database.dsn is required"},
		{name: "negative sample limit", mutate: func(c *Config) { c.Inspect.SampleLimit = -1 }, wantErr: "sample_limit"},
		{name: "unknown format", mutate: func(c *Config) { c.Output.Format = "xml" }, wantErr: "unsupported format"},
		{name: "empty driver means sqlite", mutate: func(c *Config) { c.Database.Driver = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir on older Go).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
