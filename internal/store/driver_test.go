package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lager/internal/core"
)

func TestNewDriver(t *testing.T) {
	for _, d := range core.SupportedDialects() {
		drv, err := NewDriver(d)
		require.NoError(t, err, "dialect %s", d)
		assert.NotNil(t, drv)
	}

	_, err := NewDriver("db2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported dialect "db2"`)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}

func TestSQLiteDriverSQL(t *testing.T) {
	d := newSQLiteDriver()

	assert.Equal(t, "sqlite3", d.SQLDriver())
	assert.Equal(t, `"key"`, d.Quote("key"))
	assert.Equal(t, `"a""b"`, d.Quote(`a"b`))
	assert.Equal(t,
		`INSERT OR REPLACE INTO items ("barcode", "name") VALUES (?, ?)`,
		d.UpsertSQL("items", "barcode", "barcode", "name"))
	assert.Equal(t,
		`INSERT OR IGNORE INTO settings ("key", "value") VALUES (?, ?)`,
		d.InsertIgnoreSQL("settings", "key", "value"))
	assert.Len(t, d.SchemaStatements(), 4)
}

func TestSQLiteDriverDSN(t *testing.T) {
	d := newSQLiteDriver()

	dsn, err := d.DSN(Location{Path: "data/inventory.db"})
	require.NoError(t, err)
	assert.Equal(t, "file:data/inventory.db?mode=rw&_busy_timeout=5000", dsn)

	dsn, err = d.DSN(Location{Path: "data/inventory.db", Create: true})
	require.NoError(t, err)
	assert.Contains(t, dsn, "mode=rwc")

	dsn, err = d.DSN(Location{Path: "/tmp/inv?x#1 copy.db"})
	require.NoError(t, err)
	assert.Equal(t, "file:/tmp/inv%3Fx%231%20copy.db?mode=rw&_busy_timeout=5000", dsn)

	_, err = d.DSN(Location{Path: "  "})
	assert.Error(t, err)

	assert.Equal(t, "data/inventory.db", d.Describe(Location{Path: "data/inventory.db"}))
}

func TestMySQLDriverSQL(t *testing.T) {
	d := newMySQLDriver()

	assert.Equal(t, "mysql", d.SQLDriver())
	assert.Equal(t, "`key`", d.Quote("key"))
	assert.Equal(t,
		"INSERT INTO items (`barcode`, `name`) VALUES (?, ?) ON DUPLICATE KEY UPDATE `name` = VALUES(`name`)",
		d.UpsertSQL("items", "barcode", "barcode", "name"))
	assert.Equal(t,
		"INSERT IGNORE INTO settings (`key`, `value`) VALUES (?, ?)",
		d.InsertIgnoreSQL("settings", "key", "value"))
	assert.Len(t, d.SchemaStatements(), 4)
}

func TestMySQLDriverDSN(t *testing.T) {
	d := newMySQLDriver()

	t.Run("valid", func(t *testing.T) {
		loc := Location{DSN: "lager:secret@tcp(db.local:3306)/inventory"}
		dsn, err := d.DSN(loc)
		require.NoError(t, err)
		assert.Contains(t, dsn, "tcp(db.local:3306)/inventory")
		assert.Equal(t, "mysql://db.local:3306/inventory", d.Describe(loc))
		assert.NotContains(t, d.Describe(loc), "secret")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := d.DSN(Location{})
		assert.Error(t, err)
	})

	t.Run("invalid", func(t *testing.T) {
		loc := Location{DSN: "not a dsn"}
		_, err := d.DSN(loc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid DSN")
		assert.Equal(t, "mysql (invalid DSN)", d.Describe(loc))
	})
}

func TestCheckExistsSkipsServerDialects(t *testing.T) {
	assert.NoError(t, CheckExists(Location{Dialect: core.DialectMySQL, DSN: "x"}))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "inv.db", Describe(Location{Dialect: core.DialectSQLite, Path: "inv.db"}))
	assert.Equal(t, "oracle", Describe(Location{Dialect: "oracle"}))
}
