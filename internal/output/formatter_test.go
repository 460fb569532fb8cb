package output

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lager/internal/core"
)

func TestNewFormatterDefaultsToHuman(t *testing.T) {
	f, err := NewFormatter("")
	require.NoError(t, err)
	_, ok := f.(humanFormatter)
	assert.True(t, ok)
}

func TestNewFormatterHuman(t *testing.T) {
	f, err := NewFormatter("human")
	require.NoError(t, err)
	_, ok := f.(humanFormatter)
	assert.True(t, ok)
}

func TestNewFormatterJSONUppercase(t *testing.T) {
	f, err := NewFormatter("JSON")
	require.NoError(t, err)
	_, ok := f.(jsonFormatter)
	assert.True(t, ok)
}

func TestNewFormatterWithWhitespace(t *testing.T) {
	f, err := NewFormatter("  json  ")
	require.NoError(t, err)
	_, ok := f.(jsonFormatter)
	assert.True(t, ok)
}

func TestNewFormatterInvalidFormat(t *testing.T) {
	f, err := NewFormatter("yaml")
	assert.Error(t, err)
	assert.Nil(t, f)
	assert.Contains(t, err.Error(), "unsupported format: yaml")
	assert.Contains(t, err.Error(), "use 'human' or 'json'")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatHuman, f)

	f, err = ParseFormat("Json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, sortedKeys(map[string]string{"c": "", "a": "", "b": ""}))
	assert.Empty(t, sortedKeys(nil))
}

func TestErrorLine(t *testing.T) {
	assert.Empty(t, ErrorLine(nil))
	assert.Equal(t, "❌ Database not found at /x/inventory.db",
		ErrorLine(&core.FileNotFoundError{Kind: "database", Path: "/x/inventory.db"}))
	assert.Equal(t, "❌ Source not found at items.txt",
		ErrorLine(&core.FileNotFoundError{Kind: "source", Path: "items.txt"}))
	assert.Equal(t, "❌ Storage error (commit): database is locked",
		ErrorLine(&core.StorageError{Op: "commit", Err: errors.New("database is locked")}))
	assert.Equal(t, "❌ Error: boom", ErrorLine(errors.New("boom")))
}
