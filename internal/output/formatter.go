// Package output renders lager results for the console. It provides two formats:
// human, with one status-glyph line per fact, and JSON for scripts.
package output

import (
	"fmt"
	"sort"
	"strings"

	"lager/internal/importer"
	"lager/internal/inspect"
	"lager/internal/store"
)

// Format is an enum type representing the available output formats.
type Format string

const (
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
)

// Formatter renders the result of each lager command.
type Formatter interface {
	FormatReport(*inspect.Report) (string, error)
	FormatImport(*importer.Result) (string, error)
	FormatLookups([]inspect.Lookup) (string, error)
	FormatBootstrap(database string, res *store.BootstrapResult) (string, error)
}

// ParseFormat normalizes name into a Format. An empty name selects FormatHuman.
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	switch format {
	case "":
		return FormatHuman, nil
	case FormatHuman, FormatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported format: %s; use 'human' or 'json'", name)
	}
}

// NewFormatter creates a new Formatter instance based on the given name.
// If no format is specified, defaults to human format.
func NewFormatter(name string) (Formatter, error) {
	format, err := ParseFormat(name)
	if err != nil {
		return nil, err
	}
	if format == FormatJSON {
		return jsonFormatter{}, nil
	}
	return humanFormatter{}, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
