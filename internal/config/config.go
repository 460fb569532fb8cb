// Package config loads lager settings from an optional TOML file. Every field has a
// default, so lager runs with no file and no flags at all.
//
//	[database]
//	driver = "sqlite"
//	path = "data/inventory.db"
//
//	[import]
//	source = "items_import.txt"
//
//	[inspect]
//	sample_limit = 10
//
//	[output]
//	format = "human"
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"lager/internal/core"
	"lager/internal/output"
	"lager/internal/store"
)

// DefaultFile is read from the working directory when no file is named explicitly.
const DefaultFile = "lager.toml"

// Config is the top-level TOML document.
type Config struct {
	Database Database `toml:"database"`
	Import   Import   `toml:"import"`
	Inspect  Inspect  `toml:"inspect"`
	Output   Output   `toml:"output"`
}

// Database maps [database].
type Database struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
	DSN    string `toml:"dsn"`
}

// Import maps [import].
type Import struct {
	Source string `toml:"source"`
}

// Inspect maps [inspect].
type Inspect struct {
	SampleLimit int `toml:"sample_limit"`
}

// Output maps [output].
type Output struct {
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Database: Database{
			Driver: string(core.DialectSQLite),
			Path:   "data/inventory.db",
		},
		Import:  Import{Source: "items_import.txt"},
		Inspect: Inspect{SampleLimit: core.DefaultSampleLimit},
		Output:  Output{Format: string(output.FormatHuman)},
	}
}

// Load returns the defaults overlaid with the file at path. When path is empty the
// DefaultFile is tried and silently skipped if it does not exist; a named file that
// does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return cfg, &core.FileNotFoundError{Kind: "config", Path: path}
		}
		return cfg, fmt.Errorf("config: stat %q: %w", path, err)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config: decode %q: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config: unknown keys in %q: %s", path, strings.Join(keys, ", "))
	}

	return cfg, cfg.Validate()
}

// Validate checks that the configuration names a usable database and output format.
func (c Config) Validate() error {
	dialect, ok := core.ParseDialect(c.Database.Driver)
	if !ok {
		return fmt.Errorf("config: unsupported driver %q", c.Database.Driver)
	}
	switch dialect {
	case core.DialectSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			return fmt.Errorf("config: database.path is required for sqlite")
		}
	case core.DialectMySQL:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("config: database.dsn is required for mysql")
		}
	}
	if c.Inspect.SampleLimit < 0 {
		return fmt.Errorf("config: inspect.sample_limit must not be negative")
	}
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Location converts the [database] section into a store location.
func (c Config) Location() store.Location {
	dialect, _ := core.ParseDialect(c.Database.Driver)
	return store.Location{
		Dialect: dialect,
		Path:    c.Database.Path,
		DSN:     c.Database.DSN,
	}
}
