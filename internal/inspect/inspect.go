// Package inspect reads the inventory database and reports its shape: tables, the
// items table layout, row counts, a bounded sample of items, settings and
// department mappings. It never writes.
package inspect

import (
	"context"
	"fmt"
	"io"
	"strings"

	"lager/internal/core"
	"lager/internal/store"
)

// Options configures an inspection run.
type Options struct {
	Location    store.Location
	SampleLimit int
	Out         io.Writer
}

// Report is everything one inspection found.
type Report struct {
	Database    string        `json:"database"`
	Tables      []string      `json:"tables"`
	ItemColumns []core.Column `json:"itemColumns"`
	ItemCount   int64         `json:"itemCount"`
	SampleItems []core.Item   `json:"sampleItems"`
	LogCount    int64         `json:"logCount"`

	// CheckedOut is nil when the logs table lacks the columns it needs.
	CheckedOut      []core.DepartmentStat `json:"checkedOutByDepartment,omitempty"`
	CheckedOutTotal int64                 `json:"checkedOutTotal"`

	Settings           map[string]string `json:"settings"`
	DepartmentMappings map[string]string `json:"departmentMappings"`
}

// Inspector runs the fixed inspection sequence against one database.
type Inspector struct {
	options Options
	out     io.Writer
}

// NewInspector returns an Inspector with the provided options.
func NewInspector(options Options) *Inspector {
	out := options.Out
	if out == nil {
		out = io.Discard
	}
	options.SampleLimit = core.ClampSampleLimit(options.SampleLimit)
	return &Inspector{options: options, out: out}
}

func (i *Inspector) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(i.out, format, args...)
}

// Run opens the database, runs every query in order and closes the database again.
// A missing SQLite file is reported as *core.FileNotFoundError before anything is
// opened; the first failing query aborts the run with a *core.StorageError.
func (i *Inspector) Run(ctx context.Context) (*Report, error) {
	loc := i.options.Location
	if err := store.CheckExists(loc); err != nil {
		return nil, err
	}
	i.printf("✅ Database found at %s\n", store.Describe(loc))

	s, err := store.Open(ctx, loc)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	return i.collect(ctx, s)
}

func (i *Inspector) collect(ctx context.Context, s *store.Store) (*Report, error) {
	r := &Report{Database: store.Describe(s.Location())}
	var err error

	if r.Tables, err = s.Tables(ctx); err != nil {
		return nil, err
	}
	if r.ItemColumns, err = s.Columns(ctx, core.TableItems); err != nil {
		return nil, err
	}
	if r.ItemCount, err = s.Count(ctx, core.TableItems); err != nil {
		return nil, err
	}
	if r.SampleItems, err = s.SampleItems(ctx, i.options.SampleLimit); err != nil {
		return nil, err
	}
	if r.LogCount, err = s.Count(ctx, core.TableLogs); err != nil {
		return nil, err
	}
	logCols, err := s.Columns(ctx, core.TableLogs)
	if err != nil {
		return nil, err
	}
	if hasColumns(logCols, core.LogColumns...) {
		if r.CheckedOut, err = s.CheckedOutByDepartment(ctx); err != nil {
			return nil, err
		}
		for _, st := range r.CheckedOut {
			r.CheckedOutTotal += st.CheckedOut
		}
	}

	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	r.Settings = core.SettingsMap(settings)

	mappings, err := s.DepartmentMappings(ctx)
	if err != nil {
		return nil, err
	}
	r.DepartmentMappings = core.DepartmentMap(mappings)

	return r, nil
}

func hasColumns(cols []core.Column, names ...string) bool {
	for _, name := range names {
		found := false
		for _, c := range cols {
			if strings.EqualFold(c.Name, name) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
