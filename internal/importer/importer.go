// Package importer loads barcode/name lists into the items table. The whole list is
// applied as one upsert batch inside a single transaction, then the table is read
// back so the user can see what landed.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"lager/internal/core"
	"lager/internal/parser/itemfile"
	"lager/internal/store"
)

// Options contains the settings for one import run.
type Options struct {
	Source      string
	Location    store.Location
	SampleLimit int
	// DryRun parses the source and checks the database without writing anything.
	DryRun bool
	Out    io.Writer
}

// Result summarises an import.
type Result struct {
	Source     string      `json:"source"`
	Database   string      `json:"database"`
	DryRun     bool        `json:"dryRun,omitempty"`
	Parsed     int         `json:"parsed"`
	Skipped    []int       `json:"skippedLines,omitempty"`
	Applied    int         `json:"applied"`
	TotalItems int64       `json:"totalItems"`
	Sample     []core.Item `json:"sample"`
	// Items is the parsed batch in file order; it is not part of any output payload.
	Items []core.Item `json:"-"`
}

// Importer applies an item list file to the inventory database.
type Importer struct {
	options Options
	parser  *itemfile.Parser
	out     io.Writer
}

// NewImporter returns an Importer with the provided options.
func NewImporter(options Options) *Importer {
	out := options.Out
	if out == nil {
		out = io.Discard
	}
	options.SampleLimit = core.ClampSampleLimit(options.SampleLimit)
	return &Importer{
		options: options,
		parser:  itemfile.NewParser(),
		out:     out,
	}
}

func (im *Importer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(im.out, format, args...)
}

// Run checks both inputs exist, parses the source, upserts every parsed item and
// reads back the total count and a sample. Missing inputs are reported as
// *core.FileNotFoundError before any file is read; storage failures come back as
// *core.StorageError with the transaction rolled back.
func (im *Importer) Run(ctx context.Context) (*Result, error) {
	if err := checkSource(im.options.Source); err != nil {
		return nil, err
	}
	im.printf("✅ Items file found at %s\n", im.options.Source)

	loc := im.options.Location
	if err := store.CheckExists(loc); err != nil {
		return nil, err
	}

	parsed, err := im.parser.ParseFile(im.options.Source)
	if err != nil {
		return nil, err
	}
	im.printf("📦 Found %d items to import\n", len(parsed.Items))
	if n := len(parsed.Skipped); n > 0 {
		im.printf("ℹ️ Skipped %d line(s) without a name\n", n)
	}

	res := &Result{
		Source:   im.options.Source,
		Database: store.Describe(loc),
		DryRun:   im.options.DryRun,
		Parsed:   len(parsed.Items),
		Skipped:  parsed.Skipped,
		Items:    parsed.Items,
	}

	s, err := store.Open(ctx, loc)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	if im.options.DryRun {
		im.printf("ℹ️ Dry run: nothing written\n")
	} else {
		if res.Applied, err = s.UpsertItems(ctx, parsed.Items); err != nil {
			return nil, err
		}
	}

	if res.TotalItems, err = s.Count(ctx, core.TableItems); err != nil {
		return nil, err
	}
	if res.Sample, err = s.SampleItems(ctx, im.options.SampleLimit); err != nil {
		return nil, err
	}
	return res, nil
}

func checkSource(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return &core.FileNotFoundError{Kind: "source", Path: path}
	}
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("source %s is a directory", path)
	}
	return nil
}
