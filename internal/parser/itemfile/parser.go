// Package itemfile parses the plain-text item lists lager imports. Each record is
// one line: a barcode, a single space, then the item name, which may itself
// contain spaces.
//
//	A100 Bandage Roll
//	A300 Surgical Tape Wide
//
// Blank lines are ignored and lines without a space are skipped.
package itemfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"lager/internal/core"
)

const maxLineSize = 1 << 20

// Result holds parsed items in file order, duplicates included.
type Result struct {
	Items []core.Item
	// Skipped lists the 1-based line numbers dropped for having no space.
	Skipped []int
	// Lines is the number of lines read, blank ones included.
	Lines int
}

// Parser reads item list files.
type Parser struct{}

// NewParser creates a new item list parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile opens the file at path and parses it. A missing file is reported as
// *core.FileNotFoundError.
func (p *Parser) ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &core.FileNotFoundError{Kind: "source", Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("itemfile: open file %q: %w", path, err)
	}
	defer f.Close()

	res, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("itemfile: %s: %w", path, err)
	}
	return res, nil
}

// Parse reads records from r until EOF. A line that is not valid UTF-8 fails the
// whole parse.
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	res := &Result{}
	for sc.Scan() {
		res.Lines++
		line := sc.Text()
		if res.Lines == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("read line %d: invalid UTF-8", res.Lines)
		}

		item, ok, blank := ParseLine(line)
		switch {
		case blank:
		case !ok:
			res.Skipped = append(res.Skipped, res.Lines)
		default:
			res.Items = append(res.Items, item)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read line %d: %w", res.Lines+1, err)
	}
	return res, nil
}

// ParseLine splits a single record on its first space. blank is true for lines that
// are empty after trimming; ok is false for lines that hold no space.
func ParseLine(line string) (item core.Item, ok bool, blank bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return core.Item{}, false, true
	}
	barcode, name, found := strings.Cut(line, " ")
	if !found {
		return core.Item{}, false, false
	}
	return core.Item{Barcode: barcode, Name: name}, true, false
}
