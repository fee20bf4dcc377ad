// Package load reads inflammation tables from comma-separated files. Each line
// holds one patient's readings, one column per day, with no header line.
package load

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mtraver/inflammation/cache"
	"github.com/mtraver/inflammation/inflammation"
	"github.com/mtraver/inflammation/logging"
)

// ParseError reports a malformed line or field. Col is 0 when the whole line
// is at fault.
type ParseError struct {
	Line int
	Col  int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Col == 0 {
		return fmt.Sprintf("load: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("load: line %d, column %d: %v", e.Line, e.Col, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func strsToFloats(x []string) ([]float64, int, error) {
	numbers := make([]float64, 0, len(x))
	for i, v := range x {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return numbers, i, err
		}
		numbers = append(numbers, f)
	}
	return numbers, 0, nil
}

// Read parses a table from r.
func Read(r io.Reader) (inflammation.Table, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	// Row lengths are checked below so that the error names the table shape.
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	var rows [][]float64
	for {
		line, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return inflammation.Table{}, &ParseError{Line: csvErr.Line, Col: csvErr.Column, Err: csvErr.Err}
			}
			return inflammation.Table{}, err
		}

		lineNum, _ := reader.FieldPos(0)
		values, col, err := strsToFloats(line)
		if err != nil {
			return inflammation.Table{}, &ParseError{Line: lineNum, Col: col + 1, Err: err}
		}

		if len(rows) > 0 && len(values) != len(rows[0]) {
			return inflammation.Table{}, &ParseError{
				Line: lineNum,
				Err:  fmt.Errorf("%w: got %d values, want %d", inflammation.ErrRagged, len(values), len(rows[0])),
			}
		}
		rows = append(rows, values)
	}

	t, err := inflammation.NewTable(rows)
	if err != nil {
		return inflammation.Table{}, fmt.Errorf("load: %w", err)
	}
	return t, nil
}

// CSV reads the table in the named file.
func CSV(filename string) (inflammation.Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return inflammation.Table{}, err
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return inflammation.Table{}, fmt.Errorf("%s: %w", filename, err)
	}
	return t, nil
}

// Cached loads tables and keeps them for a while so that repeated requests
// for the same file don't re-read it.
type Cached struct {
	tables *cache.Cache[inflammation.Table]
	load   func(string) (inflammation.Table, error)
}

func NewCached(ttl time.Duration) *Cached {
	return &Cached{
		tables: cache.New[inflammation.Table](ttl),
		load:   CSV,
	}
}

// CSV returns the table in the named file, from the cache if possible.
func (c *Cached) CSV(filename string) (inflammation.Table, error) {
	if t, ok := c.tables.Get(filename); ok {
		logging.Debug("table cache hit", "file", filename)
		return t, nil
	}

	t, err := c.load(filename)
	if err != nil {
		return inflammation.Table{}, err
	}

	if n := c.tables.Sweep(); n > 0 {
		logging.Debug("swept expired tables", "count", n)
	}
	c.tables.Set(filename, t)
	logging.Debug("loaded table", "file", filename, "patients", t.Patients(), "days", t.Days())
	return t, nil
}

func (c *Cached) Stats() cache.Stats {
	return c.tables.Stats()
}
