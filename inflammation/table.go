// Package inflammation computes summary statistics over tables of inflammation
// readings, where each row holds one patient's readings and each column holds
// one day's readings across all patients.
package inflammation

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrRagged    = errors.New("inflammation: rows have different lengths")
	ErrNonFinite = errors.New("inflammation: value is NaN or infinite")
)

// TypeError reports a table element that is not a number.
type TypeError struct {
	Row   int
	Col   int
	Value any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("inflammation: element [%d][%d] has non-numeric type %T (%v)", e.Row, e.Col, e.Value, e.Value)
}

// Table is a rectangular table of readings. Rows are patients and columns are
// days. The zero value is an empty table.
type Table struct {
	rows [][]float64
	cols int
}

// NewTable copies rows into a Table. All rows must be the same length and
// every value must be finite.
func NewTable(rows [][]float64) (Table, error) {
	t := Table{rows: make([][]float64, len(rows))}
	for i, r := range rows {
		if i == 0 {
			t.cols = len(r)
		} else if len(r) != t.cols {
			return Table{}, fmt.Errorf("%w: row %d has %d values, want %d", ErrRagged, i, len(r), t.cols)
		}

		for j, v := range r {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Table{}, fmt.Errorf("%w: element [%d][%d]", ErrNonFinite, i, j)
			}
		}

		t.rows[i] = copyRow(r)
	}

	return t, nil
}

// MustTable is like NewTable but panics on error. It's intended for tests
// and fixed data.
func MustTable(rows [][]float64) Table {
	t, err := NewTable(rows)
	if err != nil {
		panic(err)
	}
	return t
}

// FromValues builds a Table from loosely typed values, e.g. decoded JSON. Any
// element that isn't a Go numeric type results in a *TypeError.
func FromValues(rows [][]any) (Table, error) {
	floats := make([][]float64, len(rows))
	for i, r := range rows {
		floats[i] = make([]float64, len(r))
		for j, v := range r {
			f, ok := toFloat(v)
			if !ok {
				return Table{}, &TypeError{Row: i, Col: j, Value: v}
			}
			floats[i][j] = f
		}
	}

	return NewTable(floats)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// Patients returns the number of rows.
func (t Table) Patients() int {
	return len(t.rows)
}

// Days returns the number of columns.
func (t Table) Days() int {
	return t.cols
}

// At returns the reading for the given patient and day.
func (t Table) At(patient, day int) float64 {
	return t.rows[patient][day]
}

// Row returns a copy of one patient's readings.
func (t Table) Row(patient int) []float64 {
	return copyRow(t.rows[patient])
}

// Rows returns a copy of the table's contents.
func (t Table) Rows() [][]float64 {
	rows := make([][]float64, len(t.rows))
	for i, r := range t.rows {
		rows[i] = copyRow(r)
	}
	return rows
}

func copyRow(r []float64) []float64 {
	c := make([]float64, len(r))
	copy(c, r)
	return c
}
