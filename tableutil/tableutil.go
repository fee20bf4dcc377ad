// Package tableutil converts patient records into inflammation tables so that
// the statistics in package inflammation can be computed over them.
package tableutil

import (
	"errors"
	"fmt"

	"github.com/mtraver/inflammation/inflammation"
	"github.com/mtraver/inflammation/patient"
)

// MaxDays bounds the number of columns FromPatients will allocate.
const MaxDays = 1 << 20

var (
	ErrNegativeDay = errors.New("tableutil: observation has a negative day")
	ErrDayTooLarge = errors.New("tableutil: observation day is too large")
)

// FromPatients returns a table with one row per patient, in order, and one
// column per day from 0 to the latest day observed for any patient. Cells for
// which a patient has no observation are set to fill. If a patient has more
// than one observation for a day, the one added last is used. Days must lie in
// [0, MaxDays).
func FromPatients(patients []*patient.Patient, fill float64) (inflammation.Table, error) {
	days := 0
	for _, p := range patients {
		for _, o := range p.Observations() {
			if o.Day < 0 {
				return inflammation.Table{}, fmt.Errorf("%w: %s day %d", ErrNegativeDay, p.Name, o.Day)
			}
			if o.Day >= MaxDays {
				return inflammation.Table{}, fmt.Errorf("%w: %s day %d, limit %d", ErrDayTooLarge, p.Name, o.Day, MaxDays)
			}
			if o.Day >= days {
				days = o.Day + 1
			}
		}
	}

	rows := make([][]float64, len(patients))
	for i, p := range patients {
		rows[i] = make([]float64, days)
		for j := range rows[i] {
			rows[i][j] = fill
		}
		for _, o := range p.Observations() {
			rows[i][o.Day] = o.Value
		}
	}

	return inflammation.NewTable(rows)
}

// FromDoctor returns the table for all of a doctor's patients.
func FromDoctor(d *patient.Doctor, fill float64) (inflammation.Table, error) {
	return FromPatients(d.Patients(), fill)
}
