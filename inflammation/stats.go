package inflammation

import (
	"errors"
	"fmt"
	"math"
)

// ErrZeroMax is returned by PatientNormalise under ZeroMaxError when a
// patient's maximum reading is zero.
var ErrZeroMax = errors.New("inflammation: patient maximum is zero")

// DaySummary holds the statistics for a single day across all patients.
type DaySummary struct {
	Day    int     `json:"day"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stddev"`
}

// DailyMean returns the mean reading of each day across all patients.
func DailyMean(t Table) []float64 {
	sums := make([]float64, t.Days())
	for _, r := range t.rows {
		for j, v := range r {
			sums[j] += v
		}
	}

	for j := range sums {
		sums[j] /= float64(t.Patients())
	}
	return sums
}

// DailyStdDev returns the population standard deviation of each day's readings.
func DailyStdDev(t Table) []float64 {
	avg := DailyMean(t)

	sums := make([]float64, t.Days())
	for _, r := range t.rows {
		for j, v := range r {
			sums[j] += math.Pow(v-avg[j], 2)
		}
	}

	for j := range sums {
		sums[j] = math.Sqrt(sums[j] / float64(t.Patients()))
	}
	return sums
}

// DailyMin returns the lowest reading of each day.
func DailyMin(t Table) []float64 {
	x := make([]float64, t.Days())
	for j := range x {
		x[j] = math.Inf(1)
	}

	for _, r := range t.rows {
		for j, v := range r {
			if v < x[j] {
				x[j] = v
			}
		}
	}
	return x
}

// DailyMax returns the highest reading of each day.
func DailyMax(t Table) []float64 {
	x := make([]float64, t.Days())
	for j := range x {
		x[j] = math.Inf(-1)
	}

	for _, r := range t.rows {
		for j, v := range r {
			if v > x[j] {
				x[j] = v
			}
		}
	}
	return x
}

// Summarise bundles the daily statistics for each day.
func Summarise(t Table) []DaySummary {
	mean, lo, hi, sd := DailyMean(t), DailyMin(t), DailyMax(t), DailyStdDev(t)

	days := make([]DaySummary, t.Days())
	for j := range days {
		days[j] = DaySummary{
			Day:    j,
			Mean:   mean[j],
			Min:    lo[j],
			Max:    hi[j],
			StdDev: sd[j],
		}
	}
	return days
}

// ZeroMaxPolicy decides what PatientNormalise does with a patient whose
// maximum reading is zero.
type ZeroMaxPolicy int

const (
	// ZeroMaxAsZero emits the row as all zeros.
	ZeroMaxAsZero ZeroMaxPolicy = iota
	// ZeroMaxError fails with ErrZeroMax.
	ZeroMaxError
)

func (p ZeroMaxPolicy) String() string {
	switch p {
	case ZeroMaxAsZero:
		return "zero"
	case ZeroMaxError:
		return "error"
	}
	return fmt.Sprintf("ZeroMaxPolicy(%d)", int(p))
}

// ParseZeroMaxPolicy is the inverse of ZeroMaxPolicy.String.
func ParseZeroMaxPolicy(s string) (ZeroMaxPolicy, error) {
	switch s {
	case "zero":
		return ZeroMaxAsZero, nil
	case "error":
		return ZeroMaxError, nil
	}
	return 0, fmt.Errorf("inflammation: unknown zero-max policy %q (want zero or error)", s)
}

type normaliseOptions struct {
	zeroMax ZeroMaxPolicy
}

// NormaliseOption configures PatientNormalise.
type NormaliseOption func(*normaliseOptions)

// WithZeroMax sets the policy for rows whose maximum is zero. The default is
// ZeroMaxAsZero.
func WithZeroMax(p ZeroMaxPolicy) NormaliseOption {
	return func(o *normaliseOptions) {
		o.zeroMax = p
	}
}

// PatientNormalise divides each patient's readings by that patient's maximum
// reading, so every row with a positive maximum peaks at 1.
//
// A row whose maximum is negative is still divided by it, which flips the
// sign of every reading: [-2 -1] becomes [2 1], whose maximum is 2 rather
// than 1. Rows whose maximum is zero are handled by the ZeroMaxPolicy.
func PatientNormalise(t Table, opts ...NormaliseOption) (Table, error) {
	var o normaliseOptions
	for _, opt := range opts {
		opt(&o)
	}

	out := Table{rows: make([][]float64, t.Patients()), cols: t.Days()}
	for i, r := range t.rows {
		out.rows[i] = make([]float64, len(r))
		if len(r) == 0 {
			continue
		}

		rowMax := math.Inf(-1)
		for _, v := range r {
			rowMax = math.Max(rowMax, v)
		}

		if rowMax == 0 {
			if o.zeroMax == ZeroMaxError {
				return Table{}, fmt.Errorf("%w: row %d", ErrZeroMax, i)
			}
			continue
		}

		for j, v := range r {
			out.rows[i][j] = v / rowMax
		}
	}

	return out, nil
}
