// Package patient models patients, the inflammation readings recorded for
// them, and the doctors responsible for them.
package patient

import (
	"errors"
	"fmt"
)

var ErrNoObservations = errors.New("patient: no observations")

// Observation is a single reading taken on a given day.
type Observation struct {
	Day   int     `json:"day"`
	Value float64 `json:"value"`
}

func (o Observation) String() string {
	return fmt.Sprintf("day %d: %g", o.Day, o.Value)
}

// Person is a named individual with no recorded readings.
type Person struct {
	Name string
}

func (p Person) String() string {
	return p.Name
}

// Patient is a named person with a history of observations. The history is
// kept in the order observations were added and can only be appended to.
type Patient struct {
	Name         string
	observations []Observation
}

// New returns a Patient with a copy of the given observations as its history.
func New(name string, observations ...Observation) *Patient {
	p := &Patient{Name: name}
	if len(observations) > 0 {
		p.observations = make([]Observation, len(observations))
		copy(p.observations, observations)
	}
	return p
}

// AddObservation records a value on the day after the most recently added
// observation, or on day 0 if there are none. Day arithmetic follows int
// overflow, so after an observation on math.MaxInt the next day is
// math.MinInt.
func (p *Patient) AddObservation(value float64) Observation {
	day := 0
	if n := len(p.observations); n > 0 {
		day = p.observations[n-1].Day + 1
	}
	return p.AddObservationOn(day, value)
}

// AddObservationOn records a value on the given day. The day isn't checked
// against the existing history, so it may repeat or precede earlier days.
func (p *Patient) AddObservationOn(day int, value float64) Observation {
	o := Observation{Day: day, Value: value}
	p.observations = append(p.observations, o)
	return o
}

// LastObservation returns the most recently added observation, which is not
// necessarily the one with the latest day.
func (p *Patient) LastObservation() (Observation, error) {
	if len(p.observations) == 0 {
		return Observation{}, fmt.Errorf("%w: %s", ErrNoObservations, p.Name)
	}
	return p.observations[len(p.observations)-1], nil
}

// Len returns the number of observations.
func (p *Patient) Len() int {
	return len(p.observations)
}

// Observations returns a copy of the history in insertion order.
func (p *Patient) Observations() []Observation {
	obs := make([]Observation, len(p.observations))
	copy(obs, p.observations)
	return obs
}

func (p *Patient) String() string {
	return p.Name
}

// GoString is used by the %#v verb.
func (p *Patient) GoString() string {
	return fmt.Sprintf("Patient: (%s)", p.Name)
}
