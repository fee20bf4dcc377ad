package patient

// Doctor is responsible for a list of patients. A patient may be referenced by
// other code as well; the doctor owns only the list.
type Doctor struct {
	Name     string
	patients []*Patient
}

func NewDoctor(name string) *Doctor {
	return &Doctor{Name: name}
}

// AddPatient appends p to the doctor's list.
func (d *Doctor) AddPatient(p *Patient) {
	d.patients = append(d.patients, p)
}

// Patients returns the doctor's patients in the order they were added. The
// returned slice is a copy, but the patients are shared.
func (d *Doctor) Patients() []*Patient {
	ps := make([]*Patient, len(d.patients))
	copy(ps, d.patients)
	return ps
}

func (d *Doctor) String() string {
	return d.Name
}
