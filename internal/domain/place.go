package domain

// Place is a named observer location with its customary timezone offset.
type Place struct {
	ID            string
	Name          string
	Location      Location
	TZOffsetHours float64
}

// Context builds a CalculationContext for the place on the given date.
func (p Place) Context(m ReferenceMoment) CalculationContext {
	m.TZOffsetHours = p.TZOffsetHours
	return CalculationContext{Moment: m, Location: p.Location}
}
