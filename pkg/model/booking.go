package model

// TimeRange is a window within one day, in minutes since midnight.
type TimeRange struct {
	Start int
	End   int
}

// Overlaps uses closed-open semantics: ranges that touch at an endpoint do
// not overlap.
func (a TimeRange) Overlaps(b TimeRange) bool {
	return !(a.End <= b.Start || b.End <= a.Start)
}

// Minutes returns the duration of the range.
func (a TimeRange) Minutes() int {
	return a.End - a.Start
}

// Booking is one committed placement. Once appended to the ledger it is
// never mutated or retracted for the rest of the run.
type Booking struct {
	Day      string
	Slot     string
	Range    TimeRange
	Room     string
	Faculty  string
	Branch   string
	Semester string
	Course   string
	Kind     SessionKind
	// Grouped marks bookings committed as part of an elective or minor
	// basket, which intentionally share their cohort's time window.
	Grouped bool
}
