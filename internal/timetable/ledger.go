package timetable

import (
	"github.com/crystaledu/timetable/pkg/model"
)

// Ledger records every committed booking of one generation run and answers
// resource availability queries for rooms, faculty, and student cohorts.
// It is shared process-wide: all branches and semesters book against the
// same rooms and faculty. Not safe for concurrent use.
type Ledger struct {
	order   []*model.Booking
	byDay   map[string][]*model.Booking
	byRoom  map[string][]*model.Booking
	cohorts map[string]map[string][]model.TimeRange
}

func NewLedger() *Ledger {
	return &Ledger{
		byDay:   make(map[string][]*model.Booking),
		byRoom:  make(map[string][]*model.Booking),
		cohorts: make(map[string]map[string][]model.TimeRange),
	}
}

func cohortKey(branch, semester string) string {
	return branch + "|" + semester
}

// RoomFree reports whether the room has no overlapping commitment on day.
func (l *Ledger) RoomFree(room, day string, rng model.TimeRange) bool {
	for _, b := range l.byRoom[room] {
		if b.Day == day && b.Range.Overlaps(rng) {
			return false
		}
	}
	return true
}

// FacultyFree reports whether the faculty member has no overlapping
// commitment on day. An empty name never conflicts.
func (l *Ledger) FacultyFree(faculty, day string, rng model.TimeRange) bool {
	if faculty == "" {
		return true
	}
	for _, b := range l.byDay[day] {
		if b.Faculty == faculty && b.Range.Overlaps(rng) {
			return false
		}
	}
	return true
}

// CohortFree reports whether the (branch, semester) student population has
// no overlapping reservation on day. Grouped baskets reserve their window
// once for the whole group.
func (l *Ledger) CohortFree(branch, semester, day string, rng model.TimeRange) bool {
	for _, r := range l.cohorts[cohortKey(branch, semester)][day] {
		if r.Overlaps(rng) {
			return false
		}
	}
	return true
}

// LectureOnDay reports whether the course already has a lecture committed
// on day for this cohort. Tutorials and labs of the same course are exempt.
func (l *Ledger) LectureOnDay(branch, semester, course, day string) bool {
	for _, b := range l.byDay[day] {
		if b.Kind == model.KindLecture && b.Branch == branch &&
			b.Semester == semester && b.Course == course {
			return true
		}
	}
	return false
}

// Commit appends one immutable booking to the day and room indices. The
// caller reserves the cohort window separately via BlockCohort, once per
// placement or once per grouped basket.
func (l *Ledger) Commit(b *model.Booking) {
	l.order = append(l.order, b)
	l.byDay[b.Day] = append(l.byDay[b.Day], b)
	l.byRoom[b.Room] = append(l.byRoom[b.Room], b)
}

// BlockCohort reserves a time window for the cohort on day.
func (l *Ledger) BlockCohort(branch, semester, day string, rng model.TimeRange) {
	key := cohortKey(branch, semester)
	if l.cohorts[key] == nil {
		l.cohorts[key] = make(map[string][]model.TimeRange)
	}
	l.cohorts[key][day] = append(l.cohorts[key][day], rng)
}

// Bookings returns every commitment in commit order.
func (l *Ledger) Bookings() []*model.Booking {
	return l.order
}
