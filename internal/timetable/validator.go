package timetable

import (
	"fmt"

	"github.com/crystaledu/timetable/pkg/model"
)

// Validate checks a finished run against the scheduling invariants: no
// room, faculty, or cohort double-booking, lecture uniqueness per day, and
// conservation of expanded session counts. Returns false and a report for
// violated invariants.
func Validate(catalog *Catalog, courses []*model.Course, result model.Timetable, ledger *Ledger) (bool, string) {
	var message string
	valid := true

	bookings := ledger.Bookings()
	roomOK := true
	facultyOK := true
	cohortOK := true
	lectureOK := true

	for i, a := range bookings {
		for _, b := range bookings[i+1:] {
			if a.Day != b.Day || !a.Range.Overlaps(b.Range) {
				continue
			}
			if a.Room == b.Room {
				roomOK = false
				message += fmt.Sprintf("- Room %s double-booked on %s (%s, %s)\n", a.Room, a.Day, a.Course, b.Course)
			}
			if a.Faculty != "" && a.Faculty == b.Faculty {
				facultyOK = false
				message += fmt.Sprintf("- Faculty %s double-booked on %s (%s, %s)\n", a.Faculty, a.Day, a.Course, b.Course)
			}
			if a.Branch == b.Branch && a.Semester == b.Semester {
				// grouped baskets legitimately share one window, but only
				// the identical one
				if !(a.Grouped && b.Grouped && a.Slot == b.Slot) {
					cohortOK = false
					message += fmt.Sprintf("- Cohort %s/%s double-booked on %s (%s, %s)\n", a.Branch, a.Semester, a.Day, a.Course, b.Course)
				}
			}
		}
	}

	lecturesSeen := make(map[string]bool)
	for _, b := range bookings {
		if b.Kind != model.KindLecture {
			continue
		}
		key := b.Branch + "|" + b.Semester + "|" + b.Course + "|" + b.Day
		if lecturesSeen[key] {
			lectureOK = false
			message += fmt.Sprintf("- Course %s has two lectures on %s for %s/%s\n", b.Course, b.Day, b.Branch, b.Semester)
		}
		lecturesSeen[key] = true
	}

	countsOK, countsMsg := checkSessionCounts(catalog, courses, result)
	message += countsMsg

	unscheduled := 0
	for _, semesters := range result {
		for _, rows := range semesters {
			for _, r := range rows {
				if r.Unscheduled() {
					unscheduled++
				}
			}
		}
	}

	valid = roomOK && facultyOK && cohortOK && lectureOK && countsOK

	message = statusLine(countsOK, "Session count conservation check.") + message
	message = statusLine(lectureOK, "Same-day lecture uniqueness check.") + message
	message = statusLine(cohortOK, "Cohort collision check.") + message
	message = statusLine(facultyOK, "Faculty collision check.") + message
	message = statusLine(roomOK, "Room collision check.") + message
	if unscheduled > 0 {
		message += fmt.Sprintf("[WARN]: %d session(s) left unscheduled after salvage.\n", unscheduled)
	}

	return valid, message
}

func statusLine(ok bool, what string) string {
	if ok {
		return "[  OK]: " + what + "\n"
	}
	return "[FAIL]: " + what + "\n"
}

// checkSessionCounts verifies that placed + unscheduled rows per course and
// kind match the expander's demand for every cohort the course landed in.
func checkSessionCounts(catalog *Catalog, courses []*model.Course, result model.Timetable) (bool, string) {
	ok := true
	var message string

	for _, c := range expandCohorts(courses) {
		rows := result[c.Branch][c.Semester]
		if rows == nil {
			continue
		}
		expected := make(map[string]int)
		for _, course := range c.Courses {
			switch course.Category {
			case model.CategoryMinor:
				expected[course.Code+"|"+model.KindMinor.String()]++
			case model.CategoryElective:
				d := catalog.DemandFor(course)
				expected[course.Code+"|"+model.KindLecture.String()] += d.Lectures
				expected[course.Code+"|"+model.KindTutorial.String()] += d.Tutorials
			default:
				d := catalog.DemandFor(course)
				expected[course.Code+"|"+model.KindLecture.String()] += d.Lectures
				expected[course.Code+"|"+model.KindTutorial.String()] += d.Tutorials
				expected[course.Code+"|"+model.KindLab.String()] += d.Labs
			}
		}
		actual := make(map[string]int)
		for _, r := range rows {
			actual[r.Code+"|"+r.Kind.String()]++
		}
		for key, want := range expected {
			if actual[key] != want {
				ok = false
				message += fmt.Sprintf("- %s/%s %s: expected %d session(s), found %d\n", c.Branch, c.Semester, key, want, actual[key])
			}
		}
	}

	return ok, message
}
