package timetable

import (
	"math"
	"strconv"
	"strings"

	"github.com/crystaledu/timetable/pkg/model"
)

// ParseLTPSC splits a lecture-tutorial-practical-selfstudy-credit string
// into weekly hours. Short tuples are padded with zeros; any unparsable
// field zeroes the whole tuple so the course degrades to a no-op.
func ParseLTPSC(raw string) (lecture, tutorial, lab int) {
	parts := strings.Split(raw, "-")
	for len(parts) < 5 {
		parts = append(parts, "0")
	}
	vals := make([]int, 5)
	for i := 0; i < 5; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return 0, 0, 0
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2]
}

// Demand is the number of weekly sessions a course requires per kind.
type Demand struct {
	Lectures  int
	Tutorials int
	Labs      int
}

// DemandFor converts a course's weekly hours into session counts by
// ceiling division against the configured slot durations.
func (c *Catalog) DemandFor(course *model.Course) Demand {
	l, t, p := ParseLTPSC(course.LTPSC)
	return Demand{
		Lectures:  c.slotsNeeded(l, model.KindLecture),
		Tutorials: c.slotsNeeded(t, model.KindTutorial),
		Labs:      c.slotsNeeded(p, model.KindLab),
	}
}

func (c *Catalog) slotsNeeded(hours int, kind model.SessionKind) int {
	if hours <= 0 {
		return 0
	}
	dur, ok := c.durations[kind]
	if !ok || dur <= 0 {
		return 0
	}
	return int(math.Ceil(float64(hours*60) / float64(dur)))
}
