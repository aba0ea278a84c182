package timetable

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/crystaledu/timetable/internal/config"
	"github.com/crystaledu/timetable/pkg/model"
)

// Slot is one fixed time window of a given kind from the configured pools.
type Slot struct {
	Label string
	Range model.TimeRange
	Kind  model.SessionKind
}

// Catalog derives the per-kind slot pools, the week's day order, and a
// global chronological slot ordering used for tie-breaks and output sorting.
type Catalog struct {
	Days []string

	Lecture  []Slot
	Tutorial []Slot
	Lab      []Slot
	Minor    []Slot

	durations map[model.SessionKind]int
	tolerance int

	dayIndex  map[string]int
	slotIndex map[string]int
}

// NewCatalog parses the configured windows. Bad clock strings are a
// configuration error, not a runtime condition.
func NewCatalog(cfg *config.Config) (*Catalog, error) {
	c := &Catalog{
		Days: append([]string(nil), cfg.WorkingDays...),
		durations: map[model.SessionKind]int{
			model.KindLecture:  cfg.Durations.Lecture,
			model.KindTutorial: cfg.Durations.Tutorial,
			model.KindLab:      cfg.Durations.Lab,
		},
		tolerance: cfg.ToleranceMinutes,
		dayIndex:  make(map[string]int),
		slotIndex: make(map[string]int),
	}

	var err error
	if c.Lecture, err = parsePool(cfg.Slots.Lecture, model.KindLecture); err != nil {
		return nil, err
	}
	if c.Tutorial, err = parsePool(cfg.Slots.Tutorial, model.KindTutorial); err != nil {
		return nil, err
	}
	if c.Lab, err = parsePool(cfg.Slots.Lab, model.KindLab); err != nil {
		return nil, err
	}
	if c.Minor, err = parsePool(cfg.Slots.Minor, model.KindMinor); err != nil {
		return nil, err
	}

	for i, d := range c.Days {
		c.dayIndex[d] = i
	}

	all := make([]Slot, 0, len(c.Lecture)+len(c.Tutorial)+len(c.Lab)+len(c.Minor))
	all = append(all, c.Lecture...)
	all = append(all, c.Tutorial...)
	all = append(all, c.Lab...)
	all = append(all, c.Minor...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Range.Start < all[j].Range.Start
	})
	for i, s := range all {
		if _, seen := c.slotIndex[s.Label]; !seen {
			c.slotIndex[s.Label] = i
		}
	}

	return c, nil
}

// Pool returns the slot list backing one session kind.
func (c *Catalog) Pool(kind model.SessionKind) []Slot {
	switch kind {
	case model.KindTutorial:
		return c.Tutorial
	case model.KindLab:
		return c.Lab
	case model.KindMinor:
		return c.Minor
	}
	return c.Lecture
}

// Duration returns the expected session length for a kind. Minor sessions
// have no expected length and report ok=false.
func (c *Catalog) Duration(kind model.SessionKind) (minutes int, ok bool) {
	minutes, ok = c.durations[kind]
	return minutes, ok
}

// FitsDuration checks a slot's window against a kind's expected length
// within the configured tolerance.
func (c *Catalog) FitsDuration(s Slot, kind model.SessionKind) bool {
	expected, ok := c.durations[kind]
	if !ok {
		return true
	}
	drift := s.Range.Minutes() - expected
	if drift < 0 {
		drift = -drift
	}
	return drift <= c.tolerance
}

// DayIndex orders days by the configured week; unknown days (the
// UNSCHEDULED sentinel included) sort last.
func (c *Catalog) DayIndex(day string) int {
	if i, ok := c.dayIndex[day]; ok {
		return i
	}
	return len(c.dayIndex) + 1
}

// SlotIndex orders slot labels chronologically across every pool.
func (c *Catalog) SlotIndex(label string) int {
	if i, ok := c.slotIndex[label]; ok {
		return i
	}
	return len(c.slotIndex) + 1
}

func parsePool(windows []string, kind model.SessionKind) ([]Slot, error) {
	slots := make([]Slot, 0, len(windows))
	for _, w := range windows {
		rng, err := parseWindow(w)
		if err != nil {
			return nil, fmt.Errorf("%s slot %q: %w", kind, w, err)
		}
		slots = append(slots, Slot{Label: w, Range: rng, Kind: kind})
	}
	return slots, nil
}

func parseWindow(w string) (model.TimeRange, error) {
	parts := strings.SplitN(w, "-", 2)
	if len(parts) != 2 {
		return model.TimeRange{}, fmt.Errorf("want HH:MM-HH:MM")
	}
	start, err := parseClock(parts[0])
	if err != nil {
		return model.TimeRange{}, err
	}
	end, err := parseClock(parts[1])
	if err != nil {
		return model.TimeRange{}, err
	}
	if end <= start {
		return model.TimeRange{}, fmt.Errorf("window ends before it starts")
	}
	return model.TimeRange{Start: start, End: end}, nil
}

func parseClock(t string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(t), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("bad clock %q", t)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("bad clock %q", t)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("bad clock %q", t)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock %q out of range", t)
	}
	return h*60 + m, nil
}
