package timetable

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/crystaledu/timetable/pkg/model"
)

// session is one unit of demand awaiting a (day, slot, room) triple.
type session struct {
	code     string
	title    string
	faculty  string
	strength int
	kind     model.SessionKind
	label    string
}

func (s session) describe() string {
	return fmt.Sprintf("%s - %s (%s)", s.code, s.title, s.label)
}

// cohort is one independently scheduled (branch, semester) unit.
type cohort struct {
	Branch   string
	Semester string
	Courses  []*model.Course
}

// Scheduler runs the greedy placement pipeline against a shared ledger.
// Branches and semesters are processed sequentially; rooms and faculty are
// global resources, so cohort order affects outcomes.
type Scheduler struct {
	catalog *Catalog
	ledger  *Ledger
	alloc   *RoomAllocator
	rng     *rand.Rand
	log     *zap.Logger
}

type Option func(*Scheduler)

// WithSeed fixes the shuffle order for reproducible runs.
func WithSeed(seed int64) Option {
	return func(s *Scheduler) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand injects a randomness source directly; tests use this to force
// deterministic search orders.
func WithRand(r *rand.Rand) Option {
	return func(s *Scheduler) { s.rng = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) { s.log = l }
}

func New(catalog *Catalog, rooms []*model.Room, opts ...Option) *Scheduler {
	ledger := NewLedger()
	s := &Scheduler{
		catalog: catalog,
		ledger:  ledger,
		alloc:   NewRoomAllocator(rooms, ledger),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ledger exposes the run's committed bookings for validation.
func (s *Scheduler) Ledger() *Ledger {
	return s.ledger
}

// GenerateAll schedules every cohort derived from the course table and
// returns the per-branch, per-semester timetable mapping.
func (s *Scheduler) GenerateAll(courses []*model.Course) model.Timetable {
	result := model.Timetable{}
	for _, c := range expandCohorts(courses) {
		rows := s.scheduleCohort(c)
		if result[c.Branch] == nil {
			result[c.Branch] = make(map[string][]*model.Placement)
		}
		result[c.Branch][c.Semester] = rows

		unplaced := 0
		for _, r := range rows {
			if r.Unscheduled() {
				unplaced++
			}
		}
		s.log.Info("cohort scheduled",
			zap.String("branch", c.Branch),
			zap.String("semester", c.Semester),
			zap.Int("sessions", len(rows)),
			zap.Int("unscheduled", unplaced),
		)
	}
	return result
}

func (s *Scheduler) scheduleCohort(c cohort) []*model.Placement {
	var cores, electives, minors []*model.Course
	for _, course := range c.Courses {
		switch course.Category {
		case model.CategoryElective:
			electives = append(electives, course)
		case model.CategoryMinor:
			minors = append(minors, course)
		default:
			cores = append(cores, course)
		}
	}

	var rows []*model.Placement
	rows = append(rows, s.placeCoreLabs(c, cores)...)
	rows = append(rows, s.placeElectiveGroups(c, electives)...)
	rows = append(rows, s.placeMinorGroup(c, minors)...)

	lectures, tutorials := coreSingles(s.catalog, cores)
	s.rng.Shuffle(len(lectures), func(i, j int) {
		lectures[i], lectures[j] = lectures[j], lectures[i]
	})
	rows = append(rows, s.placeSingles(c, lectures)...)
	s.rng.Shuffle(len(tutorials), func(i, j int) {
		tutorials[i], tutorials[j] = tutorials[j], tutorials[i]
	})
	rows = append(rows, s.placeSingles(c, tutorials)...)

	var placed, residual []*model.Placement
	for _, r := range rows {
		if r.Unscheduled() {
			residual = append(residual, r)
		} else {
			placed = append(placed, r)
		}
	}
	recovered, remaining := s.salvage(c, residual)
	rows = append(placed, recovered...)
	rows = append(rows, remaining...)

	SortRows(s.catalog, rows)
	return rows
}

// placeCoreLabs runs phase 1: deterministic day-then-slot scan, stable
// course order, so lab placement stays reproducible and lab rooms fragment
// as little as possible.
func (s *Scheduler) placeCoreLabs(c cohort, cores []*model.Course) []*model.Placement {
	var rows []*model.Placement
	for _, course := range cores {
		demand := s.catalog.DemandFor(course)
		for n := 0; n < demand.Labs; n++ {
			sess := session{
				code:     course.Code,
				title:    course.Title,
				faculty:  course.Faculty,
				strength: course.Strength,
				kind:     model.KindLab,
				label:    "Lab",
			}
			row := (*model.Placement)(nil)
			for _, day := range s.catalog.Days {
				row = s.tryPlace(c, sess, day)
				if row != nil {
					break
				}
			}
			if row == nil {
				row = residualRow(sess)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// placeSingles runs phases 4 and 5: one session at a time, randomized day
// order against the kind's slot pool.
func (s *Scheduler) placeSingles(c cohort, sessions []session) []*model.Placement {
	var rows []*model.Placement
	for _, sess := range sessions {
		days := s.shuffledDays()
		row := (*model.Placement)(nil)
		for _, day := range days {
			row = s.tryPlace(c, sess, day)
			if row != nil {
				break
			}
		}
		if row == nil {
			row = residualRow(sess)
		}
		rows = append(rows, row)
	}
	return rows
}

// tryPlace scans one day's slot pool for the session and commits the first
// feasible (slot, room) pair. Returns nil when the day is exhausted.
func (s *Scheduler) tryPlace(c cohort, sess session, day string) *model.Placement {
	for _, slot := range s.catalog.Pool(sess.kind) {
		if !s.catalog.FitsDuration(slot, sess.kind) {
			continue
		}
		if !s.ledger.CohortFree(c.Branch, c.Semester, day, slot.Range) {
			continue
		}
		if sess.kind == model.KindLecture &&
			s.ledger.LectureOnDay(c.Branch, c.Semester, sess.code, day) {
			continue
		}
		if !s.ledger.FacultyFree(sess.faculty, day, slot.Range) {
			continue
		}
		room := s.alloc.Choose(day, slot.Range, sess.kind == model.KindLab, sess.strength, nil)
		if room == nil {
			continue
		}
		s.ledger.Commit(&model.Booking{
			Day:      day,
			Slot:     slot.Label,
			Range:    slot.Range,
			Room:     room.Name,
			Faculty:  sess.faculty,
			Branch:   c.Branch,
			Semester: c.Semester,
			Course:   sess.code,
			Kind:     sess.kind,
		})
		s.ledger.BlockCohort(c.Branch, c.Semester, day, slot.Range)
		return placedRow(sess, day, slot.Label, room.Name)
	}
	return nil
}

// placeElectiveGroups runs phase 2. For each lecture index i, every
// elective still needing its i-th lecture is pinned to one common
// (day, slot) so students can attend whichever basket course they chose.
// Tutorials follow the same procedure per index.
func (s *Scheduler) placeElectiveGroups(c cohort, electives []*model.Course) []*model.Placement {
	if len(electives) == 0 {
		return nil
	}

	type electiveDemand struct {
		course *model.Course
		demand Demand
	}
	info := make([]electiveDemand, 0, len(electives))
	maxLectures, maxTutorials := 0, 0
	for _, e := range electives {
		d := s.catalog.DemandFor(e)
		info = append(info, electiveDemand{course: e, demand: d})
		if d.Lectures > maxLectures {
			maxLectures = d.Lectures
		}
		if d.Tutorials > maxTutorials {
			maxTutorials = d.Tutorials
		}
	}

	var rows []*model.Placement
	for i := 1; i <= maxLectures; i++ {
		var members []session
		for _, e := range info {
			if e.demand.Lectures >= i {
				members = append(members, session{
					code:     e.course.Code,
					title:    e.course.Title,
					faculty:  e.course.Faculty,
					strength: e.course.Strength,
					kind:     model.KindLecture,
					label:    fmt.Sprintf("Elective Lecture %d", i),
				})
			}
		}
		rows = append(rows, s.placeGroupOverDays(c, members, s.catalog.Lecture)...)
	}
	for j := 1; j <= maxTutorials; j++ {
		var members []session
		for _, e := range info {
			if e.demand.Tutorials >= j {
				members = append(members, session{
					code:     e.course.Code,
					title:    e.course.Title,
					faculty:  e.course.Faculty,
					strength: e.course.Strength,
					kind:     model.KindTutorial,
					label:    fmt.Sprintf("Elective Tutorial %d", j),
				})
			}
		}
		rows = append(rows, s.placeGroupOverDays(c, members, s.catalog.Tutorial)...)
	}
	return rows
}

// placeMinorGroup runs phase 3: all minor offerings of the cohort land in
// one common (day, slot) drawn exclusively from the minor pool, scanned
// slot-major with days shuffled per window.
func (s *Scheduler) placeMinorGroup(c cohort, minors []*model.Course) []*model.Placement {
	if len(minors) == 0 {
		return nil
	}
	members := make([]session, 0, len(minors))
	for _, m := range minors {
		members = append(members, session{
			code:     m.Code,
			title:    m.Title,
			faculty:  m.Faculty,
			strength: m.Strength,
			kind:     model.KindMinor,
			label:    "Minor",
		})
	}
	for _, slot := range s.catalog.Minor {
		for _, day := range s.shuffledDays() {
			if rows, ok := s.attemptGroup(c, members, day, slot); ok {
				return rows
			}
		}
	}
	return residualGroup(members)
}

func (s *Scheduler) placeGroupOverDays(c cohort, members []session, pool []Slot) []*model.Placement {
	if len(members) == 0 {
		return nil
	}
	for _, day := range s.shuffledDays() {
		for _, slot := range pool {
			if rows, ok := s.attemptGroup(c, members, day, slot); ok {
				return rows
			}
		}
	}
	return residualGroup(members)
}

// attemptGroup stages room and faculty assignments for every member of a
// basket and commits all of them, or none, for the candidate (day, slot).
func (s *Scheduler) attemptGroup(c cohort, members []session, day string, slot Slot) ([]*model.Placement, bool) {
	if !s.catalog.FitsDuration(slot, members[0].kind) {
		return nil, false
	}
	if !s.ledger.CohortFree(c.Branch, c.Semester, day, slot.Range) {
		return nil, false
	}

	type staged struct {
		member session
		room   string
	}
	exclude := make(map[string]bool, len(members))
	facultyStaged := make(map[string]bool, len(members))
	stage := make([]staged, 0, len(members))
	for _, m := range members {
		if m.kind == model.KindLecture &&
			s.ledger.LectureOnDay(c.Branch, c.Semester, m.code, day) {
			return nil, false
		}
		// a faculty member cannot teach two basket courses at once
		if m.faculty != "" && facultyStaged[m.faculty] {
			return nil, false
		}
		if !s.ledger.FacultyFree(m.faculty, day, slot.Range) {
			return nil, false
		}
		facultyStaged[m.faculty] = true
		room := s.alloc.Choose(day, slot.Range, false, m.strength, exclude)
		if room == nil {
			return nil, false
		}
		exclude[room.Name] = true
		stage = append(stage, staged{member: m, room: room.Name})
	}

	rows := make([]*model.Placement, 0, len(stage))
	for _, st := range stage {
		s.ledger.Commit(&model.Booking{
			Day:      day,
			Slot:     slot.Label,
			Range:    slot.Range,
			Room:     st.room,
			Faculty:  st.member.faculty,
			Branch:   c.Branch,
			Semester: c.Semester,
			Course:   st.member.code,
			Kind:     st.member.kind,
			Grouped:  true,
		})
		rows = append(rows, placedRow(st.member, day, slot.Label, st.room))
	}
	// one reservation covers the whole basket
	s.ledger.BlockCohort(c.Branch, c.Semester, day, slot.Range)
	return rows, true
}

func (s *Scheduler) shuffledDays() []string {
	days := append([]string(nil), s.catalog.Days...)
	s.rng.Shuffle(len(days), func(i, j int) {
		days[i], days[j] = days[j], days[i]
	})
	return days
}

func coreSingles(catalog *Catalog, cores []*model.Course) (lectures, tutorials []session) {
	for _, course := range cores {
		demand := catalog.DemandFor(course)
		base := session{
			code:     course.Code,
			title:    course.Title,
			faculty:  course.Faculty,
			strength: course.Strength,
		}
		for n := 0; n < demand.Lectures; n++ {
			sess := base
			sess.kind = model.KindLecture
			sess.label = "Lecture"
			lectures = append(lectures, sess)
		}
		for n := 0; n < demand.Tutorials; n++ {
			sess := base
			sess.kind = model.KindTutorial
			sess.label = "Tutorial"
			tutorials = append(tutorials, sess)
		}
	}
	return lectures, tutorials
}

func placedRow(sess session, day, slot, room string) *model.Placement {
	return &model.Placement{
		Day:      day,
		Slot:     slot,
		Course:   sess.describe(),
		Faculty:  sess.faculty,
		Room:     room,
		Code:     sess.code,
		Title:    sess.title,
		Kind:     sess.kind,
		Label:    sess.label,
		Strength: sess.strength,
	}
}

func residualRow(sess session) *model.Placement {
	return &model.Placement{
		Day:      model.DayUnscheduled,
		Slot:     model.SlotNA,
		Course:   sess.describe(),
		Faculty:  sess.faculty,
		Room:     model.RoomNA,
		Code:     sess.code,
		Title:    sess.title,
		Kind:     sess.kind,
		Label:    sess.label,
		Strength: sess.strength,
	}
}

func residualGroup(members []session) []*model.Placement {
	rows := make([]*model.Placement, 0, len(members))
	for _, m := range members {
		rows = append(rows, residualRow(m))
	}
	return rows
}

// expandCohorts normalizes departments, splits sectioned departments into
// independent branches, and buckets courses per (branch, semester).
// Rows with a blank, ALL, or COMBINED section replicate into every branch
// of their department.
func expandCohorts(courses []*model.Course) []cohort {
	type deptGroup struct {
		sections map[string]bool
		rows     []*model.Course
	}
	depts := make(map[string]*deptGroup)
	var deptOrder []string
	for _, course := range courses {
		dept := strings.ToUpper(strings.TrimSpace(course.Department))
		if dept == "" {
			continue
		}
		g := depts[dept]
		if g == nil {
			g = &deptGroup{sections: make(map[string]bool)}
			depts[dept] = g
			deptOrder = append(deptOrder, dept)
		}
		if sec := normalizeSection(course.Section); sec != "" {
			g.sections[sec] = true
		}
		g.rows = append(g.rows, course)
	}
	sort.Strings(deptOrder)

	var cohorts []cohort
	for _, dept := range deptOrder {
		g := depts[dept]

		var branches []string
		if len(g.sections) == 0 {
			branches = []string{dept}
		} else {
			secs := make([]string, 0, len(g.sections))
			for sec := range g.sections {
				secs = append(secs, sec)
			}
			sort.Strings(secs)
			for _, sec := range secs {
				branches = append(branches, dept+"-"+sec)
			}
		}

		perBranch := make(map[string][]*model.Course, len(branches))
		for _, course := range g.rows {
			sec := normalizeSection(course.Section)
			if sec != "" && len(g.sections) > 0 {
				perBranch[dept+"-"+sec] = append(perBranch[dept+"-"+sec], course)
				continue
			}
			for _, b := range branches {
				perBranch[b] = append(perBranch[b], course)
			}
		}

		sems := make(map[int]bool)
		for _, course := range g.rows {
			sems[course.Semester] = true
		}
		semOrder := make([]int, 0, len(sems))
		for sem := range sems {
			semOrder = append(semOrder, sem)
		}
		sort.Ints(semOrder)

		for _, sem := range semOrder {
			for _, b := range branches {
				var subset []*model.Course
				for _, course := range perBranch[b] {
					if course.Semester == sem {
						subset = append(subset, course)
					}
				}
				if len(subset) == 0 {
					continue
				}
				cohorts = append(cohorts, cohort{
					Branch:   b,
					Semester: strconv.Itoa(sem),
					Courses:  subset,
				})
			}
		}
	}
	return cohorts
}

func normalizeSection(raw string) string {
	sec := strings.ToUpper(strings.TrimSpace(raw))
	if sec == "" || strings.Contains(sec, "ALL") || strings.Contains(sec, "COMBINED") {
		return ""
	}
	return sec
}
