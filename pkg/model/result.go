package model

// Sentinel values for sessions that survived the salvage pass unplaced.
const (
	DayUnscheduled = "UNSCHEDULED"
	SlotNA         = "N/A"
	RoomNA         = "N/A"
)

// Placement is one row of the final per-cohort timetable. The csv-tagged
// columns are the export surface; the rest carries enough identity for the
// salvage pass and the validator.
type Placement struct {
	Day     string `csv:"Day"`
	Slot    string `csv:"Slot"`
	Course  string `csv:"Course"`
	Faculty string `csv:"Faculty"`
	Room    string `csv:"Room"`

	Code     string      `csv:"-"`
	Title    string      `csv:"-"`
	Kind     SessionKind `csv:"-"`
	Label    string      `csv:"-"`
	Strength int         `csv:"-"`
}

// Unscheduled reports whether the row is a residual sentinel.
func (p *Placement) Unscheduled() bool {
	return p.Day == DayUnscheduled
}

// Timetable maps branch -> semester (decimal string) -> ordered rows. It is
// the sole handoff to the export and HTTP layers.
type Timetable map[string]map[string][]*Placement
