package csvio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystaledu/timetable/pkg/model"
)

func TestExportTimetableLayout(t *testing.T) {
	dir := t.TempDir()
	result := model.Timetable{
		"CSE-B": {"4": {
			{Day: "Monday", Slot: "09:00-10:30", Course: "CS201 - Data Structures (Lecture)", Faculty: "Dr. Rao", Room: "C101"},
		}},
		"CSE-A": {
			"4": {
				{Day: "Monday", Slot: "09:00-10:30", Course: "CS201 - Data Structures (Lecture)", Faculty: "Dr. Rao", Room: "C102"},
			},
			"6": {
				{Day: model.DayUnscheduled, Slot: model.SlotNA, Course: "EL301 - Game Design (Elective Lecture 1)", Room: model.RoomNA},
			},
		},
	}

	paths, err := ExportTimetable(result, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "CSE-A", "Sem4.csv"),
		filepath.Join(dir, "CSE-A", "Sem6.csv"),
		filepath.Join(dir, "CSE-B", "Sem4.csv"),
	}, paths)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Day,Slot,Course,Faculty,Room", lines[0])
	assert.Contains(t, lines[1], "CS201 - Data Structures (Lecture)")

	data, err = os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Contains(t, string(data), model.DayUnscheduled)
}

func TestPrintCohort(t *testing.T) {
	var sb strings.Builder
	PrintCohort(&sb, "CSE-A", "4", []*model.Placement{
		{Day: "Monday", Slot: "09:00-10:30", Course: "CS201 - Data Structures (Lecture)", Faculty: "Dr. Rao", Room: "C101"},
	})

	out := sb.String()
	assert.Contains(t, out, "CSE-A / Semester 4")
	assert.Contains(t, out, "Dr. Rao")
	assert.Contains(t, out, "Rows: 1")
}
