package csvio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystaledu/timetable/pkg/model"
)

func TestLoadCoursesNormalizesHeaders(t *testing.T) {
	courses, err := LoadCourses(filepath.Join("testdata", "courses.csv"), ',')
	require.NoError(t, err)
	// the row with an empty code is dropped
	require.Len(t, courses, 4)

	ds := courses[0]
	assert.Equal(t, "CS201", ds.Code)
	assert.Equal(t, "Data Structures", ds.Title)
	assert.Equal(t, "CSE", ds.Department)
	assert.Equal(t, "A", ds.Section)
	assert.Equal(t, 4, ds.Semester)
	assert.Equal(t, "3-1-0-0-4", ds.LTPSC)
	assert.Equal(t, "Dr. Rao", ds.Faculty)
	assert.Equal(t, 60, ds.Strength)
	assert.Equal(t, model.CategoryCore, ds.Category)

	// "120.0" style strength cells degrade to their integer part
	assert.Equal(t, 120, courses[1].Strength)

	assert.Equal(t, model.CategoryElective, courses[2].Category)
	assert.Equal(t, model.CategoryMinor, courses[3].Category)
}

func TestLoadRooms(t *testing.T) {
	rooms, err := LoadRooms(filepath.Join("testdata", "rooms.csv"), ',')
	require.NoError(t, err)
	require.Len(t, rooms, 3)

	assert.Equal(t, "C101", rooms[0].Name)
	assert.Equal(t, 60, rooms[0].Capacity)
	assert.False(t, rooms[0].IsLab())

	assert.True(t, rooms[1].IsLab())

	// missing type defaults to Classroom, float capacity is truncated
	assert.Equal(t, "Classroom", rooms[2].Type)
	assert.Equal(t, 90, rooms[2].Capacity)
}

func TestLoadCoursesSemicolonDelimited(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.csv")
	data := "Course Code;Course Title;Department;Section;Semester;LTPSC;Faculty;Strength;Type\n" +
		"CS201;Data Structures;CSE;A;4;3-1-0-0-4;Dr. Rao;60;Core\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	courses, err := LoadCourses(path, ';')
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "CS201", courses[0].Code)
}

func TestLoadCoursesErrors(t *testing.T) {
	_, err := LoadCourses(filepath.Join("testdata", "missing.csv"), ',')
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = LoadCourses(empty, ',')
	assert.ErrorContains(t, err, "empty file")
}
