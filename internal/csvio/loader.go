// Package csvio loads the course and room tables and writes the generated
// timetables back out. Header names are canonicalized before parsing so the
// usual spreadsheet variants ("code", "Dept", "students", ...) all work.
package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/crystaledu/timetable/pkg/model"
)

var courseHeaderAliases = map[string]string{
	"course code":  "Course Code",
	"code":         "Course Code",
	"course title": "Course Title",
	"course name":  "Course Title",
	"title":        "Course Title",
	"name":         "Course Title",
	"department":   "Department",
	"dept":         "Department",
	"branch":       "Department",
	"section":      "Section",
	"semester":     "Semester",
	"sem":          "Semester",
	"ltpsc":        "LTPSC",
	"l-t-p-s-c":    "LTPSC",
	"faculty":      "Faculty",
	"teacher":      "Faculty",
	"lecturer":     "Faculty",
	"strength":     "Strength",
	"students":     "Strength",
	"type":         "Type",
	"course type":  "Type",
}

var roomHeaderAliases = map[string]string{
	"room":        "Room",
	"room no":     "Room",
	"room number": "Room",
	"name":        "Room",
	"capacity":    "Capacity",
	"cap":         "Capacity",
	"type":        "Type",
}

// LoadCourses reads and parses the combined courses CSV.
func LoadCourses(path string, delim rune) ([]*model.Course, error) {
	data, err := normalizedCSV(path, delim, courseHeaderAliases)
	if err != nil {
		return nil, err
	}

	var records []*model.CourseRow
	if err := gocsv.UnmarshalBytes(data, &records); err != nil {
		return nil, fmt.Errorf("parse courses %s: %w", path, err)
	}

	courses := make([]*model.Course, 0, len(records))
	for _, r := range records {
		code := strings.TrimSpace(r.Code)
		if code == "" {
			continue
		}
		courses = append(courses, &model.Course{
			Code:       code,
			Title:      strings.TrimSpace(r.Title),
			Department: strings.TrimSpace(r.Department),
			Section:    strings.TrimSpace(r.Section),
			Semester:   atoiDefault(r.SemesterSTR, 0),
			LTPSC:      strings.TrimSpace(r.LTPSC),
			Faculty:    strings.TrimSpace(r.Faculty),
			Strength:   atoiDefault(r.StrengthSTR, 0),
			Category:   model.ParseCategory(r.TypeSTR),
		})
	}
	return courses, nil
}

// LoadRooms reads and parses the rooms CSV.
func LoadRooms(path string, delim rune) ([]*model.Room, error) {
	data, err := normalizedCSV(path, delim, roomHeaderAliases)
	if err != nil {
		return nil, err
	}

	var records []*model.RoomRow
	if err := gocsv.UnmarshalBytes(data, &records); err != nil {
		return nil, fmt.Errorf("parse rooms %s: %w", path, err)
	}

	rooms := make([]*model.Room, 0, len(records))
	for _, r := range records {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		typ := strings.TrimSpace(r.Type)
		if typ == "" {
			typ = "Classroom"
		}
		rooms = append(rooms, &model.Room{
			Name:     name,
			Capacity: atoiDefault(r.CapacitySTR, 0),
			Type:     typ,
		})
	}
	return rooms, nil
}

// normalizedCSV rewrites the file with canonical header names and a comma
// delimiter so gocsv can map columns by tag.
func normalizedCSV(path string, delim rune, aliases map[string]string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delim
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read %s: empty file", path)
	}

	header := records[0]
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(col))
		if canonical, ok := aliases[key]; ok {
			header[i] = canonical
		} else {
			header[i] = strings.TrimSpace(col)
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("rewrite %s: %w", path, err)
	}
	return buf.Bytes(), nil
}

func atoiDefault(raw string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		// tolerate "120.0" style cells
		fv, ferr := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if ferr != nil {
			return def
		}
		return int(fv)
	}
	return v
}
