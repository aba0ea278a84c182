package csvio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/gocarina/gocsv"

	"github.com/crystaledu/timetable/pkg/model"
)

// ExportTimetable writes one CSV per (branch, semester) beneath dir, laid
// out as <dir>/<branch>/Sem<sem>.csv. Returns the written paths.
func ExportTimetable(result model.Timetable, dir string) ([]string, error) {
	branches := make([]string, 0, len(result))
	for b := range result {
		branches = append(branches, b)
	}
	sort.Strings(branches)

	var paths []string
	for _, branch := range branches {
		branchDir := filepath.Join(dir, branch)
		if err := os.MkdirAll(branchDir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", branchDir, err)
		}

		semesters := make([]string, 0, len(result[branch]))
		for sem := range result[branch] {
			semesters = append(semesters, sem)
		}
		sort.Strings(semesters)

		for _, sem := range semesters {
			path := filepath.Join(branchDir, "Sem"+sem+".csv")
			if err := writeRows(path, result[branch][sem]); err != nil {
				return nil, err
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}

func writeRows(path string, rows []*model.Placement) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if err := gocsv.MarshalFile(&rows, out); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// PrintCohort renders one cohort's timetable as a plain text block.
func PrintCohort(w io.Writer, branch, semester string, rows []*model.Placement) {
	fmt.Fprintf(w, "-------- %s / Semester %s --------\n", branch, semester)
	for _, r := range rows {
		fmt.Fprintf(w, "%-12s %-13s %-45s %-20s %s\n", r.Day, r.Slot, r.Course, r.Faculty, r.Room)
	}
	fmt.Fprintf(w, "Rows: %d\n", len(rows))
}
