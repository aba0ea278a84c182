package timetable

import (
	"sort"

	"github.com/crystaledu/timetable/pkg/model"
)

// SortRows stable-sorts a cohort's rows by day order, chronological slot
// order, then course description. Unplaced rows sort last. Re-sorting a
// sorted list is a no-op.
func SortRows(catalog *Catalog, rows []*model.Placement) {
	sort.SliceStable(rows, func(i, j int) bool {
		di, dj := catalog.DayIndex(rows[i].Day), catalog.DayIndex(rows[j].Day)
		if di != dj {
			return di < dj
		}
		si, sj := catalog.SlotIndex(rows[i].Slot), catalog.SlotIndex(rows[j].Slot)
		if si != sj {
			return si < sj
		}
		return rows[i].Course < rows[j].Course
	})
}
