package timetable

import (
	"github.com/crystaledu/timetable/pkg/model"
)

// salvage retries every residual session of the cohort once against the
// current ledger state, scanning days and the kind's slot pool in
// configured order. No randomization here: this is a last-chance recovery
// step where reproducibility matters more than load balancing.
func (s *Scheduler) salvage(c cohort, residual []*model.Placement) (recovered, remaining []*model.Placement) {
	for _, row := range residual {
		sess := session{
			code:     row.Code,
			title:    row.Title,
			faculty:  row.Faculty,
			strength: row.Strength,
			kind:     row.Kind,
			label:    row.Label,
		}
		placed := (*model.Placement)(nil)
		for _, day := range s.catalog.Days {
			placed = s.tryPlace(c, sess, day)
			if placed != nil {
				break
			}
		}
		if placed != nil {
			recovered = append(recovered, placed)
		} else {
			remaining = append(remaining, row)
		}
	}
	return recovered, remaining
}
