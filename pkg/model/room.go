package model

import "strings"

// RoomRow mirrors one record of the rooms CSV.
type RoomRow struct {
	Name        string `csv:"Room"`
	CapacitySTR string `csv:"Capacity"`
	Type        string `csv:"Type"`
}

// Room is a read-only catalog entry. Occupancy lives in the booking ledger,
// never on the room itself.
type Room struct {
	Name     string
	Capacity int
	Type     string
}

// IsLab reports whether the room can host lab sessions.
func (r *Room) IsLab() bool {
	return strings.Contains(strings.ToLower(r.Type), "lab")
}

// Fits reports whether the room satisfies capacity and kind requirements.
func (r *Room) Fits(lab bool, strength int) bool {
	if r.Capacity < strength {
		return false
	}
	if lab && !r.IsLab() {
		return false
	}
	return true
}
