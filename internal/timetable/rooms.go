package timetable

import (
	"sort"

	"github.com/crystaledu/timetable/pkg/model"
)

// RoomAllocator picks the smallest adequate free room for a candidate
// window, consulting the shared ledger for occupancy.
type RoomAllocator struct {
	rooms  []*model.Room
	ledger *Ledger
}

// NewRoomAllocator keeps its own capacity-sorted copy so the first fitting
// room is always the smallest one.
func NewRoomAllocator(rooms []*model.Room, ledger *Ledger) *RoomAllocator {
	sorted := append([]*model.Room(nil), rooms...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Capacity < sorted[j].Capacity
	})
	return &RoomAllocator{rooms: sorted, ledger: ledger}
}

// Choose returns the smallest free room with capacity >= strength, skipping
// rooms in exclude (used when a grouped basket must spread its courses over
// distinct rooms). Lab sessions prefer lab rooms and fall back to any
// sufficiently large room when no lab room is free. Returns nil when
// nothing fits; that is a rejected candidate, not an error.
func (a *RoomAllocator) Choose(day string, rng model.TimeRange, lab bool, strength int, exclude map[string]bool) *model.Room {
	if r := a.scan(day, rng, lab, strength, exclude); r != nil {
		return r
	}
	if lab {
		return a.scan(day, rng, false, strength, exclude)
	}
	return nil
}

func (a *RoomAllocator) scan(day string, rng model.TimeRange, lab bool, strength int, exclude map[string]bool) *model.Room {
	for _, r := range a.rooms {
		if exclude[r.Name] {
			continue
		}
		if !r.Fits(lab, strength) {
			continue
		}
		if a.ledger.RoomFree(r.Name, day, rng) {
			return r
		}
	}
	return nil
}
