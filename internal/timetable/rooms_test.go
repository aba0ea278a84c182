package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crystaledu/timetable/pkg/model"
)

var morning = model.TimeRange{Start: 540, End: 630}

func TestChooseSmallestAdequateRoom(t *testing.T) {
	ledger := NewLedger()
	alloc := NewRoomAllocator([]*model.Room{
		{Name: "C301", Capacity: 120, Type: "Classroom"},
		{Name: "C101", Capacity: 30, Type: "Classroom"},
		{Name: "C201", Capacity: 60, Type: "Classroom"},
	}, ledger)

	room := alloc.Choose("Monday", morning, false, 50, nil)
	assert.NotNil(t, room)
	assert.Equal(t, "C201", room.Name)
}

func TestChoosePrefersLabRooms(t *testing.T) {
	ledger := NewLedger()
	alloc := NewRoomAllocator([]*model.Room{
		{Name: "C001", Capacity: 100, Type: "Classroom"},
		{Name: "SL1", Capacity: 40, Type: "Software Lab"},
	}, ledger)

	room := alloc.Choose("Monday", morning, true, 25, nil)
	assert.NotNil(t, room)
	assert.Equal(t, "SL1", room.Name)
}

func TestChooseLabFallsBackToClassroom(t *testing.T) {
	ledger := NewLedger()
	alloc := NewRoomAllocator([]*model.Room{
		{Name: "C001", Capacity: 100, Type: "Classroom"},
		{Name: "SL1", Capacity: 40, Type: "Software Lab"},
	}, ledger)

	// strength exceeds every lab room
	room := alloc.Choose("Monday", morning, true, 80, nil)
	assert.NotNil(t, room)
	assert.Equal(t, "C001", room.Name)
}

func TestChooseSkipsBusyAndExcludedRooms(t *testing.T) {
	ledger := NewLedger()
	alloc := NewRoomAllocator([]*model.Room{
		{Name: "C101", Capacity: 50, Type: "Classroom"},
		{Name: "C201", Capacity: 60, Type: "Classroom"},
	}, ledger)

	ledger.Commit(&model.Booking{Day: "Monday", Range: morning, Room: "C101", Course: "CS201"})
	room := alloc.Choose("Monday", morning, false, 40, nil)
	assert.NotNil(t, room)
	assert.Equal(t, "C201", room.Name)

	room = alloc.Choose("Monday", morning, false, 40, map[string]bool{"C201": true})
	assert.Nil(t, room)

	// same window next day is fine
	room = alloc.Choose("Tuesday", morning, false, 40, nil)
	assert.NotNil(t, room)
	assert.Equal(t, "C101", room.Name)
}

func TestChooseWithNoRooms(t *testing.T) {
	alloc := NewRoomAllocator(nil, NewLedger())
	assert.Nil(t, alloc.Choose("Monday", morning, false, 10, nil))
	assert.Nil(t, alloc.Choose("Monday", morning, true, 10, nil))
}
