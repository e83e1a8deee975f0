package model

import (
	"fmt"
	"log"
	"maps"
	"slices"
)

// searchState is the occupancy bookkeeping of a single solve. It is owned by one search and only mutated through commit and undo
type searchState struct {
	calendar     Calendar
	rooms        map[roomKey]bool
	lecturers    map[lecturerKey]bool
	lecturerDays map[string]map[Day][]int // Sorted slot-indices per lecturer per day
	assignment   Assignment
}

func newSearchState(calendar Calendar) *searchState {
	return &searchState{
		calendar:     calendar,
		rooms:        make(map[roomKey]bool),
		lecturers:    make(map[lecturerKey]bool),
		lecturerDays: make(map[string]map[Day][]int),
		assignment:   make(Assignment),
	}
}

func (state *searchState) commit(course string, main Candidate, dual *Candidate) {
	if _, ok := state.assignment[course]; ok {
		log.Panicf("course \"%v\" is already committed", course)
	}

	sessions := Sessions{Main: &main}
	state.occupy(main)
	if dual != nil {
		pair := *dual
		sessions.Dual = &pair
		state.occupy(pair)
	}
	state.assignment[course] = sessions
}

func (state *searchState) undo(course string) {
	sessions, ok := state.assignment[course]
	if !ok {
		log.Panicf("course \"%v\" cannot be undone since it is not committed", course)
	}

	// Release in reverse commit order
	if sessions.Dual != nil {
		state.release(*sessions.Dual)
	}
	if sessions.Main != nil {
		state.release(*sessions.Main)
	}
	delete(state.assignment, course)
}

func (state *searchState) occupy(candidate Candidate) {
	index, ok := state.calendar.SlotIndex(candidate.Day, candidate.Timeslot)
	if !ok {
		log.Panicf("timeslot \"%v\" does not exist on %v", candidate.Timeslot, candidate.Day)
	}
	if state.rooms[candidate.room()] || state.lecturers[candidate.lecturerSlot()] {
		log.Panicf("candidate %v is committed over an occupied room or lecturer", candidate)
	}

	state.rooms[candidate.room()] = true
	state.lecturers[candidate.lecturerSlot()] = true

	days, ok := state.lecturerDays[candidate.Lecturer]
	if !ok {
		days = make(map[Day][]int)
		state.lecturerDays[candidate.Lecturer] = days
	}
	position, _ := slices.BinarySearch(days[candidate.Day], index)
	days[candidate.Day] = slices.Insert(days[candidate.Day], position, index)
}

func (state *searchState) release(candidate Candidate) {
	index, _ := state.calendar.SlotIndex(candidate.Day, candidate.Timeslot)
	occupied := state.lecturerDays[candidate.Lecturer][candidate.Day]
	position, found := slices.BinarySearch(occupied, index)

	if !state.rooms[candidate.room()] || !state.lecturers[candidate.lecturerSlot()] || !found {
		log.Panicf("candidate %v is released but it was never occupied", candidate)
	}

	delete(state.rooms, candidate.room())
	delete(state.lecturers, candidate.lecturerSlot())

	// Empty entries are removed so that an undo leaves no trace of the commit
	occupied = slices.Delete(occupied, position, position+1)
	if len(occupied) > 0 {
		state.lecturerDays[candidate.Lecturer][candidate.Day] = occupied
		return
	}
	delete(state.lecturerDays[candidate.Lecturer], candidate.Day)
	if len(state.lecturerDays[candidate.Lecturer]) == 0 {
		delete(state.lecturerDays, candidate.Lecturer)
	}
}

// project recomputes the occupancy structures from the assignment
func (state *searchState) project() *searchState {
	projection := newSearchState(state.calendar)
	for _, course := range slices.Sorted(maps.Keys(state.assignment)) {
		sessions := state.assignment[course]
		projection.assignment[course] = sessions
		for _, session := range sessions.All() {
			projection.occupy(session)
		}
	}
	return projection
}

// consistent reports an error when the incrementally maintained occupancy differs from the projection of the assignment
func (state *searchState) consistent() error {
	projection := state.project()

	if !maps.Equal(state.rooms, projection.rooms) {
		return fmt.Errorf("room occupancy does not match the assignment")
	}
	if !maps.Equal(state.lecturers, projection.lecturers) {
		return fmt.Errorf("lecturer occupancy does not match the assignment")
	}
	if !maps.EqualFunc(state.lecturerDays, projection.lecturerDays, func(days1, days2 map[Day][]int) bool {
		return maps.EqualFunc(days1, days2, slices.Equal[[]int])
	}) {
		return fmt.Errorf("lecturer day slots do not match the assignment")
	}
	return nil
}
