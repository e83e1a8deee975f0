package model

import "slices"

// Checks whether the candidate's (day, timeslot, lab) is already occupied
func roomConflict(candidate Candidate, rooms map[roomKey]bool) bool {
	return rooms[candidate.room()]
}

// Checks whether the candidate's lecturer is already teaching at the same day and timeslot
func lecturerConflict(candidate Candidate, lecturers map[lecturerKey]bool) bool {
	return lecturers[candidate.lecturerSlot()]
}

// Checks whether placing the candidate would give its lecturer a run of consecutive slots longer than maxRun on that day.
// A candidate whose timeslot does not exist on its day always violates
func backToBackViolation(candidate Candidate, calendar Calendar, lecturerDays map[string]map[Day][]int, maxRun int) bool {
	index, ok := calendar.SlotIndex(candidate.Day, candidate.Timeslot)
	if !ok {
		return true
	}

	occupied := lecturerDays[candidate.Lecturer][candidate.Day]
	position, _ := slices.BinarySearch(occupied, index)
	merged := slices.Insert(slices.Clone(occupied), position, index)

	run := 1
	for i := 1; i < len(merged); i++ {
		if merged[i] == merged[i-1]+1 {
			if run++; run > maxRun {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

// Checks whether the candidate clashes with the sessions already committed to the same course:
// an identical (day, timeslot, lab) placement or a different day-pattern
func sameCourseInconsistency(candidate Candidate, course string, assignment Assignment) bool {
	sessions, ok := assignment[course]
	if !ok {
		return false
	}

	pattern := PatternOf(candidate.Day)
	for _, session := range sessions.All() {
		if session.room() == candidate.room() || PatternOf(session.Day) != pattern {
			return true
		}
	}
	return false
}

// A candidate is admissible only if none of the four predicates fire
func admissible(state *searchState, candidate Candidate, course string, maxRun int) bool {
	return !roomConflict(candidate, state.rooms) &&
		!lecturerConflict(candidate, state.lecturers) &&
		!backToBackViolation(candidate, state.calendar, state.lecturerDays, maxRun) &&
		!sameCourseInconsistency(candidate, course, state.assignment)
}
