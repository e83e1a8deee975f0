package model

import (
	"slices"

	"github.com/samber/lo"
)

// verify re-checks a solved result against the input without relying on the search bookkeeping
func verify(result Result, modelInput ModelInput) bool {
	if result.Status != Solved || len(result.Assignment) != len(modelInput.Courses) {
		return false
	}

	roomAssistance := make(map[roomKey]bool)
	lecturerAssistance := make(map[lecturerKey]bool)
	lecturerDays := make(map[string]map[Day][]int)

	for _, course := range modelInput.Courses {
		sessions, ok := result.Assignment[course]
		if !ok || sessions.Main == nil {
			return false
		}
		main := *sessions.Main

		// Check that:
		// - A dual exists if and only if the main's day has a pair, and it mirrors the main
		// - Both sessions follow the same day-pattern at different (day, timeslot, lab)
		pair, pairable := main.Pair()
		if pairable != (sessions.Dual != nil) {
			return false
		} else if pairable && (*sessions.Dual != pair || PatternOf(pair.Day) != PatternOf(main.Day) || pair.room() == main.room()) {
			return false
		}

		roster := modelInput.Rosters[Department(course, int(modelInput.PrefixLength))]
		for _, session := range sessions.All() {
			index, known := modelInput.Calendar.SlotIndex(session.Day, session.Timeslot)

			// Check that:
			// - Timeslot exists on the session's day
			// - Lab is within the configured labs
			// - Lecturer belongs to the course's department
			// - Room is not already taken at that day and timeslot
			// - Lecturer is not already teaching at that day and timeslot
			if !known ||
				session.Lab < 1 || session.Lab > modelInput.Labs ||
				!slices.Contains(roster, session.Lecturer) ||
				roomAssistance[session.room()] ||
				lecturerAssistance[session.lecturerSlot()] {
				return false
			}

			roomAssistance[session.room()] = true
			lecturerAssistance[session.lecturerSlot()] = true
			if _, ok := lecturerDays[session.Lecturer]; !ok {
				lecturerDays[session.Lecturer] = make(map[Day][]int)
			}
			lecturerDays[session.Lecturer][session.Day] = append(lecturerDays[session.Lecturer][session.Day], index)
		}
	}

	// Check whether any lecturer exceeds the back-to-back limit on any day
	return !lo.SomeBy(lo.Values(lecturerDays), func(days map[Day][]int) bool {
		return lo.SomeBy(lo.Values(days), func(indices []int) bool {
			return LongestRun(indices) > int(modelInput.MaxBackToBack)
		})
	})
}

// LongestRun returns the length of the longest run of consecutive slot-indices
func LongestRun(indices []int) int {
	if len(indices) == 0 {
		return 0
	}

	sorted := slices.Clone(indices)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1]+1 {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}
