package model

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustCalendar(t *testing.T, slotsByDay map[Day][]string) Calendar {
	t.Helper()
	calendar, err := NewCalendar(slotsByDay)
	require.NoError(t, err)
	return calendar
}

// Single Monday/Wednesday slot calendar
func pairedSlotCalendar(t *testing.T) Calendar {
	return mustCalendar(t, map[Day][]string{
		Monday:    {"9:00-10:40"},
		Wednesday: {"9:00-10:40"},
	})
}

type stateSnapshot struct {
	rooms        map[roomKey]bool
	lecturers    map[lecturerKey]bool
	lecturerDays map[string]map[Day][]int
	assignment   Assignment
}

func snapshot(state *searchState) stateSnapshot {
	lecturerDays := make(map[string]map[Day][]int, len(state.lecturerDays))
	for lecturer, days := range state.lecturerDays {
		lecturerDays[lecturer] = make(map[Day][]int, len(days))
		for day, indices := range days {
			lecturerDays[lecturer][day] = slices.Clone(indices)
		}
	}

	return stateSnapshot{
		rooms:        maps.Clone(state.rooms),
		lecturers:    maps.Clone(state.lecturers),
		lecturerDays: lecturerDays,
		assignment:   state.assignment.Clone(),
	}
}

func newInput(t *testing.T, courses []string, rosters map[string][]string, labs uint64, maxBackToBack uint64, calendar Calendar) ModelInput {
	t.Helper()
	return ModelInput{
		Courses:       courses,
		Rosters:       rosters,
		Labs:          labs,
		MaxBackToBack: maxBackToBack,
		Calendar:      calendar,
		PrefixLength:  DefaultPrefixLength,
	}
}
