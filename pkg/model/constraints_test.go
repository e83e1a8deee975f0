package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomConflict(t *testing.T) {
	rooms := map[roomKey]bool{{Monday, "a", 1}: true}

	assert.True(t, roomConflict(Candidate{Monday, "a", 1, "L1"}, rooms))
	assert.True(t, roomConflict(Candidate{Monday, "a", 1, "L2"}, rooms))
	assert.False(t, roomConflict(Candidate{Monday, "a", 2, "L1"}, rooms))
	assert.False(t, roomConflict(Candidate{Wednesday, "a", 1, "L1"}, rooms))
}

func TestLecturerConflict(t *testing.T) {
	lecturers := map[lecturerKey]bool{{Tuesday, "b", "L1"}: true}

	assert.True(t, lecturerConflict(Candidate{Tuesday, "b", 3, "L1"}, lecturers))
	assert.False(t, lecturerConflict(Candidate{Tuesday, "b", 3, "L2"}, lecturers))
	assert.False(t, lecturerConflict(Candidate{Tuesday, "a", 3, "L1"}, lecturers))
}

func TestBackToBackViolation(t *testing.T) {
	calendar := mustCalendar(t, map[Day][]string{
		Monday: {"s0", "s1", "s2", "s3", "s4"},
		Friday: {"f0"},
	})

	t.Run("Free lecturer", func(t *testing.T) {
		assert.False(t, backToBackViolation(Candidate{Monday, "s2", 1, "L1"}, calendar, map[string]map[Day][]int{}, 1))
	})

	t.Run("Run within limit", func(t *testing.T) {
		lecturerDays := map[string]map[Day][]int{"L1": {Monday: {0}}}
		assert.False(t, backToBackViolation(Candidate{Monday, "s1", 1, "L1"}, calendar, lecturerDays, 2))
	})

	t.Run("Run over limit", func(t *testing.T) {
		lecturerDays := map[string]map[Day][]int{"L1": {Monday: {0, 1}}}
		assert.True(t, backToBackViolation(Candidate{Monday, "s2", 1, "L1"}, calendar, lecturerDays, 2))
	})

	t.Run("Candidate joins two runs", func(t *testing.T) {
		lecturerDays := map[string]map[Day][]int{"L1": {Monday: {0, 1, 3, 4}}}
		assert.True(t, backToBackViolation(Candidate{Monday, "s2", 1, "L1"}, calendar, lecturerDays, 4))
		assert.False(t, backToBackViolation(Candidate{Monday, "s2", 1, "L1"}, calendar, lecturerDays, 5))
	})

	t.Run("Gap resets the run", func(t *testing.T) {
		lecturerDays := map[string]map[Day][]int{"L1": {Monday: {0, 1}}}
		assert.False(t, backToBackViolation(Candidate{Monday, "s3", 1, "L1"}, calendar, lecturerDays, 2))
	})

	t.Run("Other days and lecturers do not count", func(t *testing.T) {
		lecturerDays := map[string]map[Day][]int{
			"L1": {Friday: {0}},
			"L2": {Monday: {0, 2}},
		}
		assert.False(t, backToBackViolation(Candidate{Monday, "s1", 1, "L1"}, calendar, lecturerDays, 1))
	})

	t.Run("Unknown timeslot", func(t *testing.T) {
		assert.True(t, backToBackViolation(Candidate{Friday, "s0", 1, "L1"}, calendar, map[string]map[Day][]int{}, 5))
		assert.True(t, backToBackViolation(Candidate{Tuesday, "s0", 1, "L1"}, calendar, map[string]map[Day][]int{}, 5))
	})

	t.Run("State is not modified", func(t *testing.T) {
		lecturerDays := map[string]map[Day][]int{"L1": {Monday: {0, 4}}}
		backToBackViolation(Candidate{Monday, "s2", 1, "L1"}, calendar, lecturerDays, 2)
		assert.Equal(t, []int{0, 4}, lecturerDays["L1"][Monday])
	})
}

func TestSameCourseInconsistency(t *testing.T) {
	main := Candidate{Monday, "a", 1, "L1"}
	friday := Candidate{Friday, "a", 1, "L1"}
	assignment := Assignment{
		"DSA1060_A": {Main: &main},
		"DSA1080_A": {Main: &friday},
	}

	t.Run("Course without sessions", func(t *testing.T) {
		assert.False(t, sameCourseInconsistency(Candidate{Tuesday, "a", 1, "L1"}, "STA1020_A", assignment))
	})

	t.Run("Same pattern", func(t *testing.T) {
		assert.False(t, sameCourseInconsistency(Candidate{Wednesday, "a", 1, "L1"}, "DSA1060_A", assignment))
		assert.False(t, sameCourseInconsistency(Candidate{Saturday, "b", 2, "L1"}, "DSA1080_A", assignment))
	})

	t.Run("Identical placement", func(t *testing.T) {
		assert.True(t, sameCourseInconsistency(Candidate{Monday, "a", 1, "L2"}, "DSA1060_A", assignment))
	})

	t.Run("Mixed patterns", func(t *testing.T) {
		assert.True(t, sameCourseInconsistency(Candidate{Tuesday, "a", 1, "L1"}, "DSA1060_A", assignment))
		assert.True(t, sameCourseInconsistency(Candidate{Friday, "b", 1, "L1"}, "DSA1060_A", assignment))
		assert.True(t, sameCourseInconsistency(Candidate{Thursday, "a", 1, "L1"}, "DSA1080_A", assignment))
	})
}

func TestAdmissible(t *testing.T) {
	state := newSearchState(pairedSlotCalendar(t))
	candidate := Candidate{Monday, "9:00-10:40", 1, "L1"}

	assert.True(t, admissible(state, candidate, "DSA1060_A", 1))

	state.commit("DSA1060_A", candidate, nil)

	assert.False(t, admissible(state, candidate, "STA1020_A", 1))                                // Room
	assert.False(t, admissible(state, Candidate{Monday, "9:00-10:40", 2, "L1"}, "STA1020_A", 1)) // Lecturer
	assert.True(t, admissible(state, Candidate{Monday, "9:00-10:40", 2, "L2"}, "STA1020_A", 1))
	assert.False(t, admissible(state, Candidate{Tuesday, "9:00-10:40", 2, "L2"}, "STA1020_A", 1)) // Unknown timeslot
}
