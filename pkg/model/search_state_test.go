package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchState(t *testing.T) {
	calendar := mustCalendar(t, map[Day][]string{
		Monday:    {"s0", "s1", "s2"},
		Wednesday: {"s0", "s1", "s2"},
		Friday:    {"f0", "f1"},
	})

	t.Run("Commit occupies main and dual", func(t *testing.T) {
		//** Arrange
		state := newSearchState(calendar)
		main := Candidate{Monday, "s1", 1, "L1"}
		dual, _ := main.Pair()

		//** Act
		state.commit("DSA1060_A", main, &dual)

		//** Assert
		assert.True(t, state.rooms[main.room()])
		assert.True(t, state.rooms[dual.room()])
		assert.True(t, state.lecturers[main.lecturerSlot()])
		assert.True(t, state.lecturers[dual.lecturerSlot()])
		assert.Equal(t, []int{1}, state.lecturerDays["L1"][Monday])
		assert.Equal(t, []int{1}, state.lecturerDays["L1"][Wednesday])
		assert.Equal(t, main, *state.assignment["DSA1060_A"].Main)
		assert.Equal(t, dual, *state.assignment["DSA1060_A"].Dual)
		assert.NoError(t, state.consistent())
	})

	t.Run("Slot-indices stay sorted", func(t *testing.T) {
		state := newSearchState(calendar)

		state.commit("A", Candidate{Monday, "s2", 1, "L1"}, nil)
		state.commit("B", Candidate{Monday, "s0", 1, "L1"}, nil)
		state.commit("C", Candidate{Monday, "s1", 2, "L1"}, nil)

		assert.Equal(t, []int{0, 1, 2}, state.lecturerDays["L1"][Monday])
		assert.NoError(t, state.consistent())
	})

	t.Run("Undo is the exact inverse of commit", func(t *testing.T) {
		//** Arrange
		state := newSearchState(calendar)
		first := Candidate{Monday, "s0", 1, "L1"}
		firstDual, _ := first.Pair()
		state.commit("A", first, &firstDual)
		state.commit("B", Candidate{Friday, "f1", 1, "L2"}, nil)
		before := snapshot(state)

		second := Candidate{Wednesday, "s1", 2, "L1"}
		secondDual, _ := second.Pair()

		//** Act
		state.commit("C", second, &secondDual)
		state.undo("C")

		//** Assert
		assert.Equal(t, before, snapshot(state))
		assert.NoError(t, state.consistent())
	})

	t.Run("Undoing everything leaves empty structures", func(t *testing.T) {
		state := newSearchState(calendar)
		empty := snapshot(state)

		state.commit("A", Candidate{Friday, "f0", 1, "L1"}, nil)
		state.commit("B", Candidate{Friday, "f1", 1, "L1"}, nil)
		state.undo("B")
		state.undo("A")

		assert.Equal(t, empty, snapshot(state))
	})

	t.Run("Asymmetric operations are defects", func(t *testing.T) {
		state := newSearchState(calendar)
		state.commit("A", Candidate{Friday, "f0", 1, "L1"}, nil)

		assert.Panics(t, func() { state.undo("B") })
		assert.Panics(t, func() { state.commit("A", Candidate{Friday, "f1", 1, "L1"}, nil) })
		assert.Panics(t, func() { state.commit("B", Candidate{Friday, "f0", 1, "L2"}, nil) })
	})

	t.Run("Corrupted occupancy is detected", func(t *testing.T) {
		state := newSearchState(calendar)
		state.commit("A", Candidate{Friday, "f0", 1, "L1"}, nil)

		state.rooms[roomKey{Friday, "f1", 3}] = true

		assert.Error(t, state.consistent())
	})
}
