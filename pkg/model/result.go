package model

import (
	"maps"
	"slices"
	"time"

	"github.com/samber/lo"
)

type Status uint64

const (
	Unknown Status = iota // No search has produced the result
	Solved
	Infeasible
	SearchLimit // The search was cut off by a node or time limit before it could finish
)

func (status Status) String() string {
	switch status {
	case Solved:
		return "solved"
	case Infeasible:
		return "infeasible"
	case SearchLimit:
		return "search-limit"
	}
	return "unknown"
}

type SearchStats struct {
	Nodes      uint64 // Candidates examined
	Backtracks uint64 // Commits undone
	Duration   time.Duration
}

type Result struct {
	Status     Status
	Assignment Assignment // Nil unless Status is Solved
	Order      []string   // Course order used by the search
	Stats      SearchStats
	Reason     string
}

// Schedule returns one record per course, sorted by course code
func (result Result) Schedule() Schedule {
	if result.Status != Solved {
		return nil
	}
	return Assemble(result.Assignment)
}

// CourseSchedule is the presentation record of a course. Either half may be absent
type CourseSchedule struct {
	Course string
	Main   *Candidate
	Dual   *Candidate
}

// Days returns the meeting days of the course in week order
func (record CourseSchedule) Days() []Day {
	days := lo.Map(Sessions{Main: record.Main, Dual: record.Dual}.All(), func(session Candidate, _ int) Day { return session.Day })
	slices.Sort(days)
	return days
}

// Session returns the main session, or the dual one when the main is absent
func (record CourseSchedule) Session() (Candidate, bool) {
	if record.Main != nil {
		return *record.Main, true
	} else if record.Dual != nil {
		return *record.Dual, true
	}
	return Candidate{}, false
}

type Schedule []CourseSchedule

func (schedule Schedule) Lookup(course string) (CourseSchedule, bool) {
	return lo.Find(schedule, func(record CourseSchedule) bool { return record.Course == course })
}

// Assemble groups an assignment into one record per course
func Assemble(assignment Assignment) Schedule {
	clone := assignment.Clone()
	return lo.Map(slices.Sorted(maps.Keys(clone)), func(course string, _ int) CourseSchedule {
		sessions := clone[course]
		return CourseSchedule{
			Course: course,
			Main:   sessions.Main,
			Dual:   sessions.Dual,
		}
	})
}
